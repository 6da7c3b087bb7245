package zenlog

import (
	"fmt"
	"strconv"
	"time"

	"pkt.systems/zenlog/render"
)

type field struct {
	key   string
	value any
}

// collectFields pairs keyvals into fields. Non-string keys use their text
// form and a trailing value without a key is stored as argN.
func collectFields(keyvals []any) []field {
	if len(keyvals) == 0 {
		return nil
	}
	fields := make([]field, 0, (len(keyvals)+1)/2)
	pair := 0
	for i := 0; i < len(keyvals); {
		if i+1 < len(keyvals) {
			fields = append(fields, field{key: keyFromValue(keyvals[i], pair), value: keyvals[i+1]})
			i += 2
			pair++
			continue
		}
		fields = append(fields, field{key: argKeyName(pair), value: keyvals[i]})
		i++
		pair++
	}
	return fields
}

func keyFromValue(v any, pair int) string {
	switch k := v.(type) {
	case nil:
		return argKeyName(pair)
	case string:
		return k
	case fmt.Stringer:
		return k.String()
	case error:
		return k.Error()
	}
	if key := plainText(v); key != "" {
		return key
	}
	return argKeyName(pair)
}

func argKeyName(pair int) string {
	return "arg" + strconv.Itoa(pair)
}

func cloneFields(src []field) []field {
	if len(src) == 0 {
		return nil
	}
	dst := make([]field, len(src))
	copy(dst, src)
	return dst
}

// fieldMap flattens fields into the mapping rendered below the message.
// Later keys win.
func fieldMap(fields []field) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.key] = f.value
	}
	return m
}

// plainText is the uncoloured text form of a value, used for filtering and
// keys. Panicking String methods yield a placeholder.
func plainText(v any) (out string) {
	if s, ok := v.(string); ok {
		return s
	}
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("<%T: panic in String>", v)
		}
	}()
	return render.Text(v)
}

// entry is one log call as seen by every output.
type entry struct {
	site   CallSite
	level  Level
	values []any
	fields []field
	sep    string
	time   time.Time

	plain     string
	plainDone bool
}

// plainMessage is the message text used for include/exclude filtering.
// Outputs are served sequentially, so it is computed at most once.
func (e *entry) plainMessage() string {
	if !e.plainDone {
		e.plain = joinPlain(e.values, e.sep)
		e.plainDone = true
	}
	return e.plain
}

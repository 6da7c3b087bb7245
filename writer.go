package zenlog

import (
	"strings"
	"sync"
)

const (
	lineBufferDefaultCap = 1024
	lineBufferMaxCap     = 64 << 10
)

// lineBuffer assembles one complete entry (prompt, body lines, metadata)
// so each output receives a single Write per log call.
type lineBuffer struct {
	buf []byte
}

var lineBufferPool = sync.Pool{
	New: func() any {
		return &lineBuffer{buf: make([]byte, 0, lineBufferDefaultCap)}
	},
}

func acquireLineBuffer() *lineBuffer {
	lb := lineBufferPool.Get().(*lineBuffer)
	lb.buf = lb.buf[:0]
	return lb
}

func releaseLineBuffer(lb *lineBuffer) {
	if cap(lb.buf) > lineBufferMaxCap {
		return
	}
	lineBufferPool.Put(lb)
}

func (lb *lineBuffer) writeString(s string) {
	lb.buf = append(lb.buf, s...)
}

func (lb *lineBuffer) writeByte(c byte) {
	lb.buf = append(lb.buf, c)
}

func (lb *lineBuffer) writeSpaces(n int) {
	for ; n > 0; n-- {
		lb.buf = append(lb.buf, ' ')
	}
}

func joinPlain(values []any, sep string) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(plainText(v))
	}
	return b.String()
}

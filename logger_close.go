package zenlog

import (
	"io"
	"os"
)

// closeOutput closes w when the logger owns it. Standard streams and
// caller-supplied writers are never closed.
func closeOutput(w io.Writer) error {
	if w == nil || w == os.Stdout || w == os.Stderr {
		return nil
	}
	if c, ok := w.(zenlogOwnedCloser); ok {
		return c.zenlogOwnedClose()
	}
	return nil
}

package zenlog

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type zenlogOwnedCloser interface {
	zenlogOwnedClose() error
}

// ownedOutput is a destination the logger opened itself and therefore must
// close exactly once, however many outputs or loggers reference it.
type ownedOutput struct {
	writer   io.Writer
	closer   io.Closer
	closeErr error
	once     sync.Once
}

func newOwnedOutput(writer io.Writer, closer io.Closer) io.Writer {
	if writer == nil {
		writer = io.Discard
	}
	if closer == nil {
		return writer
	}
	if existing, ok := writer.(*ownedOutput); ok {
		return existing
	}
	return &ownedOutput{writer: writer, closer: closer}
}

func (o *ownedOutput) Write(p []byte) (int, error) {
	return o.writer.Write(p)
}

func (o *ownedOutput) Close() error {
	return o.zenlogOwnedClose()
}

func (o *ownedOutput) zenlogOwnedClose() error {
	o.once.Do(func() {
		if o.closer != nil {
			o.closeErr = o.closer.Close()
		}
	})
	return o.closeErr
}

// openLogFile opens path for a file output. reset truncates an existing
// file, otherwise entries are appended.
func openLogFile(path string, reset bool) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if reset {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log output %q: %w", path, err)
	}
	return file, nil
}

package zenlog

import (
	"io"
	"sync/atomic"
)

// WriteFailure describes one failed write observed by ObservedWriter.
type WriteFailure struct {
	// Output names the destination: "stream" or the file path.
	Output    string
	Err       error
	Written   int
	Attempted int
}

// ObservedWriterStats captures aggregated counters for ObservedWriter.
type ObservedWriterStats struct {
	Writes      uint64
	Bytes       uint64
	Failures    uint64
	ShortWrites uint64
}

// ObservedWriter wraps an io.Writer and records write failures so lost log
// entries can be observed without changing logger call signatures. Every
// logger output writes through one.
type ObservedWriter struct {
	dst        io.Writer
	name       string
	onFailure  func(WriteFailure)
	writes     atomic.Uint64
	bytes      atomic.Uint64
	failures   atomic.Uint64
	shortWrite atomic.Uint64
}

// NewObservedWriter wraps dst with failure observation hooks.
func NewObservedWriter(dst io.Writer, onFailure func(WriteFailure)) *ObservedWriter {
	return newObservedWriter(dst, "stream", onFailure)
}

func newObservedWriter(dst io.Writer, name string, onFailure func(WriteFailure)) *ObservedWriter {
	if dst == nil {
		dst = io.Discard
	}
	return &ObservedWriter{
		dst:       dst,
		name:      name,
		onFailure: onFailure,
	}
}

func (w *ObservedWriter) Write(p []byte) (int, error) {
	if w == nil || w.dst == nil {
		return len(p), nil
	}

	n, err := w.dst.Write(p)
	w.writes.Add(1)
	if n > 0 {
		w.bytes.Add(uint64(n))
	}
	if n != len(p) {
		w.shortWrite.Add(1)
		if err == nil {
			err = io.ErrShortWrite
		}
	}

	if err != nil {
		w.failures.Add(1)
		if w.onFailure != nil {
			w.onFailure(WriteFailure{
				Output:    w.name,
				Err:       err,
				Written:   n,
				Attempted: len(p),
			})
		}
	}

	return n, err
}

// Stats returns cumulative counters.
func (w *ObservedWriter) Stats() ObservedWriterStats {
	if w == nil {
		return ObservedWriterStats{}
	}
	return ObservedWriterStats{
		Writes:      w.writes.Load(),
		Bytes:       w.bytes.Load(),
		Failures:    w.failures.Load(),
		ShortWrites: w.shortWrite.Load(),
	}
}

// Close closes the wrapped destination when the logger owns it.
func (w *ObservedWriter) Close() error {
	if w == nil {
		return nil
	}
	return closeOutput(w.dst)
}

func (w *ObservedWriter) zenlogOwnedClose() error {
	return w.Close()
}

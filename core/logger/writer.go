package logger

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// bufferedWriter accumulates log lines and fans them out to all sinks once
// the buffer passes its threshold, on Flush, or on Close. Writes after Close
// are dropped.
type bufferedWriter struct {
	mu     sync.Mutex
	outs   []io.Writer
	buf    bytes.Buffer
	limit  int
	closed bool
}

func newBufferedWriter(outs []io.Writer, limit int) *bufferedWriter {
	if limit <= 0 {
		limit = 8 * 1024
	}
	return &bufferedWriter{outs: outs, limit: limit}
}

func (w *bufferedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return len(p), nil
	}
	w.buf.Write(p)
	if w.buf.Len() >= w.limit {
		if err := w.flushLocked(); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

// Flush pushes buffered bytes to every sink.
func (w *bufferedWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

// Close flushes and stops accepting writes.
func (w *bufferedWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.flushLocked()
	w.closed = true
	return err
}

func (w *bufferedWriter) flushLocked() error {
	if w.buf.Len() == 0 {
		return nil
	}
	data := w.buf.Bytes()
	var errs []error
	for _, out := range w.outs {
		if _, err := out.Write(data); err != nil {
			errs = append(errs, err)
		}
	}
	w.buf.Reset()
	return errors.Join(errs...)
}

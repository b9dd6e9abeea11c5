// ABOUTME: Line-flushed response writer: one encoded envelope per Write call
// ABOUTME: Flushes buffered sinks so the host sees replies in command order

package protocol

import (
	"fmt"
	"io"

	"github.com/mailru/easyjson/jwriter"
)

type flusher interface {
	Flush() error
}

// Writer emits envelopes as newline-terminated JSON lines.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write encodes env and writes it as a single line.
func (w *Writer) Write(env Envelope) error {
	var jw jwriter.Writer
	env.MarshalEasyJSON(&jw)
	jw.RawByte('\n')
	data, err := jw.BuildBytes()
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	if f, ok := w.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flushing response: %w", err)
		}
	}
	return nil
}

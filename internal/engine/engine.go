// ABOUTME: Protocol engine: owns the increment amount and runs the read/dispatch/write loop
// ABOUTME: Every malformed line gets exactly one error response; only quit or EOF stop it

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mauromedda/nu-plugin-inc-go/internal/log"
	"github.com/mauromedda/nu-plugin-inc-go/internal/protocol"
	"github.com/mauromedda/nu-plugin-inc-go/internal/value"
)

// DefaultIncrement is the increment amount before any init.
const DefaultIncrement int64 = 1

// ErrTooManyReadErrors stops Run when the consecutive read failure limit is hit.
var ErrTooManyReadErrors = errors.New("engine: too many consecutive read errors")

// LineSource yields raw inbound lines. *protocol.LineReader implements it.
type LineSource interface {
	ReadNext() ([]byte, error)
}

// ResponseWriter emits one envelope per call. *protocol.Writer implements it.
type ResponseWriter interface {
	Write(protocol.Envelope) error
}

// Stats counts what a session has processed.
type Stats struct {
	Lines        int
	Inits        int
	Filters      int
	Quits        int
	ReadErrors   int
	DecodeErrors int
	Responses    int
}

// Engine processes commands strictly one at a time. It is not safe for
// concurrent use.
type Engine struct {
	reader        LineSource
	writer        ResponseWriter
	increment     int64
	maxReadErrors int
	stats         Stats
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxReadErrors stops Run after n consecutive read failures. Zero, the
// default, never stops on read failures.
func WithMaxReadErrors(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxReadErrors = n
		}
	}
}

// New creates an Engine with the default increment.
func New(reader LineSource, writer ResponseWriter, opts ...Option) *Engine {
	e := &Engine{
		reader:    reader,
		writer:    writer,
		increment: DefaultIncrement,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Increment returns the current increment amount.
func (e *Engine) Increment() int64 { return e.increment }

// Stats returns a snapshot of the session counters.
func (e *Engine) Stats() Stats { return e.stats }

// Run reads and processes lines until quit, end of input, a write failure
// or ctx cancellation. Reaching quit or end of input returns nil.
func (e *Engine) Run(ctx context.Context) error {
	consecutive := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := e.reader.ReadNext()
		if errors.Is(err, io.EOF) {
			log.Debug("end of input")
			return nil
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			e.stats.ReadErrors++
			consecutive++
			log.Warn("%v", err)
			if err := e.emit(protocol.ErrorResponse(protocol.MsgUnrecognizedStream)); err != nil {
				return err
			}
			if e.maxReadErrors > 0 && consecutive >= e.maxReadErrors {
				return fmt.Errorf("%w: %d in a row, last: %w", ErrTooManyReadErrors, consecutive, err)
			}
			continue
		}
		consecutive = 0
		e.stats.Lines++

		cmd, err := protocol.DecodeCommand(line)
		if err != nil {
			e.stats.DecodeErrors++
			logDecodeFailure(err, line)
			if err := e.emit(protocol.ErrorResponse(protocol.MsgUnrecognizedStream)); err != nil {
				return err
			}
			continue
		}

		responses, stop := e.Handle(cmd)
		for _, resp := range responses {
			if err := e.emit(resp); err != nil {
				return err
			}
		}
		if stop {
			log.Debug("quit received")
			return nil
		}
	}
}

func (e *Engine) emit(env protocol.Envelope) error {
	if err := e.writer.Write(env); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	e.stats.Responses++
	return nil
}

// Handle applies cmd to the session state and returns the envelopes to send,
// in order. stop is true only for quit.
func (e *Engine) Handle(cmd protocol.Command) (responses []protocol.Envelope, stop bool) {
	switch c := cmd.(type) {
	case protocol.InitCommand:
		e.stats.Inits++
		return e.handleInit(c), false
	case protocol.FilterCommand:
		e.stats.Filters++
		return []protocol.Envelope{e.handleFilter(c)}, false
	case protocol.QuitCommand:
		e.stats.Quits++
		return nil, true
	default:
		return []protocol.Envelope{protocol.ErrorResponse(protocol.MsgUnrecognizedStream)}, false
	}
}

// handleInit assigns every integer param to the increment in order, so the
// last one wins. Each non-integer param yields its own error response.
// Success produces no response at all.
func (e *Engine) handleInit(c protocol.InitCommand) []protocol.Envelope {
	var out []protocol.Envelope
	for _, p := range c.Params {
		if i, ok := p.Item.AsInt(); ok {
			e.increment = i
			continue
		}
		out = append(out, protocol.ErrorResponse(protocol.MsgUnrecognizedParams))
	}
	return out
}

func (e *Engine) handleFilter(c protocol.FilterCommand) protocol.Envelope {
	v, ok := value.Increment(c.Params, e.increment)
	if !ok {
		return protocol.ErrorResponse(protocol.MsgUnrecognizedStream)
	}
	return protocol.NewResponse(protocol.Ok(v))
}

func logDecodeFailure(err error, line []byte) {
	var decErr *protocol.DecodeError
	if errors.As(err, &decErr) && decErr.Suggestion != "" {
		log.Debug("%v (did you mean %q?): %s", err, decErr.Suggestion, log.Preview(string(line), 0))
		return
	}
	log.Debug("%v: %s", err, log.Preview(string(line), 0))
}

// ABOUTME: Outbound JSON-RPC-shaped envelope and its success/error result entries
// ABOUTME: Encoded with easyjson's jwriter in the exact shape the host matches on

package protocol

import (
	"github.com/mailru/easyjson/jwriter"

	"github.com/mauromedda/nu-plugin-inc-go/internal/value"
)

// Version is the jsonrpc tag written on every envelope.
const Version = "2.0"

// Error messages sent to the host.
const (
	MsgUnrecognizedStream = "Unrecognized type in stream"
	MsgUnrecognizedParams = "Unrecognized type in params"
)

// Result is one entry of an envelope's params: a value or an error message.
type Result struct {
	val   value.Value
	msg   string
	isErr bool
}

// Ok wraps a successful value.
func Ok(v value.Value) Result {
	return Result{val: v}
}

// Err wraps an error message.
func Err(msg string) Result {
	return Result{msg: msg, isErr: true}
}

// IsError reports whether r carries an error message.
func (r Result) IsError() bool { return r.isErr }

// Value returns the success value. It is the zero Value for errors.
func (r Result) Value() value.Value { return r.val }

// Message returns the error message. It is empty for successes.
func (r Result) Message() string { return r.msg }

// MarshalEasyJSON writes {"Ok":{"Value":...}} or {"Error":"..."}.
func (r Result) MarshalEasyJSON(w *jwriter.Writer) {
	if r.isErr {
		w.RawString(`{"Error":`)
		w.String(r.msg)
		w.RawByte('}')
		return
	}
	w.RawString(`{"Ok":{"Value":`)
	r.val.MarshalEasyJSON(w)
	w.RawString(`}}`)
}

// Envelope is one outbound line.
type Envelope struct {
	Method string
	Params []Result
}

// NewResponse builds a "response" envelope. Params is never nil so it
// always encodes as a JSON array.
func NewResponse(results ...Result) Envelope {
	if results == nil {
		results = []Result{}
	}
	return Envelope{Method: MethodResponse, Params: results}
}

// ErrorResponse builds a response holding a single error.
func ErrorResponse(msg string) Envelope {
	return NewResponse(Err(msg))
}

// MarshalEasyJSON writes {"jsonrpc":"2.0","method":...,"params":[...]}.
func (e Envelope) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"jsonrpc":`)
	w.String(Version)
	w.RawString(`,"method":`)
	w.String(e.Method)
	w.RawString(`,"params":[`)
	for i, r := range e.Params {
		if i > 0 {
			w.RawByte(',')
		}
		r.MarshalEasyJSON(w)
	}
	w.RawString(`]}`)
}

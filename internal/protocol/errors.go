// ABOUTME: Typed failures for framing and decoding inbound protocol lines
// ABOUTME: ReadError and DecodeError match ErrRead and ErrDecode via errors.Is

package protocol

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks.
var (
	ErrRead        = errors.New("protocol: read failed")
	ErrLineTooLong = errors.New("protocol: line exceeds maximum length")
	ErrInvalidUTF8 = errors.New("protocol: line is not valid UTF-8")
	ErrDecode      = errors.New("protocol: cannot decode command")
)

// ReadError reports a framing failure. The reader stays usable.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "read line: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error { return e.Err }

// Is makes every ReadError match ErrRead.
func (e *ReadError) Is(target error) bool { return target == ErrRead }

// DecodeKind classifies why a line is not a command.
type DecodeKind uint8

const (
	DecodeMalformed DecodeKind = iota
	DecodeNotObject
	DecodeMissingMethod
	DecodeUnknownMethod
	DecodeBadParams
)

func (k DecodeKind) String() string {
	switch k {
	case DecodeMalformed:
		return "malformed json"
	case DecodeNotObject:
		return "not an object"
	case DecodeMissingMethod:
		return "missing method"
	case DecodeUnknownMethod:
		return "unknown method"
	case DecodeBadParams:
		return "bad params"
	default:
		return fmt.Sprintf("decode kind %d", uint8(k))
	}
}

// DecodeError reports a line that does not match any command shape.
// Suggestion is only filled for DecodeUnknownMethod and is meant for logs.
type DecodeError struct {
	Kind       DecodeKind
	Method     string
	Suggestion string
	Err        error
}

func (e *DecodeError) Error() string {
	msg := "decode command: " + e.Kind.String()
	if e.Method != "" {
		msg += fmt.Sprintf(" %q", e.Method)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes every DecodeError match ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

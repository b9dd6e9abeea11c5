// ABOUTME: Host value model as a closed variant set: Integer, ByteSize, Error, Other
// ABOUTME: Other keeps the raw JSON so unknown payload shapes survive untouched

package value

import (
	"strconv"

	"github.com/holiman/uint256"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindOther Kind = iota
	KindInteger
	KindByteSize
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindByteSize:
		return "bytesize"
	case KindError:
		return "error"
	default:
		return "other"
	}
}

// Value is a single payload exchanged with the host. The zero Value is an
// Other holding no raw text, which encodes as null.
type Value struct {
	kind  Kind
	i     int64
	bytes uint256.Int
	msg   string
	raw   string
}

// Int returns an Integer value.
func Int(i int64) Value {
	return Value{kind: KindInteger, i: i}
}

// ByteSize returns a ByteSize value. The magnitude is copied and reduced
// modulo 2^128.
func ByteSize(b *uint256.Int) Value {
	v := Value{kind: KindByteSize}
	if b != nil {
		v.bytes = *b
		truncate(&v.bytes)
	}
	return v
}

// Error returns an Error value carrying msg.
func Error(msg string) Value {
	return Value{kind: KindError, msg: msg}
}

// Other wraps raw JSON text of a shape this plugin does not interpret.
func Other(raw string) Value {
	return Value{kind: KindOther, raw: raw}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the integer held by v.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInteger
}

// AsByteSize returns a copy of the magnitude held by v.
func (v Value) AsByteSize() (*uint256.Int, bool) {
	if v.kind != KindByteSize {
		return nil, false
	}
	b := v.bytes
	return &b, true
}

// AsError returns the message held by an Error value.
func (v Value) AsError() (string, bool) {
	return v.msg, v.kind == KindError
}

// Raw returns the preserved JSON text of an Other value.
func (v Value) Raw() string { return v.raw }

// Equal reports whether v and o hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.i == o.i
	case KindByteSize:
		return v.bytes.Eq(&o.bytes)
	case KindError:
		return v.msg == o.msg
	default:
		return v.raw == o.raw
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindByteSize:
		return v.bytes.Dec() + "b"
	case KindError:
		return "error(" + v.msg + ")"
	default:
		if v.raw == "" {
			return "null"
		}
		return v.raw
	}
}

// Span locates a value in the host's source text. This plugin carries it
// through but never reads it.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Spanned pairs a value with its optional source span.
type Spanned struct {
	Item Value
	Span *Span
}

// ABOUTME: JSON wire forms for values: lenient gjson decoding, canonical easyjson encoding
// ABOUTME: Accepts bare integers and the host's {"Primitive":{...}} tagged shapes

package value

import (
	"strconv"

	"github.com/holiman/uint256"
	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/gjson"
)

// FromResult converts an already-parsed JSON node into a Value. Shapes that
// are not recognized become Other with the node's raw text.
func FromResult(r gjson.Result) Value {
	switch {
	case r.Type == gjson.Number:
		if i, ok := parseInt(r); ok {
			return Int(i)
		}
	case r.IsObject():
		if v, ok := fromTagged(r); ok {
			return v
		}
	}
	return Other(r.Raw)
}

// fromTagged handles the externally tagged enum encoding used by the host:
// an object with exactly one key naming the variant.
func fromTagged(r gjson.Result) (Value, bool) {
	tag, inner, ok := singleKey(r)
	if !ok {
		return Value{}, false
	}
	switch tag {
	case "Primitive":
		prim, payload, ok := singleKey(inner)
		if !ok {
			return Value{}, false
		}
		switch prim {
		case "Int":
			if i, ok := parseInt(payload); ok {
				return Int(i), true
			}
		case "Bytes":
			if b, ok := parseMagnitude(payload); ok {
				return ByteSize(b), true
			}
		}
	case "Error":
		switch {
		case inner.Type == gjson.String:
			return Error(inner.Str), true
		case inner.IsObject() && inner.Get("message").Type == gjson.String:
			return Error(inner.Get("message").Str), true
		default:
			return Error(inner.Raw), true
		}
	}
	return Value{}, false
}

func singleKey(r gjson.Result) (string, gjson.Result, bool) {
	if !r.IsObject() {
		return "", gjson.Result{}, false
	}
	var (
		key   string
		inner gjson.Result
		n     int
	)
	r.ForEach(func(k, v gjson.Result) bool {
		n++
		key, inner = k.Str, v
		return n < 2
	})
	return key, inner, n == 1
}

// parseInt accepts a JSON integer literal that fits int64. Quoted numbers
// are not integers.
func parseInt(r gjson.Result) (int64, bool) {
	if r.Type != gjson.Number {
		return 0, false
	}
	i, err := strconv.ParseInt(r.Raw, 10, 64)
	return i, err == nil
}

// parseMagnitude accepts a non-negative JSON integer literal of at most
// MagnitudeBits bits.
func parseMagnitude(r gjson.Result) (*uint256.Int, bool) {
	if r.Type != gjson.Number || !isDigits(r.Raw) {
		return nil, false
	}
	b, err := uint256.FromDecimal(r.Raw)
	if err != nil || b.BitLen() > MagnitudeBits {
		return nil, false
	}
	return b, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// SpannedFromResult decodes {"item":<value>,"span":{...}}; any other shape is
// taken as a bare value without a span.
func SpannedFromResult(r gjson.Result) Spanned {
	if r.IsObject() {
		item := r.Get("item")
		if item.Exists() {
			s := Spanned{Item: FromResult(item)}
			if span := r.Get("span"); span.IsObject() {
				s.Span = &Span{
					Start: int(span.Get("start").Int()),
					End:   int(span.Get("end").Int()),
				}
			}
			return s
		}
	}
	return Spanned{Item: FromResult(r)}
}

// MarshalEasyJSON writes the canonical tagged form of v.
func (v Value) MarshalEasyJSON(w *jwriter.Writer) {
	switch v.kind {
	case KindInteger:
		w.RawString(`{"Primitive":{"Int":`)
		w.Int64(v.i)
		w.RawString(`}}`)
	case KindByteSize:
		w.RawString(`{"Primitive":{"Bytes":`)
		w.RawString(v.bytes.Dec())
		w.RawString(`}}`)
	case KindError:
		w.RawString(`{"Error":`)
		w.String(v.msg)
		w.RawByte('}')
	default:
		if v.raw == "" {
			w.RawString("null")
			return
		}
		w.RawString(v.raw)
	}
}

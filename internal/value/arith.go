// ABOUTME: Increment arithmetic: wrapping int64 addition and 128-bit byte-size addition
// ABOUTME: Widen sign-extends the increment the way a cast to an unsigned 128-bit type does

package value

import (
	"math"

	"github.com/holiman/uint256"
)

// MagnitudeBits is the width of a byte-size magnitude on the wire.
const MagnitudeBits = 128

// AddInt adds k to i with two's-complement wraparound.
func AddInt(i, k int64) int64 {
	return i + k
}

// Widen promotes k to 128 bits. Negative increments are sign-extended, so
// adding Widen(-1) subtracts one modulo 2^128.
func Widen(k int64) *uint256.Int {
	if k >= 0 {
		return uint256.NewInt(uint64(k))
	}
	return &uint256.Int{uint64(k), math.MaxUint64, 0, 0}
}

// AddBytes returns b + Widen(k) modulo 2^128. b is not modified.
func AddBytes(b *uint256.Int, k int64) *uint256.Int {
	sum := new(uint256.Int).Add(b, Widen(k))
	return truncate(sum)
}

// truncate clears everything above MagnitudeBits in place.
func truncate(b *uint256.Int) *uint256.Int {
	b[2], b[3] = 0, 0
	return b
}

// Increment applies k to an Integer or ByteSize value. The second result is
// false for every other variant.
func Increment(v Value, k int64) (Value, bool) {
	switch v.kind {
	case KindInteger:
		return Int(AddInt(v.i, k)), true
	case KindByteSize:
		return ByteSize(AddBytes(&v.bytes, k)), true
	default:
		return Value{}, false
	}
}

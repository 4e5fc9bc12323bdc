// Package value defines decoded ABI values.
//
// A Value mirrors the shape of an abitype.Type but carries data, and for
// integers and fixed-size byte arrays an observed width that may be narrower
// than the width a declared type requires.
package value

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hedeqiang/dynabi/abitype"
)

// WordSize is the size in bytes of one ABI word and of every fixed-size slot.
const WordSize = 32

// ErrInvalidLength is returned when a byte slice does not fit a fixed-size slot.
var ErrInvalidLength = errors.New("value: invalid length")

// Value is an immutable decoded ABI value. The zero Value is invalid.
type Value struct {
	kind  abitype.Kind
	width int // bits for Int/Uint, bytes for FixedBytes

	b     bool
	n     *big.Int
	word  [WordSize]byte // FixedBytes slot
	addr  common.Address
	fn    [24]byte
	raw   []byte
	str   string
	elems []Value
}

// Named pairs a decoded value with the parameter name it was declared under.
type Named struct {
	Name  string
	Value Value
}

// Bool returns a bool value.
func Bool(b bool) Value { return Value{kind: abitype.KindBool, b: b} }

// Int returns a signed integer observed at the given bit width.
func Int(n *big.Int, bits int) Value {
	return Value{kind: abitype.KindInt, width: bits, n: new(big.Int).Set(n)}
}

// Uint returns an unsigned integer observed at the given bit width.
func Uint(n *big.Int, bits int) Value {
	return Value{kind: abitype.KindUint, width: bits, n: new(big.Int).Set(n)}
}

// FixedBytes returns a fixed-size byte value occupying the given 32-byte slot
// with an observed width of size bytes.
func FixedBytes(word [WordSize]byte, size int) Value {
	return Value{kind: abitype.KindFixedBytes, width: size, word: word}
}

// FixedBytesFromSlice copies s into a zero-padded 32-byte slot. The observed
// width is len(s). It fails if s is longer than 32 bytes.
func FixedBytesFromSlice(s []byte) (Value, error) {
	if len(s) > WordSize {
		return Value{}, fmt.Errorf("%w: input slice must contain a maximum of %d bytes, got %d",
			ErrInvalidLength, WordSize, len(s))
	}
	var word [WordSize]byte
	copy(word[:], s)
	return FixedBytes(word, len(s)), nil
}

// Address returns an address value.
func Address(a common.Address) Value { return Value{kind: abitype.KindAddress, addr: a} }

// Function returns an external function reference (address + selector).
func Function(f [24]byte) Value { return Value{kind: abitype.KindFunction, fn: f} }

// Bytes returns a dynamic byte string value. b is copied.
func Bytes(b []byte) Value {
	return Value{kind: abitype.KindBytes, raw: append([]byte{}, b...)}
}

// String returns a string value.
func String(s string) Value { return Value{kind: abitype.KindString, str: s} }

// Array returns a dynamic array value.
func Array(elems ...Value) Value {
	return Value{kind: abitype.KindArray, elems: append([]Value{}, elems...)}
}

// FixedArray returns a fixed-length array value.
func FixedArray(elems ...Value) Value {
	return Value{kind: abitype.KindFixedArray, elems: append([]Value{}, elems...)}
}

// Tuple returns a tuple value.
func Tuple(elems ...Value) Value {
	return Value{kind: abitype.KindTuple, elems: append([]Value{}, elems...)}
}

// Kind returns the variant of v.
func (v Value) Kind() abitype.Kind { return v.kind }

// Width returns the observed width: bits for Int/Uint, bytes for FixedBytes,
// zero otherwise.
func (v Value) Width() int { return v.width }

// IsValid reports whether v was built by one of the constructors.
func (v Value) IsValid() bool { return v.kind != abitype.KindInvalid }

// AsBool returns the bool payload.
func (v Value) AsBool() bool { return v.b }

// AsBig returns a copy of the integer payload of an Int or Uint, or nil.
func (v Value) AsBig() *big.Int {
	if v.n == nil {
		return nil
	}
	return new(big.Int).Set(v.n)
}

// Word returns the 32-byte slot of a FixedBytes value.
func (v Value) Word() [WordSize]byte { return v.word }

// FixedBytesPayload returns the first Width() bytes of the slot.
func (v Value) FixedBytesPayload() []byte {
	if v.width > WordSize {
		return append([]byte{}, v.word[:]...)
	}
	return append([]byte{}, v.word[:v.width]...)
}

// AsAddress returns the address payload.
func (v Value) AsAddress() common.Address { return v.addr }

// AsFunction returns the function reference payload.
func (v Value) AsFunction() [24]byte { return v.fn }

// AsBytes returns a copy of the dynamic bytes payload.
func (v Value) AsBytes() []byte { return append([]byte{}, v.raw...) }

// AsString returns the string payload.
func (v Value) AsString() string { return v.str }

// Len returns the number of elements of an Array, FixedArray or Tuple.
func (v Value) Len() int { return len(v.elems) }

// Index returns the i-th element of an Array, FixedArray or Tuple.
func (v Value) Index(i int) Value { return v.elems[i] }

// Elems returns a copy of the element list.
func (v Value) Elems() []Value { return append([]Value(nil), v.elems...) }

// Equal reports whether v and o have the same shape, observed widths and data.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.width != o.width {
		return false
	}
	switch v.kind {
	case abitype.KindBool:
		return v.b == o.b
	case abitype.KindInt, abitype.KindUint:
		return v.n.Cmp(o.n) == 0
	case abitype.KindFixedBytes:
		return v.word == o.word
	case abitype.KindAddress:
		return v.addr == o.addr
	case abitype.KindFunction:
		return v.fn == o.fn
	case abitype.KindBytes:
		return bytes.Equal(v.raw, o.raw)
	case abitype.KindString:
		return v.str == o.str
	case abitype.KindArray, abitype.KindFixedArray, abitype.KindTuple:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	}
	return true
}

// Package abitype describes contract ABI types and renders their canonical
// textual form.
package abitype

import (
	"strconv"
	"strings"
)

// Kind enumerates the ABI type variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindUint
	KindFixedBytes
	KindAddress
	KindFunction
	KindBytes
	KindString
	KindArray
	KindFixedArray
	KindTuple
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindBool:       "bool",
	KindInt:        "int",
	KindUint:       "uint",
	KindFixedBytes: "fixedbytes",
	KindAddress:    "address",
	KindFunction:   "function",
	KindBytes:      "bytes",
	KindString:     "string",
	KindArray:      "array",
	KindFixedArray: "fixedarray",
	KindTuple:      "tuple",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// HasWidth reports whether values of this kind carry an observed width.
func (k Kind) HasWidth() bool {
	return k == KindInt || k == KindUint || k == KindFixedBytes
}

// Type is an immutable ABI type descriptor.
//
// Size holds the bit width for Int/Uint, the byte width for FixedBytes and the
// length for FixedArray. It is zero for every other kind.
type Type struct {
	kind  Kind
	size  int
	elem  *Type
	elems []Type
}

func Bool() Type     { return Type{kind: KindBool} }
func Address() Type  { return Type{kind: KindAddress} }
func Function() Type { return Type{kind: KindFunction} }
func Bytes() Type    { return Type{kind: KindBytes} }
func String() Type   { return Type{kind: KindString} }

// Int returns intN. bits is not validated; Parse is the validating entry point.
func Int(bits int) Type { return Type{kind: KindInt, size: bits} }

// Uint returns uintN.
func Uint(bits int) Type { return Type{kind: KindUint, size: bits} }

// FixedBytes returns bytesN.
func FixedBytes(size int) Type { return Type{kind: KindFixedBytes, size: size} }

// Array returns elem[].
func Array(elem Type) Type {
	return Type{kind: KindArray, elem: &elem}
}

// FixedArray returns elem[n].
func FixedArray(elem Type, n int) Type {
	return Type{kind: KindFixedArray, size: n, elem: &elem}
}

// Tuple returns (elems...). The slice is copied.
func Tuple(elems ...Type) Type {
	return Type{kind: KindTuple, elems: append([]Type(nil), elems...)}
}

// Kind returns the variant of t.
func (t Type) Kind() Kind { return t.kind }

// Size returns the declared width or length; see Type.
func (t Type) Size() int { return t.size }

// Elem returns the element type of an Array or FixedArray.
// It returns the zero Type for other kinds.
func (t Type) Elem() Type {
	if t.elem == nil {
		return Type{}
	}
	return *t.elem
}

// Elems returns a copy of the component types of a Tuple.
func (t Type) Elems() []Type {
	return append([]Type(nil), t.elems...)
}

// NumElems returns the number of tuple components.
func (t Type) NumElems() int { return len(t.elems) }

// ElemAt returns the i-th tuple component.
func (t Type) ElemAt(i int) Type { return t.elems[i] }

// IsValid reports whether t was built by one of the constructors.
func (t Type) IsValid() bool { return t.kind != KindInvalid }

// IsDynamic reports whether the encoded size of t depends on the data.
func (t Type) IsDynamic() bool {
	switch t.kind {
	case KindBytes, KindString, KindArray:
		return true
	case KindFixedArray:
		return t.elem.IsDynamic()
	case KindTuple:
		for _, e := range t.elems {
			if e.IsDynamic() {
				return true
			}
		}
	}
	return false
}

// IsValueType reports whether t fits in a single word without hashing when
// used as an indexed event parameter.
func (t Type) IsValueType() bool {
	switch t.kind {
	case KindBool, KindInt, KindUint, KindFixedBytes, KindAddress, KindFunction:
		return true
	}
	return false
}

// Equal reports whether t and o describe the same type.
func (t Type) Equal(o Type) bool {
	if t.kind != o.kind || t.size != o.size {
		return false
	}
	switch t.kind {
	case KindArray, KindFixedArray:
		return t.elem.Equal(*o.elem)
	case KindTuple:
		if len(t.elems) != len(o.elems) {
			return false
		}
		for i := range t.elems {
			if !t.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
	}
	return true
}

// String returns the raw canonical type string, e.g. "uint256",
// "(address,bytes32)[]" or "string[3]".
func (t Type) String() string {
	var b strings.Builder
	t.writeTo(&b)
	return b.String()
}

func (t Type) writeTo(b *strings.Builder) {
	switch t.kind {
	case KindBool, KindAddress, KindFunction, KindBytes, KindString:
		b.WriteString(t.kind.String())
	case KindInt, KindUint:
		b.WriteString(t.kind.String())
		b.WriteString(strconv.Itoa(t.size))
	case KindFixedBytes:
		b.WriteString("bytes")
		b.WriteString(strconv.Itoa(t.size))
	case KindArray:
		t.elem.writeTo(b)
		b.WriteString("[]")
	case KindFixedArray:
		t.elem.writeTo(b)
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.size))
		b.WriteByte(']')
	case KindTuple:
		b.WriteByte('(')
		for i, e := range t.elems {
			if i > 0 {
				b.WriteByte(',')
			}
			e.writeTo(b)
		}
		b.WriteByte(')')
	default:
		b.WriteString("invalid")
	}
}

package wire

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/hedeqiang/dynabi/abitype"
	"github.com/hedeqiang/dynabi/value"
)

// newType converts t into a go-ethereum type. Tuple components are given
// synthetic names because go-ethereum builds a Go struct for every tuple.
func newType(t abitype.Type) (abi.Type, error) {
	typ, components := marshal(t)
	at, err := abi.NewType(typ, "", components)
	if err != nil {
		return abi.Type{}, fmt.Errorf("type %s: %w", t, err)
	}
	return at, nil
}

func marshal(t abitype.Type) (string, []abi.ArgumentMarshaling) {
	suffix := ""
	base := t
	for base.Kind() == abitype.KindArray || base.Kind() == abitype.KindFixedArray {
		if base.Kind() == abitype.KindArray {
			suffix = "[]" + suffix
		} else {
			suffix = fmt.Sprintf("[%d]", base.Size()) + suffix
		}
		base = base.Elem()
	}
	if base.Kind() != abitype.KindTuple {
		return t.String(), nil
	}

	components := make([]abi.ArgumentMarshaling, base.NumElems())
	for i := range components {
		typ, sub := marshal(base.ElemAt(i))
		components[i] = abi.ArgumentMarshaling{
			Name:       fmt.Sprintf("field%d", i),
			Type:       typ,
			Components: sub,
		}
	}
	return "tuple" + suffix, components
}

func arguments(types []abitype.Type) (abi.Arguments, error) {
	args := make(abi.Arguments, len(types))
	for i, t := range types {
		at, err := newType(t)
		if err != nil {
			return nil, err
		}
		args[i] = abi.Argument{Name: fmt.Sprintf("arg%d", i), Type: at}
	}
	return args, nil
}

// shapeOf derives the type v has at its own observed widths. Array elements
// are joined to the widest element, and layout fills in the element type of
// empty arrays.
func shapeOf(v value.Value, layout abitype.Type) abitype.Type {
	var inner abitype.Type
	if layout.Kind() == v.Kind() {
		inner = layout
	}

	switch v.Kind() {
	case abitype.KindBool:
		return abitype.Bool()
	case abitype.KindInt:
		return abitype.Int(encodableBits(v.Width()))
	case abitype.KindUint:
		return abitype.Uint(encodableBits(v.Width()))
	case abitype.KindFixedBytes:
		// bytes0 is not encodable; the slot is zero past the width anyway.
		return abitype.FixedBytes(max(v.Width(), 1))
	case abitype.KindAddress:
		return abitype.Address()
	case abitype.KindFunction:
		return abitype.Function()
	case abitype.KindBytes:
		return abitype.Bytes()
	case abitype.KindString:
		return abitype.String()
	case abitype.KindArray:
		return abitype.Array(elemShape(v, inner.Elem()))
	case abitype.KindFixedArray:
		return abitype.FixedArray(elemShape(v, inner.Elem()), v.Len())
	case abitype.KindTuple:
		elems := make([]abitype.Type, v.Len())
		for i := range elems {
			var l abitype.Type
			if i < inner.NumElems() {
				l = inner.ElemAt(i)
			}
			elems[i] = shapeOf(v.Index(i), l)
		}
		return abitype.Tuple(elems...)
	}
	return abitype.Type{}
}

func elemShape(v value.Value, layout abitype.Type) abitype.Type {
	if v.Len() == 0 {
		return layout
	}
	shape := shapeOf(v.Index(0), layout)
	for i := 1; i < v.Len(); i++ {
		shape = join(shape, shapeOf(v.Index(i), layout))
	}
	return shape
}

// join widens a to cover b. Kinds that disagree are left as a; packing
// reports the mismatch.
func join(a, b abitype.Type) abitype.Type {
	if a.Kind() != b.Kind() {
		return a
	}
	switch a.Kind() {
	case abitype.KindInt:
		return abitype.Int(max(a.Size(), b.Size()))
	case abitype.KindUint:
		return abitype.Uint(max(a.Size(), b.Size()))
	case abitype.KindFixedBytes:
		return abitype.FixedBytes(max(a.Size(), b.Size()))
	case abitype.KindArray:
		return abitype.Array(join(a.Elem(), b.Elem()))
	case abitype.KindFixedArray:
		return abitype.FixedArray(join(a.Elem(), b.Elem()), a.Size())
	case abitype.KindTuple:
		if a.NumElems() != b.NumElems() {
			return a
		}
		elems := make([]abitype.Type, a.NumElems())
		for i := range elems {
			elems[i] = join(a.ElemAt(i), b.ElemAt(i))
		}
		return abitype.Tuple(elems...)
	}
	return a
}

// encodableBits rounds an observed bit width up to the next width the ABI
// accepts. The encoded word is the same for any width that holds the value.
func encodableBits(bits int) int {
	if bits < 8 {
		return 8
	}
	if r := bits % 8; r != 0 {
		return bits + 8 - r
	}
	return bits
}

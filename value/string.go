package value

import (
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"

	"github.com/hedeqiang/dynabi/abitype"
)

var twoTo256 = new(big.Int).Lsh(big.NewInt(1), 256)

// String renders v without type information. Integers are lowercase hex with
// no prefix (negative values as 256-bit two's complement), byte values are
// lowercase hex, strings are verbatim, arrays are "[a,b]" and tuples "(a,b)".
// The result cannot be parsed back.
func (v Value) String() string {
	var b strings.Builder
	v.writeTo(&b)
	return b.String()
}

func (v Value) writeTo(b *strings.Builder) {
	switch v.kind {
	case abitype.KindBool:
		b.WriteString(strconv.FormatBool(v.b))
	case abitype.KindInt, abitype.KindUint:
		n := v.n
		if n.Sign() < 0 {
			n = new(big.Int).Add(twoTo256, n)
		}
		b.WriteString(n.Text(16))
	case abitype.KindFixedBytes:
		b.WriteString(hex.EncodeToString(v.word[:]))
	case abitype.KindAddress:
		b.WriteString(hex.EncodeToString(v.addr[:]))
	case abitype.KindFunction:
		b.WriteString(hex.EncodeToString(v.fn[:]))
	case abitype.KindBytes:
		b.WriteString(hex.EncodeToString(v.raw))
	case abitype.KindString:
		b.WriteString(v.str)
	case abitype.KindArray, abitype.KindFixedArray:
		b.WriteByte('[')
		v.writeElems(b)
		b.WriteByte(']')
	case abitype.KindTuple:
		b.WriteByte('(')
		v.writeElems(b)
		b.WriteByte(')')
	}
}

func (v Value) writeElems(b *strings.Builder) {
	for i, e := range v.elems {
		if i > 0 {
			b.WriteByte(',')
		}
		e.writeTo(b)
	}
}

// TypeName renders the shape v currently has, using observed widths, e.g.
// "uint64" for a uint256 slot that was filled from a 64-bit source. Array
// element shapes are taken from the first element.
func (v Value) TypeName() string {
	switch v.kind {
	case abitype.KindInt:
		return "int" + strconv.Itoa(v.width)
	case abitype.KindUint:
		return "uint" + strconv.Itoa(v.width)
	case abitype.KindFixedBytes:
		return "bytes" + strconv.Itoa(v.width)
	case abitype.KindArray:
		return v.elemTypeName() + "[]"
	case abitype.KindFixedArray:
		return v.elemTypeName() + "[" + strconv.Itoa(len(v.elems)) + "]"
	case abitype.KindTuple:
		names := make([]string, len(v.elems))
		for i, e := range v.elems {
			names[i] = e.TypeName()
		}
		return "(" + strings.Join(names, ",") + ")"
	}
	return v.kind.String()
}

func (v Value) elemTypeName() string {
	if len(v.elems) == 0 {
		return ""
	}
	return v.elems[0].TypeName()
}

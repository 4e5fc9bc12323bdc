package abitype

import "strings"

// maxTypeLen bounds the length of a typical type token when pre-sizing
// signature buffers.
const maxTypeLen = 32

// Signature renders name(in1,in2,...) or, when outputs is non-empty,
// name(in1,...):(out1,...).
//
// The ":" output section is an identification convention only; selector
// signatures never include outputs.
//
//	Signature("f", nil, nil)                                   // f()
//	Signature("f", []Type{Bool()}, []Type{Uint(256), String()}) // f(bool):(uint256,string)
func Signature(name string, inputs, outputs []Type) string {
	size := len(name) + 1 + len(inputs)*maxTypeLen + 1
	if len(outputs) > 0 {
		size += 2 + len(outputs)*maxTypeLen + 1
	}

	var b strings.Builder
	b.Grow(size)
	b.WriteString(name)
	writeList(&b, inputs)
	if len(outputs) > 0 {
		b.WriteByte(':')
		writeList(&b, outputs)
	}
	return b.String()
}

func writeList(b *strings.Builder, types []Type) {
	b.WriteByte('(')
	for i, t := range types {
		if i > 0 {
			b.WriteByte(',')
		}
		t.writeTo(b)
	}
	b.WriteByte(')')
}

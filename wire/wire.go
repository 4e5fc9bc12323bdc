// Package wire is the word-level ABI primitive: it packs and unpacks values
// into 32-byte words with head/tail encoding and enforces exact widths.
//
// Eth implements it on top of go-ethereum's accounts/abi. The rest of the
// module depends only on the interfaces below, so the primitive can be
// swapped out.
package wire

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hedeqiang/dynabi/abitype"
	"github.com/hedeqiang/dynabi/descriptor"
	"github.com/hedeqiang/dynabi/value"
)

// MaxTopics is the largest number of topics a log may carry.
const MaxTopics = 4

var (
	// ErrEncode is returned when values cannot be packed.
	ErrEncode = errors.New("wire: encode failed")

	// ErrDecode is returned when bytes cannot be unpacked against a type list.
	ErrDecode = errors.New("wire: decode failed")
)

// Encoder packs values.
type Encoder interface {
	// Encode packs values as a parameter list of the given types. Every value
	// must match its type exactly, observed widths included.
	Encode(types []abitype.Type, values []value.Value) ([]byte, error)

	// EncodeValue packs v as a single parameter at its own observed widths.
	// layout only supplies the shape of nodes v carries none for, such as
	// the element type of an empty array.
	EncodeValue(v value.Value, layout abitype.Type) ([]byte, error)

	// Selector returns the 4-byte function identifier prefixed to calls.
	Selector(fn *descriptor.Function) ([4]byte, error)
}

// Decoder unpacks values.
type Decoder interface {
	// Decode unpacks data as a parameter list of the given types. Decoded
	// values carry exactly the declared widths.
	Decode(types []abitype.Type, data []byte) ([]value.Value, error)

	// DecodeLog splits a log into its indexed values (one per indexed
	// parameter, declaration order) and body values (one per non-indexed
	// parameter, declaration order).
	DecodeLog(ev *descriptor.Event, topics []common.Hash, data []byte) (indexed, body []value.Value, err error)
}

// Codec is the full primitive.
type Codec interface {
	Encoder
	Decoder
}

package reconcile

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedeqiang/dynabi/abitype"
	"github.com/hedeqiang/dynabi/value"
	"github.com/hedeqiang/dynabi/wire"
)

// countingCodec records how often the primitive is used.
type countingCodec struct {
	wire.Codec
	encodes int
	decodes int
}

func (c *countingCodec) EncodeValue(v value.Value, layout abitype.Type) ([]byte, error) {
	c.encodes++
	return c.Codec.EncodeValue(v, layout)
}

func (c *countingCodec) Decode(types []abitype.Type, data []byte) ([]value.Value, error) {
	c.decodes++
	return c.Codec.Decode(types, data)
}

type failingCodec struct {
	wire.Codec
}

func (failingCodec) EncodeValue(value.Value, abitype.Type) ([]byte, error) {
	return nil, wire.ErrEncode
}

func fixed(t *testing.T, b ...byte) value.Value {
	t.Helper()
	v, err := value.FixedBytesFromSlice(b)
	require.NoError(t, err)
	return v
}

// widthsMatch walks v alongside t and asserts every width equals the declared one.
func widthsMatch(t *testing.T, v value.Value, typ abitype.Type) {
	t.Helper()
	require.Equal(t, typ.Kind(), v.Kind())
	switch typ.Kind() {
	case abitype.KindInt, abitype.KindUint, abitype.KindFixedBytes:
		assert.Equal(t, typ.Size(), v.Width(), "width of %s", typ)
	case abitype.KindArray, abitype.KindFixedArray:
		for _, e := range v.Elems() {
			widthsMatch(t, e, typ.Elem())
		}
	case abitype.KindTuple:
		for i, e := range v.Elems() {
			widthsMatch(t, e, typ.ElemAt(i))
		}
	}
}

func TestReconcile_ExactIsUnchanged(t *testing.T) {
	codec := &countingCodec{Codec: wire.NewEth()}
	r := New(codec)

	v := value.Tuple(value.Uint(big.NewInt(9), 256), value.Array(fixed(t, make([]byte, 32)...)))
	typ := abitype.MustParse("(uint256,bytes32[])")

	out, repaired, err := r.Reconcile(v, typ)
	require.NoError(t, err)
	assert.False(t, repaired)
	assert.True(t, v.Equal(out))
	assert.Zero(t, codec.encodes)
	assert.Zero(t, codec.decodes)
}

func TestReconcile_RepairsNarrowWidths(t *testing.T) {
	tests := []struct {
		name string
		val  value.Value
		typ  string
	}{
		{"uint64 as uint256", value.Uint(big.NewInt(1<<40), 64), "uint256"},
		{"int8 negative as int128", value.Int(big.NewInt(-3), 8), "int128"},
		{"bytes3 as bytes32", fixed(t, 0xca, 0xfe, 0x01), "bytes32"},
		{"empty bytes as bytes4", fixed(t), "bytes4"},
		{"mixed array elements", value.Array(value.Uint(big.NewInt(1), 8), value.Uint(big.NewInt(1<<33), 64)), "uint256[]"},
		{"empty array", value.Array(), "uint256[]"},
		{"fixed array", value.FixedArray(value.Int(big.NewInt(-1), 16), value.Int(big.NewInt(1), 16)), "int64[2]"},
		{
			"nested tuple",
			value.Tuple(
				value.Address(common.HexToAddress("0x01")),
				value.Array(value.Tuple(value.Uint(big.NewInt(7), 32), value.String("x"))),
			),
			"(address,(uint96,string)[])",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := &countingCodec{Codec: wire.NewEth()}
			r := New(codec)
			typ := abitype.MustParse(tt.typ)

			require.False(t, Matches(tt.val, typ))
			require.True(t, TypeCheck(tt.val, typ))

			out, repaired, err := r.Reconcile(tt.val, typ)
			require.NoError(t, err)
			assert.True(t, repaired)
			assert.True(t, Matches(out, typ), "got %s", out.TypeName())
			widthsMatch(t, out, typ)
			assert.Equal(t, tt.val.String(), out.String(), "payload survives the round trip")
			assert.Equal(t, 1, codec.encodes)
			assert.Equal(t, 1, codec.decodes)

			again, repairedAgain, err := r.Reconcile(out, typ)
			require.NoError(t, err)
			assert.False(t, repairedAgain)
			assert.True(t, out.Equal(again))
		})
	}
}

func TestReconcile_TypeMismatch(t *testing.T) {
	tests := []struct {
		name     string
		val      value.Value
		typ      string
		expected string
		actual   string
	}{
		{"kind", value.Bool(true), "uint256", "uint256", "bool"},
		{"wider", value.Uint(big.NewInt(1), 256), "uint64", "uint64", "uint256"},
		{"signedness", value.Int(big.NewInt(1), 8), "uint8", "uint8", "int8"},
		{"fixed array length", value.FixedArray(value.Bool(true)), "bool[2]", "bool[2]", "bool[1]"},
		{"tuple arity", value.Tuple(value.Bool(true)), "(bool,bool)", "(bool,bool)", "(bool)"},
		{"element", value.Array(value.String("a")), "bytes[]", "bytes[]", "string[]"},
		{"bytes vs fixed", value.Bytes([]byte{1}), "bytes1", "bytes1", "bytes"},
	}

	r := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := r.Reconcile(tt.val, abitype.MustParse(tt.typ))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTypeMismatch))

			var mismatch *TypeMismatchError
			require.True(t, errors.As(err, &mismatch))
			assert.Equal(t, tt.expected, mismatch.Expected)
			assert.Equal(t, tt.actual, mismatch.Actual)
		})
	}
}

func TestReconcile_EncodeFailureSurfaces(t *testing.T) {
	r := New(failingCodec{Codec: wire.NewEth()})
	_, _, err := r.Reconcile(value.Uint(big.NewInt(1), 8), abitype.Uint(256))
	require.Error(t, err)
	assert.True(t, errors.Is(err, wire.ErrEncode))
	assert.False(t, errors.Is(err, ErrTypeMismatch))
}

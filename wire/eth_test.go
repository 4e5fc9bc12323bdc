package wire

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedeqiang/dynabi/abitype"
	"github.com/hedeqiang/dynabi/descriptor"
	"github.com/hedeqiang/dynabi/value"
)

func mustFixed(t *testing.T, b []byte) value.Value {
	t.Helper()
	v, err := value.FixedBytesFromSlice(b)
	require.NoError(t, err)
	return v
}

func word(hexStr string) string {
	for len(hexStr) < 64 {
		hexStr = "0" + hexStr
	}
	return hexStr
}

func TestEth_EncodeKnownLayout(t *testing.T) {
	to := common.HexToAddress("0x0000000000000000000000000000000000000001")
	out, err := NewEth().Encode(
		[]abitype.Type{abitype.Address(), abitype.Uint(256)},
		[]value.Value{value.Address(to), value.Uint(big.NewInt(1000), 256)},
	)
	require.NoError(t, err)
	assert.Equal(t, word("1")+word("3e8"), hex.EncodeToString(out))
}

func TestEth_RoundTrip(t *testing.T) {
	var fn [24]byte
	fn[0], fn[23] = 0xaa, 0xbb

	tests := []struct {
		name string
		typ  abitype.Type
		val  value.Value
	}{
		{"bool", abitype.Bool(), value.Bool(true)},
		{"uint8 native", abitype.Uint(8), value.Uint(big.NewInt(255), 8)},
		{"uint24 big", abitype.Uint(24), value.Uint(big.NewInt(1<<20), 24)},
		{"uint256", abitype.Uint(256), value.Uint(new(big.Int).Lsh(big.NewInt(1), 255), 256)},
		{"int64 negative", abitype.Int(64), value.Int(big.NewInt(-42), 64)},
		{"int256 negative", abitype.Int(256), value.Int(big.NewInt(-1), 256)},
		{"bytes4", abitype.FixedBytes(4), mustFixed(t, []byte{1, 2, 3, 4})},
		{"address", abitype.Address(), value.Address(common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"))},
		{"function", abitype.Function(), value.Function(fn)},
		{"bytes", abitype.Bytes(), value.Bytes([]byte("payload"))},
		{"string", abitype.String(), value.String("hello")},
		{"uint64[]", abitype.Array(abitype.Uint(64)), value.Array(value.Uint(big.NewInt(1), 64), value.Uint(big.NewInt(2), 64))},
		{"empty string[]", abitype.Array(abitype.String()), value.Array()},
		{"bool[2]", abitype.FixedArray(abitype.Bool(), 2), value.FixedArray(value.Bool(true), value.Bool(false))},
		{
			"tuple array",
			abitype.Array(abitype.Tuple(abitype.Address(), abitype.String(), abitype.FixedArray(abitype.Uint(96), 2))),
			value.Array(
				value.Tuple(
					value.Address(common.HexToAddress("0x01")),
					value.String("a"),
					value.FixedArray(value.Uint(big.NewInt(3), 96), value.Uint(big.NewInt(4), 96)),
				),
			),
		},
		{"nested tuple", abitype.Tuple(abitype.Bool(), abitype.Tuple(abitype.Bytes())), value.Tuple(value.Bool(false), value.Tuple(value.Bytes([]byte{9})))},
	}

	codec := NewEth()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types := []abitype.Type{tt.typ, abitype.Uint(8)}
			vals := []value.Value{tt.val, value.Uint(big.NewInt(7), 8)}

			enc, err := codec.Encode(types, vals)
			require.NoError(t, err)

			dec, err := codec.Decode(types, enc)
			require.NoError(t, err)
			require.Len(t, dec, 2)
			assert.True(t, tt.val.Equal(dec[0]), "want %s got %s", tt.val, dec[0])
			assert.True(t, vals[1].Equal(dec[1]))
		})
	}
}

func TestEth_EncodeRequiresExactWidth(t *testing.T) {
	codec := NewEth()

	tests := []struct {
		name string
		typ  abitype.Type
		val  value.Value
	}{
		{"narrow uint", abitype.Uint(256), value.Uint(big.NewInt(1), 64)},
		{"narrow bytes", abitype.FixedBytes(32), mustFixed(t, []byte{1})},
		{"narrow element", abitype.Array(abitype.Int(128)), value.Array(value.Int(big.NewInt(1), 64))},
		{"kind mismatch", abitype.String(), value.Bool(true)},
		{"overflow", abitype.Uint(8), value.Uint(big.NewInt(256), 8)},
		{"fixed array length", abitype.FixedArray(abitype.Bool(), 3), value.FixedArray(value.Bool(true))},
		{"tuple arity", abitype.Tuple(abitype.Bool(), abitype.Bool()), value.Tuple(value.Bool(true))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Encode([]abitype.Type{tt.typ}, []value.Value{tt.val})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrEncode), "got %v", err)
		})
	}

	_, err := codec.Encode([]abitype.Type{abitype.Bool()}, nil)
	assert.True(t, errors.Is(err, ErrEncode))
}

func TestEth_EncodeValueAtOwnWidth(t *testing.T) {
	codec := NewEth()

	narrow := value.Array(
		value.Uint(big.NewInt(5), 8),
		value.Uint(big.NewInt(1<<40), 64),
	)
	target := abitype.Array(abitype.Uint(256))

	enc, err := codec.EncodeValue(narrow, target)
	require.NoError(t, err)

	direct, err := codec.Encode([]abitype.Type{target}, []value.Value{
		value.Array(value.Uint(big.NewInt(5), 256), value.Uint(big.NewInt(1<<40), 256)),
	})
	require.NoError(t, err)
	assert.Equal(t, direct, enc, "word layout does not depend on observed width")

	dec, err := codec.Decode([]abitype.Type{target}, enc)
	require.NoError(t, err)
	assert.Equal(t, 256, dec[0].Index(0).Width())
	assert.Equal(t, 256, dec[0].Index(1).Width())
}

func TestEth_EncodeValueEmptyLayouts(t *testing.T) {
	codec := NewEth()

	enc, err := codec.EncodeValue(value.Tuple(value.Array(), mustFixed(t, nil)), abitype.Tuple(abitype.Array(abitype.String()), abitype.FixedBytes(32)))
	require.NoError(t, err)

	dec, err := codec.Decode([]abitype.Type{abitype.Tuple(abitype.Array(abitype.String()), abitype.FixedBytes(32))}, enc)
	require.NoError(t, err)
	assert.Equal(t, 0, dec[0].Index(0).Len())
	assert.Equal(t, 32, dec[0].Index(1).Width())
}

func TestEth_DecodeMalformed(t *testing.T) {
	codec := NewEth()

	_, err := codec.Decode([]abitype.Type{abitype.Uint(256)}, []byte{1, 2, 3})
	assert.True(t, errors.Is(err, ErrDecode))

	_, err = codec.Decode([]abitype.Type{abitype.String()}, nil)
	assert.True(t, errors.Is(err, ErrDecode))

	badBool := make([]byte, 32)
	badBool[31] = 2
	_, err = codec.Decode([]abitype.Type{abitype.Bool()}, badBool)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestEth_Selector(t *testing.T) {
	fn, err := descriptor.ParseFunction("transfer(address to, uint256 amount) returns (bool)")
	require.NoError(t, err)

	sel, err := NewEth().Selector(fn)
	require.NoError(t, err)
	assert.Equal(t, "a9059cbb", hex.EncodeToString(sel[:]))
	assert.Equal(t, fn.Selector(), sel)
}

func TestEth_DecodeLog(t *testing.T) {
	ev, err := descriptor.ParseEvent("Noted(address indexed who, string indexed tag, uint256 amount, string memo)")
	require.NoError(t, err)

	id, err := EventID(ev)
	require.NoError(t, err)
	assert.Equal(t, common.Hash(ev.ID()), id)

	who := common.HexToAddress("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	tagHash := crypto.Keccak256Hash([]byte("mint"))

	codec := NewEth()
	data, err := codec.Encode(
		[]abitype.Type{abitype.Uint(256), abitype.String()},
		[]value.Value{value.Uint(big.NewInt(1000), 256), value.String("hi")},
	)
	require.NoError(t, err)

	indexed, body, err := codec.DecodeLog(ev, []common.Hash{id, common.BytesToHash(who.Bytes()), tagHash}, data)
	require.NoError(t, err)
	require.Len(t, indexed, 2)
	require.Len(t, body, 2)

	assert.Equal(t, who, indexed[0].AsAddress())
	assert.Equal(t, abitype.KindFixedBytes, indexed[1].Kind(), "indexed strings decode to their hash")
	assert.Equal(t, [32]byte(tagHash), indexed[1].Word())
	assert.Equal(t, int64(1000), body[0].AsBig().Int64())
	assert.Equal(t, "hi", body[1].AsString())

	_, _, err = codec.DecodeLog(ev, []common.Hash{tagHash, common.BytesToHash(who.Bytes()), tagHash}, data)
	assert.True(t, errors.Is(err, ErrDecode), "signature mismatch")

	_, _, err = codec.DecodeLog(ev, []common.Hash{id}, data)
	assert.True(t, errors.Is(err, ErrDecode), "too few topics")

	_, _, err = codec.DecodeLog(ev, []common.Hash{id, common.BytesToHash(who.Bytes()), tagHash}, data[:40])
	assert.True(t, errors.Is(err, ErrDecode), "truncated data")
}

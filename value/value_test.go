package value

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedeqiang/dynabi/abitype"
)

func TestFixedBytesFromSlice(t *testing.T) {
	for n := 0; n <= 33; n++ {
		src := bytes.Repeat([]byte{0xab}, n)
		v, err := FixedBytesFromSlice(src)
		if n > WordSize {
			require.Error(t, err, "len %d", n)
			assert.True(t, errors.Is(err, ErrInvalidLength))
			continue
		}
		require.NoError(t, err, "len %d", n)
		assert.Equal(t, abitype.KindFixedBytes, v.Kind())
		assert.Equal(t, n, v.Width())

		word := v.Word()
		assert.Equal(t, src, word[:n])
		assert.Equal(t, make([]byte, WordSize-n), word[n:], "padding must be zero for len %d", n)
		assert.Equal(t, src, v.FixedBytesPayload())
	}
}

func TestValue_String(t *testing.T) {
	fb, err := FixedBytesFromSlice([]byte{0xde, 0xad})
	require.NoError(t, err)

	addr := common.HexToAddress("0x00000000000000000000000000000000000000Ff")

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"uint", Uint(big.NewInt(255), 256), "ff"},
		{"uint zero", Uint(big.NewInt(0), 8), "0"},
		{"int positive", Int(big.NewInt(16), 64), "10"},
		{"int negative", Int(big.NewInt(-1), 8), strings.Repeat("f", 64)},
		{"fixed bytes full slot", fb, "dead" + strings.Repeat("0", 60)},
		{"address", Address(addr), strings.Repeat("0", 38) + "ff"},
		{"bytes", Bytes([]byte{0x01, 0x02}), "0102"},
		{"empty bytes", Bytes(nil), ""},
		{"string verbatim", String("Hello, World"), "Hello, World"},
		{"array", Array(Uint(big.NewInt(1), 8), Uint(big.NewInt(10), 8)), "[1,a]"},
		{"fixed array", FixedArray(Bool(true), Bool(false)), "[true,false]"},
		{"empty array", Array(), "[]"},
		{"tuple", Tuple(String("a"), Array(Bool(true))), "(a,[true])"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValue_TypeName(t *testing.T) {
	fb, _ := FixedBytesFromSlice([]byte{1, 2, 3})
	assert.Equal(t, "uint64", Uint(big.NewInt(1), 64).TypeName())
	assert.Equal(t, "bytes3", fb.TypeName())
	assert.Equal(t, "(bool,int8[])", Tuple(Bool(true), Array(Int(big.NewInt(-1), 8))).TypeName())
	assert.Equal(t, "string[2]", FixedArray(String("a"), String("b")).TypeName())
	assert.Equal(t, "address", Address(common.Address{}).TypeName())
}

func TestValue_Equal(t *testing.T) {
	a := Tuple(Uint(big.NewInt(7), 64), Bytes([]byte{1}))
	b := Tuple(Uint(big.NewInt(7), 64), Bytes([]byte{1}))
	assert.True(t, a.Equal(b))

	assert.False(t, Uint(big.NewInt(7), 64).Equal(Uint(big.NewInt(7), 256)), "widths differ")
	assert.False(t, Uint(big.NewInt(7), 64).Equal(Int(big.NewInt(7), 64)), "kinds differ")
	assert.False(t, Array(Bool(true)).Equal(Array(Bool(true), Bool(true))))
	assert.False(t, Array(Bool(true)).Equal(FixedArray(Bool(true))))
}

func TestValue_Immutable(t *testing.T) {
	src := []byte{1, 2, 3}
	v := Bytes(src)
	src[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, v.AsBytes())

	out := v.AsBytes()
	out[1] = 9
	assert.Equal(t, []byte{1, 2, 3}, v.AsBytes())

	n := big.NewInt(5)
	u := Uint(n, 256)
	n.SetInt64(6)
	assert.Equal(t, int64(5), u.AsBig().Int64())
}

package middleware

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hedeqiang/dynabi/event"
	"github.com/hedeqiang/dynabi/filter"
)

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return Func(func(next Handler) Handler {
			return func(lg event.Log) *event.Log {
				order = append(order, name)
				return next(lg)
			}
		})
	}

	h := Chain(Terminal, tag("outer"), tag("inner"))
	out := h(event.Log{BlockNumber: 7})
	require.NotNil(t, out)
	assert.Equal(t, uint64(7), out.BlockNumber)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestMatchAndMetrics(t *testing.T) {
	usdt := common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	m := NewMetrics()
	h := Chain(Terminal, m, SkipRemoved(), Match(filter.Address(usdt)))

	transfer := common.Hash{0xdd}
	assert.NotNil(t, h(event.Log{Address: usdt, Topics: []common.Hash{transfer}}))
	assert.NotNil(t, h(event.Log{Address: usdt, Topics: []common.Hash{transfer}}))
	assert.NotNil(t, h(event.Log{Address: usdt}))
	assert.Nil(t, h(event.Log{Address: usdt, Removed: true}))
	assert.Nil(t, h(event.Log{Address: common.Address{1}}))

	assert.Equal(t, uint64(3), m.Processed())
	assert.Equal(t, uint64(2), m.Dropped())

	counts := m.ByTopic()
	assert.Equal(t, map[common.Hash]uint64{transfer: 2, {}: 1}, counts)
	counts[transfer] = 99
	assert.Equal(t, uint64(2), m.ByTopic()[transfer], "ByTopic returns a copy")
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := Chain(Terminal, NewLogger(zap.New(core)), SkipRemoved())

	h(event.Log{BlockNumber: 3})
	h(event.Log{BlockNumber: 4, Removed: true})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(3), entries[0].ContextMap()["block"])
	assert.Equal(t, false, entries[0].ContextMap()["dropped"])
	assert.Equal(t, true, entries[1].ContextMap()["dropped"])

	assert.NotNil(t, Chain(Terminal, NewLogger(nil))(event.Log{}))
}

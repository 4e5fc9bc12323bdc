package filter

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/hedeqiang/dynabi/event"
)

func TestFilters(t *testing.T) {
	usdt := common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	transfer := common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	from, to := uint64(10), uint64(20)

	log := event.Log{Address: usdt, Topics: []common.Hash{transfer}, BlockNumber: 15}

	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"address hit", Address(usdt), true},
		{"address miss", Address(common.Address{1}), false},
		{"topic hit", Topic(0, transfer), true},
		{"topic out of range", Topic(1, transfer), false},
		{"block inside", BlockRange(&from, &to), true},
		{"block open end", BlockRange(nil, &from), false},
		{"not removed", NotRemoved(), true},
		{"all of", AllOf(Address(usdt), Topic(0, transfer)), true},
		{"all of miss", AllOf(Address(usdt), Topic(0, common.Hash{})), false},
		{"any of", AnyOf(Address(common.Address{1}), Topic(0, transfer)), true},
		{"empty any of", AnyOf(), true},
		{"empty all of", AllOf(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.Match(log))
		})
	}

	log.Removed = true
	assert.False(t, NotRemoved().Match(log))
}

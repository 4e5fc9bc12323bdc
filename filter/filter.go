// Package filter selects which event logs reach the decoder.
package filter

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/hedeqiang/dynabi/event"
)

// Filter determines whether a log matches a given criteria.
type Filter interface {
	Match(log event.Log) bool
}

// Func adapts a plain function to Filter.
type Func func(log event.Log) bool

// Match implements Filter.
func (f Func) Match(log event.Log) bool { return f(log) }

// Address matches logs emitted by any of addrs.
func Address(addrs ...common.Address) Filter {
	set := make(map[common.Address]struct{}, len(addrs))
	for _, a := range addrs {
		set[a] = struct{}{}
	}
	return Func(func(log event.Log) bool {
		_, ok := set[log.Address]
		return ok
	})
}

// Topic matches logs carrying any of hashes at the 0-based topic position.
// Topic(0, ev.ID()) selects one event.
func Topic(position int, hashes ...common.Hash) Filter {
	set := make(map[common.Hash]struct{}, len(hashes))
	for _, h := range hashes {
		set[h] = struct{}{}
	}
	return Func(func(log event.Log) bool {
		if position >= len(log.Topics) {
			return false
		}
		_, ok := set[log.Topics[position]]
		return ok
	})
}

// BlockRange matches logs within [from, to]. A nil bound is open.
func BlockRange(from, to *uint64) Filter {
	return Func(func(log event.Log) bool {
		if from != nil && log.BlockNumber < *from {
			return false
		}
		return to == nil || log.BlockNumber <= *to
	})
}

// NotRemoved matches logs that were not reverted by a reorganization.
func NotRemoved() Filter {
	return Func(func(log event.Log) bool { return !log.Removed })
}

// AllOf matches when every filter matches. An empty list matches everything.
func AllOf(filters ...Filter) Filter {
	return Func(func(log event.Log) bool {
		for _, f := range filters {
			if !f.Match(log) {
				return false
			}
		}
		return true
	})
}

// AnyOf matches when at least one filter matches. An empty list matches everything.
func AnyOf(filters ...Filter) Filter {
	return Func(func(log event.Log) bool {
		if len(filters) == 0 {
			return true
		}
		for _, f := range filters {
			if f.Match(log) {
				return true
			}
		}
		return false
	})
}

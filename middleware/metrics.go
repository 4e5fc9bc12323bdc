package middleware

import (
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hedeqiang/dynabi/event"
)

// Metrics counts the logs the rest of the pipeline keeps and drops. Kept
// logs are also counted per topic0.
type Metrics struct {
	kept    atomic.Uint64
	dropped atomic.Uint64

	mu      sync.Mutex
	byTopic map[common.Hash]uint64
}

// NewMetrics creates a counting middleware. Place it first to see every log.
func NewMetrics() *Metrics {
	return &Metrics{byTopic: make(map[common.Hash]uint64)}
}

// Wrap implements Middleware.
func (m *Metrics) Wrap(next Handler) Handler {
	return func(lg event.Log) *event.Log {
		out := next(lg)
		if out == nil {
			m.dropped.Add(1)
			return nil
		}
		m.kept.Add(1)

		m.mu.Lock()
		m.byTopic[out.EventSignature()]++
		m.mu.Unlock()
		return out
	}
}

// Processed returns the number of logs that reached the decoder.
func (m *Metrics) Processed() uint64 { return m.kept.Load() }

// Dropped returns the number of logs the pipeline dropped.
func (m *Metrics) Dropped() uint64 { return m.dropped.Load() }

// ByTopic returns a copy of the kept-log counts keyed by topic0. Logs
// without topics are counted under the zero hash.
func (m *Metrics) ByTopic() map[common.Hash]uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[common.Hash]uint64, len(m.byTopic))
	for k, n := range m.byTopic {
		out[k] = n
	}
	return out
}

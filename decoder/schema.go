package decoder

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hedeqiang/dynabi/descriptor"
)

// Schema maps event signature hashes to their event descriptors.
type Schema struct {
	mu     sync.RWMutex
	events map[common.Hash]*descriptor.Event
}

// NewSchema creates an empty event schema registry.
func NewSchema() *Schema {
	return &Schema{
		events: make(map[common.Hash]*descriptor.Event),
	}
}

// Add registers an event under its signature hash, replacing any previous
// event with the same hash.
func (s *Schema) Add(ev *descriptor.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[common.Hash(ev.ID())] = ev
}

// Lookup finds the event for the given topic0 hash.
func (s *Schema) Lookup(sigHash common.Hash) (*descriptor.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[sigHash]
	return ev, ok
}

// Has reports whether the schema contains an event for the given hash.
func (s *Schema) Has(sigHash common.Hash) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.events[sigHash]
	return ok
}

// Len returns the number of registered events.
func (s *Schema) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

package storage

import (
	"maps"
	"sync"
	"time"
)

// InMemoryBackend keeps scores in a process-wide map. All instances share
// the same store, mirroring how fs backends share a directory.
type InMemoryBackend struct{}

var globalInMemoryStore = struct {
	sync.RWMutex
	scores map[string]Record
}{
	scores: make(map[string]Record),
}

// NewInMemoryBackend creates a new in-memory backend.
func NewInMemoryBackend() *InMemoryBackend { return &InMemoryBackend{} }

func (b *InMemoryBackend) Best(key string) (int, bool, error) {
	globalInMemoryStore.RLock()
	defer globalInMemoryStore.RUnlock()
	rec, ok := globalInMemoryStore.scores[key]
	return rec.Value, ok, nil
}

func (b *InMemoryBackend) Submit(key string, value int) (int, bool, error) {
	globalInMemoryStore.Lock()
	defer globalInMemoryStore.Unlock()
	if prev, ok := globalInMemoryStore.scores[key]; ok && prev.Value >= value {
		return prev.Value, false, nil
	}
	globalInMemoryStore.scores[key] = Record{Value: value, UpdatedAt: time.Now()}
	return value, true, nil
}

func (b *InMemoryBackend) All() (map[string]Record, error) {
	globalInMemoryStore.RLock()
	defer globalInMemoryStore.RUnlock()
	return maps.Clone(globalInMemoryStore.scores), nil
}

func (b *InMemoryBackend) Close() error { return nil }

// ClearAllInMemoryScores resets the shared store.
// This should only be used in tests.
func ClearAllInMemoryScores() {
	globalInMemoryStore.Lock()
	defer globalInMemoryStore.Unlock()
	globalInMemoryStore.scores = make(map[string]Record)
}

var _ Backend = (*InMemoryBackend)(nil)

package status

import (
	"sort"
	"sync"
)

// MetricMap hands out stable pointers to metrics of type T. Systems
// resolve their pointers once during init and write through the atomics
// after that, so registration takes a plain lock and the update loops
// never touch the map again.
type MetricMap[T any] struct {
	mu    sync.Mutex
	items map[string]*T
	keys  []string // Kept sorted so Range is deterministic
}

// NewMetricMap creates an initialized MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{
		items: make(map[string]*T),
	}
}

// Get returns the pointer for key, allocating on first use. The pointer
// never moves, so callers cache it.
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ptr, ok := m.items[key]; ok {
		return ptr
	}

	ptr := new(T)
	m.items[key] = ptr

	at := sort.SearchStrings(m.keys, key)
	m.keys = append(m.keys, "")
	copy(m.keys[at+1:], m.keys[at:])
	m.keys[at] = key

	return ptr
}

// Range visits every metric in key order. The callback runs outside the
// lock; values are read through the pointers' own atomics.
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.Lock()
	keys := append([]string(nil), m.keys...)
	ptrs := make([]*T, len(keys))
	for i, k := range keys {
		ptrs[i] = m.items[k]
	}
	m.mu.Unlock()

	for i, k := range keys {
		fn(k, ptrs[i])
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

package status

import (
	"slices"
	"strings"
	"sync"
)

// Entry is one registered metric
type Entry[T any] struct {
	Key string
	Ptr *T
}

// MetricMap hands out stable pointers per key
// Systems fetch their pointers once at construction and write atomics directly afterwards
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the pointer for key, allocating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr
	return ptr
}

// Has reports whether key was ever registered
func (m *MetricMap[T]) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}

// Entries returns every metric sorted by key; the lock is not held while callers read
func (m *MetricMap[T]) Entries() []Entry[T] {
	m.mu.RLock()
	out := make([]Entry[T], 0, len(m.items))
	for k, v := range m.items {
		out = append(out, Entry[T]{Key: k, Ptr: v})
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b Entry[T]) int { return strings.Compare(a.Key, b.Key) })
	return out
}

func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

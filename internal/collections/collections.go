// Package collections provides generic collection utilities.
package collections

// Concat concatenates slices in argument order.
func Concat[T any](slices ...[]T) []T {
	var totalLen int
	for _, s := range slices {
		totalLen += len(s)
	}

	result := make([]T, 0, totalLen)
	for _, s := range slices {
		result = append(result, s...)
	}
	return result
}

// OrderedMap is a generic map that remembers key insertion order.
// It is not safe for concurrent use.
type OrderedMap[K comparable, V any] struct {
	keys []K
	data map[K]V
}

// NewOrderedMap creates a new OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value from the map.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	val, ok := m.data[key]
	return val, ok
}

// Set stores a value in the map. A new key is appended to the key order;
// an existing key keeps its position.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if _, ok := m.data[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.data[key] = value
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of keys.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *OrderedMap[K, V]) Range(fn func(key K, value V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.data[k]) {
			return
		}
	}
}

// GroupBy partitions items by keyFn. Keys are ordered by first occurrence
// and items keep their relative order inside each group.
func GroupBy[T any, K comparable](items []T, keyFn func(T) K) *OrderedMap[K, []T] {
	groups := NewOrderedMap[K, []T]()
	for _, item := range items {
		key := keyFn(item)
		existing, _ := groups.Get(key)
		groups.Set(key, append(existing, item))
	}
	return groups
}

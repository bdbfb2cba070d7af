// SPDX-License-Identifier: MIT

package dts

// orderedMap keeps the position of a key's first insertion. A later set with
// the same key replaces the value in place.
type orderedMap[T any] struct {
	m     map[string]T
	order []string
}

func newOrderedMap[T any]() *orderedMap[T] {
	return &orderedMap[T]{
		m: make(map[string]T),
	}
}

func (m *orderedMap[T]) set(key string, value T) {
	if _, exists := m.m[key]; !exists {
		m.order = append(m.order, key)
	}
	m.m[key] = value
}

func (m *orderedMap[T]) get(key string) (T, bool) {
	v, ok := m.m[key]
	return v, ok
}

func (m *orderedMap[T]) keys() []string {
	return m.order
}

func (m *orderedMap[T]) len() int {
	return len(m.order)
}

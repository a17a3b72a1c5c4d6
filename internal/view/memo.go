package view

// memo caches the last value of one pipeline stage keyed on its inputs.
type memo[K comparable, V any] struct {
	key   K
	value V
	valid bool
}

// get returns the cached value when key matches, otherwise computes and
// stores it. A disabled memo always computes.
func (m *memo[K, V]) get(key K, enabled bool, compute func() V) (V, bool) {
	if enabled && m.valid && m.key == key {
		return m.value, true
	}
	v := compute()
	if enabled {
		m.key, m.value, m.valid = key, v, true
	}
	return v, false
}

func (m *memo[K, V]) reset() {
	var zero memo[K, V]
	*m = zero
}

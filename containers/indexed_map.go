package containers

// Indexable is satisfied by any key type carrying a dense, non-negative
// logical index. Vertex, Arc and Constraint handles all implement it so
// they can key directly into an IndexedMap without a hash step.
type Indexable interface {
	Index() int
}

// IndexedMap is a dense array keyed by K.Index() supporting point
// read/write in O(1) and a logical reset in O(1): reset bumps a generation
// counter instead of zeroing the backing slice, so repeated solves over the
// same problem size never reallocate or re-zero.
//
// A key whose slot generation does not match the map's current generation
// reads back as the configured default, exactly as if it had never been
// written since the last Reset.
type IndexedMap[K Indexable, V any] struct {
	values []V
	gen    []uint64
	curGen uint64
	def    V
}

// NewIndexedMap allocates an IndexedMap with room for `capacity` logical
// indices (0..capacity-1) and the given default value for unset/stale slots.
// Capacity grows automatically on writes past the initial size.
func NewIndexedMap[K Indexable, V any](capacity int, def V) *IndexedMap[K, V] {
	return &IndexedMap[K, V]{
		values: make([]V, capacity),
		gen:    make([]uint64, capacity),
		curGen: 1,
		def:    def,
	}
}

// BuildIndexedMap constructs an IndexedMap in one pass from a key slice and
// a value function, pre-marking every supplied key as written in the
// current generation.
func BuildIndexedMap[K Indexable, V any](keys []K, fn func(K) V, def V) *IndexedMap[K, V] {
	capacity := 0
	for _, k := range keys {
		if idx := k.Index(); idx+1 > capacity {
			capacity = idx + 1
		}
	}
	m := NewIndexedMap[K, V](capacity, def)
	for _, k := range keys {
		_ = m.Set(k, fn(k)) // k.Index() is always >= 0 by construction; cannot fail.
	}
	return m
}

func (m *IndexedMap[K, V]) ensure(idx int) {
	if idx < len(m.values) {
		return
	}
	newCap := idx + 1
	values := make([]V, newCap)
	gen := make([]uint64, newCap)
	copy(values, m.values)
	copy(gen, m.gen)
	m.values = values
	m.gen = gen
}

// Get returns the value stored for k, or the configured default if k was
// never written since the last Reset.
func (m *IndexedMap[K, V]) Get(k K) V {
	idx := k.Index()
	if idx < 0 || idx >= len(m.values) || m.gen[idx] != m.curGen {
		return m.def
	}
	return m.values[idx]
}

// GetOK is like Get but also reports whether k has been written since the
// last Reset.
func (m *IndexedMap[K, V]) GetOK(k K) (V, bool) {
	idx := k.Index()
	if idx < 0 || idx >= len(m.values) || m.gen[idx] != m.curGen {
		return m.def, false
	}
	return m.values[idx], true
}

// Set writes v for k, growing the backing arrays if k.Index() exceeds the
// current capacity. It returns ErrIndexOutOfRange if k.Index() is negative.
func (m *IndexedMap[K, V]) Set(k K, v V) error {
	idx := k.Index()
	if idx < 0 {
		return ErrIndexOutOfRange
	}
	m.ensure(idx)
	m.values[idx] = v
	m.gen[idx] = m.curGen
	return nil
}

// Has reports whether k has been written since the last Reset.
func (m *IndexedMap[K, V]) Has(k K) bool {
	idx := k.Index()
	return idx >= 0 && idx < len(m.values) && m.gen[idx] == m.curGen
}

// Reset logically clears every entry in O(1) by incrementing the
// generation counter. No backing storage is freed or rewritten.
func (m *IndexedMap[K, V]) Reset() {
	m.curGen++
}

// Len returns the capacity of the backing storage, not the number of
// entries written in the current generation.
func (m *IndexedMap[K, V]) Len() int {
	return len(m.values)
}

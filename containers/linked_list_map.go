package containers

// LinkedListMap holds, for a fixed domain of integer list-ids (0..n-1), a
// family of singly-linked lists sharing one backing node arena. Nodes are
// only ever appended at the head, so pushing is O(1) and iteration from the
// head naturally yields values in reverse-insertion order.
//
// This shape matches the push/pop discipline of Problem's side-constraint
// stack: every push prepends a node to the arc's constraint-index list, and
// the matching pop must undo exactly that prepend, which is what
// PopHeadWhere is for.
type LinkedListMap[T any] struct {
	heads []int32 // heads[listID] = arena index of the head node, or -1
	value []T
	next  []int32 // next[i] = arena index of the node after i in its list, or -1
}

// NewLinkedListMap allocates a LinkedListMap over list-ids 0..numLists-1.
func NewLinkedListMap[T any](numLists int) *LinkedListMap[T] {
	heads := make([]int32, numLists)
	for i := range heads {
		heads[i] = -1
	}
	return &LinkedListMap[T]{heads: heads}
}

func (m *LinkedListMap[T]) checkListID(listID int) error {
	if listID < 0 || listID >= len(m.heads) {
		return ErrUnknownListID
	}
	return nil
}

// PushHead prepends value to the list identified by listID and returns the
// arena index of the new node (opaque; only useful for diagnostics), or
// ErrUnknownListID if listID falls outside the map's fixed domain.
func (m *LinkedListMap[T]) PushHead(listID int, value T) (int, error) {
	if err := m.checkListID(listID); err != nil {
		return 0, err
	}
	node := int32(len(m.value))
	m.value = append(m.value, value)
	m.next = append(m.next, m.heads[listID])
	m.heads[listID] = node
	return int(node), nil
}

// PopHeadWhere removes the head node of listID if predicate(value) is true,
// returning the removed value and true. If the list is empty or its head
// does not satisfy predicate, it returns the zero value and false. It
// returns ErrUnknownListID if listID falls outside the map's fixed domain.
//
// Removal only ever detaches the head; the node itself stays in the arena,
// is no longer reachable from any list, and is not reused by PushHead.
func (m *LinkedListMap[T]) PopHeadWhere(listID int, predicate func(T) bool) (T, bool, error) {
	var zero T
	if err := m.checkListID(listID); err != nil {
		return zero, false, err
	}
	head := m.heads[listID]
	if head < 0 {
		return zero, false, nil
	}
	v := m.value[head]
	if !predicate(v) {
		return zero, false, nil
	}
	m.heads[listID] = m.next[head]
	return v, true, nil
}

// Each calls fn for every value in listID's list, in reverse-insertion
// order (most recently pushed first), stopping early if fn returns false.
// It returns ErrUnknownListID if listID falls outside the map's fixed
// domain.
func (m *LinkedListMap[T]) Each(listID int, fn func(T) bool) error {
	if err := m.checkListID(listID); err != nil {
		return err
	}
	for n := m.heads[listID]; n >= 0; n = m.next[n] {
		if !fn(m.value[n]) {
			return nil
		}
	}
	return nil
}

// Values collects Each into a slice, in reverse-insertion order.
func (m *LinkedListMap[T]) Values(listID int) ([]T, error) {
	var out []T
	if err := m.Each(listID, func(v T) bool {
		out = append(out, v)
		return true
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// IsEmpty reports whether listID currently has no nodes. It returns
// ErrUnknownListID if listID falls outside the map's fixed domain.
func (m *LinkedListMap[T]) IsEmpty(listID int) (bool, error) {
	if err := m.checkListID(listID); err != nil {
		return false, err
	}
	return m.heads[listID] < 0, nil
}

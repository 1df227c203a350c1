// Package containers provides index-keyed collections used by the hot
// loops of pricing and constraint bookkeeping: a dense map keyed by a small
// non-negative integer with O(1) logical reset, and a family of
// singly-linked lists sharing one backing node arena.
//
// IndexedMap reuses its backing slice across resets, so repeated solves
// over the same problem size do not churn the allocator. LinkedListMap's
// node arena only grows: every push appends a node, and popped nodes stay
// in the arena without being reused.
package containers

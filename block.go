package collector

import "golang.org/x/sys/cpu"

// block is a fixed-capacity batch of values plus a link to the block
// published before it. A block is only ever touched by the single
// goroutine that currently owns its chain; ownership moves wholesale
// through atomic swaps of the collector head, never through locks.
type block[T any] struct {
	next  *block[T]
	count int
	slots []T

	// keep neighbouring blocks on separate cache lines when producers
	// hammer adjacent allocations
	_ cpu.CacheLinePad
}

// newBlock allocates a block already holding one value. Blocks are
// never created empty, so count stays at least 1 for as long as the
// block is published.
func newBlock[T any](size int, next *block[T], v T) *block[T] {
	b := &block[T]{
		next:  next,
		count: 1,
		slots: make([]T, size),
	}
	b.slots[0] = v
	return b
}

// tail walks a privately owned chain to its last block.
func (b *block[T]) tail() *block[T] {
	t := b
	for t.next != nil {
		t = t.next
	}
	return t
}

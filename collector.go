package collector

import "sync/atomic"

// Collector is a lock-free blocked stealing collector: any number of
// goroutines push values concurrently and a consumer steals the entire
// accumulated set with a single atomic operation. Values are grouped
// into fixed-capacity blocks, one heap allocation per blockSize values
// instead of one per value as in a classic lock-free stack.
//
// Discarding a Collector abandons any unstolen values to the garbage
// collector; there is no cleanup walk on teardown. Steal first if the
// remaining values matter.
type Collector[T any] struct {
	head      atomic.Pointer[block[T]]
	blockSize int
}

// New creates an empty collector without allocating any blocks.
// blockSize is the slot count of every block; New panics when it is
// not positive.
func New[T any](blockSize int) *Collector[T] {
	if blockSize <= 0 {
		panic("collector: block size must be positive")
	}

	return &Collector[T]{blockSize: blockSize}
}

// Push appends v. It never blocks, never fails, and is safe to call
// from any number of goroutines. The current chain is swapped out
// whole, filled privately and spliced back, so a partially filled
// block keeps absorbing values even after newer blocks were published
// ahead of it. Push cost grows with chain length when steals are rare.
func (c *Collector[T]) Push(v T) {
	owned := c.head.Swap(nil)

	// first fit over the owned chain; exclusive ownership makes the
	// mutation race-free even on blocks behind the head
	for b := owned; b != nil; b = b.next {
		if b.count < len(b.slots) {
			b.slots[b.count] = v
			b.count++
			c.publish(owned)
			return
		}
	}

	// no spare slot anywhere (or no chain at all): prepend a fresh block
	c.publish(newBlock(c.blockSize, owned, v))
}

// Steal atomically detaches every block currently in the collector and
// returns a drain over them. Concurrent steals receive disjoint sets;
// a steal racing with pushes receives every value published strictly
// before its detach point.
func (c *Collector[T]) Steal() *Drain[T] {
	return &Drain[T]{curr: c.head.Swap(nil)}
}

// Collect steals and drives the drain to completion, calling fn once
// per value.
func (c *Collector[T]) Collect(fn func(T)) {
	c.Steal().Each(fn)
}

// publish splices a privately owned chain back onto the shared head:
// link the private tail to the observed head and CAS. A failed CAS
// means another goroutine published in the meantime, so re-link and
// retry against the fresh head.
func (c *Collector[T]) publish(head *block[T]) {
	tail := head.tail()
	for {
		old := c.head.Load()
		tail.next = old
		if c.head.CompareAndSwap(old, head) {
			return
		}
	}
}

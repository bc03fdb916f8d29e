package collector

import "iter"

// Drain is a one-shot cursor over a stolen chain. It yields every
// resident value exactly once, most recently published block first and
// in slot order within a block, and releases each block as soon as it
// is exhausted. A Drain is single-goroutine; hand it off, don't share
// it.
type Drain[T any] struct {
	curr *block[T]
	idx  int
}

// Next moves the next value out of the chain. It returns false once
// the chain is exhausted; a finished Drain stays empty, a new Steal is
// needed for more values.
func (d *Drain[T]) Next() (T, bool) {
	var zero T

	if d.curr == nil {
		return zero, false
	}

	v := d.curr.slots[d.idx]
	// zero the vacated slot so the value is not pinned by the block
	d.curr.slots[d.idx] = zero
	d.idx++

	if d.idx == d.curr.count {
		next := d.curr.next
		d.curr.next = nil
		d.curr = next
		d.idx = 0
	}

	return v, true
}

// All returns the remaining values as a single-use iterator. Breaking
// out of the range leaves the rest in the Drain; call Close to discard
// it.
func (d *Drain[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := d.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Each drives the drain to completion, calling fn once per value.
func (d *Drain[T]) Each(fn func(T)) {
	for v, ok := d.Next(); ok; v, ok = d.Next() {
		fn(v)
	}
}

// Close discards the remaining values: every unconsumed slot is zeroed
// and the chain unlinked, so the dropped values become collectable
// immediately instead of staying pinned. Close on an exhausted Drain
// is a no-op.
func (d *Drain[T]) Close() {
	var zero T

	for b := d.curr; b != nil; {
		for i := d.idx; i < b.count; i++ {
			b.slots[i] = zero
		}
		d.idx = 0

		next := b.next
		b.next = nil
		b = next
	}

	d.curr = nil
}

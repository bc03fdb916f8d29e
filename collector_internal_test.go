package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockPacking(t *testing.T) {
	const size = 8

	c := New[int](size)
	for i := range size + 1 {
		c.Push(i)
	}

	var counts []int
	for b := c.head.Load(); b != nil; b = b.next {
		counts = append(counts, b.count)
	}

	t.Run("exactly two blocks, newest first", func(t *testing.T) {
		assert.Equal(t, []int{1, size}, counts)
	})
}

func TestPushFillsPartialBlockBehindHead(t *testing.T) {
	const size = 4

	c := New[int](size)

	// build a chain whose head is full and whose second block has a
	// spare slot: a full block published on top of a half-filled one
	c.publish(newBlock(size, nil, 0))
	c.publish(func() *block[int] {
		b := newBlock(size, nil, 1)
		for i := 2; i <= size; i++ {
			b.slots[b.count] = i
			b.count++
		}
		return b
	}())

	c.Push(42)

	var counts []int
	for b := c.head.Load(); b != nil; b = b.next {
		counts = append(counts, b.count)
	}

	t.Run("no new block allocated", func(t *testing.T) {
		assert.Equal(t, []int{size, 2}, counts)
	})
}

func TestDrainCloseZeroesRemainingSlots(t *testing.T) {
	c := New[*int](4)
	for i := range 6 {
		c.Push(&i)
	}

	d := c.Steal()
	head := d.curr

	_, ok := d.Next()
	assert.True(t, ok)

	d.Close()

	t.Run("drain exhausted", func(t *testing.T) {
		_, ok := d.Next()
		assert.False(t, ok)
	})

	t.Run("remaining values released", func(t *testing.T) {
		for _, s := range head.slots {
			assert.Nil(t, s)
		}
		assert.Nil(t, head.next)
	})
}

package datastructures_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"main/src/scheduler/datastructures"
)

// Test if the queue yields ids in ascending key order.
func TestReadyQueue_Order(t *testing.T) {
	q := datastructures.NewReadyQueue[int64]()

	q.Push(1, 300)
	q.Push(2, 100)
	q.Push(3, 200)

	id, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 2, id)

	id, ok = q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 3, id)

	id, ok = q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = q.Pop()
	assert.False(t, ok)
}

// Test if equal keys resolve in favor of the lower id.
func TestReadyQueue_TieBreak(t *testing.T) {
	q := datastructures.NewReadyQueue[int64]()

	q.Push(7, 100)
	q.Push(2, 100)
	q.Push(5, 100)

	var order []int
	for {
		id, ok := q.Pop()
		if !ok {
			break
		}
		order = append(order, id)
	}

	assert.Equal(t, []int{2, 5, 7}, order)
}

// Test if Peek reads the minimum without removing it.
func TestReadyQueue_Peek(t *testing.T) {
	q := datastructures.NewReadyQueue[int64]()

	_, _, ok := q.Peek()
	assert.False(t, ok)

	q.Push(4, 50)
	q.Push(9, 10)

	id, key, ok := q.Peek()
	assert.True(t, ok)
	assert.Equal(t, 9, id)
	assert.Equal(t, int64(10), key)
	assert.Equal(t, 2, q.Len())

	id, ok = q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 9, id)
	assert.Equal(t, 1, q.Len())
}

func TestReadyQueue_Empty(t *testing.T) {
	q := datastructures.NewReadyQueue[int64]()

	assert.True(t, q.IsEmpty())
	q.Push(0, 0)
	assert.False(t, q.IsEmpty())
}

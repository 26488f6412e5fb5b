package datastructures

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

type heapImpl[K constraints.Ordered] []heapItem[K]

type heapItem[K constraints.Ordered] struct {
	key K
	id  int
}

func (q heapImpl[K]) Len() int { return len(q) }

func (q heapImpl[K]) Less(i, j int) bool {
	if q[i].key != q[j].key {
		return q[i].key < q[j].key
	}
	return q[i].id < q[j].id
}

func (q heapImpl[K]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *heapImpl[K]) Push(x any) {
	item := x.(heapItem[K])
	*q = append(*q, item)
}

func (q *heapImpl[K]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = heapItem[K]{} // avoid memory leak
	*q = old[0 : n-1]
	return item
}

// A ReadyQueue holds ids keyed by the moment they became ready.
//
// The minimal element is the one with the smallest key; equal keys are
// resolved in favor of the smaller id.
type ReadyQueue[K constraints.Ordered] struct {
	heap heapImpl[K]
}

func NewReadyQueue[K constraints.Ordered]() ReadyQueue[K] {
	return ReadyQueue[K]{}
}

func (q *ReadyQueue[K]) Push(id int, key K) {
	heap.Push(&q.heap, heapItem[K]{key: key, id: id})
}

// Pop removes and returns the minimal id.
func (q *ReadyQueue[K]) Pop() (id int, ok bool) {
	if len(q.heap) == 0 {
		return 0, false
	}

	item := heap.Pop(&q.heap).(heapItem[K])
	return item.id, true
}

// Peek returns the minimal (id, key) without removing it.
func (q *ReadyQueue[K]) Peek() (id int, key K, ok bool) {
	if len(q.heap) == 0 {
		ok = false
		return
	}

	return q.heap[0].id, q.heap[0].key, true
}

func (q *ReadyQueue[K]) Len() int { return len(q.heap) }

func (q *ReadyQueue[K]) IsEmpty() bool { return len(q.heap) == 0 }

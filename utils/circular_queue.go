package utils

import (
	"fmt"
	"iter"

	"github.com/oomph-ac/wallrun/oerror"
)

// CircularQueue is a fixed capacity FIFO that overwrites its oldest element
// when full.
type CircularQueue[T any] struct {
	items []T
	head  int
	size  int
}

func NewCircularQueue[T any](capacity int) *CircularQueue[T] {
	return &CircularQueue[T]{items: make([]T, max(capacity, 0))}
}

// Append adds an item, dropping the oldest one if the queue is full. It
// returns an error if the queue has zero capacity.
func (q *CircularQueue[T]) Append(item T) error {
	if len(q.items) == 0 {
		return oerror.ErrZeroCapacityQueue
	}
	q.items[(q.head+q.size)%len(q.items)] = item
	if q.size == len(q.items) {
		q.head = (q.head + 1) % len(q.items)
	} else {
		q.size++
	}
	return nil
}

// Get returns the element at logical position index (0 = oldest).
func (q *CircularQueue[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= q.size {
		return zero, fmt.Errorf("circularqueue: get %d of %d: %w", index, q.size, oerror.ErrOutOfRange)
	}
	return q.items[(q.head+index)%len(q.items)], nil
}

// Last returns the newest element. ok is false if the queue is empty.
func (q *CircularQueue[T]) Last() (item T, ok bool) {
	if q.size == 0 {
		return item, false
	}
	return q.items[(q.head+q.size-1)%len(q.items)], true
}

// Pop removes and returns the oldest element. ok is false if the queue is empty.
func (q *CircularQueue[T]) Pop() (item T, ok bool) {
	if q.size == 0 {
		return item, false
	}
	var zero T
	item = q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return item, true
}

// Iter yields the elements from oldest to newest.
func (q *CircularQueue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range q.size {
			if !yield(q.items[(q.head+index)%len(q.items)]) {
				return
			}
		}
	}
}

// Len returns the number of elements held.
func (q *CircularQueue[T]) Len() int { return q.size }

// Cap returns the maximum number of elements the queue can hold.
func (q *CircularQueue[T]) Cap() int { return len(q.items) }

func (q *CircularQueue[T]) Clear() {
	clear(q.items)
	q.head, q.size = 0, 0
}

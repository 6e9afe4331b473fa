package queue

import (
	"errors"
)

var ErrEmptyQueue = errors.New("empty queue")

// Queue is a FIFO backed by a ring buffer. It is not safe for concurrent use.
type Queue[T interface{}] interface {
	Push(v T)
	Pop() T
	Front() T
	Size() int
	Empty() bool
}

type queue[T interface{}] struct {
	buf  []T
	head int
	size int
}

func New[T interface{}](initialSize int) Queue[T] {
	if initialSize < 1 {
		initialSize = 1
	}
	return &queue[T]{buf: make([]T, initialSize)}
}

func (q *queue[T]) Push(value T) {
	if q.size == len(q.buf) {
		q.grow()
	}

	q.buf[(q.head+q.size)%len(q.buf)] = value
	q.size++
}

// Pop removes and returns the front element. Popping an empty queue is a
// programming error and panics with ErrEmptyQueue.
func (q *queue[T]) Pop() T {
	if q.size == 0 {
		panic(ErrEmptyQueue)
	}

	var zero T
	value := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return value
}

func (q *queue[T]) Front() T {
	if q.size == 0 {
		panic(ErrEmptyQueue)
	}

	return q.buf[q.head]
}

func (q *queue[T]) Size() int {
	return q.size
}

func (q *queue[T]) Empty() bool {
	return q.size == 0
}

func (q *queue[T]) grow() {
	buf := make([]T, len(q.buf)*2)
	n := copy(buf, q.buf[q.head:])
	copy(buf[n:], q.buf[:q.head])
	q.buf = buf
	q.head = 0
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

// Queue is the combined producer-consumer interface of a ring buffer.
//
// Both [Ring] and [Local] implement Queue. No operation blocks: single
// element calls report failure through a bool or [ErrWouldBlock], bulk
// calls return the number of elements actually transferred.
//
// Example:
//
//	q := ringbuf.Build[int](ringbuf.New(8))
//
//	q.Push(42)
//	if v, ok := q.Pop(); ok {
//	    fmt.Println(v)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]

	// Len returns the number of buffered elements (snapshot).
	Len() int

	// Cap returns the number of slots. At most Cap()-1 elements fit.
	Cap() int

	// Reset empties the buffer. Must not run concurrently with any
	// producer or consumer call.
	Reset()
}

// Producer is the write side of a ring buffer.
//
// Only one goroutine may call Producer methods at a time. Block and
// Segments views returned here belong to the producer until published
// with AdvanceWrite.
type Producer[T any] interface {
	// Push adds a copy of v. Returns false if the buffer is full.
	Push(v T) bool

	// Move adds *src and zeroes *src. Returns false if the buffer is full.
	Move(src *T) bool

	// Enqueue adds a copy of *elem.
	// Returns ErrWouldBlock if the buffer is full.
	Enqueue(elem *T) error

	// Append copies as much of src as fits and returns the count.
	Append(src []T) int

	// WriteBlock returns the contiguous free run at the write index.
	WriteBlock() Block[T]

	// WriteSegments returns all free space as one or two runs.
	WriteSegments() Segments[T]

	// AdvanceWrite publishes up to n directly written slots.
	AdvanceWrite(n int) int

	// Free returns the number of elements that can be added (snapshot).
	Free() int

	// Full reports whether no element can be added (snapshot).
	Full() bool
}

// Consumer is the read side of a ring buffer.
//
// Only one goroutine may call Consumer methods at a time. Block and
// Segments views returned here belong to the consumer until released
// with AdvanceRead.
type Consumer[T any] interface {
	// Pop removes the oldest element. Returns (zero-value, false) if empty.
	Pop() (T, bool)

	// PopInto removes the oldest element into *dst. Returns false if empty.
	PopInto(dst *T) bool

	// Dequeue removes the oldest element.
	// Returns (zero-value, ErrWouldBlock) if empty.
	Dequeue() (T, error)

	// Peek returns the oldest element without removing it.
	Peek() T

	// Take moves up to len(dst) elements into dst and returns the count.
	Take(dst []T) int

	// PeekInto copies up to len(dst) elements without removing them.
	PeekInto(dst []T) int

	// Discard removes up to n elements without copying them.
	Discard(n int) int

	// ReadBlock returns the contiguous occupied run at the read index.
	ReadBlock() Block[T]

	// ReadSegments returns all buffered data as one or two runs.
	ReadSegments() Segments[T]

	// AdvanceRead releases up to n directly consumed slots.
	AdvanceRead(n int) int

	// Empty reports whether nothing is buffered (snapshot).
	Empty() bool
}

var (
	_ Queue[int] = (*Ring[int])(nil)
	_ Queue[int] = (*Local[int])(nil)
)

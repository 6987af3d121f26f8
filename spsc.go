// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

import "golang.org/x/sys/cpu"

// Ring is a single-producer single-consumer ring buffer whose indices are
// atomic. One producer goroutine and one consumer goroutine may use it
// concurrently.
type Ring[T any] = Buffer[T, AtomicIndex, *AtomicIndex]

// Local is a single-threaded ring buffer. Its indices are plain integers
// and it must not be shared between goroutines.
type Local[T any] = Buffer[T, PlainIndex, *PlainIndex]

// Buffer is a fixed-capacity circular buffer for one producer and one
// consumer.
//
// Based on Lamport's ring buffer with cached index optimization: the
// producer caches the consumer's read index and vice versa, so the
// other side's cache line is touched only when the cached view does
// not show enough room or data.
//
// Both indices stay in [0, capacity). One slot is always left unused:
// equal indices mean empty, tail one slot behind head means full. A
// buffer of capacity n therefore holds at most n-1 elements.
//
// Ordering:
//
//	producer: write slots in [tail, tail+k), then StoreRelease(tail+k)
//	consumer: LoadAcquire(tail), then read slots in [head, tail)
//
// The release store of tail orders every slot write before it; the
// consumer's acquire load that observes the new tail therefore observes
// those writes. The same pairing on head hands vacated slots back to the
// producer: the consumer finishes reading (and clearing) a slot before its
// release store of head, and the producer only reuses the slot after an
// acquire load of head shows it free. Reporting queries ([Buffer.Len],
// [Buffer.Free], [Buffer.Empty], [Buffer.Full]) use relaxed loads and are
// snapshots only; no index is ever stored on the strength of them.
//
// Memory: O(capacity)
type Buffer[T any, I any, P Index[I]] struct {
	_          cpu.CacheLinePad
	head       I // Consumer reads from here
	_          cpu.CacheLinePad
	cachedTail uint64 // Consumer's cached view of tail
	_          cpu.CacheLinePad
	tail       I // Producer writes here
	_          cpu.CacheLinePad
	cachedHead uint64 // Producer's cached view of head
	_          cpu.CacheLinePad
	buffer     []T
	mask       uint64
}

// NewRing creates a concurrent ring buffer.
// Panics if capacity is not a power of 2 or is less than 2.
func NewRing[T any](capacity int) *Ring[T] {
	return NewBuffer[T, AtomicIndex](capacity)
}

// NewLocal creates a single-threaded ring buffer.
// Panics if capacity is not a power of 2 or is less than 2.
func NewLocal[T any](capacity int) *Local[T] {
	return NewBuffer[T, PlainIndex](capacity)
}

// NewBuffer creates a ring buffer with the given index mode.
// Panics if capacity is not a power of 2 or is less than 2.
func NewBuffer[T any, I any, P Index[I]](capacity int) *Buffer[T, I, P] {
	mustCapacity(capacity)
	return &Buffer[T, I, P]{
		buffer: make([]T, capacity),
		mask:   uint64(capacity - 1),
	}
}

// Cap returns the number of slots, including the reserved one.
func (b *Buffer[T, I, P]) Cap() int {
	return len(b.buffer)
}

// Len returns the number of buffered elements.
// Under concurrent use the result is a snapshot.
func (b *Buffer[T, I, P]) Len() int {
	tail := P(&b.tail).LoadRelaxed()
	head := P(&b.head).LoadRelaxed()
	return int((tail - head) & b.mask)
}

// Free returns the number of elements that can be added.
// Under concurrent use the result is a snapshot.
func (b *Buffer[T, I, P]) Free() int {
	return int(b.mask) - b.Len()
}

// Empty reports whether the buffer holds no elements.
func (b *Buffer[T, I, P]) Empty() bool {
	return b.Len() == 0
}

// Full reports whether the buffer holds Cap()-1 elements.
func (b *Buffer[T, I, P]) Full() bool {
	return b.Free() == 0
}

// Reset returns both indices to zero. Storage is not cleared; stale
// slots are overwritten by later writes.
//
// Reset must not run concurrently with any producer or consumer call.
func (b *Buffer[T, I, P]) Reset() {
	P(&b.head).StoreRelease(0)
	P(&b.tail).StoreRelease(0)
	b.cachedHead = 0
	b.cachedTail = 0
}

// writable returns the free slot count seen from tail. The cached head is
// refreshed with an acquire load when it shows fewer than want slots.
func (b *Buffer[T, I, P]) writable(tail, want uint64) uint64 {
	free := (b.cachedHead - tail - 1) & b.mask
	if free < want {
		b.cachedHead = P(&b.head).LoadAcquire()
		free = (b.cachedHead - tail - 1) & b.mask
	}
	return free
}

// readable returns the occupied slot count seen from head. The cached tail
// is refreshed with an acquire load when it shows fewer than want slots.
func (b *Buffer[T, I, P]) readable(head, want uint64) uint64 {
	n := (b.cachedTail - head) & b.mask
	if n < want {
		b.cachedTail = P(&b.tail).LoadAcquire()
		n = (b.cachedTail - head) & b.mask
	}
	return n
}

// Push adds v to the buffer (producer only).
// Returns false without modifying the buffer if it is full.
func (b *Buffer[T, I, P]) Push(v T) bool {
	tail := P(&b.tail).LoadRelaxed()
	if b.writable(tail, 1) == 0 {
		return false
	}

	b.buffer[tail] = v
	P(&b.tail).StoreRelease((tail + 1) & b.mask)
	return true
}

// Move adds *src to the buffer and sets *src to the zero value
// (producer only). Returns false and leaves *src untouched if full.
func (b *Buffer[T, I, P]) Move(src *T) bool {
	if !b.Push(*src) {
		return false
	}
	var zero T
	*src = zero
	return true
}

// Enqueue adds an element to the buffer (producer only).
// Returns ErrWouldBlock if the buffer is full.
func (b *Buffer[T, I, P]) Enqueue(elem *T) error {
	if !b.Push(*elem) {
		return ErrWouldBlock
	}
	return nil
}

// Pop removes and returns the oldest element (consumer only).
// Returns (zero-value, false) if the buffer is empty. The vacated slot is
// cleared so the buffer keeps no reference to the element.
func (b *Buffer[T, I, P]) Pop() (T, bool) {
	var zero T
	head := P(&b.head).LoadRelaxed()
	if b.readable(head, 1) == 0 {
		return zero, false
	}

	elem := b.buffer[head]
	b.buffer[head] = zero
	P(&b.head).StoreRelease((head + 1) & b.mask)
	return elem, true
}

// PopInto removes the oldest element into *dst (consumer only).
// Returns false and leaves *dst untouched if the buffer is empty.
func (b *Buffer[T, I, P]) PopInto(dst *T) bool {
	elem, ok := b.Pop()
	if ok {
		*dst = elem
	}
	return ok
}

// Dequeue removes and returns the oldest element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the buffer is empty.
func (b *Buffer[T, I, P]) Dequeue() (T, error) {
	elem, ok := b.Pop()
	if !ok {
		return elem, ErrWouldBlock
	}
	return elem, nil
}

// Peek returns the oldest element without removing it (consumer only).
// Returns the zero value if the buffer is empty; check Empty first when
// the zero value is a valid element.
func (b *Buffer[T, I, P]) Peek() T {
	head := P(&b.head).LoadRelaxed()
	if b.readable(head, 1) == 0 {
		var zero T
		return zero
	}
	return b.buffer[head]
}

// Append copies as many elements of src as fit (producer only) and
// returns the number copied. Elements that do not fit are dropped;
// buffered data is never overwritten.
func (b *Buffer[T, I, P]) Append(src []T) int {
	if len(src) == 0 {
		return 0
	}

	tail := P(&b.tail).LoadRelaxed()
	n := min(uint64(len(src)), b.writable(tail, uint64(len(src))))
	if n == 0 {
		return 0
	}

	first := min(n, uint64(len(b.buffer))-tail)
	copy(b.buffer[tail:tail+first], src[:first])
	copy(b.buffer[:n-first], src[first:n])

	P(&b.tail).StoreRelease((tail + n) & b.mask)
	return int(n)
}

// copyOut copies up to len(dst) elements starting at head into dst and
// returns the count together with the two storage runs it read from.
func (b *Buffer[T, I, P]) copyOut(head uint64, dst []T) (n, first uint64) {
	n = min(uint64(len(dst)), b.readable(head, uint64(len(dst))))
	if n == 0 {
		return 0, 0
	}

	first = min(n, uint64(len(b.buffer))-head)
	copy(dst[:first], b.buffer[head:head+first])
	copy(dst[first:n], b.buffer[:n-first])
	return n, first
}

// Take moves up to len(dst) elements into dst (consumer only) and returns
// the number moved. Vacated slots are cleared.
func (b *Buffer[T, I, P]) Take(dst []T) int {
	if len(dst) == 0 {
		return 0
	}

	head := P(&b.head).LoadRelaxed()
	n, first := b.copyOut(head, dst)
	if n == 0 {
		return 0
	}

	clear(b.buffer[head : head+first])
	clear(b.buffer[:n-first])
	P(&b.head).StoreRelease((head + n) & b.mask)
	return int(n)
}

// PeekInto copies up to len(dst) elements into dst without removing them
// (consumer only) and returns the number copied.
func (b *Buffer[T, I, P]) PeekInto(dst []T) int {
	if len(dst) == 0 {
		return 0
	}

	head := P(&b.head).LoadRelaxed()
	n, _ := b.copyOut(head, dst)
	return int(n)
}

// Discard removes up to n elements without copying them (consumer only)
// and returns the number removed. Vacated slots are cleared.
func (b *Buffer[T, I, P]) Discard(n int) int {
	if n <= 0 {
		return 0
	}

	head := P(&b.head).LoadRelaxed()
	k := min(uint64(n), b.readable(head, uint64(n)))
	if k == 0 {
		return 0
	}

	first := min(k, uint64(len(b.buffer))-head)
	clear(b.buffer[head : head+first])
	clear(b.buffer[:k-first])
	P(&b.head).StoreRelease((head + k) & b.mask)
	return int(k)
}

// WriteBlock returns the contiguous free run starting at the write index
// (producer only). The run stops at the physical end of storage even when
// more free space follows the wrap. Returns an empty block if full.
//
// Fill the block and then publish with AdvanceWrite.
func (b *Buffer[T, I, P]) WriteBlock() Block[T] {
	tail := P(&b.tail).LoadRelaxed()
	free := b.writable(tail, b.mask)
	if free == 0 {
		return nil
	}

	end := tail + min(free, uint64(len(b.buffer))-tail)
	return Block[T](b.buffer[tail:end:end])
}

// ReadBlock returns the contiguous occupied run starting at the read index
// (consumer only). The run stops at the physical end of storage. Returns
// an empty block if empty.
//
// Consume the block and then release it with AdvanceRead.
func (b *Buffer[T, I, P]) ReadBlock() Block[T] {
	head := P(&b.head).LoadRelaxed()
	n := b.readable(head, b.mask)
	if n == 0 {
		return nil
	}

	end := head + min(n, uint64(len(b.buffer))-head)
	return Block[T](b.buffer[head:end:end])
}

// WriteSegments returns all free space as one or two runs
// (producer only).
func (b *Buffer[T, I, P]) WriteSegments() Segments[T] {
	tail := P(&b.tail).LoadRelaxed()
	return b.segments(tail, b.writable(tail, b.mask))
}

// ReadSegments returns all buffered data as one or two runs
// (consumer only).
func (b *Buffer[T, I, P]) ReadSegments() Segments[T] {
	head := P(&b.head).LoadRelaxed()
	return b.segments(head, b.readable(head, b.mask))
}

func (b *Buffer[T, I, P]) segments(start, n uint64) Segments[T] {
	if n == 0 {
		return Segments[T]{}
	}

	first := min(n, uint64(len(b.buffer))-start)
	s := Segments[T]{First: Block[T](b.buffer[start : start+first : start+first])}
	if second := n - first; second > 0 {
		s.Second = Block[T](b.buffer[:second:second])
	}
	return s
}

// AdvanceWrite publishes n slots written directly through WriteBlock or
// WriteSegments (producer only) and returns the number published.
//
// Requests beyond the free space are clamped to it; n <= 0 or a full
// buffer publishes nothing.
func (b *Buffer[T, I, P]) AdvanceWrite(n int) int {
	if n <= 0 {
		return 0
	}

	tail := P(&b.tail).LoadRelaxed()
	k := min(uint64(n), b.writable(tail, uint64(n)))
	if k == 0 {
		return 0
	}

	P(&b.tail).StoreRelease((tail + k) & b.mask)
	return int(k)
}

// AdvanceRead releases n slots consumed directly through ReadBlock or
// ReadSegments (consumer only) and returns the number released. The slots
// are not cleared; use Discard for that.
//
// Requests beyond the buffered data are clamped to it; n <= 0 or an empty
// buffer releases nothing.
func (b *Buffer[T, I, P]) AdvanceRead(n int) int {
	if n <= 0 {
		return 0
	}

	head := P(&b.head).LoadRelaxed()
	k := min(uint64(n), b.readable(head, uint64(n)))
	if k == 0 {
		return 0
	}

	P(&b.head).StoreRelease((head + k) & b.mask)
	return int(k)
}

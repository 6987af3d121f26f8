// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

// Options configures buffer creation and mode selection.
type Options struct {
	// Index mode: plain integers instead of atomics
	singleThreaded bool

	// Capacity (power of 2, one slot reserved)
	capacity int
}

// Builder creates buffers with fluent configuration.
//
// The builder selects the index mode from the declared threading
// constraint. By default buffers are concurrent.
//
// Example:
//
//	// Concurrent buffer (one producer goroutine, one consumer goroutine)
//	r := ringbuf.BuildRing[Sample](ringbuf.New(1024))
//
//	// Single-threaded buffer
//	l := ringbuf.BuildLocal[byte](ringbuf.New(4096).SingleThreaded())
type Builder struct {
	opts Options
}

// New creates a buffer builder with the given capacity.
//
// Capacity must be a power of 2 and is not rounded: the buffer holds at
// most capacity-1 elements.
//
// Panics if capacity is not a power of 2 or is less than 2.
//
// Example:
//
//	b := ringbuf.New(1024)
//	q := ringbuf.Build[int](b)
func New(capacity int) *Builder {
	mustCapacity(capacity)
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleThreaded declares that the producer and the consumer run on the
// same goroutine. Selects plain indices with no synchronization overhead.
func (b *Builder) SingleThreaded() *Builder {
	b.opts.singleThreaded = true
	return b
}

// Build creates a Queue[T] with automatic mode selection.
//
// Mode selection:
//
//	SingleThreaded → Local (plain indices)
//	default        → Ring (atomic indices, acquire/release)
//
// For concrete return types, use:
//   - BuildRing[T](b) → *Ring[T]
//   - BuildLocal[T](b) → *Local[T]
func Build[T any](b *Builder) Queue[T] {
	if b.opts.singleThreaded {
		return NewLocal[T](b.opts.capacity)
	}
	return NewRing[T](b.opts.capacity)
}

// BuildRing creates a concurrent buffer.
// Panics if the builder is configured with SingleThreaded().
func BuildRing[T any](b *Builder) *Ring[T] {
	if b.opts.singleThreaded {
		panic("ringbuf: BuildRing requires a builder without SingleThreaded()")
	}
	return NewRing[T](b.opts.capacity)
}

// BuildLocal creates a single-threaded buffer.
// Panics if the builder is not configured with SingleThreaded().
func BuildLocal[T any](b *Builder) *Local[T] {
	if !b.opts.singleThreaded {
		panic("ringbuf: BuildLocal requires SingleThreaded()")
	}
	return NewLocal[T](b.opts.capacity)
}

// isPow2 reports whether n is a power of 2.
func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// mustCapacity panics unless n is a valid buffer capacity.
func mustCapacity(n int) {
	if n < 2 || !isPow2(n) {
		panic("ringbuf: capacity must be a power of 2 >= 2")
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

import "unsafe"

// Block is a contiguous run of slots borrowed from a buffer's storage.
//
// A Block does not own its memory. It stays valid only until the next call
// that moves the index it was derived from: a write block until the next
// producer call, a read block until the next consumer call. The slice
// capacity equals its length, so appending to a Block never spills into
// slots owned by the other side.
type Block[T any] []T

// Len returns the number of slots in the block.
func (b Block[T]) Len() int { return len(b) }

// Empty reports whether the block has no slots.
func (b Block[T]) Empty() bool { return len(b) == 0 }

// Size returns the size of the block in bytes.
func (b Block[T]) Size() int {
	var zero T
	return len(b) * int(unsafe.Sizeof(zero))
}

// Segments describes a region of storage that may wrap around the end of
// the backing array.
//
// First starts at the index and runs at most to the physical end of
// storage. Second is non-empty only when the region wraps, and then always
// starts at slot zero.
type Segments[T any] struct {
	First  Block[T]
	Second Block[T]
}

// Len returns the total number of slots in both blocks.
func (s Segments[T]) Len() int { return len(s.First) + len(s.Second) }

// Empty reports whether both blocks are empty.
func (s Segments[T]) Empty() bool { return s.First.Empty() && s.Second.Empty() }

// Linear reports whether the region is a single contiguous run.
func (s Segments[T]) Linear() bool { return s.Second.Empty() }

// Size returns the total size of both blocks in bytes.
func (s Segments[T]) Size() int { return s.First.Size() + s.Second.Size() }

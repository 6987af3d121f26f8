// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

import "code.hybscloud.com/atomix"

// Index is the ordering-mode policy of a [Buffer].
//
// A mode supplies the representation of the read and write indices and the
// memory ordering of their loads and stores. I is the index value type
// embedded in the buffer; the constraint requires its pointer type to carry
// the methods, so the buffer calls them as P(&b.head).LoadAcquire().
//
// Two modes are provided:
//
//	AtomicIndex - concurrent mode, one producer and one consumer goroutine
//	PlainIndex  - single-threaded mode, no synchronization at all
type Index[I any] interface {
	*I

	// LoadRelaxed loads the index with no ordering guarantee.
	// Used by the owner of the index and by reporting queries.
	LoadRelaxed() uint64

	// LoadAcquire loads the index written by the other side. Storage
	// writes made before the matching StoreRelease are visible afterwards.
	LoadAcquire() uint64

	// StoreRelease publishes a new index value. Storage writes made before
	// the store become visible to an acquire load observing it.
	StoreRelease(v uint64)
}

// AtomicIndex is the concurrent-mode index.
type AtomicIndex struct {
	v atomix.Uint64
}

// LoadRelaxed implements [Index].
func (x *AtomicIndex) LoadRelaxed() uint64 { return x.v.LoadRelaxed() }

// LoadAcquire implements [Index].
func (x *AtomicIndex) LoadAcquire() uint64 { return x.v.LoadAcquire() }

// StoreRelease implements [Index].
func (x *AtomicIndex) StoreRelease(v uint64) { x.v.StoreRelease(v) }

// PlainIndex is the single-threaded index. Loads and stores are ordinary
// memory accesses; a buffer using it must not be shared between goroutines.
type PlainIndex struct {
	v uint64
}

// LoadRelaxed implements [Index].
func (x *PlainIndex) LoadRelaxed() uint64 { return x.v }

// LoadAcquire implements [Index].
func (x *PlainIndex) LoadAcquire() uint64 { return x.v }

// StoreRelease implements [Index].
func (x *PlainIndex) StoreRelease(v uint64) { x.v = v }

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringbuf provides a fixed-capacity single-producer single-consumer
// ring buffer with a zero-copy access surface.
//
// The buffer is generic over its element type and over an index mode:
//
//   - Ring:  atomic indices, one producer and one consumer goroutine
//   - Local: plain indices, single goroutine, no synchronization cost
//
// Both modes share the same arithmetic and the same API. Only the index
// representation and the ordering of its loads and stores differ.
//
// # Quick Start
//
// Direct constructors:
//
//	r := ringbuf.NewRing[Sample](1024)   // concurrent
//	l := ringbuf.NewLocal[byte](4096)    // single-threaded
//
// Builder API selects the mode from constraints:
//
//	q := ringbuf.Build[Sample](ringbuf.New(1024))                   // → Ring
//	q := ringbuf.Build[byte](ringbuf.New(4096).SingleThreaded())    // → Local
//
// # Basic Usage
//
// Single elements:
//
//	r := ringbuf.NewRing[int](8)
//
//	if !r.Push(42) {
//	    // Buffer is full - retry later
//	}
//
//	v, ok := r.Pop()
//	if !ok {
//	    // Buffer is empty - retry later
//	}
//
// Bulk transfer copies as much as fits and reports the count. Input that
// does not fit is dropped, never written over unread data:
//
//	n := r.Append(samples)   // n <= len(samples)
//	m := r.Take(out)         // m <= len(out)
//
// # Zero-Copy Access
//
// The producer can fill storage in place and then publish:
//
//	blk := r.WriteBlock()          // contiguous run up to end of storage
//	n := fill(blk)
//	r.AdvanceWrite(n)
//
//	seg := r.WriteSegments()       // all free space, one or two runs
//	n := fill(seg.First)
//	if n == len(seg.First) {
//	    n += fill(seg.Second)
//	}
//	r.AdvanceWrite(n)
//
// The consumer mirrors this with ReadBlock, ReadSegments and AdvanceRead.
// A Block is a slice borrowed from the buffer; it is valid until the next
// call that moves the same index and must not be retained.
//
// AdvanceWrite and AdvanceRead clamp n to the space actually available and
// return the number of slots published.
//
// # Capacity
//
// Capacity must be a power of 2 so that wrap-around is a bitmask. One slot
// is reserved to tell a full buffer from an empty one:
//
//	r := ringbuf.NewRing[int](16)   // Cap() == 16, holds at most 15
//	r := ringbuf.NewRing[int](12)   // panics
//
// # Memory Ordering
//
// The write index is stored only by the producer and the read index only
// by the consumer. Each side publishes its index with a release store and
// reads the other side's index with an acquire load:
//
//	producer                          consumer
//	--------                          --------
//	buf[tail] = v                     t := LoadAcquire(tail)
//	StoreRelease(tail, tail+1) ─────► v := buf[head]     (head != t)
//	h := LoadAcquire(head)     ◄───── StoreRelease(head, head+1)
//	buf[tail] = w   (slot freed)
//
// A slot write that happens before the release of the write index is
// visible to the consumer once its acquire load observes that index. A
// slot read that happens before the release of the read index completes
// before the producer, having observed that index, reuses the slot. Len,
// Free, Empty and Full use relaxed loads: they are snapshots for reporting
// and are never used to decide an index store.
//
// # Error Handling
//
// Nothing blocks and nothing panics in normal operation:
//
//	Push, Move, PopInto     → bool
//	Pop                     → (zero-value, false) when empty
//	Enqueue, Dequeue        → ErrWouldBlock when full/empty
//	Append, Take, PeekInto  → count, possibly short
//
// [ErrWouldBlock] is sourced from [code.hybscloud.com/iox]. Retry loop
// with backoff:
//
//	backoff := iox.Backoff{}
//	for r.Enqueue(&v) != nil {
//	    backoff.Wait()
//	}
//
// Invalid capacity and builder misuse panic at construction.
//
// # Byte Streams
//
// [Stream] adapts a Ring of bytes to io.Reader, io.Writer, io.WriterTo and
// io.ReaderFrom without blocking. WriteTo and ReadFrom move data straight
// between ring storage and the peer.
//
// # Race Detection
//
// Go's race detector cannot observe the happens-before edges created by
// atomix acquire/release operations on the index, so it reports the slot
// accesses of a concurrent Ring as races. Concurrent tests are skipped
// when [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic indices with
// explicit memory ordering, [code.hybscloud.com/iox] for semantic errors,
// and golang.org/x/sys/cpu for cache-line padding.
package ringbuf

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

import "io"

var (
	_ io.Reader     = (*Stream)(nil)
	_ io.WriterTo   = (*Stream)(nil)
	_ io.Writer     = (*Stream)(nil)
	_ io.ReaderFrom = (*Stream)(nil)
)

// maxConsecutiveEmptyReads bounds ReadFrom against readers that keep
// returning (0, nil).
const maxConsecutiveEmptyReads = 100

// Stream is a non-blocking byte stream over a [Ring] of bytes.
//
// Write and ReadFrom are producer methods; Read and WriteTo are consumer
// methods. One goroutine may write while another reads. Nothing blocks:
// when the ring is full or empty the call returns [ErrWouldBlock] and the
// caller decides how to wait.
//
// Example:
//
//	s := ringbuf.NewStream(ringbuf.NewRing[byte](4096))
//
//	// Serial receive path
//	if _, err := s.ReadFrom(port); err != nil && !ringbuf.IsWouldBlock(err) {
//	    return err
//	}
//
//	// Frame parser
//	n, err := s.Read(frame)
type Stream struct {
	r *Ring[byte]
}

// NewStream wraps r as a byte stream.
func NewStream(r *Ring[byte]) *Stream {
	return &Stream{r: r}
}

// Ring returns the underlying ring buffer.
func (s *Stream) Ring() *Ring[byte] {
	return s.r
}

// Read moves buffered bytes into p (consumer only).
// Returns (0, ErrWouldBlock) if nothing is buffered and len(p) > 0.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := s.r.Take(p)
	if n == 0 {
		return 0, ErrWouldBlock
	}
	return n, nil
}

// Write appends as much of p as fits (producer only).
// Returns ErrWouldBlock together with the count if p did not fit whole.
func (s *Stream) Write(p []byte) (int, error) {
	n := s.r.Append(p)
	if n < len(p) {
		return n, ErrWouldBlock
	}
	return n, nil
}

// WriteTo writes the bytes buffered at the time of the call to w straight
// from ring storage (consumer only). Bytes accepted by w are released as
// soon as each run is written.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	seg := s.r.ReadSegments()
	var total int64
	for _, blk := range [2]Block[byte]{seg.First, seg.Second} {
		if blk.Empty() {
			continue
		}
		n, err := w.Write(blk)
		if n > 0 {
			total += int64(s.r.AdvanceRead(n))
		}
		if err != nil {
			return total, err
		}
		if n < len(blk) {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

// ReadFrom reads from rd straight into ring storage until rd reports
// io.EOF or the ring is full (producer only).
//
// Returns nil on io.EOF and ErrWouldBlock when the ring fills first.
// Any other error from rd, including its own ErrWouldBlock, is returned
// as is.
func (s *Stream) ReadFrom(rd io.Reader) (int64, error) {
	var total int64
	empty := 0
	for {
		blk := s.r.WriteBlock()
		if blk.Empty() {
			return total, ErrWouldBlock
		}

		n, err := rd.Read(blk)
		if n > 0 {
			total += int64(s.r.AdvanceWrite(n))
			empty = 0
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		if n == 0 {
			empty++
			if empty >= maxConsecutiveEmptyReads {
				return total, io.ErrNoProgress
			}
		}
	}
}

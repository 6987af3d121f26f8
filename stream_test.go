// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"code.hybscloud.com/ringbuf"
)

var errBoom = errors.New("boom")

// shortWriter accepts at most limit bytes per call without reporting an error.
type shortWriter struct {
	limit int
	buf   bytes.Buffer
}

func (w *shortWriter) Write(p []byte) (int, error) {
	n := min(len(p), w.limit)
	w.buf.Write(p[:n])
	return n, nil
}

// failWriter accepts n bytes and then fails.
type failWriter struct{ n int }

func (w failWriter) Write(p []byte) (int, error) {
	return min(len(p), w.n), errBoom
}

// stallReader never produces data and never fails.
type stallReader struct{ calls int }

func (r *stallReader) Read([]byte) (int, error) {
	r.calls++
	return 0, nil
}

// wrappedStream returns a stream over a ring of 16 bytes whose indices sit
// at slot 10, so the next 12 bytes straddle the end of storage.
func wrappedStream(t *testing.T) *ringbuf.Stream {
	t.Helper()
	s := ringbuf.NewStream(ringbuf.NewRing[byte](16))
	if n, err := s.Write([]byte("0123456789")); n != 10 || err != nil {
		t.Fatalf("Write filler: got (%d, %v)", n, err)
	}
	if n, err := s.Read(make([]byte, 10)); n != 10 || err != nil {
		t.Fatalf("Read filler: got (%d, %v)", n, err)
	}
	return s
}

// =============================================================================
// Read and Write
// =============================================================================

func TestStreamReadWrite(t *testing.T) {
	r := ringbuf.NewRing[byte](16)
	s := ringbuf.NewStream(r)
	if s.Ring() != r {
		t.Fatal("Ring: got a different ring")
	}

	if n, err := s.Read(nil); n != 0 || err != nil {
		t.Fatalf("Read(nil): got (%d, %v), want (0, nil)", n, err)
	}
	if n, err := s.Read(make([]byte, 4)); n != 0 || !ringbuf.IsWouldBlock(err) {
		t.Fatalf("Read on empty: got (%d, %v), want (0, ErrWouldBlock)", n, err)
	}

	if n, err := s.Write([]byte("hello")); n != 5 || err != nil {
		t.Fatalf("Write: got (%d, %v)", n, err)
	}
	buf := make([]byte, 3)
	if n, err := s.Read(buf); n != 3 || err != nil || string(buf) != "hel" {
		t.Fatalf("Read: got (%d, %v) %q", n, err, buf[:n])
	}
	if n, _ := s.Read(buf); string(buf[:n]) != "lo" {
		t.Fatalf("Read rest: got %q", buf[:n])
	}
}

// TestStreamWriteOverflow verifies a partial Write reports how much was
// accepted together with ErrWouldBlock.
func TestStreamWriteOverflow(t *testing.T) {
	s := ringbuf.NewStream(ringbuf.NewRing[byte](16))

	n, err := s.Write([]byte("0123456789abcdefXYZ"))
	if n != 15 || !errors.Is(err, ringbuf.ErrWouldBlock) {
		t.Fatalf("Write: got (%d, %v), want (15, ErrWouldBlock)", n, err)
	}
	if !ringbuf.IsSemantic(err) {
		t.Fatalf("IsSemantic(%v): got false", err)
	}
	if n, err := s.Write(nil); n != 0 || err != nil {
		t.Fatalf("Write(nil) on full: got (%d, %v), want (0, nil)", n, err)
	}

	out := make([]byte, 32)
	n, _ = s.Read(out)
	if string(out[:n]) != "0123456789abcde" {
		t.Fatalf("Read: got %q", out[:n])
	}
}

// =============================================================================
// WriteTo
// =============================================================================

func TestStreamWriteToWrapped(t *testing.T) {
	s := wrappedStream(t)
	s.Write([]byte("Hello world!"))
	if s.Ring().ReadSegments().Linear() {
		t.Fatal("expected buffered data to wrap")
	}

	var dst bytes.Buffer
	n, err := s.WriteTo(&dst)
	if n != 12 || err != nil {
		t.Fatalf("WriteTo: got (%d, %v), want (12, nil)", n, err)
	}
	if dst.String() != "Hello world!" {
		t.Fatalf("WriteTo: got %q", dst.String())
	}
	if !s.Ring().Empty() {
		t.Fatalf("ring not drained: Len=%d", s.Ring().Len())
	}

	// Nothing buffered: no writes, no error
	if n, err := s.WriteTo(&dst); n != 0 || err != nil {
		t.Fatalf("WriteTo on empty: got (%d, %v)", n, err)
	}
}

// TestStreamWriteToShort verifies a writer that stops early yields
// io.ErrShortWrite and only its accepted bytes are released.
func TestStreamWriteToShort(t *testing.T) {
	s := wrappedStream(t)
	s.Write([]byte("Hello world!"))

	w := &shortWriter{limit: 4}
	n, err := s.WriteTo(w)
	if n != 4 || !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("WriteTo: got (%d, %v), want (4, io.ErrShortWrite)", n, err)
	}
	if w.buf.String() != "Hell" {
		t.Fatalf("writer got %q", w.buf.String())
	}
	if s.Ring().Len() != 8 {
		t.Fatalf("Len: got %d, want 8", s.Ring().Len())
	}

	rest := make([]byte, 16)
	k, _ := s.Read(rest)
	if string(rest[:k]) != "o world!" {
		t.Fatalf("Read rest: got %q", rest[:k])
	}
}

func TestStreamWriteToError(t *testing.T) {
	s := ringbuf.NewStream(ringbuf.NewRing[byte](16))
	s.Write([]byte("abcdef"))

	n, err := s.WriteTo(failWriter{n: 2})
	if n != 2 || !errors.Is(err, errBoom) {
		t.Fatalf("WriteTo: got (%d, %v), want (2, boom)", n, err)
	}
	if s.Ring().Len() != 4 {
		t.Fatalf("Len: got %d, want 4", s.Ring().Len())
	}
}

// TestStreamCopy verifies io.Copy drains a stream through WriteTo.
func TestStreamCopy(t *testing.T) {
	s := wrappedStream(t)
	s.Write([]byte("copy me"))

	var dst strings.Builder
	n, err := io.Copy(&dst, s)
	if n != 7 || err != nil || dst.String() != "copy me" {
		t.Fatalf("io.Copy: got (%d, %v) %q", n, err, dst.String())
	}
}

// =============================================================================
// ReadFrom
// =============================================================================

func TestStreamReadFrom(t *testing.T) {
	tests := []struct {
		name string
		rd   io.Reader
	}{
		{"Plain", strings.NewReader("hello")},
		{"OneByte", iotest.OneByteReader(strings.NewReader("hello"))},
		{"DataErr", iotest.DataErrReader(strings.NewReader("hello"))},
		{"Half", iotest.HalfReader(strings.NewReader("hello"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ringbuf.NewStream(ringbuf.NewRing[byte](16))
			n, err := s.ReadFrom(tt.rd)
			if n != 5 || err != nil {
				t.Fatalf("ReadFrom: got (%d, %v), want (5, nil)", n, err)
			}
			out := make([]byte, 8)
			k, _ := s.Read(out)
			if string(out[:k]) != "hello" {
				t.Fatalf("Read: got %q", out[:k])
			}
		})
	}
}

// TestStreamReadFromOverflow verifies ReadFrom stops with ErrWouldBlock
// when the ring fills before the reader ends.
func TestStreamReadFromOverflow(t *testing.T) {
	s := ringbuf.NewStream(ringbuf.NewRing[byte](16))
	rd := strings.NewReader(strings.Repeat("x", 32))

	n, err := s.ReadFrom(rd)
	if n != 15 || !ringbuf.IsWouldBlock(err) {
		t.Fatalf("ReadFrom: got (%d, %v), want (15, ErrWouldBlock)", n, err)
	}
	if rd.Len() != 17 {
		t.Fatalf("reader remaining: got %d, want 17", rd.Len())
	}
	if !s.Ring().Full() {
		t.Fatal("expected full ring")
	}
}

// TestStreamReadFromWrapped verifies ReadFrom continues past the end of
// storage in a second read.
func TestStreamReadFromWrapped(t *testing.T) {
	s := wrappedStream(t)

	n, err := s.ReadFrom(strings.NewReader("Hello world!"))
	if n != 12 || err != nil {
		t.Fatalf("ReadFrom: got (%d, %v), want (12, nil)", n, err)
	}
	seg := s.Ring().ReadSegments()
	if seg.First.Len() != 6 || seg.Second.Len() != 6 {
		t.Fatalf("ReadSegments: %d+%d, want 6+6", seg.First.Len(), seg.Second.Len())
	}

	var dst bytes.Buffer
	s.WriteTo(&dst)
	if dst.String() != "Hello world!" {
		t.Fatalf("round trip: got %q", dst.String())
	}
}

func TestStreamReadFromNoProgress(t *testing.T) {
	s := ringbuf.NewStream(ringbuf.NewRing[byte](16))
	rd := &stallReader{}

	n, err := s.ReadFrom(rd)
	if n != 0 || !errors.Is(err, io.ErrNoProgress) {
		t.Fatalf("ReadFrom: got (%d, %v), want (0, io.ErrNoProgress)", n, err)
	}
	if rd.calls != 100 {
		t.Fatalf("reader calls: got %d, want 100", rd.calls)
	}
}

func TestStreamReadFromError(t *testing.T) {
	s := ringbuf.NewStream(ringbuf.NewRing[byte](16))

	n, err := s.ReadFrom(iotest.ErrReader(errBoom))
	if n != 0 || !errors.Is(err, errBoom) {
		t.Fatalf("ReadFrom: got (%d, %v), want (0, boom)", n, err)
	}

	// Data delivered with the error is kept
	rd := io.MultiReader(strings.NewReader("abc"), iotest.ErrReader(errBoom))
	n, err = s.ReadFrom(rd)
	if n != 3 || !errors.Is(err, errBoom) {
		t.Fatalf("ReadFrom: got (%d, %v), want (3, boom)", n, err)
	}
	if s.Ring().Len() != 3 {
		t.Fatalf("Len: got %d, want 3", s.Ring().Len())
	}
	if ringbuf.IsNonFailure(err) {
		t.Fatalf("IsNonFailure(%v): got true", err)
	}
}

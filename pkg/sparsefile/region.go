package sparsefile

import (
	"fmt"
	"io"
)

const defaultBufferSize = 64 * 1024

// Region is a contiguous, non-empty segment of a byte stream: either a run
// of zero bytes (a hole) or a run of data whose first byte is non-zero.
type Region struct {
	data []byte
	size int64
}

// IsHole reports whether the region is a run of zero bytes.
func (r Region) IsHole() bool { return r.data == nil }

// Bytes returns the data run, or nil for a hole. The slice aliases the
// reader's internal buffer and is valid only until the next call to Next.
func (r Region) Bytes() []byte { return r.data }

// Size returns the region length in bytes.
func (r Region) Size() int64 { return r.size }

func (r Region) String() string {
	if r.IsHole() {
		return fmt.Sprintf("hole(%d)", r.size)
	}
	return fmt.Sprintf("data(%d)", r.size)
}

// Reader splits a byte stream into regions by content inspection, so it
// works on any io.Reader regardless of filesystem sparse-extent support.
// Runs longer than the internal buffer arrive as consecutive regions of the
// same kind; consumers must treat those as equivalent to one coalesced run.
type Reader struct {
	src    io.Reader
	buf    []byte
	next   int   // start of the next unclassified byte in buf
	filled int   // valid bytes in buf from the most recent read
	err    error // deferred read error, surfaced once the buffer drains
}

// NewReader returns a Reader over src. The current position of src is left
// untouched; classification starts at whatever src yields next.
func NewReader(src io.Reader, opts ...Option) *Reader {
	o := makeOptions(opts...)
	return &Reader{src: src, buf: make([]byte, o.bufferSize)}
}

// Next returns the next region of the stream, or io.EOF once the source is
// exhausted. A Data region's bytes must be consumed before calling Next
// again. Read errors are fatal: the same error is returned on every
// subsequent call.
func (r *Reader) Next() (Region, error) {
	if r.next == r.filled {
		if err := r.fill(); err != nil {
			return Region{}, err
		}
	}
	rest := r.buf[r.next:r.filled]
	if rest[0] == 0 {
		n := zeroSpan(rest)
		r.next += n
		return Region{size: int64(n)}, nil
	}
	n := dataSpan(rest)
	r.next += n
	return Region{data: rest[:n], size: int64(n)}, nil
}

func (r *Reader) fill() error {
	if r.err != nil {
		return r.err
	}
	n, err := r.src.Read(r.buf)
	if n > 0 {
		if err != nil {
			// Deliver the bytes first; the error waits for the next refill.
			r.err = err
		}
		r.next, r.filled = 0, n
		return nil
	}
	if err == nil {
		// A zero-byte read signals end of stream.
		err = io.EOF
	}
	r.err = err
	return err
}

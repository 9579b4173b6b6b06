package sparsefile

import (
	"io"
)

// Sink is the destination of a sparse copy. *os.File satisfies it.
type Sink interface {
	io.WriteSeeker
	Truncate(size int64) error
}

// Writer reconstructs a file from data and hole regions. Data bytes are
// buffered and written verbatim. Holes accumulate in a pending counter and
// are realized as a single forward seek right before the next data write,
// so consecutive holes coalesce into one gap. A trailing hole is
// materialized by Close through an explicit length change, because a seek
// with nothing written after it does not extend the file.
type Writer struct {
	dst     Sink
	buf     []byte // data accepted by Write but not yet flushed
	pending int64  // hole bytes not yet realized
	written int64  // bytes physically written to dst
	skipped int64  // hole bytes realized as gaps
	minHole int64
}

// NewWriter returns a Writer appending at the current position of dst,
// normally offset 0 of a fresh or truncated file. The position is not
// touched until data or holes are flushed.
func NewWriter(dst Sink, opts ...Option) *Writer {
	o := makeOptions(opts...)
	return &Writer{
		dst:     dst,
		buf:     make([]byte, 0, o.bufferSize),
		minHole: o.minHole,
	}
}

// Write appends p to the output stream. Any pending holes are realized
// first: buffered data is flushed before the gap seek, never after, since
// seeking with unflushed bytes would reorder the output.
func (w *Writer) Write(p []byte) (int, error) {
	if w.pending > 0 && len(p) > 0 {
		if len(w.buf) > 0 {
			if err := w.flush(); err != nil {
				return 0, err
			}
		}
		if err := w.realizeHoles(); err != nil {
			return 0, err
		}
	}
	n := 0
	for n < len(p) {
		if len(w.buf) == cap(w.buf) {
			if err := w.flush(); err != nil {
				return n, err
			}
		}
		c := copy(w.buf[len(w.buf):cap(w.buf)], p[n:])
		w.buf = w.buf[:len(w.buf)+c]
		n += c
	}
	return n, nil
}

// Extend records size bytes of implicit zero content. No I/O happens until
// the next Write or Close.
func (w *Writer) Extend(size int64) {
	if size > 0 {
		w.pending += size
	}
}

// Close flushes buffered data and, if the stream ended in a hole, sets the
// final file length explicitly. It does not close the underlying sink and
// must be called exactly once.
func (w *Writer) Close() error {
	if err := w.flush(); err != nil {
		return err
	}
	if w.pending > 0 {
		if err := w.dst.Truncate(w.written + w.skipped + w.pending); err != nil {
			return err
		}
		w.skipped += w.pending
		w.pending = 0
	}
	return nil
}

// Written returns the bytes physically written to the sink so far.
func (w *Writer) Written() int64 { return w.written }

// Skipped returns the hole bytes realized as gaps instead of writes.
func (w *Writer) Skipped() int64 { return w.skipped }

// realizeHoles turns the pending hole bytes into a forward seek, or into
// literal zeros when the run is below the configured minimum hole size.
func (w *Writer) realizeHoles() error {
	if w.pending < w.minHole {
		return w.fillZeros()
	}
	if _, err := w.dst.Seek(w.pending, io.SeekCurrent); err != nil {
		return err
	}
	w.skipped += w.pending
	w.pending = 0
	return nil
}

func (w *Writer) fillZeros() error {
	for w.pending > 0 {
		n := int64(len(zeroBuf))
		if w.pending < n {
			n = w.pending
		}
		if err := w.writeAll(zeroBuf[:n]); err != nil {
			return err
		}
		w.pending -= n
	}
	return nil
}

// flush writes all buffered data to the sink.
func (w *Writer) flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	if err := w.writeAll(w.buf); err != nil {
		return err
	}
	w.buf = w.buf[:0]
	return nil
}

// writeAll hands p to the sink in one call. A write that reports fewer
// bytes than requested without an error breaks the sink's atomicity
// contract and is surfaced as io.ErrShortWrite, distinct from an I/O error.
func (w *Writer) writeAll(p []byte) error {
	n, err := w.dst.Write(p)
	w.written += int64(n)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

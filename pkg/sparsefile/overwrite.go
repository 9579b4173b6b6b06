package sparsefile

import (
	"bytes"
	"fmt"
	"io"
)

// ReadSink is a Sink whose existing content can be read back, allowing
// in-place comparison. *os.File satisfies it.
type ReadSink interface {
	Sink
	io.Reader
}

// Overwrite updates dst in place so its content equals src, rewriting only
// the buffer-sized blocks that differ and leaving identical blocks
// untouched. On copy-on-write filesystems this avoids invalidating shared
// extents. Any stale destination content beyond the source length is
// truncated away. Returns the bytes rewritten and the bytes left in place.
func Overwrite(dst ReadSink, src io.Reader, opts ...Option) (written int64, skipped int64, err error) {
	o := makeOptions(opts...)
	srcBuf := make([]byte, o.bufferSize)
	dstBuf := make([]byte, o.bufferSize)

	pos, err := dst.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to seek current: %w", err)
	}
	for {
		nr, er := src.Read(srcBuf)
		if nr == 0 && er == nil {
			// A zero-byte read signals end of stream.
			er = io.EOF
		}
		if nr > 0 {
			chunk := srcBuf[:nr]
			nd, _ := dst.Read(dstBuf[:nr]) // a short read just means fewer bytes can match
			if nd > 0 && bytes.Equal(dstBuf[:nd], chunk[:nd]) {
				pos += int64(nd)
				skipped += int64(nd)
				chunk = chunk[nd:]
			}
			if len(chunk) > 0 {
				// The comparison read moved the offset; rewind before writing.
				if _, es := dst.Seek(pos, io.SeekStart); es != nil {
					return written, skipped, es
				}
				nw, ew := dst.Write(chunk)
				written += int64(nw)
				pos += int64(nw)
				if ew != nil {
					return written, skipped, ew
				}
				if nw != len(chunk) {
					return written, skipped, io.ErrShortWrite
				}
			}
		}
		if er != nil {
			if er == io.EOF {
				break
			}
			return written, skipped, er
		}
	}
	if err := dst.Truncate(pos); err != nil {
		return written, skipped, err
	}
	return written, skipped, nil
}

package sparsepack

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/sparsetools/sparsecp/pkg/sparsefile"
)

// Unpack replays the record stream from src into dst, recreating holes as
// gaps instead of zero writes. It reports the bytes physically written and
// the bytes skipped as holes. Any malformed header or record aborts with an
// error naming the defect; the destination is then incomplete and must be
// treated as invalid.
func Unpack(dst sparsefile.Sink, src io.Reader, opts ...Option) (written int64, skipped int64, err error) {
	o := makeOptions(opts...)

	header := make([]byte, len(Magic)+1)
	if _, err := io.ReadFull(src, header); err != nil {
		return 0, 0, fmt.Errorf("reading archive header: %w", err)
	}
	if string(header[:len(Magic)]) != Magic {
		return 0, 0, fmt.Errorf("not a sparse archive: bad magic %q", header[:len(Magic)])
	}
	if header[len(Magic)] != Version {
		return 0, 0, fmt.Errorf("unsupported archive version %d", header[len(Magic)])
	}

	zr, err := zstd.NewReader(src)
	if err != nil {
		return 0, 0, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer zr.Close()

	w := sparsefile.NewWriter(dst, sparsefile.WithBufferSize(o.bufferSize))
	var hdr [9]byte
	for {
		if _, err := io.ReadFull(zr, hdr[:1]); err != nil {
			if err == io.EOF {
				break
			}
			return w.Written(), w.Skipped(), fmt.Errorf("reading record tag: %w", err)
		}
		if _, err := io.ReadFull(zr, hdr[1:]); err != nil {
			return w.Written(), w.Skipped(), fmt.Errorf("truncated record header: %w", noEOF(err))
		}
		size := int64(binary.BigEndian.Uint64(hdr[1:]))
		if size < 0 {
			return w.Written(), w.Skipped(), fmt.Errorf("corrupt record size %d", uint64(size))
		}

		switch hdr[0] {
		case tagHole:
			o.printf("unpacking hole(%d)\n", size)
			w.Extend(size)
		case tagData:
			o.printf("unpacking data(%d)\n", size)
			n, err := io.Copy(w, io.LimitReader(zr, size))
			if err != nil {
				return w.Written(), w.Skipped(), err
			}
			if n != size {
				return w.Written(), w.Skipped(), fmt.Errorf("truncated data record: %d of %d bytes", n, size)
			}
		default:
			return w.Written(), w.Skipped(), fmt.Errorf("unknown record tag %#x", hdr[0])
		}
	}

	if err := w.Close(); err != nil {
		return w.Written(), w.Skipped(), err
	}
	return w.Written(), w.Skipped(), nil
}

// noEOF upgrades a bare io.EOF to io.ErrUnexpectedEOF so a stream that
// stops mid-record never looks like a clean end.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

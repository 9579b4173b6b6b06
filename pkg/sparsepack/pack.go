// Package sparsepack reads and writes a stream archive that preserves file
// sparseness across pipes and networks, where plain copying would
// materialize every hole.
//
// Format:
//   - Header, uncompressed: 8-byte magic "sparsecp" + one version byte.
//   - Body, a zstd stream of records: tag 'd' (big-endian uint64 length,
//     then that many payload bytes) or tag 'h' (big-endian uint64 length,
//     no payload). A clean end of the zstd stream ends the archive.
//
// Holes carry no explicit offsets and the archive stores no total length:
// records replay in order, and a trailing hole is restored by the sparse
// writer as a final length change.
package sparsepack

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/sparsetools/sparsecp/pkg/sparsefile"
)

const (
	// Magic identifies the archive. It precedes the compressed stream so
	// the file type is recognizable without a zstd decoder.
	Magic = "sparsecp"
	// Version is the format version this package reads and writes.
	Version = 1

	tagData = 'd'
	tagHole = 'h'
)

// Pack scans src for data and hole regions and writes them to dst as a
// compressed record stream. It reports the data bytes and hole bytes
// encoded. An archive cut short by an error must be discarded.
func Pack(dst io.Writer, src io.Reader, opts ...Option) (data int64, holes int64, err error) {
	o := makeOptions(opts...)

	header := append([]byte(Magic), Version)
	if _, err := dst.Write(header); err != nil {
		return 0, 0, fmt.Errorf("writing archive header: %w", err)
	}

	zw, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(o.level)))
	if err != nil {
		return 0, 0, fmt.Errorf("creating zstd writer: %w", err)
	}

	regions := sparsefile.NewReader(src, sparsefile.WithBufferSize(o.bufferSize))
	for {
		region, er := regions.Next()
		if er == io.EOF {
			break
		}
		if er != nil {
			zw.Close()
			return data, holes, fmt.Errorf("reading source: %w", er)
		}
		o.printf("packing %v\n", region)
		if region.IsHole() {
			if err := writeRecord(zw, tagHole, region.Size(), nil); err != nil {
				zw.Close()
				return data, holes, err
			}
			holes += region.Size()
			continue
		}
		if err := writeRecord(zw, tagData, region.Size(), region.Bytes()); err != nil {
			zw.Close()
			return data, holes, err
		}
		data += region.Size()
	}

	if err := zw.Close(); err != nil {
		return data, holes, fmt.Errorf("closing archive stream: %w", err)
	}
	return data, holes, nil
}

func writeRecord(zw io.Writer, tag byte, size int64, payload []byte) error {
	var hdr [9]byte
	hdr[0] = tag
	binary.BigEndian.PutUint64(hdr[1:], uint64(size))
	if _, err := zw.Write(hdr[:]); err != nil {
		return fmt.Errorf("writing record header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := zw.Write(payload); err != nil {
			return fmt.Errorf("writing record payload: %w", err)
		}
	}
	return nil
}

package sparsefile

import (
	"io"
)

// Copy duplicates src into dst, preserving runs of zero bytes as file holes
// instead of materializing them. It reports the bytes physically written
// and the bytes skipped as holes; on success written+skipped equals the
// source length. The destination is expected to be fresh or truncated, with
// its offset at the start. On error the destination is left as-is and must
// be treated as invalid by the caller.
func Copy(dst Sink, src io.Reader, opts ...Option) (written int64, skipped int64, err error) {
	r := NewReader(src, opts...)
	w := NewWriter(dst, opts...)

	for {
		region, er := r.Next()
		if er == io.EOF {
			break
		}
		if er != nil {
			return w.Written(), w.Skipped(), er
		}
		if region.IsHole() {
			w.Extend(region.Size())
			continue
		}
		if _, ew := w.Write(region.Bytes()); ew != nil {
			return w.Written(), w.Skipped(), ew
		}
	}

	if err := w.Close(); err != nil {
		return w.Written(), w.Skipped(), err
	}
	return w.Written(), w.Skipped(), nil
}

package sparsefile

import (
	"io"
)

// CopyDense duplicates src into dst byte for byte, with no hole detection:
// zero runs end up physically written. A write that completes without
// error but reports fewer bytes than requested aborts with
// io.ErrShortWrite.
func CopyDense(dst io.Writer, src io.Reader, opts ...Option) (written int64, err error) {
	o := makeOptions(opts...)
	buf := make([]byte, o.bufferSize)
	for {
		n, er := src.Read(buf)
		if n > 0 {
			wn, ew := dst.Write(buf[:n])
			written += int64(wn)
			if ew != nil {
				return written, ew
			}
			if wn != n {
				return written, io.ErrShortWrite
			}
		}
		if er == io.EOF {
			return written, nil
		}
		if er != nil {
			return written, er
		}
	}
}

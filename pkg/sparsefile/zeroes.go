package sparsefile

import "bytes"

var zeroBuf = make([]byte, defaultBufferSize)

// zeroSpan returns the length of the zero run at the start of p.
func zeroSpan(p []byte) int {
	// bytes.Equal is optimized version, 10x faster than simple loop
	n := 0
	for len(p)-n >= len(zeroBuf) && bytes.Equal(p[n:n+len(zeroBuf)], zeroBuf) {
		n += len(zeroBuf)
	}
	for n < len(p) && p[n] == 0 {
		n++
	}
	return n
}

// dataSpan returns the length of the zero-free run at the start of p.
func dataSpan(p []byte) int {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		return i
	}
	return len(p)
}

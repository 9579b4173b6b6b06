package sparsefile

type options struct {
	bufferSize int
	minHole    int64
}

type Option func(opts *options)

func makeOptions(opts ...Option) *options {
	res := &options{
		bufferSize: defaultBufferSize,
	}

	for _, o := range opts {
		o(res)
	}

	return res
}

// WithBufferSize sets the capacity of the read and write buffers.
func WithBufferSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// WithMinHoleSize sets the shortest zero run that becomes a hole in the
// destination; shorter runs are written out as literal zeros. The default
// of zero keeps every hole sparse.
func WithMinHoleSize(size int64) Option {
	return func(o *options) {
		if size > 0 {
			o.minHole = size
		}
	}
}

package sparsepack

type options struct {
	level      int
	bufferSize int
	printf     func(fmt string, argv ...any)
}

type Option func(opts *options)

func makeOptions(opts ...Option) *options {
	res := &options{
		level:  1,
		printf: func(fmt string, argv ...any) {},
	}

	for _, o := range opts {
		o(res)
	}

	return res
}

// WithLevel sets the zstd encoder level (1..22) used while packing.
func WithLevel(level int) Option {
	return func(o *options) {
		if level > 0 {
			o.level = level
		}
	}
}

// WithBufferSize sets the region scan buffer used while packing and the
// write buffer used while unpacking.
func WithBufferSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// WithLogFunction routes per-record diagnostics to the given printf.
// Silent by default.
func WithLogFunction(log func(fmt string, args ...any)) Option {
	return func(o *options) {
		o.printf = log
	}
}

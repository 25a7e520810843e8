// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize bounds the size of CUE input accepted by Compile (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

type (
	options struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option configures Compile and Decode.
	Option func(*options)
)

func defaultOptions() options {
	return options{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
		filename:    "<input>",
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxFileSize sets the maximum accepted input size in bytes.
func WithMaxFileSize(size int64) Option {
	return func(o *options) {
		o.maxFileSize = size
	}
}

// WithConcrete sets whether every value must be concrete after unification.
// Config files leave optional fields unset and pass false.
func WithConcrete(concrete bool) Option {
	return func(o *options) {
		o.concrete = concrete
	}
}

// WithFilename names the input in positions and error messages.
func WithFilename(name string) Option {
	return func(o *options) {
		if name != "" {
			o.filename = name
		}
	}
}

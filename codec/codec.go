package codec

// Codec is the common interface for all byte-stream codecs
type Codec interface {
	// Encode compresses src
	Encode(src []byte, opts Options) ([]byte, error)

	// Decode restores the bytes produced by Encode
	Decode(data []byte) ([]byte, error)

	// Name returns the registry name (e.g. "huffman")
	Name() string

	// Extension returns the file extension including the dot (e.g. ".huf")
	Extension() string
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// BaseOptions provides common options for all codecs
type BaseOptions struct {
	// MaxInputSize bounds the number of input bytes a single Encode call
	// accepts. 0 means unlimited.
	MaxInputSize int64
}

// Validate validates base options
func (o *BaseOptions) Validate() error {
	if o.MaxInputSize < 0 {
		return ErrInvalidParameter
	}
	return nil
}

// InputLimit returns the configured input size limit
func (o *BaseOptions) InputLimit() int64 {
	return o.MaxInputSize
}

// InputLimit extracts the input size limit from any options value embedding
// BaseOptions. It returns 0 (unlimited) when opts carries no limit.
func InputLimit(opts Options) int64 {
	if l, ok := opts.(interface{ InputLimit() int64 }); ok {
		return l.InputLimit()
	}
	return 0
}

// CheckInputSize returns ErrInputTooLarge if n exceeds the limit in opts
func CheckInputSize(opts Options, n int) error {
	if limit := InputLimit(opts); limit > 0 && int64(n) > limit {
		return ErrInputTooLarge
	}
	return nil
}

package huffman

import (
	"github.com/cocosip/go-huffman-codec/codec"
)

// Options contains encoding options for the Huffman codec
type Options struct {
	codec.BaseOptions
}

// Validate validates the options
func (o *Options) Validate() error {
	return o.BaseOptions.Validate()
}

// Codec implements the codec.Codec interface for canonical Huffman coding
type Codec struct{}

// NewCodec creates a new Huffman codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode compresses src
func (c *Codec) Encode(src []byte, opts codec.Options) ([]byte, error) {
	if opts != nil {
		if err := opts.Validate(); err != nil {
			return nil, err
		}
		if err := codec.CheckInputSize(opts, len(src)); err != nil {
			return nil, err
		}
	}
	return EncodeBytes(src)
}

// Decode restores data produced by Encode
func (c *Codec) Decode(data []byte) ([]byte, error) {
	return DecodeBytes(data)
}

// Name returns the registry name
func (c *Codec) Name() string {
	return "huffman"
}

// Extension returns the file extension of Huffman-compressed files
func (c *Codec) Extension() string {
	return ".huf"
}

// init registers the codec with the default registry
func init() {
	codec.Register(NewCodec())
}

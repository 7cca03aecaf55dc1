// Package zstd registers a Zstandard byte codec next to the Huffman codec so
// compression ratios can be compared on the same input.
package zstd

import (
	"sync"

	"github.com/cocosip/go-huffman-codec/codec"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// DefaultLevel is used when Options.Level is 0
const DefaultLevel = 2

// Options contains encoding options for the zstd codec
type Options struct {
	codec.BaseOptions

	// Level selects the encoder speed/ratio trade-off:
	// 1 fastest, 2 default, 3 better compression, 4 best compression.
	// 0 means DefaultLevel.
	Level int
}

// NewOptions creates options with the default level
func NewOptions() *Options {
	return &Options{Level: DefaultLevel}
}

// Validate validates the options
func (o *Options) Validate() error {
	if err := o.BaseOptions.Validate(); err != nil {
		return err
	}
	if o.Level < 0 || o.Level > 4 {
		return errors.Wrapf(codec.ErrInvalidParameter, "zstd level %d out of range 1-4", o.Level)
	}
	return nil
}

func (o *Options) encoderLevel() zstd.EncoderLevel {
	if o == nil || o.Level == 0 {
		return zstd.EncoderLevel(DefaultLevel)
	}
	return zstd.EncoderLevel(o.Level)
}

// Codec implements the codec.Codec interface on top of klauspost/compress
type Codec struct {
	once    sync.Once
	decoder *zstd.Decoder
	initErr error
}

// NewCodec creates a new zstd codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode compresses src into a single zstd frame
func (c *Codec) Encode(src []byte, opts codec.Options) ([]byte, error) {
	var zopts *Options
	if opts != nil {
		if err := opts.Validate(); err != nil {
			return nil, err
		}
		if err := codec.CheckInputSize(opts, len(src)); err != nil {
			return nil, err
		}
		zopts, _ = opts.(*Options)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zopts.encoderLevel()))
	if err != nil {
		return nil, errors.Wrap(err, "zstd: create encoder")
	}
	defer enc.Close()

	return enc.EncodeAll(src, nil), nil
}

// Decode restores data produced by Encode
func (c *Codec) Decode(data []byte) ([]byte, error) {
	c.once.Do(func() {
		c.decoder, c.initErr = zstd.NewReader(nil)
	})
	if c.initErr != nil {
		return nil, errors.Wrap(c.initErr, "zstd: create decoder")
	}

	out, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "zstd: decode")
	}
	return out, nil
}

// Name returns the registry name
func (c *Codec) Name() string {
	return "zstd"
}

// Extension returns the file extension of zstd-compressed files
func (c *Codec) Extension() string {
	return ".zst"
}

func init() {
	codec.Register(NewCodec())
}

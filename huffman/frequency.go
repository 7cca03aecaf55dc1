package huffman

import (
	"io"

	"github.com/cocosip/go-huffman-codec/codec"
	"github.com/pkg/errors"
)

// Frequencies holds the occurrence count of every byte value
type Frequencies [256]uint64

// Add counts every byte of p
func (f *Frequencies) Add(p []byte) {
	for _, b := range p {
		f[b]++
	}
}

// Distinct returns the number of byte values with a non-zero count
func (f *Frequencies) Distinct() int {
	n := 0
	for _, c := range f {
		if c > 0 {
			n++
		}
	}
	return n
}

// Symbols returns the byte values with a non-zero count, in ascending order
func (f *Frequencies) Symbols() []byte {
	symbols := make([]byte, 0, 256)
	for s, c := range f {
		if c > 0 {
			symbols = append(symbols, byte(s))
		}
	}
	return symbols
}

// Total returns the sum of all counts
func (f *Frequencies) Total() uint64 {
	var total uint64
	for _, c := range f {
		total += c
	}
	return total
}

// CountFrequencies consumes r until io.EOF and returns the byte counts
// together with every byte read, in order. A positive limit bounds the number
// of bytes accepted; exceeding it fails with codec.ErrInputTooLarge.
func CountFrequencies(r io.ByteReader, limit int64) (Frequencies, []byte, error) {
	var freqs Frequencies
	var message []byte

	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Frequencies{}, nil, errors.Wrap(err, "huffman: read input")
		}
		if limit > 0 && int64(len(message)) >= limit {
			return Frequencies{}, nil, codec.ErrInputTooLarge
		}
		freqs[b]++
		message = append(message, b)
	}

	return freqs, message, nil
}

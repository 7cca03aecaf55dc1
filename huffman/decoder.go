package huffman

import (
	"io"

	"github.com/cocosip/go-huffman-codec/bitstream"
	"github.com/pkg/errors"
)

// Decode reads a compressed stream from r and writes the original bytes to w.
// Nothing is written if the stream is corrupt.
func Decode(w io.Writer, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "huffman: read input")
	}

	out, err := DecodeBytes(data)
	if err != nil {
		return err
	}

	if _, err := w.Write(out); err != nil {
		return errors.Wrap(err, "huffman: write output")
	}
	return nil
}

// DecodeBytes restores the bytes compressed into data
func DecodeBytes(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	r, err := bitstream.NewReader(data)
	if err != nil {
		return nil, errors.Wrap(ErrBadHeader, err.Error())
	}

	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	table, err := readCodeTable(r, h)
	if err != nil {
		return nil, err
	}

	// Byte-scale estimate; short codes make the output outgrow it.
	out := make([]byte, 0, r.Remaining()/8+1)
	var candidate Code
	for r.Remaining() > 0 {
		bit, err := r.ReadBit()
		if err != nil {
			return nil, truncation(err, "read payload")
		}
		candidate.Value <<= 1
		if bit {
			candidate.Value |= 1
		}
		candidate.Len++

		if s, ok := table[candidate]; ok {
			out = append(out, s)
			candidate = Code{}
			continue
		}
		if int(candidate.Len) >= h.maxLength {
			return nil, errors.Wrapf(ErrNoMatch, "after %d decoded bytes", len(out))
		}
	}
	if candidate.Len != 0 {
		return nil, errors.Wrapf(ErrTruncated, "%d trailing bits form no code", candidate.Len)
	}

	log.Debugf("decoded %d bytes from %d: %d symbols, max code length %d",
		len(out), len(data), len(h.alphabet), h.maxLength)

	return out, nil
}

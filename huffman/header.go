package huffman

import (
	"io"

	"github.com/cocosip/go-huffman-codec/bitstream"
	"github.com/pkg/errors"
)

// header is the byte-aligned part of a compressed stream
type header struct {
	alphabet  []byte // Canonical order
	maxLength int
	counts    []int // counts[l] for 1 <= l <= maxLength
}

// writeHeader writes the alphabet size, the alphabet, the max code length and
// the per-length counts, one byte each. The size is stored minus one so 256
// fits; a count of 256 (every symbol at one length) wraps to 0.
func writeHeader(w io.ByteWriter, t *CodeTable) error {
	if err := w.WriteByte(byte(t.Size() - 1)); err != nil {
		return errors.WithStack(err)
	}
	for _, s := range t.Alphabet {
		if err := w.WriteByte(s); err != nil {
			return errors.WithStack(err)
		}
	}
	if err := w.WriteByte(byte(t.MaxLength)); err != nil {
		return errors.WithStack(err)
	}
	for l := 1; l <= t.MaxLength; l++ {
		if err := w.WriteByte(byte(t.Counts[l])); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// truncation maps reader exhaustion onto ErrTruncated
func truncation(err error, what string) error {
	if errors.Is(err, bitstream.ErrExhausted) {
		return errors.Wrap(ErrTruncated, what)
	}
	return errors.Wrap(err, what)
}

// readHeader reads and validates the header fields
func readHeader(r *bitstream.Reader) (*header, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, truncation(err, "read alphabet size")
	}
	size := int(b) + 1

	h := &header{alphabet: make([]byte, size)}
	var seen [256]bool
	for i := range h.alphabet {
		if h.alphabet[i], err = r.ReadByte(); err != nil {
			return nil, truncation(err, "read alphabet")
		}
		if seen[h.alphabet[i]] {
			return nil, errors.Wrapf(ErrBadHeader, "symbol %#02x listed twice", h.alphabet[i])
		}
		seen[h.alphabet[i]] = true
	}

	if b, err = r.ReadByte(); err != nil {
		return nil, truncation(err, "read max code length")
	}
	h.maxLength = int(b)
	if h.maxLength == 0 || h.maxLength > MaxCodeLength {
		return nil, errors.Wrapf(ErrBadHeader, "max code length %d", h.maxLength)
	}

	h.counts = make([]int, h.maxLength+1)
	sum := 0
	for l := 1; l <= h.maxLength; l++ {
		if b, err = r.ReadByte(); err != nil {
			return nil, truncation(err, "read code length counts")
		}
		h.counts[l] = int(b)
		sum += h.counts[l]
	}
	if size == 256 && sum == 0 {
		h.counts[h.maxLength] = 256
		sum = 256
	}

	if sum != size {
		return nil, errors.Wrapf(ErrBadHeader, "counts sum to %d for %d symbols", sum, size)
	}
	if h.counts[h.maxLength] == 0 {
		return nil, errors.Wrapf(ErrBadHeader, "no code of max length %d", h.maxLength)
	}

	return h, nil
}

// readCodeTable reads counts[l] codes of l bits for each length in turn and
// maps them, by position, to the alphabet. The transmitted codes must be
// prefix-free.
func readCodeTable(r *bitstream.Reader, h *header) (map[Code]byte, error) {
	codes := make([]Code, 0, len(h.alphabet))
	for l := 1; l <= h.maxLength; l++ {
		for i := 0; i < h.counts[l]; i++ {
			var c Code
			for c.Len < uint8(l) {
				bit, err := r.ReadBit()
				if err != nil {
					return nil, truncation(err, "read code table")
				}
				c.Value <<= 1
				if bit {
					c.Value |= 1
				}
				c.Len++
			}
			codes = append(codes, c)
		}
	}

	if !prefixFree(codes) {
		return nil, errors.Wrap(ErrBadHeader, "transmitted codes are not prefix-free")
	}

	table := make(map[Code]byte, len(codes))
	for i, c := range codes {
		table[c] = h.alphabet[i]
	}
	return table, nil
}

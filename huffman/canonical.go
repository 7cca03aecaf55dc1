package huffman

import (
	"sort"

	"github.com/pkg/errors"
)

// MaxCodeLength is the longest code this package can represent. Reaching it
// needs a skewed input of roughly 1e13 bytes, well beyond what the first pass
// can buffer.
const MaxCodeLength = 63

// Code is a canonical Huffman code: the low Len bits of Value, most
// significant first.
type Code struct {
	Value uint64
	Len   uint8
}

// CodeTable is a canonical Huffman code table
type CodeTable struct {
	// MaxLength is the longest code length in use
	MaxLength int
	// Counts[l] is the number of codes of length l, for 1 <= l <= MaxLength.
	// Counts[0] is unused.
	Counts []int
	// Alphabet lists the symbols ordered by (code length, symbol value)
	Alphabet []byte

	codes [256]Code
}

// NewCodeTable assigns canonical codes to the symbols of lengths. Within a
// length codes increase by one in symbol order; the first code of length l
// is (first code of length l-1 + count of length l-1) << 1.
func NewCodeTable(lengths *Lengths) (*CodeTable, error) {
	t := &CodeTable{}

	for s, l := range lengths {
		if l == 0 {
			continue
		}
		if int(l) > MaxCodeLength {
			return nil, errors.Wrapf(ErrCodeTooLong, "symbol %#02x has length %d", s, l)
		}
		if int(l) > t.MaxLength {
			t.MaxLength = int(l)
		}
		t.Alphabet = append(t.Alphabet, byte(s))
	}
	if len(t.Alphabet) == 0 {
		return t, nil
	}

	t.Counts = make([]int, t.MaxLength+1)
	for _, s := range t.Alphabet {
		t.Counts[lengths[s]]++
	}
	// Stable sort keeps ascending symbol order within each length.
	sort.SliceStable(t.Alphabet, func(i, j int) bool {
		return lengths[t.Alphabet[i]] < lengths[t.Alphabet[j]]
	})

	var first uint64
	p := 0
	for l := 1; l <= t.MaxLength; l++ {
		if l > 1 {
			first = (first + uint64(t.Counts[l-1])) << 1
		}
		if first+uint64(t.Counts[l]) > uint64(1)<<uint(l) {
			return nil, errors.Errorf("huffman: code lengths violate the Kraft inequality at length %d", l)
		}
		for i := 0; i < t.Counts[l]; i++ {
			t.codes[t.Alphabet[p]] = Code{Value: first + uint64(i), Len: uint8(l)}
			p++
		}
	}

	return t, nil
}

// Size returns the number of symbols in the alphabet
func (t *CodeTable) Size() int {
	return len(t.Alphabet)
}

// Code returns the code of symbol s. ok is false if s is not in the alphabet.
func (t *CodeTable) Code(s byte) (code Code, ok bool) {
	code = t.codes[s]
	return code, code.Len > 0
}

// prefixFree reports whether no code in codes is a prefix of another
func prefixFree(codes []Code) bool {
	sorted := make([]Code, len(codes))
	copy(sorted, codes)

	// Left-align every code in 64 bits; ties put the shorter code first.
	// In this order a code that prefixes any other prefixes its successor.
	aligned := func(c Code) uint64 { return c.Value << (64 - uint(c.Len)) }
	sort.Slice(sorted, func(i, j int) bool {
		ai, aj := aligned(sorted[i]), aligned(sorted[j])
		if ai != aj {
			return ai < aj
		}
		return sorted[i].Len < sorted[j].Len
	})

	for i := 1; i < len(sorted); i++ {
		a, b := sorted[i-1], sorted[i]
		if a.Len <= b.Len && b.Value>>uint(b.Len-a.Len) == a.Value {
			return false
		}
	}
	return true
}

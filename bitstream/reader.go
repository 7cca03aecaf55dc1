package bitstream

import "github.com/pkg/errors"

var (
	// ErrExhausted is returned when a read goes past the last significant bit
	ErrExhausted = errors.New("bitstream: no more significant bits")

	// ErrBadMarker is returned when the tail marker is outside 0-7
	ErrBadMarker = errors.New("bitstream: invalid tail marker")

	// ErrUnaligned is returned by ReadByte while bits of a byte are still pending
	ErrUnaligned = errors.New("bitstream: byte read inside a partially consumed byte")
)

// Reader consumes a byte sequence produced by Writer.Finalize.
//
// Whole bytes (header fields) can be taken with ReadByte before bit reading
// starts. The tail marker is consumed only to learn how many bits of the last
// payload byte are significant.
type Reader struct {
	data     []byte
	end      int   // Index of the tail marker
	pos      int   // Next byte to load
	cache    byte  // Current byte, already shifted past consumed bits
	nBits    uint8 // Unread significant bits in cache
	lastBits uint8 // Significant bits in data[end-1]
}

// NewReader creates a reader over data, which must end with a tail marker
func NewReader(data []byte) (*Reader, error) {
	if len(data) == 0 {
		return nil, ErrExhausted
	}

	end := len(data) - 1
	marker := data[end]
	if marker > 7 {
		return nil, errors.Wrapf(ErrBadMarker, "marker %d", marker)
	}

	lastBits := marker
	if lastBits == 0 {
		lastBits = 8
	}

	return &Reader{
		data:     data,
		end:      end,
		lastBits: lastBits,
	}, nil
}

// ReadByte pops one whole byte. It never returns the tail marker.
func (r *Reader) ReadByte() (byte, error) {
	if r.nBits != 0 {
		return 0, ErrUnaligned
	}
	if r.pos >= r.end {
		return 0, ErrExhausted
	}

	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBit reads the next significant bit
func (r *Reader) ReadBit() (bool, error) {
	if r.nBits == 0 {
		if r.pos >= r.end {
			return false, ErrExhausted
		}
		r.cache = r.data[r.pos]
		r.pos++
		r.nBits = 8
		if r.pos == r.end {
			r.nBits = r.lastBits
		}
	}

	bit := r.cache&1 == 1
	r.cache >>= 1
	r.nBits--
	return bit, nil
}

// Remaining returns the number of significant bits not read yet
func (r *Reader) Remaining() int {
	n := int(r.nBits)
	if r.pos < r.end {
		n += (r.end-r.pos-1)*8 + int(r.lastBits)
	}
	return n
}

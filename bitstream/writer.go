// Package bitstream packs single bits into bytes and reads them back.
//
// Bits are stored least significant bit first within each byte. A finalized
// stream always ends with one tail marker byte holding the number of
// significant bits in the byte before it, where 0 means all eight bits are
// significant. The marker is never payload.
package bitstream

// Writer accumulates bits into an in-memory byte buffer
type Writer struct {
	buf   []byte
	acc   byte  // Partially filled byte
	nBits uint8 // Number of bits in acc (0-7)
}

// NewWriter creates a new bit writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteBit appends a single bit
func (w *Writer) WriteBit(bit bool) {
	if bit {
		w.acc |= 1 << w.nBits
	}
	w.nBits++
	if w.nBits == 8 {
		w.buf = append(w.buf, w.acc)
		w.acc = 0
		w.nBits = 0
	}
}

// WriteBits appends the low n bits of value, most significant of them first
func (w *Writer) WriteBits(value uint64, n uint8) {
	for i := int(n) - 1; i >= 0; i-- {
		w.WriteBit((value>>uint(i))&1 == 1)
	}
}

// BitLen returns the number of bits written since the last Finalize
func (w *Writer) BitLen() int {
	return len(w.buf)*8 + int(w.nBits)
}

// Finalize flushes the pending partial byte, zero-padded in its high bits,
// appends the tail marker and returns the packed bytes. The writer is reset
// and can be reused.
func (w *Writer) Finalize() []byte {
	marker := w.nBits
	if w.nBits > 0 {
		w.buf = append(w.buf, w.acc)
	}
	out := append(w.buf, marker)

	w.buf = nil
	w.acc = 0
	w.nBits = 0
	return out
}

package huffman

import (
	"bufio"
	"bytes"
	"io"

	"github.com/cocosip/go-huffman-codec/bitstream"
	"github.com/pkg/errors"
)

// Encode reads r to exhaustion and writes its compressed form to w
func Encode(w io.Writer, r io.Reader) error {
	return EncodeWithOptions(w, r, nil)
}

// EncodeWithOptions is Encode with an input size limit taken from opts.
// Nothing is written to w if the input exceeds the limit.
func EncodeWithOptions(w io.Writer, r io.Reader, opts *Options) error {
	var limit int64
	if opts != nil {
		if err := opts.Validate(); err != nil {
			return err
		}
		limit = opts.MaxInputSize
	}

	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	freqs, message, err := CountFrequencies(br, limit)
	if err != nil {
		return err
	}

	out, err := encodeMessage(&freqs, message)
	if err != nil {
		return err
	}

	if _, err := w.Write(out); err != nil {
		return errors.Wrap(err, "huffman: write output")
	}
	return nil
}

// EncodeBytes compresses src
func EncodeBytes(src []byte) ([]byte, error) {
	var freqs Frequencies
	freqs.Add(src)
	return encodeMessage(&freqs, src)
}

// encodeMessage emits header, code table and payload for message, whose byte
// counts are freqs
func encodeMessage(freqs *Frequencies, message []byte) ([]byte, error) {
	if len(message) == 0 {
		return []byte{}, nil
	}

	lengths := CodeLengths(freqs)
	table, err := NewCodeTable(&lengths)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeHeader(&buf, table); err != nil {
		return nil, err
	}

	bw := bitstream.NewWriter()
	for _, s := range table.Alphabet {
		code, _ := table.Code(s)
		bw.WriteBits(code.Value, code.Len)
	}
	tableBits := bw.BitLen()
	for _, s := range message {
		code, _ := table.Code(s)
		bw.WriteBits(code.Value, code.Len)
	}
	payloadBits := bw.BitLen() - tableBits
	buf.Write(bw.Finalize())

	log.Debugf("encoded %d bytes: %d symbols, max code length %d, %d table bits, %d payload bits, %d bytes out",
		len(message), table.Size(), table.MaxLength, tableBits, payloadBits, buf.Len())

	return buf.Bytes(), nil
}

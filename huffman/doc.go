/*
Package huffman implements a lossless byte-stream compressor built on a
canonical Huffman prefix code.

Encoding makes one full pass over the input to count byte frequencies, builds
an optimal prefix code, and emits a compact header followed by a bit-packed
payload:

	[alphabet size - 1]
	[alphabet, ordered by (code length, byte value)]
	[max code length]
	[count of codes of length 1] ... [count of codes of length max]
	<codes of every alphabet symbol, in alphabet order>
	<codes of the message, symbol by symbol>
	[tail marker: significant bits in the last payload byte, 0 = all 8]

Bits are packed least significant bit first inside each byte, and the bits of
each code are written most significant first. Empty input encodes to an empty
blob.

Decoding is strict. A tail marker above 7, a header whose fields contradict
each other, a code table that is cut short or not prefix-free, payload bits
that match no code within the max code length, and trailing bits that form
no complete code all fail with an error for which errors.Is(err, ErrCorrupt)
reports true, and no partial output is produced. The format carries no
message length, so a blob cut at a code boundary whose new last byte is a
valid marker decodes to a shorter message without error.
*/
package huffman

import "github.com/op/go-logging"

var log = logging.MustGetLogger("huffman")

func init() {
	logging.SetLevel(logging.WARNING, "huffman")
}

package huffman

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrCorrupt is the umbrella error for every malformed compressed stream
	ErrCorrupt = errors.New("huffman: corrupt stream")

	// ErrTruncated is returned when the stream ends before the data it declares
	ErrTruncated = fmt.Errorf("%w: unexpected end of input", ErrCorrupt)

	// ErrNoMatch is returned when no code matches within the max code length
	ErrNoMatch = fmt.Errorf("%w: no code matches the payload bits", ErrCorrupt)

	// ErrBadHeader is returned when header fields contradict each other
	ErrBadHeader = fmt.Errorf("%w: inconsistent header", ErrCorrupt)

	// ErrCodeTooLong is returned when a code length exceeds MaxCodeLength
	ErrCodeTooLong = errors.New("huffman: code length exceeds supported maximum")
)

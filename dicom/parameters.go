package dicom

import (
	"math"

	"github.com/cocosip/go-dicom/pkg/imaging/codec"
)

// Ensure HuffmanParameters implements codec.Parameters
var _ codec.Parameters = (*HuffmanParameters)(nil)

// HuffmanParameters contains parameters for Huffman frame compression
type HuffmanParameters struct {
	// MaxFrameSize bounds the size in bytes of a single native frame.
	// 0 means unlimited.
	MaxFrameSize int

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewHuffmanParameters creates a new HuffmanParameters with default values
func NewHuffmanParameters() *HuffmanParameters {
	return &HuffmanParameters{
		params: make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *HuffmanParameters) GetParameter(name string) interface{} {
	switch name {
	case "maxFrameSize":
		return p.MaxFrameSize
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *HuffmanParameters) SetParameter(name string, value interface{}) {
	switch name {
	case "maxFrameSize":
		if v, ok := intParameter(value); ok {
			p.MaxFrameSize = v
		}
	default:
		if p.params == nil {
			p.params = make(map[string]interface{})
		}
		p.params[name] = value
	}
}

// Validate checks if the parameters are valid and adjusts them if needed
func (p *HuffmanParameters) Validate() error {
	if p.MaxFrameSize < 0 {
		p.MaxFrameSize = 0
	}
	return nil
}

// WithMaxFrameSize sets the frame size limit and returns the parameters for chaining
func (p *HuffmanParameters) WithMaxFrameSize(n int) *HuffmanParameters {
	p.MaxFrameSize = n
	return p
}

// intParameter converts any integer kind to int. Values that do not fit are
// rejected.
func intParameter(value interface{}) (int, bool) {
	var n int64
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		n = int64(v)
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		n = int64(v)
	default:
		return 0, false
	}
	if n < math.MinInt || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

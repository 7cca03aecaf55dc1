// Package dicom exposes the Huffman codec as a go-dicom pixel-data codec.
//
// DICOM has no Huffman transfer syntax, so the caller picks the syntax the
// codec is bound to (usually a private one) and registers it explicitly with
// RegisterHuffmanCodec. Each frame is compressed as an independent Huffman
// stream.
package dicom

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
	"github.com/cocosip/go-huffman-codec/huffman"
	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("dicom")

func init() {
	logging.SetLevel(logging.WARNING, "dicom")
}

var _ codec.Codec = (*HuffmanCodec)(nil)

// HuffmanCodec implements the external codec.Codec interface for Huffman-packed frames
type HuffmanCodec struct {
	transferSyntax *transfer.Syntax
}

// NewHuffmanCodec creates a Huffman codec bound to ts
func NewHuffmanCodec(ts *transfer.Syntax) *HuffmanCodec {
	return &HuffmanCodec{
		transferSyntax: ts,
	}
}

// Name returns the codec name
func (c *HuffmanCodec) Name() string {
	return "Huffman"
}

// TransferSyntax returns the transfer syntax this codec handles
func (c *HuffmanCodec) TransferSyntax() *transfer.Syntax {
	return c.transferSyntax
}

// GetDefaultParameters returns the default codec parameters
func (c *HuffmanCodec) GetDefaultParameters() codec.Parameters {
	return NewHuffmanParameters()
}

// Encode compresses every frame of oldPixelData into newPixelData
func (c *HuffmanCodec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	maxFrameSize := 0
	if parameters != nil {
		if hp, ok := parameters.(*HuffmanParameters); ok {
			if err := hp.Validate(); err != nil {
				return fmt.Errorf("invalid Huffman parameters: %w", err)
			}
			maxFrameSize = hp.MaxFrameSize
		} else if v, ok := intParameter(parameters.GetParameter("maxFrameSize")); ok && v > 0 {
			maxFrameSize = v
		}
	}

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}

		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}
		if maxFrameSize > 0 && len(frameData) > maxFrameSize {
			return fmt.Errorf("frame %d is %d bytes, limit is %d", frameIndex, len(frameData), maxFrameSize)
		}

		encoded, err := huffman.EncodeBytes(frameData)
		if err != nil {
			return fmt.Errorf("Huffman encode failed for frame %d: %w", frameIndex, err)
		}
		log.Debugf("frame %d: %d -> %d bytes", frameIndex, len(frameData), len(encoded))

		if err := newPixelData.AddFrame(encoded); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// Decode restores every frame of oldPixelData into newPixelData
func (c *HuffmanCodec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}

		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		pixelData, err := huffman.DecodeBytes(frameData)
		if err != nil {
			return fmt.Errorf("Huffman decode failed for frame %d: %w", frameIndex, err)
		}

		if frameInfo != nil {
			if expected := expectedFrameSize(frameInfo); expected > 0 && len(pixelData) != expected {
				return fmt.Errorf("decoded frame %d is %d bytes, expected %d", frameIndex, len(pixelData), expected)
			}
		}

		if err := newPixelData.AddFrame(pixelData); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// expectedFrameSize returns the native frame size described by info, or 0
// when the geometry is not filled in.
func expectedFrameSize(info *imagetypes.FrameInfo) int {
	if info.Width == 0 || info.Height == 0 || info.BitsAllocated == 0 || info.SamplesPerPixel == 0 {
		return 0
	}
	bytesPerSample := (int(info.BitsAllocated) + 7) / 8
	return int(info.Width) * int(info.Height) * int(info.SamplesPerPixel) * bytesPerSample
}

// RegisterHuffmanCodec registers a Huffman codec for ts with the global registry
func RegisterHuffmanCodec(ts *transfer.Syntax) {
	registry := codec.GetGlobalRegistry()
	registry.RegisterCodec(ts, NewHuffmanCodec(ts))
}

// Package dicom compresses the frames of DICOM RGB pixel data with rpeg.
//
// Each source frame becomes one rpeg stream (header plus codewords). rpeg
// has no DICOM transfer syntax, so the codec is used directly rather than
// through the go-dicom transfer-syntax registry.
package dicom

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/cocosip/go-rpeg-codec/pnm"
	"github.com/cocosip/go-rpeg-codec/rpeg"
	"github.com/cocosip/go-rpeg-codec/rpeg/stream"
)

var (
	ErrUnsupportedLayout = errors.New("rpeg/dicom: only interleaved RGB frames are supported")
	ErrOddFrameSize      = errors.New("rpeg/dicom: frame dimensions must be even")
)

// Codec encodes and decodes DICOM frames with rpeg
type Codec struct{}

// NewCodec creates a new rpeg frame codec
func NewCodec() *Codec {
	return &Codec{}
}

// Name returns the codec name
func (c *Codec) Name() string {
	return "rpeg (2x2 block DCT, 32-bit codewords)"
}

// GetDefaultParameters returns the default codec parameters
func (c *Codec) GetDefaultParameters() codec.Parameters {
	return NewRpegParameters()
}

// Encode compresses every frame of oldPixelData into newPixelData
func (c *Codec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}
	if err := checkFrameInfo(frameInfo); err != nil {
		return err
	}

	tbl, err := table(parameters)
	if err != nil {
		return err
	}
	enc, err := rpeg.NewEncoder(&rpeg.Options{Table: tbl})
	if err != nil {
		return err
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

		img, err := frameToImage(frameData, frameInfo)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frameIndex, err)
		}
		s, err := enc.Encode(img)
		if err != nil {
			return fmt.Errorf("rpeg encode failed for frame %d: %w", frameIndex, err)
		}

		var buf bytes.Buffer
		if err := stream.Write(&buf, s); err != nil {
			return fmt.Errorf("rpeg encode failed for frame %d: %w", frameIndex, err)
		}
		if err := newPixelData.AddFrame(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// Decode decompresses every frame of oldPixelData into newPixelData using
// the sample layout described by the frame info
func (c *Codec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}
	if err := checkFrameInfo(frameInfo); err != nil {
		return err
	}

	tbl, err := table(parameters)
	if err != nil {
		return err
	}
	dec, err := rpeg.NewDecoder(&rpeg.Options{
		Table:       tbl,
		Denominator: uint16(1<<int(frameInfo.BitsStored) - 1),
	})
	if err != nil {
		return err
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

		s, err := stream.Read(bytes.NewReader(frameData))
		if err != nil {
			return fmt.Errorf("rpeg decode failed for frame %d: %w", frameIndex, err)
		}
		if s.Width != int(frameInfo.Width) || s.Height != int(frameInfo.Height) {
			return fmt.Errorf("decoded dimensions (%dx%d) don't match expected (%dx%d)",
				s.Width, s.Height, frameInfo.Width, frameInfo.Height)
		}

		img, err := dec.Decode(s)
		if err != nil {
			return fmt.Errorf("rpeg decode failed for frame %d: %w", frameIndex, err)
		}
		if err := newPixelData.AddFrame(imageToFrame(img, frameInfo)); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

func checkFrameInfo(frameInfo *imagetypes.FrameInfo) error {
	if int(frameInfo.SamplesPerPixel) != 3 || frameInfo.PlanarConfiguration != 0 {
		return ErrUnsupportedLayout
	}
	if frameInfo.PixelRepresentation != 0 {
		return fmt.Errorf("%w: signed samples", ErrUnsupportedLayout)
	}
	if frameInfo.BitsAllocated != 8 && frameInfo.BitsAllocated != 16 {
		return fmt.Errorf("unsupported BitsAllocated=%d", frameInfo.BitsAllocated)
	}
	if frameInfo.BitsStored == 0 || frameInfo.BitsStored > frameInfo.BitsAllocated {
		return fmt.Errorf("unsupported BitsStored=%d BitsAllocated=%d", frameInfo.BitsStored, frameInfo.BitsAllocated)
	}
	if frameInfo.Width == 0 || frameInfo.Height == 0 || frameInfo.Width%2 != 0 || frameInfo.Height%2 != 0 {
		return fmt.Errorf("%w: %dx%d", ErrOddFrameSize, frameInfo.Width, frameInfo.Height)
	}
	return nil
}

// frameToImage reads interleaved RGB samples; 16-bit samples are
// little-endian as in DICOM native pixel data
func frameToImage(frame []byte, frameInfo *imagetypes.FrameInfo) (*pnm.Image, error) {
	width, height := int(frameInfo.Width), int(frameInfo.Height)
	bytesPerSample := int(frameInfo.BitsAllocated) / 8
	if len(frame) < width*height*3*bytesPerSample {
		return nil, fmt.Errorf("frame has %d bytes, want %d", len(frame), width*height*3*bytesPerSample)
	}

	mask := uint16(1<<int(frameInfo.BitsStored) - 1)
	img := &pnm.Image{
		Pixels:      make([]pnm.Rgb, width*height),
		Width:       width,
		Height:      height,
		Denominator: mask,
	}
	sample := func(i int) uint16 {
		if bytesPerSample == 1 {
			return uint16(frame[i]) & mask
		}
		return binary.LittleEndian.Uint16(frame[2*i:]) & mask
	}
	for i := range img.Pixels {
		img.Pixels[i] = pnm.Rgb{Red: sample(3 * i), Green: sample(3*i + 1), Blue: sample(3*i + 2)}
	}
	return img, nil
}

func imageToFrame(img *pnm.Image, frameInfo *imagetypes.FrameInfo) []byte {
	bytesPerSample := int(frameInfo.BitsAllocated) / 8
	out := make([]byte, len(img.Pixels)*3*bytesPerSample)
	for i, p := range img.Pixels {
		for c, v := range [3]uint16{p.Red, p.Green, p.Blue} {
			v = min(v, img.Denominator)
			idx := 3*i + c
			if bytesPerSample == 1 {
				out[idx] = byte(v)
			} else {
				binary.LittleEndian.PutUint16(out[2*idx:], v)
			}
		}
	}
	return out
}

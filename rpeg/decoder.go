package rpeg

import (
	"io"

	"github.com/cocosip/go-rpeg-codec/array2"
	"github.com/cocosip/go-rpeg-codec/pnm"
	"github.com/cocosip/go-rpeg-codec/rpeg/common"
	"github.com/cocosip/go-rpeg-codec/rpeg/stream"
)

// Decoder turns codeword streams back into RGB images
type Decoder struct {
	quantizer   *common.Quantizer
	denominator uint16
}

// NewDecoder creates a decoder. A nil opts uses DefaultOptions.
func NewDecoder(opts *Options) (*Decoder, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		quantizer:   common.NewQuantizer(o.Table),
		denominator: o.Denominator,
	}, nil
}

// Decode decompresses s with the given options
func Decode(s *stream.Stream, opts *Options) (*pnm.Image, error) {
	dec, err := NewDecoder(opts)
	if err != nil {
		return nil, err
	}
	return dec.Decode(s)
}

// Decompress reads a framed stream from r and writes the image to w as PPM
func Decompress(w io.Writer, r io.Reader, opts *Options) error {
	s, err := stream.Read(r)
	if err != nil {
		return err
	}
	img, err := Decode(s, opts)
	if err != nil {
		return err
	}
	return pnm.Encode(w, img)
}

// Decode unpacks, dequantizes and inverse-transforms every codeword of s.
// Blocks are laid out in row-major order over a (width/2)x(height/2) grid.
func (d *Decoder) Decode(s *stream.Stream) (*pnm.Image, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	bw, bh := s.Blocks()
	quantized := make([]common.QuantizedBlock, len(s.Codewords))
	for i, cw := range s.Codewords {
		quantized[i] = common.Unpack(cw)
	}
	grid, err := array2.FromRowMajor(quantized, bw, bh)
	if err != nil {
		return nil, err
	}

	blocks := common.ToPixelSpace(d.quantizer.DequantizeAll(grid))
	cv := common.BlocksToComponentVideo(blocks)
	rgb := common.ComponentVideoImageToRgb(cv, d.denominator)

	return &pnm.Image{
		Pixels:      rgb.Elements(),
		Width:       rgb.Width(),
		Height:      rgb.Height(),
		Denominator: d.denominator,
	}, nil
}

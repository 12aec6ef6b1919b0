package rpeg

import (
	"fmt"
	"io"

	"github.com/cocosip/go-rpeg-codec/array2"
	"github.com/cocosip/go-rpeg-codec/pnm"
	"github.com/cocosip/go-rpeg-codec/rpeg/common"
	"github.com/cocosip/go-rpeg-codec/rpeg/stream"
)

// Encoder turns RGB images into codeword streams
type Encoder struct {
	quantizer *common.Quantizer
}

// NewEncoder creates an encoder. A nil opts uses DefaultOptions.
func NewEncoder(opts *Options) (*Encoder, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	return &Encoder{quantizer: common.NewQuantizer(o.Table)}, nil
}

// Encode compresses img with the given options
func Encode(img *pnm.Image, opts *Options) (*stream.Stream, error) {
	enc, err := NewEncoder(opts)
	if err != nil {
		return nil, err
	}
	return enc.Encode(img)
}

// Compress encodes img and writes the framed stream to w
func Compress(w io.Writer, img *pnm.Image, opts *Options) error {
	s, err := Encode(img, opts)
	if err != nil {
		return err
	}
	return stream.Write(w, s)
}

// Trim drops the last column and/or row of img when its width and/or
// height is odd, so the result splits evenly into 2x2 blocks.
func Trim(img *pnm.Image) (*array2.Array2[pnm.Rgb], error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	w, h := img.Width&^1, img.Height&^1
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrImageTooSmall, img.Width, img.Height)
	}

	trimmed := array2.FromFill(pnm.Rgb{}, w, h)
	for cell := range trimmed.IterRowMajorMut() {
		*cell.Value = img.At(cell.Col, cell.Row)
	}
	return trimmed, nil
}

// Encode compresses img: trim, convert to component video, group into
// blocks, transform, quantize and pack.
func (e *Encoder) Encode(img *pnm.Image) (*stream.Stream, error) {
	pixels, err := Trim(img)
	if err != nil {
		return nil, err
	}

	cv := common.RgbImageToComponentVideo(pixels, img.Denominator)
	blocks, err := common.ComponentVideoToBlocks(cv)
	if err != nil {
		return nil, err
	}
	quantized := e.quantizer.QuantizeAll(common.ToCosineSpace(blocks))

	s := &stream.Stream{
		Codewords: make([]uint32, 0, quantized.Len()),
		Width:     pixels.Width(),
		Height:    pixels.Height(),
	}
	for cell := range quantized.IterRowMajor() {
		s.Codewords = append(s.Codewords, common.Pack(cell.Value))
	}
	return s, nil
}

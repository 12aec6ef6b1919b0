package rpeg

import (
	"bytes"
	"fmt"

	"github.com/cocosip/go-rpeg-codec/codec"
	"github.com/cocosip/go-rpeg-codec/pnm"
	"github.com/cocosip/go-rpeg-codec/rpeg/stream"
)

var _ codec.Codec = (*Codec)(nil)

// Codec implements the codec.Codec interface for rpeg streams
type Codec struct {
	options CodecOptions
}

// CodecOptions contains options for the rpeg codec
type CodecOptions struct {
	codec.BaseOptions
}

// Validate validates the options
func (o *CodecOptions) Validate() error {
	return o.BaseOptions.Validate()
}

// NewCodec creates a codec with the default chroma table and 8-bit output
func NewCodec() *Codec {
	return &Codec{}
}

// NewCodecWithOptions creates a codec whose defaults come from opts
func NewCodecWithOptions(opts CodecOptions) (*Codec, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Codec{options: opts}, nil
}

// UID returns the stream format identifier
func (c *Codec) UID() string {
	return "rpeg-format-2"
}

// Name returns the human-readable name
func (c *Codec) Name() string {
	return "rpeg"
}

// Encode encodes interleaved RGB samples. Samples are one byte each up to
// 8 bits per sample and two big-endian bytes above that.
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	opts := c.options
	if params.Options != nil {
		if err := params.Options.Validate(); err != nil {
			return nil, err
		}
		if o, ok := params.Options.(*CodecOptions); ok {
			opts = *o
		}
	}

	img, err := PixelDataToImage(params.PixelData, params.Width, params.Height, params.Components, params.BitDepth)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Compress(&buf, img, &Options{Table: opts.Table()}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes an rpeg stream to interleaved RGB samples at the codec's
// configured bit depth
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	s, err := stream.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrUnsupportedFormat, err)
	}

	bitDepth := c.options.BitDepth
	if bitDepth == 0 {
		bitDepth = 8
	}
	img, err := Decode(s, &Options{
		Table:       c.options.Table(),
		Denominator: uint16(1<<bitDepth - 1),
	})
	if err != nil {
		return nil, err
	}

	return &codec.DecodeResult{
		PixelData:  ImageToPixelData(img, bitDepth),
		Width:      img.Width,
		Height:     img.Height,
		Components: 3,
		BitDepth:   bitDepth,
	}, nil
}

// PixelDataToImage wraps interleaved RGB samples as an image whose
// denominator is the largest value representable in bitDepth bits
func PixelDataToImage(data []byte, width, height, components, bitDepth int) (*pnm.Image, error) {
	if components != 3 {
		return nil, ErrInvalidComponents
	}
	if bitDepth < 1 || bitDepth > 16 {
		return nil, codec.ErrInvalidBitDepth
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", codec.ErrInvalidParameter, width, height)
	}
	bytesPerSample := 1
	if bitDepth > 8 {
		bytesPerSample = 2
	}
	if len(data) < width*height*3*bytesPerSample {
		return nil, codec.ErrBufferTooSmall
	}

	img := &pnm.Image{
		Pixels:      make([]pnm.Rgb, width*height),
		Width:       width,
		Height:      height,
		Denominator: uint16(1<<bitDepth - 1),
	}
	sample := func(i int) uint16 {
		if bytesPerSample == 1 {
			return uint16(data[i])
		}
		return uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	for i := range img.Pixels {
		img.Pixels[i] = pnm.Rgb{
			Red:   sample(i * 3),
			Green: sample(i*3 + 1),
			Blue:  sample(i*3 + 2),
		}
	}
	return img, nil
}

// ImageToPixelData flattens img into interleaved samples, clamping each to
// the image denominator
func ImageToPixelData(img *pnm.Image, bitDepth int) []byte {
	bytesPerSample := 1
	if bitDepth > 8 {
		bytesPerSample = 2
	}
	out := make([]byte, 0, len(img.Pixels)*3*bytesPerSample)
	for _, p := range img.Pixels {
		for _, v := range [3]uint16{p.Red, p.Green, p.Blue} {
			if v > img.Denominator {
				v = img.Denominator
			}
			if bytesPerSample == 2 {
				out = append(out, byte(v>>8))
			}
			out = append(out, byte(v))
		}
	}
	return out
}

// Register registers this codec with the global registry
func init() {
	codec.Register(NewCodec())
}

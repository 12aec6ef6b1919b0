// Package pnm reads and writes RGB raster images.
//
// PPM (P3 and P6) is the native format. Other formats known to the standard
// image package (PNG, JPEG, GIF) can be read and are converted to an 8-bit
// RGB image with denominator 255.
package pnm

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/cocosip/go-rpeg-codec/array2"
)

var (
	// ErrInvalidHeader is returned for a malformed PPM header.
	ErrInvalidHeader = errors.New("pnm: invalid header")

	// ErrInvalidDenominator is returned when the maximum sample value is 0
	// or larger than 65535.
	ErrInvalidDenominator = errors.New("pnm: invalid denominator")

	// ErrInvalidDimensions is returned when the pixel count does not match
	// width*height.
	ErrInvalidDimensions = errors.New("pnm: invalid image dimensions")

	// ErrSampleRange is returned when a raster sample exceeds maxval.
	ErrSampleRange = errors.New("pnm: sample exceeds maxval")
)

// Rgb is one pixel. Samples are scaled to the image denominator.
type Rgb struct {
	Red   uint16
	Green uint16
	Blue  uint16
}

// Image is a row-major RGB raster.
type Image struct {
	Pixels      []Rgb
	Width       int
	Height      int
	Denominator uint16
}

// Validate checks that the pixel slice matches the dimensions.
func (img *Image) Validate() error {
	area, err := array2.Area(img.Width, img.Height)
	if err != nil || len(img.Pixels) != area {
		return ErrInvalidDimensions
	}
	if img.Denominator == 0 {
		return ErrInvalidDenominator
	}
	return nil
}

// At returns the pixel at column x, row y.
func (img *Image) At(x, y int) Rgb {
	return img.Pixels[y*img.Width+x]
}

// FromImage converts any image.Image to an 8-bit Image.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)

	img := &Image{
		Pixels:      make([]Rgb, b.Dx()*b.Dy()),
		Width:       b.Dx(),
		Height:      b.Dy(),
		Denominator: 255,
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := rgba.RGBAAt(x, y)
			img.Pixels[y*img.Width+x] = Rgb{Red: uint16(c.R), Green: uint16(c.G), Blue: uint16(c.B)}
		}
	}
	return img
}

// ToImage converts img to an *image.RGBA, rescaling samples to 8 bits and
// clamping values above the denominator.
func (img *Image) ToImage() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.At(x, y)
			out.SetRGBA(x, y, color.RGBA{
				R: img.scale8(p.Red),
				G: img.scale8(p.Green),
				B: img.scale8(p.Blue),
				A: 255,
			})
		}
	}
	return out
}

func (img *Image) scale8(v uint16) uint8 {
	v = clampSample(v, img.Denominator)
	if img.Denominator == 255 {
		return uint8(v)
	}
	return uint8((uint32(v)*255 + uint32(img.Denominator)/2) / uint32(img.Denominator))
}

func clampSample(v, denominator uint16) uint16 {
	if v > denominator {
		return denominator
	}
	return v
}

// Read decodes an image from path, or from standard input if path is empty.
func Read(path string) (*Image, error) {
	if path == "" {
		return Decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Write encodes img as a P6 PPM to path, or to standard output if path is
// empty.
func Write(path string, img *Image) error {
	if path == "" {
		return Encode(os.Stdout, img)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

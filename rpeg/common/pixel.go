package common

import (
	"math"

	"github.com/cocosip/go-rpeg-codec/array2"
	"github.com/cocosip/go-rpeg-codec/pnm"
)

// ComponentVideo is a pixel in Y/Pb/Pr space. Y is in [0, 1], Pb and Pr
// in [-0.5, 0.5] for in-gamut input.
type ComponentVideo struct {
	Y  float64
	Pb float64
	Pr float64
}

// RgbToComponentVideo normalizes p by denominator and converts it to
// component video.
func RgbToComponentVideo(p pnm.Rgb, denominator uint16) ComponentVideo {
	d := float64(denominator)
	r := float64(p.Red) / d
	g := float64(p.Green) / d
	b := float64(p.Blue) / d

	return ComponentVideo{
		Y:  0.299*r + 0.587*g + 0.114*b,
		Pb: -0.168736*r - 0.331264*g + 0.5*b,
		Pr: 0.5*r - 0.418688*g - 0.081312*b,
	}
}

// ComponentVideoToRgb converts cv back to RGB scaled by denominator,
// rounding to the nearest level. The result is not clamped to the
// denominator; only the limits of uint16 apply.
func ComponentVideoToRgb(cv ComponentVideo, denominator uint16) pnm.Rgb {
	r := cv.Y + 1.402*cv.Pr
	g := cv.Y - 0.344136*cv.Pb - 0.714136*cv.Pr
	b := cv.Y + 1.772*cv.Pb

	d := float64(denominator)
	return pnm.Rgb{
		Red:   toSample(r * d),
		Green: toSample(g * d),
		Blue:  toSample(b * d),
	}
}

func toSample(v float64) uint16 {
	v = math.Round(v)
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= math.MaxUint16:
		return math.MaxUint16
	}
	return uint16(v)
}

// RgbImageToComponentVideo converts every pixel of img.
func RgbImageToComponentVideo(img *array2.Array2[pnm.Rgb], denominator uint16) *array2.Array2[ComponentVideo] {
	return array2.Map(img, func(p pnm.Rgb) ComponentVideo {
		return RgbToComponentVideo(p, denominator)
	})
}

// ComponentVideoImageToRgb converts every pixel of img.
func ComponentVideoImageToRgb(img *array2.Array2[ComponentVideo], denominator uint16) *array2.Array2[pnm.Rgb] {
	return array2.Map(img, func(cv ComponentVideo) pnm.Rgb {
		return ComponentVideoToRgb(cv, denominator)
	})
}

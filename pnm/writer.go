package pnm

import (
	"bufio"
	"fmt"
	"io"
)

// Encode writes img to w as a raw (P6) PPM. Samples larger than the
// denominator cannot be represented and are clamped to it.
func Encode(w io.Writer, img *Image) error {
	if err := img.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n%d\n", img.Width, img.Height, img.Denominator); err != nil {
		return err
	}

	wide := img.Denominator > 255
	for _, p := range img.Pixels {
		for _, v := range [3]uint16{p.Red, p.Green, p.Blue} {
			v = clampSample(v, img.Denominator)
			if wide {
				if err := bw.WriteByte(byte(v >> 8)); err != nil {
					return err
				}
			}
			if err := bw.WriteByte(byte(v)); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

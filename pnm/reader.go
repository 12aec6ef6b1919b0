package pnm

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"

	"github.com/cocosip/go-rpeg-codec/array2"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const preallocLimit = 1 << 16

// Decode reads a P3 or P6 PPM from r. Input that does not start with a PPM
// magic number is handed to image.Decode.
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	switch string(magic) {
	case "P3", "P6":
		return decodePPM(br)
	}

	src, _, err := image.Decode(br)
	if err != nil {
		return nil, err
	}
	return FromImage(src), nil
}

func decodePPM(br *bufio.Reader) (*Image, error) {
	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, err
	}
	plain := magic[1] == '3'

	var header [3]int
	for i := range header {
		v, err := readInt(br)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
		header[i] = v
	}
	width, height, maxval := header[0], header[1], header[2]
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	area, err := array2.Area(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}
	if maxval <= 0 || maxval > 65535 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDenominator, maxval)
	}

	// grown as samples arrive; the header alone never sizes the allocation
	img := &Image{
		Pixels:      make([]Rgb, 0, min(area, preallocLimit)),
		Width:       width,
		Height:      height,
		Denominator: uint16(maxval),
	}

	var raw func() (int, error)
	if plain {
		raw = func() (int, error) { return readInt(br) }
	} else {
		// exactly one whitespace byte separates the header from the raster,
		// and readInt has already consumed it
		wide := maxval > 255
		raw = func() (int, error) {
			if !wide {
				b, err := br.ReadByte()
				return int(b), err
			}
			var buf [2]byte
			if _, err := io.ReadFull(br, buf[:]); err != nil {
				return 0, err
			}
			return int(buf[0])<<8 | int(buf[1]), nil
		}
	}

	for i := 0; i < area; i++ {
		var ch [3]uint16
		for c := range ch {
			v, err := raw()
			if err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				return nil, fmt.Errorf("pnm: reading pixel %d: %w", i, err)
			}
			if v > maxval {
				return nil, fmt.Errorf("%w: pixel %d sample %d exceeds maxval %d", ErrSampleRange, i, v, maxval)
			}
			ch[c] = uint16(v)
		}
		img.Pixels = append(img.Pixels, Rgb{Red: ch[0], Green: ch[1], Blue: ch[2]})
	}

	return img, nil
}

// readInt skips whitespace and comments, then reads a decimal integer and
// the single delimiter byte that ends it.
func readInt(br *bufio.Reader) (int, error) {
	var digits []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(digits) > 0 {
				break
			}
			return 0, err
		}
		switch {
		case b >= '0' && b <= '9':
			digits = append(digits, b)
			continue
		case b == '#' && len(digits) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return 0, err
			}
			continue
		case isSpace(b) && len(digits) == 0:
			continue
		case isSpace(b):
		default:
			return 0, fmt.Errorf("unexpected byte %q", b)
		}
		break
	}
	return strconv.Atoi(string(digits))
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

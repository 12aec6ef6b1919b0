// Package stream frames rpeg codewords for storage.
//
// A stream is an ASCII header followed by the codewords, four big-endian
// bytes each, in row-major block order:
//
//	Compressed image format 2\n
//	<width> <height>\n
//	<codewords...>
//
// Width and height are the pixel dimensions of the (trimmed) image; the
// stream carries (width/2)*(height/2) codewords.
package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cocosip/go-rpeg-codec/array2"
	"github.com/cocosip/go-rpeg-codec/rpeg/common"
)

// Magic is the first header line.
const Magic = "Compressed image format 2"

// preallocLimit caps the codeword slice allocated before any payload has
// been read; larger streams grow as their codewords arrive.
const preallocLimit = 1 << 16

var (
	ErrInvalidHeader   = errors.New("stream: invalid header")
	ErrTruncatedStream = errors.New("stream: truncated codeword data")
	ErrCodewordCount   = errors.New("stream: codeword count does not match dimensions")
)

// Stream is a decoded codeword stream.
type Stream struct {
	Codewords []uint32
	Width     int
	Height    int
}

// Blocks returns the block grid dimensions.
func (s *Stream) Blocks() (width, height int) {
	return s.Width / 2, s.Height / 2
}

// Validate checks that the dimensions are even and match the codeword
// count.
func (s *Stream) Validate() error {
	n, err := blockCount(s.Width, s.Height)
	if err != nil {
		return err
	}
	if len(s.Codewords) != n {
		return fmt.Errorf("%w: %d codewords for %dx%d", ErrCodewordCount, len(s.Codewords), s.Width, s.Height)
	}
	return nil
}

// Write writes the header and codewords to w.
func Write(w io.Writer, s *Stream) error {
	if err := s.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n", Magic, s.Width, s.Height); err != nil {
		return err
	}
	for _, cw := range s.Codewords {
		b := common.CodewordToBytes(cw)
		if _, err := bw.Write(b[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read parses a stream from r. Bytes after the last codeword are ignored.
func Read(r io.Reader) (*Stream, error) {
	br := bufio.NewReader(r)

	line, err := br.ReadString('\n')
	if err != nil || strings.TrimRight(line, "\r\n") != Magic {
		return nil, fmt.Errorf("%w: missing %q", ErrInvalidHeader, Magic)
	}

	line, err = br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: missing dimensions", ErrInvalidHeader)
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: bad dimensions line %q", ErrInvalidHeader, line)
	}
	width, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: width: %v", ErrInvalidHeader, err)
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: height: %v", ErrInvalidHeader, err)
	}
	n, err := blockCount(width, height)
	if err != nil {
		return nil, err
	}

	s := &Stream{
		Codewords: make([]uint32, 0, min(n, preallocLimit)),
		Width:     width,
		Height:    height,
	}

	var b [common.CodewordBytes]byte
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(br, b[:]); err != nil {
			return nil, fmt.Errorf("%w: codeword %d of %d: %v", ErrTruncatedStream, i, n, err)
		}
		s.Codewords = append(s.Codewords, common.BytesToCodeword(b))
	}

	return s, nil
}

// blockCount returns the number of 2x2 blocks in a width x height image.
// The dimensions must be positive, even, and their pixel count must fit in
// an int.
func blockCount(width, height int) (int, error) {
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return 0, fmt.Errorf("%w: %dx%d", common.ErrInvalidDimensions, width, height)
	}
	if _, err := array2.Area(width, height); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidDimensions, err)
	}
	return (width / 2) * (height / 2), nil
}

// Open reads a stream from path, or from standard input if path is empty.
func Open(path string) (*Stream, error) {
	if path == "" {
		return Read(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

package codec

import "errors"

var (
	// ErrCodecNotFound is returned when a codec is not found in the registry
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidParameter is returned when encoding/decoding parameters are invalid
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidBitDepth is returned when the bit depth is outside 1-16
	ErrInvalidBitDepth = errors.New("invalid bit depth (must be 1-16)")

	// ErrUnsupportedFormat is returned when the format is not supported
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrBufferTooSmall is returned when pixel data is shorter than the dimensions require
	ErrBufferTooSmall = errors.New("buffer too small")
)

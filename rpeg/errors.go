package rpeg

import "errors"

var (
	// ErrImageTooSmall is returned when trimming leaves no complete 2x2 block.
	ErrImageTooSmall = errors.New("rpeg: image must be at least 2x2 pixels")

	// ErrInvalidComponents is returned for pixel data that is not RGB.
	ErrInvalidComponents = errors.New("rpeg: only 3-component RGB data is supported")
)

package common

import "errors"

// Common errors
var (
	ErrOddDimensions      = errors.New("image dimensions must be even")
	ErrInvalidDimensions  = errors.New("invalid image dimensions")
	ErrInvalidDenominator = errors.New("invalid denominator")
)

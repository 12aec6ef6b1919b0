package codec

import "github.com/cocosip/go-rpeg-codec/rpeg/chroma"

// Codec is the interface shared by the image codecs in this module
type Codec interface {
	// Encode encodes pixel data
	Encode(params EncodeParams) ([]byte, error)

	// Decode decodes compressed data
	Decode(data []byte) (*DecodeResult, error)

	// UID returns the unique identifier of the stream format
	UID() string

	// Name returns a human-readable name
	Name() string
}

// EncodeParams contains parameters for encoding
type EncodeParams struct {
	PixelData  []byte  // Interleaved pixel data, big-endian samples when BitDepth > 8
	Width      int     // Image width
	Height     int     // Image height
	Components int     // Number of color components (3=RGB)
	BitDepth   int     // Bits per sample (1-16)
	Options    Options // Codec-specific options
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// DecodeResult contains the result of decoding
type DecodeResult struct {
	PixelData  []byte // Decoded pixel data
	Width      int    // Image width
	Height     int    // Image height
	Components int    // Number of color components
	BitDepth   int    // Bits per sample
}

// BaseOptions provides common options for all codecs
type BaseOptions struct {
	// Chroma names the chroma quantization table ("centered", "arith40").
	// Empty selects the default table. Encoder and decoder must agree.
	Chroma string

	// BitDepth of the decoded output (1-16). Zero keeps 8 bits.
	BitDepth int
}

// Validate validates base options
func (o *BaseOptions) Validate() error {
	if o.Chroma != "" {
		if _, err := chroma.Lookup(o.Chroma); err != nil {
			return ErrInvalidParameter
		}
	}
	if o.BitDepth < 0 || o.BitDepth > 16 {
		return ErrInvalidBitDepth
	}
	return nil
}

// Table resolves the configured chroma table.
func (o *BaseOptions) Table() chroma.Table {
	if o.Chroma == "" {
		return chroma.Default()
	}
	t, err := chroma.Lookup(o.Chroma)
	if err != nil {
		return chroma.Default()
	}
	return t
}

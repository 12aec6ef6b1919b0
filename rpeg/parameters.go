package rpeg

import (
	"fmt"

	"github.com/cocosip/go-rpeg-codec/rpeg/chroma"
	"github.com/cocosip/go-rpeg-codec/rpeg/common"
)

// DefaultDenominator is the maximum channel value of decoded images.
const DefaultDenominator = 255

// Options configures the encoder and decoder.
type Options struct {
	// Table quantizes the averaged chroma. Nil selects chroma.Default().
	// The stream does not record the table, so both sides must agree.
	Table chroma.Table

	// Denominator is the maximum channel value of decoded images.
	// Zero selects DefaultDenominator. Ignored when encoding, where the
	// input image carries its own denominator.
	Denominator uint16
}

// DefaultOptions returns the options used when nil is passed.
func DefaultOptions() *Options {
	return &Options{
		Table:       chroma.Default(),
		Denominator: DefaultDenominator,
	}
}

// Validate fills in defaults and checks the table size.
func (o *Options) Validate() error {
	if o.Table == nil {
		o.Table = chroma.Default()
	}
	if o.Denominator == 0 {
		o.Denominator = DefaultDenominator
	}
	if n := o.Table.Len(); n != 1<<common.ChromaWidth {
		return fmt.Errorf("rpeg: chroma table has %d levels, want %d", n, 1<<common.ChromaWidth)
	}
	return nil
}

func resolve(opts *Options) (*Options, error) {
	if opts == nil {
		return DefaultOptions(), nil
	}
	o := *opts
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

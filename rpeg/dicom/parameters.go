package dicom

import (
	"github.com/cocosip/go-dicom/pkg/imaging/codec"

	"github.com/cocosip/go-rpeg-codec/rpeg/chroma"
)

// Ensure RpegParameters implements codec.Parameters
var _ codec.Parameters = (*RpegParameters)(nil)

// RpegParameters contains parameters for rpeg frame compression
type RpegParameters struct {
	// Chroma names the chroma quantization table used on both encode and
	// decode. See chroma.Names for the accepted values.
	Chroma string

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewRpegParameters creates parameters with the default chroma table
func NewRpegParameters() *RpegParameters {
	return &RpegParameters{
		Chroma: "centered",
		params: make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *RpegParameters) GetParameter(name string) interface{} {
	switch name {
	case "chroma":
		return p.Chroma
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *RpegParameters) SetParameter(name string, value interface{}) {
	switch name {
	case "chroma":
		if v, ok := value.(string); ok {
			p.Chroma = v
		}
	default:
		if p.params == nil {
			p.params = make(map[string]interface{})
		}
		p.params[name] = value
	}
}

// Validate resets an unknown chroma table name to the default
func (p *RpegParameters) Validate() error {
	if _, err := chroma.Lookup(p.Chroma); err != nil {
		p.Chroma = "centered"
	}
	return nil
}

// WithChroma sets the chroma table and returns the parameters for chaining
func (p *RpegParameters) WithChroma(name string) *RpegParameters {
	p.Chroma = name
	return p
}

// table resolves the chroma table from typed or generic parameters
func table(parameters codec.Parameters) (chroma.Table, error) {
	if parameters == nil {
		return chroma.Default(), nil
	}
	name, _ := parameters.GetParameter("chroma").(string)
	if name == "" {
		return chroma.Default(), nil
	}
	return chroma.Lookup(name)
}

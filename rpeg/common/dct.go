package common

import "github.com/cocosip/go-rpeg-codec/array2"

// Coefficients are the 2x2 cosine coefficients of a block's luma.
// A is the average brightness; B, C and D are the differences along the
// two axes and the diagonal.
type Coefficients struct {
	A float64
	B float64
	C float64
	D float64
}

// CosineBlock is a block whose luma has been moved to cosine space.
type CosineBlock struct {
	Coefficients
	PbAvg float64
	PrAvg float64
}

// ForwardDCT transforms four luma samples into coefficients.
func ForwardDCT(y [4]float64) Coefficients {
	return Coefficients{
		A: (y[3] + y[2] + y[1] + y[0]) / 4,
		B: (y[3] + y[2] - y[1] - y[0]) / 4,
		C: (y[3] - y[2] + y[1] - y[0]) / 4,
		D: (y[3] - y[2] - y[1] + y[0]) / 4,
	}
}

// InverseDCT is the exact inverse of ForwardDCT.
func InverseDCT(c Coefficients) [4]float64 {
	return [4]float64{
		c.A - c.B - c.C + c.D,
		c.A - c.B + c.C - c.D,
		c.A + c.B - c.C - c.D,
		c.A + c.B + c.C + c.D,
	}
}

// ToCosineSpace applies ForwardDCT to every block.
func ToCosineSpace(blocks *array2.Array2[Block]) *array2.Array2[CosineBlock] {
	return array2.Map(blocks, func(b Block) CosineBlock {
		return CosineBlock{Coefficients: ForwardDCT(b.Luma), PbAvg: b.PbAvg, PrAvg: b.PrAvg}
	})
}

// ToPixelSpace applies InverseDCT to every block.
func ToPixelSpace(blocks *array2.Array2[CosineBlock]) *array2.Array2[Block] {
	return array2.Map(blocks, func(cb CosineBlock) Block {
		return Block{Luma: InverseDCT(cb.Coefficients), PbAvg: cb.PbAvg, PrAvg: cb.PrAvg}
	})
}

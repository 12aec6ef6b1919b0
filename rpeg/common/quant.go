package common

import (
	"math"

	"github.com/cocosip/go-rpeg-codec/array2"
	"github.com/cocosip/go-rpeg-codec/rpeg/chroma"
)

// QuantizedBlock holds the integer fields of one codeword.
type QuantizedBlock struct {
	A       uint64 // 9 bits unsigned
	B       int64  // 5 bits signed
	C       int64  // 5 bits signed
	D       int64  // 5 bits signed
	IndexPb uint64 // 4 bits unsigned
	IndexPr uint64 // 4 bits unsigned
}

// Quantizer converts cosine blocks to fixed-width integers and back.
type Quantizer struct {
	Table chroma.Table
}

// NewQuantizer returns a quantizer using table, or the default chroma
// table if table is nil.
func NewQuantizer(table chroma.Table) *Quantizer {
	if table == nil {
		table = chroma.Default()
	}
	return &Quantizer{Table: table}
}

// QuantizeA scales the block average onto [0, AScale]. Input outside [0, 1]
// is clamped first.
func QuantizeA(a float64) uint64 {
	return uint64(math.Round(clamp(a, 0, 1) * AScale))
}

// DequantizeA is the inverse of QuantizeA.
func DequantizeA(n uint64) float64 {
	return float64(n) / AScale
}

// QuantizeBCD clamps a difference coefficient to ±BCDClamp and scales it
// onto [-15, 15].
func QuantizeBCD(x float64) int64 {
	return int64(math.Round(clamp(x, -BCDClamp, BCDClamp) * BCDScale))
}

// DequantizeBCD is the inverse of QuantizeBCD.
func DequantizeBCD(n int64) float64 {
	return float64(n) / BCDScale
}

func clamp(x, lo, hi float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}

// Quantize converts one cosine block.
func (q *Quantizer) Quantize(cb CosineBlock) QuantizedBlock {
	return QuantizedBlock{
		A:       QuantizeA(cb.A),
		B:       QuantizeBCD(cb.B),
		C:       QuantizeBCD(cb.C),
		D:       QuantizeBCD(cb.D),
		IndexPb: q.Table.IndexOf(cb.PbAvg),
		IndexPr: q.Table.IndexOf(cb.PrAvg),
	}
}

// Dequantize converts one quantized block back to cosine space.
func (q *Quantizer) Dequantize(qb QuantizedBlock) CosineBlock {
	return CosineBlock{
		Coefficients: Coefficients{
			A: DequantizeA(qb.A),
			B: DequantizeBCD(qb.B),
			C: DequantizeBCD(qb.C),
			D: DequantizeBCD(qb.D),
		},
		PbAvg: q.Table.ChromaOf(qb.IndexPb),
		PrAvg: q.Table.ChromaOf(qb.IndexPr),
	}
}

// QuantizeAll quantizes every block.
func (q *Quantizer) QuantizeAll(blocks *array2.Array2[CosineBlock]) *array2.Array2[QuantizedBlock] {
	return array2.Map(blocks, q.Quantize)
}

// DequantizeAll dequantizes every block.
func (q *Quantizer) DequantizeAll(blocks *array2.Array2[QuantizedBlock]) *array2.Array2[CosineBlock] {
	return array2.Map(blocks, q.Dequantize)
}

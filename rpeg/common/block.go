package common

import (
	"fmt"

	"github.com/cocosip/go-rpeg-codec/array2"
)

// Block is a 2x2 neighborhood of component video pixels. Luma keeps all
// four samples in the order top-left, bottom-left, top-right, bottom-right;
// chroma is reduced to its average.
type Block struct {
	Luma  [4]float64
	PbAvg float64
	PrAvg float64
}

// blockOffsets gives the (row, col) offset of each luma sample in a block.
var blockOffsets = [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

func average(v [4]float64) float64 {
	return (v[0] + v[1] + v[2] + v[3]) / 4
}

// NewBlock builds a block from its four pixels, given in luma order.
func NewBlock(pixels [4]ComponentVideo) Block {
	var b Block
	var pb, pr [4]float64
	for i, p := range pixels {
		b.Luma[i] = p.Y
		pb[i] = p.Pb
		pr[i] = p.Pr
	}
	b.PbAvg = average(pb)
	b.PrAvg = average(pr)
	return b
}

// Pixels expands b into four pixels that share the averaged chroma.
func (b Block) Pixels() [4]ComponentVideo {
	var out [4]ComponentVideo
	for i, y := range b.Luma {
		out[i] = ComponentVideo{Y: y, Pb: b.PbAvg, Pr: b.PrAvg}
	}
	return out
}

// ComponentVideoToBlocks groups img into 2x2 blocks. Both dimensions must
// be even.
func ComponentVideoToBlocks(img *array2.Array2[ComponentVideo]) (*array2.Array2[Block], error) {
	w, h := img.Width(), img.Height()
	if w%2 != 0 || h%2 != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrOddDimensions, w, h)
	}

	blocks := array2.FromFill(Block{}, w/2, h/2)
	for cell := range blocks.IterRowMajorMut() {
		var px [4]ComponentVideo
		for i, off := range blockOffsets {
			px[i], _ = img.Get(2*cell.Row+off[0], 2*cell.Col+off[1])
		}
		*cell.Value = NewBlock(px)
	}
	return blocks, nil
}

// BlocksToComponentVideo expands every block back into four pixels.
func BlocksToComponentVideo(blocks *array2.Array2[Block]) *array2.Array2[ComponentVideo] {
	img := array2.FromFill(ComponentVideo{}, blocks.Width()*2, blocks.Height()*2)
	for cell := range blocks.IterRowMajor() {
		px := cell.Value.Pixels()
		for i, off := range blockOffsets {
			img.Set(2*cell.Row+off[0], 2*cell.Col+off[1], px[i])
		}
	}
	return img
}

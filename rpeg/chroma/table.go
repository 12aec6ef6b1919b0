// Package chroma maps averaged chroma samples to 4-bit table indices.
//
// A table holds 16 representative chroma levels in increasing order. A
// sample is quantized to the index of its nearest level; the inverse lookup
// returns the level itself. Any monotonic 16-level table can be used as long
// as encoder and decoder agree on it.
package chroma

import (
	"errors"
	"fmt"
	"math"
)

// Size is the number of levels in a table.
const Size = 16

// ErrUnknownTable is returned by Lookup for an unregistered table name.
var ErrUnknownTable = errors.New("chroma: unknown table")

// Table converts between chroma values in [-0.5, 0.5] and table indices.
type Table interface {
	IndexOf(chroma float64) uint64
	ChromaOf(index uint64) float64
	Len() int
}

// Levels is a table given by its sorted representative values.
type Levels [Size]float64

// Centered has an exact zero level, so neutral colors stay neutral after a
// round trip. With an even level count the negative side gets one extra
// level; both sides saturate at 0.42, so fully saturated blue and yellow
// lose the same amount of chroma.
var Centered = Levels{
	-0.42, -0.30, -0.22, -0.16, -0.11, -0.07, -0.04, -0.017,
	0, 0.02, 0.05, 0.09, 0.14, 0.20, 0.29, 0.42,
}

// Arith40 is the symmetric table of the classic rpeg tool. It has no zero
// level: a neutral sample comes back as -0.011.
var Arith40 = Levels{
	-0.35, -0.20, -0.15, -0.10, -0.077, -0.055, -0.033, -0.011,
	0.011, 0.033, 0.055, 0.077, 0.10, 0.15, 0.20, 0.35,
}

var tables = map[string]*Levels{
	"centered": &Centered,
	"arith40":  &Arith40,
}

// Default returns the table used when none is configured.
func Default() Table { return &Centered }

// Lookup returns the table registered under name.
func Lookup(name string) (Table, error) {
	t, ok := tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// Names lists the registered table names.
func Names() []string {
	return []string{"centered", "arith40"}
}

// IndexOf returns the index of the level nearest to chroma. Ties go to the
// lower index. NaN maps to index 0.
func (l *Levels) IndexOf(chroma float64) uint64 {
	best := uint64(0)
	bestDiff := math.Inf(1)
	for i, level := range l {
		if diff := math.Abs(chroma - level); diff < bestDiff {
			best, bestDiff = uint64(i), diff
		}
	}
	return best
}

// ChromaOf returns the level for index. Indices past the end of the table
// return the last level.
func (l *Levels) ChromaOf(index uint64) float64 {
	if index >= Size {
		index = Size - 1
	}
	return l[index]
}

// Len returns Size.
func (l *Levels) Len() int { return Size }

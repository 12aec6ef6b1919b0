// Package array2 provides a fixed-size two-dimensional array.
//
// Elements are stored in row-major order in a single backing slice. The
// dimensions are set at construction and never change.
package array2

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/bits"
)

var (
	// ErrElementCount is returned when a constructor receives a number of
	// elements different from width*height.
	ErrElementCount = errors.New("array2: element count does not match dimensions")

	// ErrInvalidDimensions is returned for a negative width or height, or
	// when width*height does not fit in an int.
	ErrInvalidDimensions = errors.New("array2: invalid dimensions")
)

// Array2 is a width x height grid of T.
type Array2[T any] struct {
	elems  []T
	width  int
	height int
}

// Cell is one element of an Array2 together with its position.
type Cell[T any] struct {
	Row   int
	Col   int
	Value T
}

// CellRef is like Cell but refers to the stored element.
type CellRef[T any] struct {
	Row   int
	Col   int
	Value *T
}

// FromRowMajor builds an array from elements listed row by row.
// The slice is copied.
func FromRowMajor[T any](elems []T, width, height int) (*Array2[T], error) {
	if err := checkCount(len(elems), width, height); err != nil {
		return nil, err
	}
	a := &Array2[T]{elems: make([]T, len(elems)), width: width, height: height}
	copy(a.elems, elems)
	return a, nil
}

// FromColumnMajor builds an array from elements listed column by column.
func FromColumnMajor[T any](elems []T, width, height int) (*Array2[T], error) {
	if err := checkCount(len(elems), width, height); err != nil {
		return nil, err
	}
	a := &Array2[T]{elems: make([]T, len(elems)), width: width, height: height}
	for i, v := range elems {
		row, col := i%height, i/height
		a.elems[row*width+col] = v
	}
	return a, nil
}

// FromFill builds an array with every cell set to value.
// It panics on negative or overflowing dimensions.
func FromFill[T any](value T, width, height int) *Array2[T] {
	n, err := Area(width, height)
	if err != nil {
		panic(err.Error())
	}
	a := &Array2[T]{elems: make([]T, n), width: width, height: height}
	for i := range a.elems {
		a.elems[i] = value
	}
	return a
}

// Map returns a new array of the same shape holding fn applied to every
// element of a.
func Map[T, U any](a *Array2[T], fn func(T) U) *Array2[U] {
	out := &Array2[U]{elems: make([]U, len(a.elems)), width: a.width, height: a.height}
	for i, v := range a.elems {
		out.elems[i] = fn(v)
	}
	return out
}

// Area returns width*height, or ErrInvalidDimensions if either is negative
// or the product overflows int.
func Area(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	hi, lo := bits.Mul64(uint64(width), uint64(height))
	if hi != 0 || lo > math.MaxInt {
		return 0, fmt.Errorf("%w: %dx%d overflows", ErrInvalidDimensions, width, height)
	}
	return int(lo), nil
}

func checkCount(n, width, height int) error {
	area, err := Area(width, height)
	if err != nil {
		return err
	}
	if n != area {
		return fmt.Errorf("%w: got %d, want %dx%d=%d", ErrElementCount, n, width, height, area)
	}
	return nil
}

// Width returns the number of columns.
func (a *Array2[T]) Width() int { return a.width }

// Height returns the number of rows.
func (a *Array2[T]) Height() int { return a.height }

// Len returns width*height.
func (a *Array2[T]) Len() int { return len(a.elems) }

// Elements returns a row-major copy of the contents.
func (a *Array2[T]) Elements() []T {
	out := make([]T, len(a.elems))
	copy(out, a.elems)
	return out
}

func (a *Array2[T]) inBounds(row, col int) bool {
	return row >= 0 && row < a.height && col >= 0 && col < a.width
}

// Get returns the element at (row, col). The boolean is false if either
// index is out of range.
func (a *Array2[T]) Get(row, col int) (T, bool) {
	if !a.inBounds(row, col) {
		var zero T
		return zero, false
	}
	return a.elems[row*a.width+col], true
}

// GetMut returns a pointer to the element at (row, col), or false if either
// index is out of range.
func (a *Array2[T]) GetMut(row, col int) (*T, bool) {
	if !a.inBounds(row, col) {
		return nil, false
	}
	return &a.elems[row*a.width+col], true
}

// Set overwrites the element at (row, col). It panics if either index is out
// of range.
func (a *Array2[T]) Set(row, col int, value T) {
	if !a.inBounds(row, col) {
		panic(fmt.Sprintf("array2: index (%d, %d) out of range for %dx%d array", row, col, a.width, a.height))
	}
	a.elems[row*a.width+col] = value
}

// IterRowMajor yields every cell, row by row.
func (a *Array2[T]) IterRowMajor() iter.Seq[Cell[T]] {
	return func(yield func(Cell[T]) bool) {
		for i, v := range a.elems {
			if !yield(Cell[T]{Row: i / a.width, Col: i % a.width, Value: v}) {
				return
			}
		}
	}
}

// IterRowMajorMut yields a reference to every cell, row by row. Writes
// through the reference update the array.
func (a *Array2[T]) IterRowMajorMut() iter.Seq[CellRef[T]] {
	return func(yield func(CellRef[T]) bool) {
		for i := range a.elems {
			if !yield(CellRef[T]{Row: i / a.width, Col: i % a.width, Value: &a.elems[i]}) {
				return
			}
		}
	}
}

// IterColumnMajor yields every cell, column by column.
func (a *Array2[T]) IterColumnMajor() iter.Seq[Cell[T]] {
	return func(yield func(Cell[T]) bool) {
		for col := 0; col < a.width; col++ {
			for row := 0; row < a.height; row++ {
				if !yield(Cell[T]{Row: row, Col: col, Value: a.elems[row*a.width+col]}) {
					return
				}
			}
		}
	}
}

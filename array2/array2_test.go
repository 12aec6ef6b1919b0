package array2

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestFromRowMajorRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"1x1", 1, 1},
		{"3x2", 3, 2},
		{"2x3", 2, 3},
		{"7x1", 7, 1},
		{"1x7", 1, 7},
		{"empty", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elems := make([]int, tt.width*tt.height)
			for i := range elems {
				elems[i] = i * 10
			}

			a, err := FromRowMajor(elems, tt.width, tt.height)
			if err != nil {
				t.Fatalf("FromRowMajor failed: %v", err)
			}

			var got []int
			for cell := range a.IterRowMajor() {
				if want := elems[cell.Row*tt.width+cell.Col]; cell.Value != want {
					t.Errorf("cell (%d, %d) = %d, want %d", cell.Row, cell.Col, cell.Value, want)
				}
				got = append(got, cell.Value)
			}
			if len(elems) > 0 && !slices.Equal(got, elems) {
				t.Errorf("row-major iteration = %v, want %v", got, elems)
			}
		})
	}
}

func TestFromRowMajorCopiesInput(t *testing.T) {
	elems := []int{1, 2, 3, 4}
	a, err := FromRowMajor(elems, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	elems[0] = 99
	if v, _ := a.Get(0, 0); v != 1 {
		t.Errorf("array aliases its input: Get(0,0) = %d", v)
	}
}

func TestConstructorsRejectCountMismatch(t *testing.T) {
	tests := []struct {
		name  string
		elems []int
		build func([]int, int, int) (*Array2[int], error)
	}{
		{"row major short", []int{1, 2, 3}, FromRowMajor[int]},
		{"row major long", []int{1, 2, 3, 4, 5}, FromRowMajor[int]},
		{"column major short", []int{1, 2, 3}, FromColumnMajor[int]},
		{"column major long", []int{1, 2, 3, 4, 5}, FromColumnMajor[int]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build(tt.elems, 2, 2)
			if !errors.Is(err, ErrElementCount) {
				t.Errorf("got error %v, want ErrElementCount", err)
			}
		})
	}

	if _, err := FromRowMajor([]int{}, -1, 0); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("negative width: got %v, want ErrInvalidDimensions", err)
	}
}

func TestArea(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          int
		wantErr       bool
	}{
		{"empty", 0, 0, 0, false},
		{"zero height", 1 << 40, 0, 0, false},
		{"small", 3, 4, 12, false},
		{"max int", math.MaxInt, 1, math.MaxInt, false},
		{"negative", -2, 3, 0, true},
		{"wraps to zero", 1 << 32, 1 << 32, 0, true},
		{"overflows", math.MaxInt/2 + 1, 2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Area(tt.width, tt.height)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDimensions) {
					t.Errorf("got %d, %v; want ErrInvalidDimensions", got, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Area(%d, %d) = %d, %v; want %d", tt.width, tt.height, got, err, tt.want)
			}
		})
	}
}

func TestConstructorsRejectOverflowingDimensions(t *testing.T) {
	if _, err := FromRowMajor([]int{}, 1<<32, 1<<32); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("FromRowMajor: got %v, want ErrInvalidDimensions", err)
	}
	if _, err := FromColumnMajor([]int{}, 1<<32, 1<<32); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("FromColumnMajor: got %v, want ErrInvalidDimensions", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("FromFill did not panic on overflowing dimensions")
		}
	}()
	FromFill(0, 1<<32, 1<<32)
}

func TestFromColumnMajorMatchesTransposedInput(t *testing.T) {
	// logical grid:
	// 1 2 3
	// 4 5 6
	rowMajor := []int{1, 2, 3, 4, 5, 6}
	colMajor := []int{1, 4, 2, 5, 3, 6}

	r, err := FromRowMajor(rowMajor, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	c, err := FromColumnMajor(colMajor, 3, 2)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(r.Elements(), c.Elements()) {
		t.Errorf("column-major grid %v differs from row-major grid %v", c.Elements(), r.Elements())
	}

	var order []int
	for cell := range c.IterColumnMajor() {
		order = append(order, cell.Value)
	}
	if !slices.Equal(order, colMajor) {
		t.Errorf("column-major iteration = %v, want %v", order, colMajor)
	}
}

func TestIterColumnMajorPositions(t *testing.T) {
	a := FromFill(0, 2, 3)
	want := [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}

	i := 0
	for cell := range a.IterColumnMajor() {
		if got := [2]int{cell.Row, cell.Col}; got != want[i] {
			t.Errorf("position %d = %v, want %v", i, got, want[i])
		}
		i++
	}
	if i != len(want) {
		t.Errorf("iterated %d cells, want %d", i, len(want))
	}
}

func TestIterIsFreshAndStoppable(t *testing.T) {
	a, _ := FromRowMajor([]int{1, 2, 3, 4}, 2, 2)

	seq := a.IterRowMajor()
	for range 2 {
		n := 0
		for range seq {
			n++
		}
		if n != 4 {
			t.Errorf("iteration yielded %d cells, want 4", n)
		}
	}

	n := 0
	for cell := range a.IterRowMajor() {
		n++
		if cell.Value == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("break after second cell visited %d cells", n)
	}
}

func TestIterRowMajorMut(t *testing.T) {
	a, _ := FromRowMajor([]int{1, 2, 3, 4, 5, 6}, 3, 2)

	for cell := range a.IterRowMajorMut() {
		*cell.Value = cell.Row*100 + cell.Col
	}

	want := []int{0, 1, 2, 100, 101, 102}
	if got := a.Elements(); !slices.Equal(got, want) {
		t.Errorf("after mutation = %v, want %v", got, want)
	}
}

func TestFromFill(t *testing.T) {
	type pixel struct{ r, g, b uint16 }
	a := FromFill(pixel{1, 2, 3}, 4, 3)

	if a.Width() != 4 || a.Height() != 3 || a.Len() != 12 {
		t.Fatalf("dimensions = %dx%d len %d", a.Width(), a.Height(), a.Len())
	}

	p, _ := a.GetMut(0, 0)
	p.r = 9
	if v, _ := a.Get(0, 1); v.r != 1 {
		t.Errorf("filled cells share storage: (0,1).r = %d", v.r)
	}
}

func TestGetBoundsAreSymmetric(t *testing.T) {
	a, _ := FromRowMajor([]int{1, 2, 3, 4, 5, 6}, 3, 2)

	tests := []struct {
		row, col int
		ok       bool
		want     int
	}{
		{0, 0, true, 1},
		{1, 2, true, 6},
		{0, 3, false, 0},
		{2, 0, false, 0},
		{-1, 0, false, 0},
		{0, -1, false, 0},
	}

	for _, tt := range tests {
		v, ok := a.Get(tt.row, tt.col)
		if ok != tt.ok || v != tt.want {
			t.Errorf("Get(%d, %d) = %d, %v; want %d, %v", tt.row, tt.col, v, ok, tt.want, tt.ok)
		}
		p, ok := a.GetMut(tt.row, tt.col)
		if ok != tt.ok || (ok && *p != tt.want) || (!ok && p != nil) {
			t.Errorf("GetMut(%d, %d) ok = %v, want %v", tt.row, tt.col, ok, tt.ok)
		}
	}
}

func TestSet(t *testing.T) {
	a := FromFill(0, 2, 2)
	a.Set(1, 0, 7)
	if v, _ := a.Get(1, 0); v != 7 {
		t.Errorf("Get(1, 0) after Set = %d, want 7", v)
	}

	for _, idx := range [][2]int{{2, 0}, {0, 2}, {-1, 0}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Set(%d, %d) did not panic", idx[0], idx[1])
				}
			}()
			a.Set(idx[0], idx[1], 1)
		}()
	}
}

func TestMap(t *testing.T) {
	a, _ := FromRowMajor([]int{1, 2, 3, 4, 5, 6}, 2, 3)
	b := Map(a, func(v int) float64 { return float64(v) / 2 })

	if b.Width() != 2 || b.Height() != 3 {
		t.Fatalf("Map changed shape to %dx%d", b.Width(), b.Height())
	}
	if v, _ := b.Get(2, 1); v != 3 {
		t.Errorf("Map result (2,1) = %v, want 3", v)
	}
}

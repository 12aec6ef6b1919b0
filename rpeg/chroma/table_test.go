package chroma

import (
	"errors"
	"math"
	"testing"
)

func TestTablesAreMonotonic(t *testing.T) {
	for _, name := range Names() {
		tbl, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
		if tbl.Len() != Size {
			t.Errorf("%s: Len() = %d, want %d", name, tbl.Len(), Size)
		}
		for i := uint64(1); i < Size; i++ {
			if tbl.ChromaOf(i) <= tbl.ChromaOf(i-1) {
				t.Errorf("%s: level %d (%v) not above level %d (%v)", name, i, tbl.ChromaOf(i), i-1, tbl.ChromaOf(i-1))
			}
		}
	}
}

func TestIndexOfLevelsIsIdentity(t *testing.T) {
	for _, tbl := range []*Levels{&Centered, &Arith40} {
		for i := uint64(0); i < Size; i++ {
			if got := tbl.IndexOf(tbl.ChromaOf(i)); got != i {
				t.Errorf("IndexOf(ChromaOf(%d)) = %d", i, got)
			}
		}
	}
}

func TestIndexOfNearest(t *testing.T) {
	tests := []struct {
		name  string
		table *Levels
		value float64
		want  uint64
	}{
		{"centered zero", &Centered, 0, 8},
		{"centered tiny negative", &Centered, -1e-9, 8},
		{"centered max", &Centered, 0.5, 15},
		{"centered min", &Centered, -0.5, 0},
		{"arith40 zero goes low", &Arith40, 0, 7},
		{"arith40 small positive", &Arith40, 0.005, 8},
		{"arith40 beyond range", &Arith40, 0.9, 15},
		{"arith40 below range", &Arith40, -0.9, 0},
		{"arith40 between", &Arith40, 0.09, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.table.IndexOf(tt.value); got != tt.want {
				t.Errorf("IndexOf(%v) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestIndexOfMonotonic(t *testing.T) {
	prev := uint64(0)
	for x := -0.5; x <= 0.5; x += 0.001 {
		got := Centered.IndexOf(x)
		if got < prev {
			t.Fatalf("IndexOf(%v) = %d after %d", x, got, prev)
		}
		prev = got
	}
}

func TestCenteredSaturatesSymmetrically(t *testing.T) {
	lo, hi := Centered.ChromaOf(0), Centered.ChromaOf(Size-1)
	if lo != -hi {
		t.Errorf("extreme levels = %v, %v; want equal magnitude", lo, hi)
	}
	if Centered.IndexOf(0.5) != Size-1 || Centered.IndexOf(-0.5) != 0 {
		t.Error("full-scale chroma does not reach the extreme levels")
	}
}

func TestChromaOfClampsIndex(t *testing.T) {
	if got := Arith40.ChromaOf(99); got != 0.35 {
		t.Errorf("ChromaOf(99) = %v, want 0.35", got)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("nope"); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("Lookup(nope) error = %v", err)
	}
	if Default().ChromaOf(8) != 0 {
		t.Error("default table has no zero level at index 8")
	}
	if got := Centered.IndexOf(math.NaN()); got != 0 {
		t.Errorf("IndexOf(NaN) = %d, want 0", got)
	}
}

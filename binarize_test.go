package forbild

import (
	"errors"
	"testing"

	"github.com/forbild/forbild/imageutil"
)

func TestBinarizeGradientMedians(t *testing.T) {
	bits, medians, err := Binarize(imageutil.CreateDiagonalGradientGray(GridSize))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := map[Quadrant]uint8{TopLeft: 7, TopRight: 15, BottomLeft: 15, BottomRight: 23}
	for q, w := range want {
		col, row := q.Halves()
		if got := medians[col][row]; got != w {
			t.Errorf("Expected %s median %d, got %d", q, w, got)
		}
	}

	if bits[0] != 0 {
		t.Errorf("Expected bit (0,0) = 0, got %d", bits[0])
	}
	if bits[HashLen-1] != 1 {
		t.Errorf("Expected bit (15,15) = 1, got %d", bits[HashLen-1])
	}
	// (7,0) holds 7, exactly the top-left median.
	if bits[7] != 1 {
		t.Errorf("Expected a pixel equal to its median to be 1, got %d", bits[7])
	}
	// (8,0) holds 8, below the top-right median of 15.
	if bits[8] != 0 {
		t.Errorf("Expected bit (8,0) = 0, got %d", bits[8])
	}
}

func TestBinarizeIndexMedians(t *testing.T) {
	_, medians, err := Binarize(imageutil.CreateIndexGray(GridSize))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := [2][2]uint8{{64, 192}, {72, 200}}
	if medians != want {
		t.Errorf("Expected medians %v, got %v", want, medians)
	}
}

func TestBinarizeInvariant(t *testing.T) {
	g := Normalize(imageutil.CreateColorBarsImage(120, 80), DefaultOptions())
	bits, medians, err := Binarize(g)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	values := g.Values()
	for i := range bits {
		col, row := QuadrantOf(i).Halves()
		want := uint8(0)
		if values[i] >= medians[col][row] {
			want = 1
		}
		if bits[i] != want {
			t.Fatalf("Bit %d is %d, expected %d", i, bits[i], want)
		}
	}
}

func TestBinarizeRejectsWrongSize(t *testing.T) {
	_, _, err := Binarize(imageutil.NewGrayImage(8, 16))
	var lerr *LengthError
	if !errors.As(err, &lerr) {
		t.Fatalf("Expected *LengthError, got %v", err)
	}
	if lerr.Got != 8 || lerr.Want != GridSize {
		t.Errorf("Expected got=8 want=%d, got %+v", GridSize, lerr)
	}
}

func TestQuadrantOf(t *testing.T) {
	tests := []struct {
		index int
		want  Quadrant
	}{
		{0, TopLeft},
		{7, TopLeft},
		{8, TopRight},
		{127, TopRight},
		{128, BottomLeft},
		{135, BottomLeft},
		{136, BottomRight},
		{255, BottomRight},
	}
	for _, tt := range tests {
		if got := QuadrantOf(tt.index); got != tt.want {
			t.Errorf("QuadrantOf(%d): expected %s, got %s", tt.index, tt.want, got)
		}
	}
}

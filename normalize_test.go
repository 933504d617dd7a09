package forbild

import (
	"testing"

	"github.com/forbild/forbild/imageutil"
)

func TestCanonicalizeOrientationGradient(t *testing.T) {
	g := imageutil.CreateDiagonalGradientGray(GridSize)
	out := CanonicalizeOrientation(g)

	if out != g {
		t.Error("Expected the same grid to be returned")
	}
	if got := out.GetGray(0, 0); got != 30 {
		t.Errorf("Expected 30 at the origin, got %d", got)
	}
	if got := out.GetGray(15, 15); got != 0 {
		t.Errorf("Expected 0 at the far corner, got %d", got)
	}
}

func TestCanonicalizeOrientationFlips(t *testing.T) {
	tests := []struct {
		name         string
		x, y         int
		wantX, wantY int
	}{
		{"top-left stays", 3, 2, 3, 2},
		{"bottom-left flips vertically", 3, 12, 3, 3},
		{"top-right flips horizontally", 12, 2, 3, 2},
		{"bottom-right flips both", 12, 12, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := imageutil.CreateSolidGray(GridSize, GridSize, 10)
			g.SetGrayValue(tt.x, tt.y, 200)
			CanonicalizeOrientation(g)
			if got := g.GetGray(tt.wantX, tt.wantY); got != 200 {
				t.Errorf("Expected bright pixel at (%d,%d), got %d", tt.wantX, tt.wantY, got)
			}
		})
	}
}

func TestCanonicalizeOrientationTies(t *testing.T) {
	// Equal maxima in every quadrant: the first evaluated wins, so nothing moves.
	g := imageutil.CreateSolidGray(GridSize, GridSize, 10)
	for _, p := range [][2]int{{1, 1}, {9, 1}, {1, 9}, {9, 9}} {
		g.SetGrayValue(p[0], p[1], 200)
	}
	g.SetGrayValue(0, 0, 11)
	CanonicalizeOrientation(g)
	if g.GetGray(0, 0) != 11 {
		t.Error("Tied quadrants should leave the grid unflipped")
	}

	// Bottom-left and bottom-right tie; bottom-left is evaluated first.
	g = imageutil.CreateSolidGray(GridSize, GridSize, 10)
	g.SetGrayValue(2, 12, 200)
	g.SetGrayValue(12, 12, 200)
	g.SetGrayValue(0, 15, 11)
	CanonicalizeOrientation(g)
	if g.GetGray(0, 0) != 11 {
		t.Errorf("Expected a vertical flip only, origin is %d", g.GetGray(0, 0))
	}
}

func TestCanonicalizeOrientationDarkGrid(t *testing.T) {
	g := imageutil.CreateSolidGray(GridSize, GridSize, 0)
	g.SetGrayValue(15, 0, 1)
	CanonicalizeOrientation(g)
	if g.GetGray(0, 0) != 1 {
		t.Error("Expected horizontal flip for a top-right maximum")
	}
}

func TestNormalizeMirrorInvariance(t *testing.T) {
	img := imageutil.CreateBlobImage(64, 48, 50, 10)
	want := Normalize(img, DefaultOptions()).Values()

	for _, m := range []struct {
		name string
		h, v bool
	}{
		{"horizontal", true, false},
		{"vertical", false, true},
		{"both", true, true},
	} {
		mirrored := imageutil.MirrorRGBA(img, m.h, m.v)
		got := Normalize(mirrored, DefaultOptions()).Values()
		if imageutil.CalculateMaxDiffGray(gridOf(t, want), gridOf(t, got)) > 1 {
			t.Errorf("%s mirror changed the canonical grid", m.name)
		}
	}
}

func TestDownsampleSize(t *testing.T) {
	gray := ToGrayscale(imageutil.CreateCheckerboardImage(100, 60, 5))
	for _, r := range []Resampling{ResampleGaussian, ResampleBlurBox, ResampleBlurLanczos} {
		out := Downsample(gray, GridSize, r)
		if out.Width() != GridSize || out.Height() != GridSize {
			t.Errorf("%s: expected %dx%d, got %dx%d", r, GridSize, GridSize, out.Width(), out.Height())
		}
	}
}

func TestParseResampling(t *testing.T) {
	for _, r := range []Resampling{ResampleGaussian, ResampleBlurBox, ResampleBlurLanczos} {
		got, ok := ParseResampling(r.String())
		if !ok || got != r {
			t.Errorf("Expected %s to parse back, got %v (%v)", r, got, ok)
		}
	}
	if _, ok := ParseResampling("nearest"); ok {
		t.Error("Expected nearest to be rejected")
	}
}

func gridOf(t *testing.T, values []uint8) *imageutil.GrayImage {
	t.Helper()
	g, err := imageutil.GrayImageFromValues(GridSize, GridSize, values)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return g
}

package forbild

import (
	"path/filepath"
	"testing"

	"github.com/forbild/forbild/imageutil"
)

func TestRenderPreview(t *testing.T) {
	fp := gradientFingerprint(t)
	img, err := RenderPreview(fp, 4)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	panel := GridSize * 4
	if img.Bounds().Dx() < 2*panel+previewGap {
		t.Errorf("Preview too narrow: %d", img.Bounds().Dx())
	}
	if img.Bounds().Dy() <= panel {
		t.Errorf("Expected room for the caption, height %d", img.Bounds().Dy())
	}

	// Bottom-right pixel of the gradient is 30 and binarizes to 1.
	if c := img.RGBAAt(panel-1, panel-1); c.R != 30 {
		t.Errorf("Expected grid value 30, got %d", c.R)
	}
	if c := img.RGBAAt(2*panel+previewGap-1, panel-1); c.R != 255 {
		t.Errorf("Expected a white bit, got %d", c.R)
	}
	if c := img.RGBAAt(panel+previewGap, 0); c.R != 0 {
		t.Errorf("Expected a black bit, got %d", c.R)
	}
}

func TestRenderPreviewWithoutSnapshot(t *testing.T) {
	fp, err := FromHex(oracleHex)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	img, err := RenderPreview(fp, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c := img.RGBAAt(0, 0); c.R != 255 {
		t.Errorf("Expected a blank grid panel, got %d", c.R)
	}
}

func TestSavePreview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	if err := SavePreview(gradientFingerprint(t), 2, path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := imageutil.LoadImage(path, false); err != nil {
		t.Errorf("Failed to read preview back: %v", err)
	}
}

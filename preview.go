package forbild

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/forbild/forbild/imageutil"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	previewGap       = 4
	previewFontSize  = 12
	previewLineChars = 16
)

var (
	previewFontOnce sync.Once
	previewFont     *truetype.Font
	previewFontErr  error
)

func loadPreviewFont() (*truetype.Font, error) {
	previewFontOnce.Do(func() {
		previewFont, previewFontErr = freetype.ParseFont(goregular.TTF)
	})
	return previewFont, previewFontErr
}

// RenderPreview draws a fingerprint for inspection: the canonical
// grayscale grid on the left, the binarized grid on the right, each pixel
// enlarged to scale x scale, and the hex string underneath in lines of
// previewLineChars characters.
//
// Fingerprints without a snapshot get a blank left panel.
func RenderPreview(fp *Fingerprint, scale int) (*image.RGBA, error) {
	if scale < 1 {
		scale = 1
	}
	ttf, err := loadPreviewFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse preview font: %w", err)
	}

	panel := GridSize * scale
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    previewFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	hex := fp.Hex()
	var lines []string
	for i := 0; i < len(hex); i += previewLineChars {
		lines = append(lines, hex[i:i+previewLineChars])
	}

	metrics := face.Metrics()
	lineHeight := (metrics.Ascent + metrics.Descent).Ceil()
	textWidth := font.MeasureString(face, lines[0]).Ceil()

	width := 2*panel + previewGap
	if textWidth+2*previewGap > width {
		width = textWidth + 2*previewGap
	}
	height := panel + previewGap + len(lines)*lineHeight + previewGap

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	if grid := fp.Grid(); grid != nil {
		big := imageutil.ResizeGray(grid, panel, panel, imageutil.InterpolationNearest)
		draw.Draw(img, image.Rect(0, 0, panel, panel), big.Gray, image.Point{}, draw.Src)
	}

	bits := imageutil.NewGrayImage(GridSize, GridSize)
	for i, b := range fp.bits {
		bits.SetGrayValue(i%GridSize, i/GridSize, b*255)
	}
	big := imageutil.ResizeGray(bits, panel, panel, imageutil.InterpolationNearest)
	draw.Draw(img, image.Rect(panel+previewGap, 0, 2*panel+previewGap, panel), big.Gray, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(previewFontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(color.Black))
	ctx.SetHinting(font.HintingFull)

	baseline := panel + previewGap + metrics.Ascent.Ceil()
	for _, line := range lines {
		if _, err := ctx.DrawString(line, freetype.Pt(previewGap, baseline)); err != nil {
			return nil, fmt.Errorf("failed to draw caption: %w", err)
		}
		baseline += lineHeight
	}
	return img, nil
}

// SavePreview renders fp and writes it to path. The format follows the
// file extension.
func SavePreview(fp *Fingerprint, scale int, path string) error {
	img, err := RenderPreview(fp, scale)
	if err != nil {
		return err
	}
	return imageutil.SaveImage(img, path)
}

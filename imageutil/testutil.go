package imageutil

import (
	"image/color"
	"math"
)

// CreateDiagonalGradientGray creates a size x size grid where each pixel
// holds x+y, so the brightest pixel sits in the bottom-right corner.
func CreateDiagonalGradientGray(size int) *GrayImage {
	img := NewGrayImage(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetGrayValue(x, y, uint8(x+y))
		}
	}
	return img
}

// CreateIndexGray creates a size x size grid whose pixels count up in
// row-major order, wrapping at 256.
func CreateIndexGray(size int) *GrayImage {
	img := NewGrayImage(size, size)
	for i := 0; i < size*size; i++ {
		img.SetGrayValue(i%size, i/size, uint8(i))
	}
	return img
}

// CreateSolidGray creates a uniform grayscale image.
func CreateSolidGray(width, height int, v uint8) *GrayImage {
	img := NewGrayImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// CreateGradientImage creates a horizontal gradient test image.
func CreateGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / (width - 1))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// CreateCheckerboardImage creates a checkerboard pattern.
func CreateCheckerboardImage(width, height, squareSize int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			isWhite := ((x/squareSize)+(y/squareSize))%2 == 0
			if isWhite {
				img.SetRGB(x, y, RGB{R: 255, G: 255, B: 255})
			} else {
				img.SetRGB(x, y, RGB{})
			}
		}
	}
	return img
}

// CreateColorBarsImage creates a color bars test pattern.
func CreateColorBarsImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	colors := []RGB{
		{255, 255, 255}, // White
		{255, 255, 0},   // Yellow
		{0, 255, 255},   // Cyan
		{0, 255, 0},     // Green
		{255, 0, 255},   // Magenta
		{255, 0, 0},     // Red
		{0, 0, 255},     // Blue
		{0, 0, 0},       // Black
	}

	barWidth := width / len(colors)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colorIdx := x / barWidth
			if colorIdx >= len(colors) {
				colorIdx = len(colors) - 1
			}
			img.SetRGB(x, y, colors[colorIdx])
		}
	}
	return img
}

// CreateBlobImage creates a dark image with a bright blob centred at
// (cx, cy). Useful for checking that mirrored copies normalize alike.
func CreateBlobImage(width, height, cx, cy int) *RGBAImage {
	img := NewRGBAImage(width, height)
	radius := float64(min(width, height)) / 4
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := math.Hypot(float64(x-cx), float64(y-cy))
			v := 30.0
			if d < radius {
				v += 200 * (1 - d/radius)
			}
			// a second, fainter feature breaks the symmetry of the scene
			if x < width/8 && y > height/2 {
				v += 40
			}
			g := uint8(math.Min(math.Round(v), 255))
			img.SetRGB(x, y, RGB{R: g, G: g, B: g})
		}
	}
	return img
}

// MirrorRGBA returns a copy of img flipped horizontally and/or vertically.
func MirrorRGBA(img *RGBAImage, horizontal, vertical bool) *RGBAImage {
	width, height := img.Width(), img.Height()
	out := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx, sy := x, y
			if horizontal {
				sx = width - 1 - x
			}
			if vertical {
				sy = height - 1 - y
			}
			out.SetRGBA(x, y, img.RGBAAt(sx, sy))
		}
	}
	return out
}

// CalculateMSEGray calculates the Mean Squared Error between two grayscale images.
func CalculateMSEGray(img1, img2 *GrayImage) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return math.MaxFloat64
	}

	width, height := img1.Width(), img1.Height()
	var sumSq float64
	count := float64(width * height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := float64(img1.GetGray(x, y)) - float64(img2.GetGray(x, y))
			sumSq += d * d
		}
	}

	return sumSq / count
}

// CalculateMaxDiffGray returns the largest absolute per-pixel difference.
func CalculateMaxDiffGray(img1, img2 *GrayImage) int {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return 256
	}

	maxDiff := 0
	for y := 0; y < img1.Height(); y++ {
		for x := 0; x < img1.Width(); x++ {
			d := abs(int(img1.GetGray(x, y)) - int(img2.GetGray(x, y)))
			if d > maxDiff {
				maxDiff = d
			}
		}
	}
	return maxDiff
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

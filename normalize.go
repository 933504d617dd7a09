package forbild

import (
	"image"

	"github.com/forbild/forbild/imageutil"
)

// Normalize reduces a decoded image to its canonical grid: grayscale,
// downsampled to GridSize x GridSize, then mirrored so the brightest
// quadrant sits top-left.
func Normalize(img image.Image, opts Options) *imageutil.GrayImage {
	gray := ToGrayscale(img)
	grid := Downsample(gray, GridSize, opts.Resampling)
	return CanonicalizeOrientation(grid)
}

// ToGrayscale reduces img to BT.601 luminance. Single-channel images pass
// through unchanged.
func ToGrayscale(img image.Image) *imageutil.GrayImage {
	return imageutil.ToGrayscale(img)
}

// Downsample resamples gray to exactly size x size with the selected
// low-pass filter.
func Downsample(gray *imageutil.GrayImage, size int, r Resampling) *imageutil.GrayImage {
	switch r {
	case ResampleBlurBox:
		return imageutil.ResizeBlurBox(gray, size, size)
	case ResampleBlurLanczos:
		return imageutil.ResizeBlurLanczos(gray, size, size)
	default:
		return imageutil.ResizeGaussian(gray, size, size)
	}
}

// CanonicalizeOrientation mirrors g in place so that the quadrant holding
// the brightest pixel ends up top-left, and returns g. The caller hands
// over g; it must not keep using a pre-flip view of the pixels.
//
// Quadrants are evaluated in the order (col 0, row 0), (col 0, row 1),
// (col 1, row 0), (col 1, row 1) and a later quadrant only wins on a
// strictly brighter maximum, so ties keep the earlier one.
func CanonicalizeOrientation(g *imageutil.GrayImage) *imageutil.GrayImage {
	halfW, halfH := g.Width()/2, g.Height()/2

	order := [4][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	winner := 0
	var brightest uint8
	for i, cr := range order {
		max := g.RegionMax(cr[0]*halfW, cr[1]*halfH, halfW, halfH)
		if max > brightest {
			brightest = max
			winner = i
		}
	}

	switch order[winner] {
	case [2]int{0, 1}:
		imageutil.FlipVertical(g)
	case [2]int{1, 0}:
		imageutil.FlipHorizontal(g)
	case [2]int{1, 1}:
		imageutil.FlipHorizontal(g)
		imageutil.FlipVertical(g)
	}
	return g
}

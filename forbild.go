// Package forbild computes quadrant-median perceptual fingerprints of
// images and the distances between them.
//
// An image is reduced to a GridSize x GridSize grayscale grid, mirrored so
// that its brightest quadrant sits top-left, and every pixel is compared to
// the median of its quadrant. The resulting HashLen bits form the
// fingerprint. Images that differ only by a horizontal or vertical flip
// usually produce identical fingerprints; visually similar images produce
// fingerprints with a small Hamming distance.
package forbild

const (
	// GridSize is the side length of the canonical grid.
	GridSize = 16

	// HashLen is the number of bits in a fingerprint.
	HashLen = GridSize * GridSize

	// HexLen is the length of the hexadecimal encoding of a fingerprint.
	HexLen = HashLen / 4

	half = GridSize / 2
)

// Resampling selects the low-pass filter used to shrink an image to the
// canonical grid. Every option smooths before sampling; plain nearest
// neighbour sampling is not offered because aliasing at 16x16 destroys the
// median threshold signal.
type Resampling int

const (
	// ResampleGaussian resamples with a Gaussian-weighted filter.
	ResampleGaussian Resampling = iota

	// ResampleBlurBox blurs with a Gaussian sized to the reduction ratio and
	// then box-averages.
	ResampleBlurBox

	// ResampleBlurLanczos blurs with a 5x5 Gaussian kernel and then applies
	// a ratio-scaled Lanczos-3 filter.
	ResampleBlurLanczos
)

func (r Resampling) String() string {
	switch r {
	case ResampleGaussian:
		return "gaussian"
	case ResampleBlurBox:
		return "blur-box"
	case ResampleBlurLanczos:
		return "blur-lanczos"
	default:
		return "unknown"
	}
}

// ParseResampling maps the names returned by Resampling.String back to
// their values.
func ParseResampling(name string) (Resampling, bool) {
	for _, r := range []Resampling{ResampleGaussian, ResampleBlurBox, ResampleBlurLanczos} {
		if r.String() == name {
			return r, true
		}
	}
	return 0, false
}

// Options controls how images are decoded and normalized.
type Options struct {
	// Resampling is the downsampling filter.
	Resampling Resampling

	// AutoOrient applies the EXIF orientation of JPEG files before
	// hashing. Off by default so fingerprints depend on pixel data only.
	AutoOrient bool
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{Resampling: ResampleGaussian}
}

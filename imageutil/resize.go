package imageutil

import (
	"image"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for ResizeGray.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality scaling.
	// This is the closest equivalent to OpenCV's INTER_AREA.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	// Equivalent to OpenCV's INTER_LINEAR.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Only suitable for upscaling, e.g. when enlarging a grid for display.
	InterpolationNearest
)

// ResizeGray resizes a grayscale image to the specified dimensions with
// one of the golang.org/x/image/draw scalers.
func ResizeGray(img *GrayImage, width, height int, interp Interpolation) *GrayImage {
	dst := NewGrayImage(width, height)
	dstRect := image.Rect(0, 0, width, height)

	var scaler draw.Scaler
	switch interp {
	case InterpolationArea:
		scaler = draw.CatmullRom
	case InterpolationLinear:
		scaler = draw.BiLinear
	case InterpolationNearest:
		scaler = draw.NearestNeighbor
	default:
		scaler = draw.CatmullRom
	}

	scaler.Scale(dst.Gray, dstRect, img.Gray, img.Bounds(), draw.Src, nil)
	return dst
}

// ResizeGaussian resamples a grayscale image with a Gaussian filter whose
// support widens with the downscale ratio, so every output pixel is a
// smooth weighted average of its source neighbourhood. Resizing to the
// current dimensions returns an unchanged copy.
func ResizeGaussian(img *GrayImage, width, height int) *GrayImage {
	nrgba := imaging.Resize(img.Gray, width, height, imaging.Gaussian)
	dst := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// imaging replicates the gray value into R, G and B.
			dst.Pix[y*dst.Stride+x] = nrgba.Pix[y*nrgba.Stride+x*4]
		}
	}
	return dst
}

// ResizeBlurBox applies a Gaussian pre-blur sized to the downscale ratio
// and then box-averages into the target dimensions.
func ResizeBlurBox(img *GrayImage, width, height int) *GrayImage {
	g := gift.New(
		gift.GaussianBlur(blurSigma(img, width, height)),
		gift.Resize(width, height, gift.BoxResampling),
	)
	dst := NewGrayImage(width, height)
	g.Draw(dst.Gray, img.Gray)
	return dst
}

// ResizeBlurLanczos applies the same pre-blur as ResizeBlurBox and then
// resamples with Lanczos-3. nfnt/resize widens the Lanczos window by the
// downscale ratio, so the result stays low-pass for large reductions.
func ResizeBlurLanczos(img *GrayImage, width, height int) *GrayImage {
	blurred := NewGrayImage(img.Width(), img.Height())
	gift.New(gift.GaussianBlur(blurSigma(img, width, height))).Draw(blurred.Gray, img.Gray)
	return ToGrayscale(resize.Resize(uint(width), uint(height), blurred.Gray, resize.Lanczos3))
}

// blurSigma picks half the larger downscale ratio as the pre-blur sigma.
// Upscaling or identity resizes get no blur.
func blurSigma(img *GrayImage, width, height int) float32 {
	rx := float32(img.Width()) / float32(width)
	ry := float32(img.Height()) / float32(height)
	ratio := rx
	if ry > ratio {
		ratio = ry
	}
	if ratio <= 1 {
		return 0
	}
	return ratio / 2
}

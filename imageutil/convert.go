package imageutil

import (
	"image"
	"image/color"
)

// Luma returns the BT.601 luminance of an 8-bit RGB triple:
// Y = 0.299*R + 0.587*G + 0.114*B, rounded to the nearest integer.
// Integer math keeps the result exact for gray inputs (R == G == B).
func Luma(r, g, b uint8) uint8 {
	lum := (299*int(r) + 587*int(g) + 114*int(b) + 500) / 1000
	if lum > 255 {
		lum = 255
	}
	return uint8(lum)
}

// ToGrayscale reduces any image to a single luminance channel. Images that
// are already single-channel are copied through unchanged. Color images
// are read as non-premultiplied RGB so that transparency does not darken
// the result.
func ToGrayscale(img image.Image) *GrayImage {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *GrayImage:
		return src.Clone()
	case *image.Gray:
		gray := NewGrayImage(width, height)
		for y := 0; y < height; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(gray.Pix[y*gray.Stride:], src.Pix[off:off+width])
		}
		return gray
	}

	gray := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			gray.Pix[y*gray.Stride+x] = Luma(c.R, c.G, c.B)
		}
	}

	return gray
}

// GrayscaleToRGBA converts a grayscale image back to RGBA.
func GrayscaleToRGBA(gray *GrayImage) *RGBAImage {
	width, height := gray.Width(), gray.Height()
	rgba := NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := gray.GetGray(x, y)
			rgba.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}

	return rgba
}

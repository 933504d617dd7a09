// Package imageutil provides the pure Go raster helpers used by the
// fingerprint pipeline: single-channel grids, luma conversion, low-pass
// resampling, in-place mirroring, decoding and saving.
package imageutil

import (
	"fmt"
	"image"
	"image/color"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to color.RGBA for use with standard library.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// SetRGB sets the RGB value at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, c.ToColor())
}

// GrayImage wraps image.Gray for single-channel luminance grids.
// Bounds always start at the origin.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a new GrayImage with the specified dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// GrayImageFromValues builds a width x height image from row-major
// luminance values. The values are copied.
func GrayImageFromValues(width, height int, values []uint8) (*GrayImage, error) {
	if len(values) != width*height {
		return nil, fmt.Errorf("expected %d values for a %dx%d image, got %d",
			width*height, width, height, len(values))
	}
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+width], values[y*width:(y+1)*width])
	}
	return img, nil
}

// Width returns the image width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the grayscale value at (x, y).
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.Pix[y*img.Stride+x]
}

// SetGrayValue sets the grayscale value at (x, y).
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	img.Pix[y*img.Stride+x] = v
}

// Values returns the pixels as a fresh row-major slice of
// Width()*Height() entries, independent of the stride.
func (img *GrayImage) Values() []uint8 {
	width, height := img.Width(), img.Height()
	out := make([]uint8, 0, width*height)
	for y := 0; y < height; y++ {
		out = append(out, img.Pix[y*img.Stride:y*img.Stride+width]...)
	}
	return out
}

// RegionMax returns the brightest value inside the rectangle
// [x0, x0+w) x [y0, y0+h). An empty region yields 0.
func (img *GrayImage) RegionMax(x0, y0, w, h int) uint8 {
	var max uint8
	for y := y0; y < y0+h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+img.Width()]
		for x := x0; x < x0+w; x++ {
			if row[x] > max {
				max = row[x]
			}
		}
	}
	return max
}

// Clone creates a deep copy of the image.
func (img *GrayImage) Clone() *GrayImage {
	clone := NewGrayImage(img.Width(), img.Height())
	for y := 0; y < img.Height(); y++ {
		copy(clone.Pix[y*clone.Stride:], img.Pix[y*img.Stride:y*img.Stride+img.Width()])
	}
	return clone
}

package imageutil

// FlipHorizontal mirrors the image left to right in place and returns it.
func FlipHorizontal(img *GrayImage) *GrayImage {
	width, height := img.Width(), img.Height()
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width]
		for l, r := 0, width-1; l < r; l, r = l+1, r-1 {
			row[l], row[r] = row[r], row[l]
		}
	}
	return img
}

// FlipVertical mirrors the image top to bottom in place and returns it.
func FlipVertical(img *GrayImage) *GrayImage {
	width, height := img.Width(), img.Height()
	for t, b := 0, height-1; t < b; t, b = t+1, b-1 {
		top := img.Pix[t*img.Stride : t*img.Stride+width]
		bottom := img.Pix[b*img.Stride : b*img.Stride+width]
		for x := 0; x < width; x++ {
			top[x], bottom[x] = bottom[x], top[x]
		}
	}
	return img
}

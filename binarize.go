package forbild

import (
	"sort"

	"github.com/forbild/forbild/imageutil"
)

// Binarize thresholds a canonical grid against its quadrant medians.
//
// Each quadrant's median is the element at index len/2 of its sorted
// values, i.e. the upper median for the even-sized quadrants used here. A
// pixel equal to its median becomes 1. Bits are returned row-major and
// medians are indexed [col][row].
func Binarize(g *imageutil.GrayImage) (bits [HashLen]uint8, medians [2][2]uint8, err error) {
	if g.Width() != GridSize || g.Height() != GridSize {
		return bits, medians, &LengthError{What: "grid side", Got: gridSide(g), Want: GridSize}
	}

	bits, medians = binarizeGrid(g)
	return bits, medians, nil
}

// binarizeGrid is Binarize for a grid already known to be GridSize square.
func binarizeGrid(g *imageutil.GrayImage) (bits [HashLen]uint8, medians [2][2]uint8) {
	medians = quadrantMedians(g)
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			col, row := quadrantAt(x, y).Halves()
			if g.GetGray(x, y) >= medians[col][row] {
				bits[y*GridSize+x] = 1
			}
		}
	}
	return bits, medians
}

func quadrantMedians(g *imageutil.GrayImage) [2][2]uint8 {
	var medians [2][2]uint8
	values := make([]uint8, 0, half*half)
	for col := 0; col < 2; col++ {
		for row := 0; row < 2; row++ {
			values = values[:0]
			for y := row * half; y < (row+1)*half; y++ {
				for x := col * half; x < (col+1)*half; x++ {
					values = append(values, g.GetGray(x, y))
				}
			}
			sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
			medians[col][row] = values[len(values)/2]
		}
	}
	return medians
}

// gridSide reports the mismatching dimension for error messages.
func gridSide(g *imageutil.GrayImage) int {
	if g.Width() != GridSize {
		return g.Width()
	}
	return g.Height()
}

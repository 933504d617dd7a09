package forbild

// Quadrant identifies one of the four equal sub-regions of the canonical
// grid, split at the horizontal and vertical midlines.
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "invalid"
	}
}

// Halves returns the column half and row half of q, each 0 or 1. These
// index Fingerprint medians as [col][row].
func (q Quadrant) Halves() (col, row int) {
	switch q {
	case TopRight:
		return 1, 0
	case BottomLeft:
		return 0, 1
	case BottomRight:
		return 1, 1
	default:
		return 0, 0
	}
}

// quadrantAt classifies grid coordinates.
func quadrantAt(x, y int) Quadrant {
	q := TopLeft
	if x >= half {
		q++
	}
	if y >= half {
		q += 2
	}
	return q
}

// QuadrantOf maps a row-major bit index to its quadrant.
func QuadrantOf(i int) Quadrant {
	return quadrantAt(i%GridSize, i/GridSize)
}

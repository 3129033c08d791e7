package components

// Direction is an arrow-key movement over the tile grid.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Move maps an arrow-key press to a new focus index over a virtual grid of
// the given column count. Left/Right step by one, Up/Down step by a full
// row, and everything clamps to [0, count-1] rather than wrapping. The grid
// covers the current page only; movement never crosses a page boundary.
func Move(cur int, dir Direction, count, columns int) int {
	if count <= 0 {
		return 0
	}
	if columns < 1 {
		columns = 1
	}

	next := cur
	switch dir {
	case DirLeft:
		next = cur - 1
	case DirRight:
		next = cur + 1
	case DirUp:
		next = cur - columns
	case DirDown:
		next = cur + columns
	}

	if next < 0 {
		next = 0
	}
	if next > count-1 {
		next = count - 1
	}
	return next
}

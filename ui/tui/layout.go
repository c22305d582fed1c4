package tui

// Rect is a pane position in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Arrange tiles a w x h area for n panes:
//
//	1: full area
//	2: stacked halves
//	3: top half full width, bottom half split left/right
//	4: 2x2 grid
//
// Odd remainders go to the later pane so the rects cover the area exactly.
// n outside 1..4 or a non-positive area yields nil.
func Arrange(n, w, h int) []Rect {
	if n < 1 || n > 4 || w <= 0 || h <= 0 {
		return nil
	}
	top := h / 2
	bottom := h - top
	left := w / 2
	right := w - left

	switch n {
	case 1:
		return []Rect{{0, 0, w, h}}
	case 2:
		return []Rect{{0, 0, w, top}, {0, top, w, bottom}}
	case 3:
		return []Rect{{0, 0, w, top}, {0, top, left, bottom}, {left, top, right, bottom}}
	default:
		return []Rect{
			{0, 0, left, top}, {left, 0, right, top},
			{0, top, left, bottom}, {left, top, right, bottom},
		}
	}
}

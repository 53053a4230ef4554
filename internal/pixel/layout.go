package pixel

import "image"

// cellLayout splits bounds into count equal cells in a single row, centered
// vertically. Leftover columns on the right stay unused.
func cellLayout(bounds image.Rectangle, count int) []image.Rectangle {
	if count <= 0 || bounds.Empty() {
		return nil
	}
	w := bounds.Dx() / count
	if w == 0 {
		w = 1
	}
	h := min(w, bounds.Dy())
	top := bounds.Min.Y + (bounds.Dy()-h)/2

	cells := make([]image.Rectangle, count)
	for i := range cells {
		x := bounds.Min.X + i*w
		cells[i] = image.Rect(x, top, x+w, top+h).Intersect(bounds)
	}
	return cells
}

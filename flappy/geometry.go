package flappy

// Rect is an axis-aligned rectangle in screen space, y growing downwards.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Overlaps reports whether two rectangles share any point. Edges are
// inclusive: rectangles that merely touch count as overlapping.
func (r Rect) Overlaps(other Rect) bool {
	if r.Right() < other.X || other.Right() < r.X {
		return false
	}
	if other.Bottom() < r.Y || r.Bottom() < other.Y {
		return false
	}
	return true
}

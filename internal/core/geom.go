// Package core holds the pieces shared by every game and front end: the
// character screen buffer, abstract input actions and the runtime config.
// It has no terminal dependencies so game logic stays testable.
package core

// Rect is an area of the screen; Right and Bottom are exclusive.
type Rect struct {
	X, Y int
	W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Right() int { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// CenteredRect returns a w×h rectangle centered on (cx, cy), used for
// overlays such as the game over box.
func CenteredRect(cx, cy, w, h int) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

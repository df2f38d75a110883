package scroll

import "vibary/internal/render"

// Pointer is a position as fractions of the viewport
type Pointer struct {
	X float64
	Y float64
}

// Ambient is the session scoped pointer context. It is created when the
// journey mounts and dropped when it unmounts; the pointer observer is its
// only writer, so updates overwrite unconditionally.
type Ambient struct {
	pointer Pointer
	width   int
	height  int
}

// NewAmbient creates a context with the pointer centered
func NewAmbient(width, height int) *Ambient {
	return &Ambient{pointer: Pointer{X: 0.5, Y: 0.5}, width: width, height: height}
}

// Resize updates the viewport size used to normalize positions
func (a *Ambient) Resize(width, height int) {
	a.width, a.height = width, height
}

// Move records the pointer at cell (x, y)
func (a *Ambient) Move(x, y int) {
	if a.width <= 0 || a.height <= 0 {
		return
	}
	a.pointer = Pointer{
		X: render.Clamp01(float64(x) / float64(a.width)),
		Y: render.Clamp01(float64(y) / float64(a.height)),
	}
}

// Pointer returns the last recorded position
func (a *Ambient) Pointer() Pointer {
	if a == nil {
		return Pointer{X: 0.5, Y: 0.5}
	}
	return a.pointer
}

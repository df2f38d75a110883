// Package scroll derives per-scene progress and the active scene from the
// viewport position, and holds the session's ambient pointer position.
package scroll

import (
	"math"

	"vibary/internal/render"
)

// Region is the vertical extent of a scene in document coordinates
type Region struct {
	Top    float64
	Height float64
}

// Viewport is the visible window in document coordinates
type Viewport struct {
	Top    float64
	Height float64
}

// Progress maps a region's position to [0, 1]: 0 when its top reaches the
// bottom of the viewport, 1 when its bottom leaves through the top.
func Progress(r Region, v Viewport) float64 {
	span := r.Height + v.Height
	if span <= 0 {
		return 0
	}
	return render.Clamp01((v.Top + v.Height - r.Top) / span)
}

// Band is the open progress interval in which a scene claims activity
type Band struct {
	Low  float64
	High float64
}

// DefaultBand is the middle fifth of a scene's travel
var DefaultBand = Band{Low: 0.4, High: 0.6}

// Contains reports whether p lies strictly inside the band
func (b Band) Contains(p float64) bool {
	return p > b.Low && p < b.High
}

// Tracker keeps the active scene index. It has a single writer, the view
// that owns the scroll position, and never blocks.
type Tracker struct {
	band     Band
	active   int
	progress []float64
}

// NewTracker creates a tracker for count scenes with scene 0 active
func NewTracker(count int, band Band) *Tracker {
	return &Tracker{band: band, progress: make([]float64, count)}
}

// Active returns the active scene index
func (t *Tracker) Active() int {
	return t.active
}

// SetActive forces the active scene, used when jumping from the table of contents
func (t *Tracker) SetActive(i int) {
	if i >= 0 && i < len(t.progress) {
		t.active = i
	}
}

// Observe records progress for scene i; inside the band the scene becomes
// active. It reports whether the active index changed.
func (t *Tracker) Observe(i int, p float64) bool {
	if i < 0 || i >= len(t.progress) {
		return false
	}
	t.progress[i] = p
	if t.band.Contains(p) && t.active != i {
		t.active = i
		return true
	}
	return false
}

// Sample computes and observes the progress of every region
func (t *Tracker) Sample(regions []Region, v Viewport) bool {
	changed := false
	for i, r := range regions {
		if t.Observe(i, Progress(r, v)) {
			changed = true
		}
	}
	return changed
}

// Settle corrects the active index once scrolling stops: fast scrolls can
// jump over a scene's band, so the on-screen scene whose progress is
// closest to the middle wins. It reports whether the index changed.
func (t *Tracker) Settle(regions []Region, v Viewport) bool {
	best, bestDist := -1, math.Inf(1)
	for i, r := range regions {
		p := Progress(r, v)
		if p <= 0 || p >= 1 {
			continue
		}
		if d := math.Abs(p - 0.5); d < bestDist {
			best, bestDist = i, d
		}
		if i < len(t.progress) {
			t.progress[i] = p
		}
	}
	if best < 0 || best == t.active {
		return false
	}
	t.active = best
	return true
}

// State returns the render input for the current position and pointer
func (t *Tracker) State(pointer Pointer) render.ScrollState {
	return render.ScrollState{
		Progress: append([]float64(nil), t.progress...),
		Active:   t.active,
		PointerX: pointer.X,
		PointerY: pointer.Y,
	}
}

package render

import "math"

// Clamp01 limits v to [0, 1]; NaN becomes 0
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Lerp interpolates linearly between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Interpolate maps x through the piecewise linear curve given by the
// stops (inputs ascending). Values outside the input range are clamped to
// the first or last output.
func Interpolate(x float64, inputs, outputs []float64) float64 {
	if len(inputs) == 0 || len(inputs) != len(outputs) {
		return 0
	}
	if x <= inputs[0] {
		return outputs[0]
	}
	last := len(inputs) - 1
	if x >= inputs[last] {
		return outputs[last]
	}
	for i := 1; i <= last; i++ {
		if x <= inputs[i] {
			span := inputs[i] - inputs[i-1]
			if span == 0 {
				return outputs[i]
			}
			return Lerp(outputs[i-1], outputs[i], (x-inputs[i-1])/span)
		}
	}
	return outputs[last]
}

// Rotation returns the entity rotation in degrees: progress x speed x 360
func Rotation(progress, speed float64) float64 {
	return Clamp01(progress) * speed * 360
}

// Pulse returns the entity scale: 1 at both ends, 1.1 at mid progress
func Pulse(progress float64) float64 {
	return Interpolate(Clamp01(progress), []float64{0, 0.5, 1}, []float64{1, 1.1, 1})
}

// Drift returns the horizontal offset of the storm backdrop text
func Drift(progress float64) float64 {
	return Interpolate(Clamp01(progress), []float64{0, 1}, []float64{-200, 200})
}

// Zoom returns the scale of the split layout's visual panel
func Zoom(progress float64) float64 {
	return Interpolate(Clamp01(progress), []float64{0, 1}, []float64{1, 1.1})
}

// TimelineFill returns how much of the timeline spine is drawn, in [0, 1]
func TimelineFill(progress float64) float64 {
	return Interpolate(Clamp01(progress), []float64{0.2, 0.8}, []float64{0, 1})
}

package domain

// Layout selects the presentation strategy of a scene
type Layout string

const (
	LayoutTypographicStorm   Layout = "typographic_storm"
	LayoutEntityFocus        Layout = "entity_focus"
	LayoutConstellationNodes Layout = "constellation_nodes"
	LayoutSplitDynamic       Layout = "split_dynamic"
	LayoutTimelineProcess    Layout = "timeline_process"
	LayoutArchitecturalLens  Layout = "architectural_lens"
)

// Layouts lists every known layout in declaration order
var Layouts = []Layout{
	LayoutTypographicStorm,
	LayoutEntityFocus,
	LayoutConstellationNodes,
	LayoutSplitDynamic,
	LayoutTimelineProcess,
	LayoutArchitecturalLens,
}

// Known reports whether the layout is one of the declared values
func (l Layout) Known() bool {
	for _, k := range Layouts {
		if k == l {
			return true
		}
	}
	return false
}

// Pattern is the decorative background of a scene
type Pattern string

const (
	PatternNoise        Pattern = "noise"
	PatternGrid         Pattern = "grid"
	PatternLines        Pattern = "lines"
	PatternDots         Pattern = "dots"
	PatternGradientMesh Pattern = "gradient_mesh"
	PatternCrosshairs   Pattern = "crosshairs"
)

// Patterns lists every known background pattern
var Patterns = []Pattern{
	PatternNoise,
	PatternGrid,
	PatternLines,
	PatternDots,
	PatternGradientMesh,
	PatternCrosshairs,
}

// Resolve returns the pattern itself when known, noise otherwise
func (p Pattern) Resolve() Pattern {
	for _, k := range Patterns {
		if k == p {
			return p
		}
	}
	return PatternNoise
}

// Shape is the form family of the generative entity
type Shape string

const (
	ShapeOrganic       Shape = "organic"
	ShapeGeometric     Shape = "geometric"
	ShapeSpiky         Shape = "spiky"
	ShapeFluid         Shape = "fluid"
	ShapeScattered     Shape = "scattered"
	ShapeArchitectural Shape = "architectural"
)

// Shapes lists every known shape
var Shapes = []Shape{
	ShapeOrganic,
	ShapeGeometric,
	ShapeSpiky,
	ShapeFluid,
	ShapeScattered,
	ShapeArchitectural,
}

// Motion is the animation family of the generative entity
type Motion string

const (
	MotionPulse   Motion = "pulse"
	MotionRotate  Motion = "rotate"
	MotionFlow    Motion = "flow"
	MotionExplode Motion = "explode"
	MotionOrbit   Motion = "orbit"
	MotionScan    Motion = "scan"
)

// Motions lists every known motion
var Motions = []Motion{
	MotionPulse,
	MotionRotate,
	MotionFlow,
	MotionExplode,
	MotionOrbit,
	MotionScan,
}

package preview

import (
	"math"

	"github.com/philipparndt/gcodeview/pkg/gcode"
)

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// shade scales the RGB components and forces alpha to 1.
func (c Color) shade(f float32) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f, A: 1}
}

func lerp(a, b Color, t float32) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

var featureColors = [gcode.CategoryCount]Color{
	gcode.Perimeter:                {1.00, 0.90, 0.30, 1},
	gcode.ExternalPerimeter:        {1.00, 0.49, 0.22, 1},
	gcode.OverhangPerimeter:        {0.12, 0.12, 1.00, 1},
	gcode.InternalInfill:           {0.69, 0.19, 0.16, 1},
	gcode.SolidInfill:              {0.59, 0.33, 0.80, 1},
	gcode.TopSolidInfill:           {0.94, 0.25, 0.25, 1},
	gcode.BridgeInfill:             {0.40, 0.61, 0.98, 1},
	gcode.SkirtBrim:                {0.00, 0.53, 0.43, 1},
	gcode.Custom:                   {0.37, 0.82, 0.58, 1},
	gcode.SupportMaterial:          {0.00, 1.00, 0.00, 1},
	gcode.SupportMaterialInterface: {0.00, 0.50, 0.00, 1},
	gcode.GapFill:                  {1.00, 1.00, 1.00, 1},
}

// FeatureColor returns the table color of a category.
func FeatureColor(c gcode.Category) Color {
	if !c.Valid() {
		return Color{A: 1}
	}
	return featureColors[c]
}

// gradientStops runs from blue (low) to red (high).
var gradientStops = [...]Color{
	{0.043, 0.173, 0.478, 1},
	{0.075, 0.349, 0.522, 1},
	{0.110, 0.533, 0.569, 1},
	{0.016, 0.839, 0.059, 1},
	{0.667, 0.949, 0.000, 1},
	{0.988, 0.975, 0.012, 1},
	{0.961, 0.808, 0.039, 1},
	{0.890, 0.533, 0.125, 1},
	{0.820, 0.408, 0.188, 1},
	{0.761, 0.322, 0.235, 1},
	{0.581, 0.149, 0.087, 1},
}

// GradientColor maps t in [0, 1] onto the gradient palette.
func GradientColor(t float32) Color {
	stops := len(gradientStops)
	t = max(0, min(t, 1))
	pos := t * float32(stops-1)
	idx := int(math.Floor(float64(pos)))
	idx = max(0, min(idx, stops-2))
	return lerp(gradientStops[idx], gradientStops[idx+1], pos-float32(idx))
}

// prismShading darkens the sides and bottom of each prism so tubes read
// as solid without lighting.
var prismShading = [verticesPerSegment]float32{1.00, 0.75, 0.50, 0.75, 1.00, 0.75, 0.50, 0.75}

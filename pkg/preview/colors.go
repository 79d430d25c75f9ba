package preview

import (
	"math"
	"slices"
	"strconv"

	"github.com/philipparndt/gcodeview/pkg/gcode"
)

// LegendEntry pairs a legend key with the color it stands for.
type LegendEntry struct {
	Label string
	// Value is the numeric key; for the feature-type channel it is the
	// category index.
	Value float32
	Color Color
}

// channelValue reads the numeric value of a channel at row i.
func channelValue(trace *gcode.Trace, ch Channel, i int) float32 {
	switch ch {
	case ChannelHeight:
		return trace.Height(i)
	case ChannelWidth:
		return trace.Width(i)
	case ChannelTemperature:
		return trace.Temperature(i)
	case ChannelFanSpeed:
		return trace.FanSpeed(i)
	}
	return 0
}

// segmentValue is the value segment s is colored by. Width and height are
// read at the starting point, the row its prism is built from.
func segmentValue(trace *gcode.Trace, ch Channel, s int) float32 {
	switch ch {
	case ChannelWidth, ChannelHeight:
		return channelValue(trace, ch, s-1)
	}
	return channelValue(trace, ch, s)
}

// replicate writes color to the 8 vertices of segment s with prism shading.
func replicate(dst []Color, s int, color Color) {
	base := (s - 1) * verticesPerSegment
	for k, f := range prismShading {
		dst[base+k] = color.shade(f)
	}
}

func featureTypeColors(trace *gcode.Trace) ([]Color, []LegendEntry) {
	segments := trace.SegmentCount()
	colors := make([]Color, segments*verticesPerSegment)
	for s := 1; s <= segments; s++ {
		replicate(colors, s, FeatureColor(trace.Feature(s)))
	}

	legend := make([]LegendEntry, 0, gcode.CategoryCount)
	for i := gcode.CategoryCount - 1; i >= 0; i-- {
		c := gcode.Category(i)
		legend = append(legend, LegendEntry{Label: c.String(), Value: float32(i), Color: featureColors[c]})
	}
	return colors, legend
}

// channelRange returns the min and max of a channel over segments that are
// not gap fill. Gap fill is usually far thinner than everything else and
// would otherwise squeeze the useful range.
func channelRange(trace *gcode.Trace, ch Channel) (lo, hi float32) {
	lo, hi = float32(math.Inf(1)), float32(math.Inf(-1))
	found := false
	for s := 1; s <= trace.SegmentCount(); s++ {
		if trace.Feature(s) == gcode.GapFill {
			continue
		}
		v := segmentValue(trace, ch, s)
		lo, hi = min(lo, v), max(hi, v)
		found = true
	}
	if !found {
		lo, hi = 0, 0
	}
	if ch == ChannelFanSpeed {
		lo = 0
	}
	return lo, hi
}

func numericColors(trace *gcode.Trace, ch Channel) ([]Color, []LegendEntry) {
	segments := trace.SegmentCount()
	lo, hi := channelRange(trace, ch)

	colors := make([]Color, segments*verticesPerSegment)
	for s := 1; s <= segments; s++ {
		color := gradientStops[0]
		if hi != lo {
			color = GradientColor((segmentValue(trace, ch, s) - lo) / (hi - lo))
		}
		replicate(colors, s, color)
	}

	return colors, numericLegend(lo, hi)
}

// numericLegend keys the gradient stops by value. Stops whose two-decimal
// labels collide are dropped, so a narrow range yields fewer entries.
func numericLegend(lo, hi float32) []LegendEntry {
	stops := len(gradientStops)
	legend := make([]LegendEntry, 0, stops)
	for k := range stops {
		v := lo + (hi-lo)*float32(k)/float32(stops-1)
		label := strconv.FormatFloat(float64(v), 'f', 2, 32)
		if slices.ContainsFunc(legend, func(e LegendEntry) bool { return e.Label == label }) {
			continue
		}
		legend = append(legend, LegendEntry{Label: label, Value: v, Color: gradientStops[k]})
	}
	return legend
}

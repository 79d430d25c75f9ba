package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gcodeview/pkg/gcode"
	"github.com/philipparndt/gcodeview/pkg/geometry"
)

// CategoryStats contains the printed segments of one feature category
type CategoryStats struct {
	Category   gcode.Category
	Segments   int
	PathLength float64
}

// Range is the observed span of a numeric column
type Range struct {
	Min, Max float32
}

// TraceSummary contains various measurements of a decoded toolpath
type TraceSummary struct {
	BoundingBox     geometry.BoundingBox
	Dimensions      geometry.Vector3
	Points          int
	Segments        int
	PrintedSegments int
	Layers          int
	TotalExtrusion  float64
	PrintedLength   float64
	TravelLength    float64
	Categories      []CategoryStats
	Width           Range
	Height          Range
	FanSpeed        Range
	Temperature     Range
}

// AnalyzeTrace performs a single pass over a trace. Only segments that
// deposit material contribute to the bounding box, layers and ranges.
func AnalyzeTrace(trace *gcode.Trace) *TraceSummary {
	result := &TraceSummary{
		BoundingBox: geometry.NewBoundingBox(),
		Points:      trace.Len(),
		Segments:    trace.SegmentCount(),
	}

	var perCategory [gcode.CategoryCount]CategoryStats
	layers := make(map[float32]struct{})
	ranges := []*Range{&result.Width, &result.Height, &result.FanSpeed, &result.Temperature}
	for _, r := range ranges {
		*r = Range{Min: float32(math.Inf(1)), Max: float32(math.Inf(-1))}
	}

	for i := 1; i < trace.Len(); i++ {
		p1, p2 := trace.Position(i-1), trace.Position(i)
		length := float64(p1.Distance(p2))

		e := trace.Extrusion(i)
		if e <= 0 {
			result.TravelLength += length
			continue
		}

		result.PrintedSegments++
		result.TotalExtrusion += float64(e)
		result.PrintedLength += length
		result.BoundingBox.Extend(p1)
		result.BoundingBox.Extend(p2)
		layers[p1.Z] = struct{}{}

		if f := trace.Feature(i); f.Valid() {
			perCategory[f].Segments++
			perCategory[f].PathLength += length
		}

		values := []float32{trace.Width(i - 1), trace.Height(i - 1), trace.FanSpeed(i), trace.Temperature(i)}
		for k, v := range values {
			ranges[k].Min = min(ranges[k].Min, v)
			ranges[k].Max = max(ranges[k].Max, v)
		}
	}

	if result.PrintedSegments == 0 {
		for _, r := range ranges {
			*r = Range{}
		}
	}

	for c, stats := range perCategory {
		if stats.Segments == 0 {
			continue
		}
		stats.Category = gcode.Category(c)
		result.Categories = append(result.Categories, stats)
	}

	result.Layers = len(layers)
	result.Dimensions = result.BoundingBox.Size()
	return result
}

// LargestCategories returns the categories ordered by printed path length,
// longest first
func LargestCategories(result *TraceSummary) []CategoryStats {
	stats := make([]CategoryStats, len(result.Categories))
	copy(stats, result.Categories)

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].PathLength > stats[j].PathLength
	})

	return stats
}

// LayerHeights returns the distinct Z values of printed segments in
// ascending order
func LayerHeights(trace *gcode.Trace) []float32 {
	seen := make(map[float32]struct{})
	var heights []float32
	for i := 1; i < trace.Len(); i++ {
		if trace.Extrusion(i) <= 0 {
			continue
		}
		z := trace.Position(i - 1).Z
		if _, ok := seen[z]; ok {
			continue
		}
		seen[z] = struct{}{}
		heights = append(heights, z)
	}
	sort.Slice(heights, func(i, j int) bool { return heights[i] < heights[j] })
	return heights
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// FormatRange formats a numeric range
func FormatRange(r Range) string {
	return fmt.Sprintf("%.2f .. %.2f", r.Min, r.Max)
}

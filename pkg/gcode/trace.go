package gcode

import (
	"github.com/philipparndt/gcodeview/pkg/geometry"
	"github.com/x448/float16"
)

// Trace is the columnar form of a decoded toolpath. Row i holds the state
// after the i-th extrusion move. A Trace is never modified after Decode
// returns it; slices handed out by its accessors must be treated as
// read-only.
type Trace struct {
	capacity int
	n        int

	positions   []geometry.Vector3
	extrusion   []float32
	width       []float16.Float16
	height      []float16.Float16
	fanSpeed    []float16.Float16
	temperature []float16.Float16
	feature     []Category
	endpoints   [][2]int64
}

func newTrace(capacity int) *Trace {
	return &Trace{
		capacity:    capacity,
		positions:   make([]geometry.Vector3, capacity),
		extrusion:   make([]float32, capacity),
		width:       make([]float16.Float16, capacity),
		height:      make([]float16.Float16, capacity),
		fanSpeed:    make([]float16.Float16, capacity),
		temperature: make([]float16.Float16, capacity),
		feature:     make([]Category, capacity),
		endpoints:   make([][2]int64, capacity),
	}
}

// Len returns the number of populated points.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return t.n
}

// Capacity returns the number of preallocated slots.
func (t *Trace) Capacity() int {
	if t == nil {
		return 0
	}
	return t.capacity
}

// SegmentCount returns the number of drawable segments, Len()-1 or zero.
func (t *Trace) SegmentCount() int {
	if t.Len() < 2 {
		return 0
	}
	return t.n - 1
}

// Positions returns the populated point positions.
func (t *Trace) Positions() []geometry.Vector3 {
	return t.positions[:t.n]
}

func (t *Trace) Position(i int) geometry.Vector3 { return t.positions[i] }
func (t *Trace) Extrusion(i int) float32         { return t.extrusion[i] }
func (t *Trace) Width(i int) float32             { return t.width[i].Float32() }
func (t *Trace) Height(i int) float32            { return t.height[i].Float32() }
func (t *Trace) FanSpeed(i int) float32          { return t.fanSpeed[i].Float32() }
func (t *Trace) Temperature(i int) float32       { return t.temperature[i].Float32() }
func (t *Trace) Feature(i int) Category          { return t.feature[i] }

// Endpoints returns the point indices connected by segment row i.
// Row 0 is always (0, 0).
func (t *Trace) Endpoints(i int) [2]int64 { return t.endpoints[i] }

// Package preview derives renderable toolpath geometry from a decoded
// trace and keeps it cached per view configuration.
//
// Everything that does not depend on the view (prism vertices, the color
// buffers of all five channels, legends, per-category masks) is computed
// once by Load. Apply only combines masks and selects buffers, and does
// not even do that when the view is unchanged.
package preview

import (
	"time"

	"github.com/philipparndt/gcodeview/pkg/gcode"
	"github.com/philipparndt/gcodeview/pkg/geometry"
	"go.uber.org/zap"
)

// DrawPayload is what a rendering surface needs to draw the current view.
// It is owned by the Cache and must not be modified.
type DrawPayload struct {
	// Positions holds 8 vertices per segment for every segment of the
	// trace, independent of the view.
	Positions []geometry.Vector3
	// Colors holds one color per vertex for the active channel.
	Colors []Color
	// Indices holds 8 triangles per visible segment in segment order.
	Indices [][3]uint32
	Legend  []LegendEntry

	// VisibleSegments is the number of segments passing the view mask.
	VisibleSegments int
}

// Cache owns one trace and rebuilds the draw payload only when the view
// configuration changes. A Cache is not safe for concurrent use.
type Cache struct {
	log *zap.Logger

	trace         *gcode.Trace
	depositing    []bool
	categoryMasks [gcode.CategoryCount][]bool
	positions     []geometry.Vector3
	indices       [][3]uint32
	colors        [channelCount][]Color
	legends       [channelCount][]LegendEntry

	last     ViewConfig
	applied  bool
	payload  *DrawPayload
	rebuilds int
}

// NewCache creates an empty cache. A nil logger disables logging.
func NewCache(log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{log: log}
}

// Load replaces the cached trace and precomputes everything the views of
// it share. Positions are translated by offset and then scaled by scale.
// The next Apply always rebuilds.
func (c *Cache) Load(trace *gcode.Trace, offset geometry.Vector3, scale float32) {
	start := time.Now()

	c.trace = trace
	c.applied = false
	c.payload = nil

	n := trace.Len()
	c.depositing = make([]bool, n)
	for i := 1; i < n; i++ {
		c.depositing[i] = trace.Extrusion(i) > 0
	}

	c.categoryMasks = [gcode.CategoryCount][]bool{}
	for i := 1; i < n; i++ {
		f := trace.Feature(i)
		if !f.Valid() {
			continue
		}
		if c.categoryMasks[f] == nil {
			c.categoryMasks[f] = make([]bool, n)
		}
		c.categoryMasks[f][i] = true
	}

	c.positions, c.indices = buildPrisms(trace, offset, scale)

	for _, ch := range Channels() {
		if ch == ChannelFeatureType {
			c.colors[ch], c.legends[ch] = featureTypeColors(trace)
		} else {
			c.colors[ch], c.legends[ch] = numericColors(trace, ch)
		}
	}

	c.log.Info("trace loaded",
		zap.Int("points", n),
		zap.Int("segments", trace.SegmentCount()),
		zap.Int("vertices", len(c.positions)),
		zap.Duration("elapsed", time.Since(start)))
}

// Loaded reports whether a trace has been loaded.
func (c *Cache) Loaded() bool {
	return c.trace != nil
}

// Trace returns the loaded trace, or nil.
func (c *Cache) Trace() *gcode.Trace {
	return c.trace
}

// Rebuilds returns how many times Apply has built a new payload.
func (c *Cache) Rebuilds() int {
	return c.rebuilds
}

// Apply returns the payload for cfg. When cfg equals the previously
// applied configuration the previous payload is returned as is. Before
// any Load the payload is empty.
func (c *Cache) Apply(cfg ViewConfig) *DrawPayload {
	if c.trace == nil {
		return &DrawPayload{}
	}
	if c.applied && cfg == c.last {
		return c.payload
	}

	mask := c.segmentMask(cfg)
	visible := 0
	for _, m := range mask {
		if m {
			visible++
		}
	}

	indices := make([][3]uint32, 0, visible*trianglesPerSegment)
	for s, m := range mask {
		if m {
			indices = append(indices, c.indices[(s-1)*trianglesPerSegment:s*trianglesPerSegment]...)
		}
	}

	ch := cfg.Channel
	if !ch.Valid() {
		ch = ChannelFeatureType
	}

	c.payload = &DrawPayload{
		Positions:       c.positions,
		Colors:          c.colors[ch],
		Indices:         indices,
		Legend:          c.legends[ch],
		VisibleSegments: visible,
	}
	c.last = cfg
	c.applied = true
	c.rebuilds++

	c.log.Debug("view rebuilt",
		zap.Stringer("channel", ch),
		zap.Float32("zMin", cfg.ZMin),
		zap.Float32("zMax", cfg.ZMax),
		zap.Uint16("categories", uint16(cfg.Visible)),
		zap.Int("visibleSegments", visible))

	return c.payload
}

// SegmentMask reports, per segment row, whether the segment is drawn for
// cfg. Row 0 is never drawn.
func (c *Cache) SegmentMask(cfg ViewConfig) []bool {
	if c.trace == nil {
		return nil
	}
	return c.segmentMask(cfg)
}

// segmentMask combines the depositing, category and height masks.
func (c *Cache) segmentMask(cfg ViewConfig) []bool {
	n := c.trace.Len()
	mask := make([]bool, n)
	for _, cat := range cfg.Visible.Categories() {
		m := c.categoryMasks[cat]
		if m == nil {
			continue
		}
		for i, in := range m {
			mask[i] = mask[i] || in
		}
	}

	for i := 1; i < n; i++ {
		mask[i] = mask[i] && c.depositing[i] && cfg.containsZ(c.trace.Position(i-1).Z)
	}
	return mask
}

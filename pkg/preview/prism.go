package preview

import (
	"github.com/philipparndt/gcodeview/pkg/gcode"
	"github.com/philipparndt/gcodeview/pkg/geometry"
)

const (
	verticesPerSegment  = 8
	trianglesPerSegment = 8

	// Segments shorter than this have no direction and collapse to zero area.
	degenerateEpsilon = 1e-6
)

// prismTriangles closes the four start corners (0-3) and the four end
// corners (4-7) of a segment into a tube. Corners run top, left, bottom,
// right around the segment direction.
var prismTriangles = [trianglesPerSegment][3]uint32{
	{0, 4, 1}, {1, 4, 5},
	{1, 5, 2}, {2, 5, 6},
	{2, 6, 3}, {3, 6, 7},
	{3, 7, 0}, {0, 7, 4},
}

// buildPrisms returns the vertex positions and triangle indices of every
// segment of trace. Segment s (1..Len-1) owns vertices [8(s-1), 8s).
func buildPrisms(trace *gcode.Trace, offset geometry.Vector3, scale float32) ([]geometry.Vector3, [][3]uint32) {
	segments := trace.SegmentCount()
	positions := make([]geometry.Vector3, 0, segments*verticesPerSegment)
	indices := make([][3]uint32, 0, segments*trianglesPerSegment)

	up := geometry.NewVector3(0, 0, 1)
	for s := 1; s <= segments; s++ {
		p1 := trace.Position(s - 1).Add(offset)
		p2 := trace.Position(s).Add(offset)

		dir := p2.Sub(p1).NormalizeEps(degenerateEpsilon)
		perp := dir.Perp().NormalizeEps(degenerateEpsilon)

		halfWidth := trace.Width(s-1) / 2
		halfHeight := trace.Height(s-1) / 2
		corners := [4]geometry.Vector3{
			up.Mul(halfHeight),
			perp.Mul(-halfWidth),
			up.Mul(-halfHeight),
			perp.Mul(halfWidth),
		}

		for _, p := range [2]geometry.Vector3{p1, p2} {
			for _, c := range corners {
				positions = append(positions, p.Add(c).Mul(scale))
			}
		}

		base := uint32((s - 1) * verticesPerSegment)
		for _, tri := range prismTriangles {
			indices = append(indices, [3]uint32{base + tri[0], base + tri[1], base + tri[2]})
		}
	}
	return positions, indices
}

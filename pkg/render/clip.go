package render

import "github.com/taigrr/softraster/pkg/math3d"

// ClipPlane is a view-space plane n·p = D. Points with n·p - D > 0 are
// inside.
type ClipPlane struct {
	Normal math3d.Vec4
	D      float64
}

// NearPlane returns the plane z = d facing +z.
func NearPlane(d float64) ClipPlane {
	return ClipPlane{Normal: math3d.Dir(0, 0, 1), D: d}
}

// Distance returns the signed distance of p from the plane using the first
// three components.
func (c ClipPlane) Distance(p math3d.Vec4) float64 {
	return c.Normal.Dot(p) - c.D
}

// intersect returns the parameter t at which the segment a->b crosses the
// plane.
func (c ClipPlane) intersect(a, b math3d.Vec4) float64 {
	return (c.D - c.Normal.Dot(a)) / c.Normal.Dot(b.Sub(a))
}

// cut returns the vertex where the edge from in to out crosses the plane.
// Texture coordinates blend as t*out + (1-t)*in.
func (c ClipPlane) cut(in, out Vertex) Vertex {
	t := c.intersect(in.Pos, out.Pos)
	return Vertex{
		Pos: in.Pos.Add(out.Pos.Sub(in.Pos).Scale(t)),
		UV:  in.UV.Blend(out.UV, t),
	}
}

// Classify returns a 3-bit mask with bit k set when vertex k is strictly
// inside the plane.
func (c ClipPlane) Classify(tri Triangle) int {
	var class int
	for k := range 3 {
		if c.Distance(tri.V[k].Pos) > 0 {
			class |= 1 << k
		}
	}
	return class
}

// Clip splits a view-space triangle against the plane and returns the
// surviving triangles in dst's backing array. It returns zero triangles when
// every vertex is outside, the input unchanged when every vertex is inside,
// one triangle when a single vertex is inside and two when two are inside.
// Winding is preserved.
func (c ClipPlane) Clip(tri Triangle, dst *[2]Triangle) int {
	v1, v2, v3 := tri.V[0], tri.V[1], tri.V[2]

	switch c.Classify(tri) {
	case 0b000:
		return 0
	case 0b111:
		dst[0] = tri
		return 1

	// One vertex inside: the two outside vertices slide onto the plane.
	case 0b001:
		dst[0] = Triangle{V: [3]Vertex{v1, c.cut(v1, v2), c.cut(v1, v3)}}
		return 1
	case 0b010:
		dst[0] = Triangle{V: [3]Vertex{c.cut(v2, v1), v2, c.cut(v2, v3)}}
		return 1
	case 0b100:
		dst[0] = Triangle{V: [3]Vertex{c.cut(v3, v1), c.cut(v3, v2), v3}}
		return 1

	// Two vertices inside: the quad left over is split in two.
	case 0b011:
		c.clipTwo(v1, v2, v3, dst)
	case 0b101:
		c.clipTwo(v3, v1, v2, dst)
	case 0b110:
		c.clipTwo(v2, v3, v1, dst)
	}
	return 2
}

// clipTwo handles a and b inside, out outside, given in winding order.
func (c ClipPlane) clipTwo(a, b, out Vertex, dst *[2]Triangle) {
	aCut := c.cut(a, out)
	bCut := c.cut(b, out)
	dst[0] = Triangle{V: [3]Vertex{a, bCut, aCut}}
	dst[1] = Triangle{V: [3]Vertex{a, b, bCut}}
}

package render

import "github.com/taigrr/softraster/pkg/math3d"

// ScreenVertex is a projected vertex: pixel coordinates, reciprocal
// view-space depth and texture coordinates.
type ScreenVertex struct {
	X, Y float64
	Z    float64 // 1/z_view
	UV   math3d.Vec2
}

// ScreenTriangle is a front-facing triangle ready for scan conversion, with
// its signed area and pixel bounding box already computed.
type ScreenTriangle struct {
	V    [3]ScreenVertex
	Area float64

	// Half-open scan bounds: MinX <= x < MaxX, MinY <= y < MaxY.
	MinX, MaxX int
	MinY, MaxY int
}

// edge is the 2D edge function of c against the directed edge a->b.
func edge(a, b, c ScreenVertex) float64 {
	return (c.X-a.X)*(b.Y-a.Y) - (c.Y-a.Y)*(b.X-a.X)
}

// edgeAt evaluates the edge function at the center of pixel (px, py).
func edgeAt(a, b ScreenVertex, px, py int) float64 {
	return (float64(px)-a.X+0.5)*(b.Y-a.Y) - (float64(py)-a.Y+0.5)*(b.X-a.X)
}

// setup computes area and bounds for a projected triangle. It reports false
// for back-facing triangles (negative area).
func setup(v1, v2, v3 ScreenVertex, width, height int, st *ScreenTriangle) bool {
	area := edge(v1, v2, v3)
	if area < 0 {
		return false
	}

	st.V = [3]ScreenVertex{v1, v2, v3}
	st.Area = area
	st.MinX = bound(min(v1.X, v2.X, v3.X), -1, width)
	st.MaxX = bound(max(v1.X, v2.X, v3.X), 1, width)
	st.MinY = bound(min(v1.Y, v2.Y, v3.Y), -1, height)
	st.MaxY = bound(max(v1.Y, v2.Y, v3.Y), 1, height)
	return true
}

// bound truncates v, adds pad and clamps the result to [0, limit]. v is
// clamped to [-1, limit+1] first so the conversion to int cannot
// overflow; NaN yields 0.
func bound(v float64, pad, limit int) int {
	if v != v {
		return 0
	}
	v = max(-1, min(v, float64(limit+1)))
	return max(0, min(limit, int(v)+pad))
}

// ScanRows fills rows MinY+offset, MinY+offset+step, ... of the triangle
// into fb and returns the number of pixels that passed the depth test.
//
// Weights come from the pixel-center edge functions normalized by the area.
// Depth is the reciprocal of the interpolated 1/z, so it equals view-space
// z, and each texture coordinate is interpolated as u/z then scaled back.
//
// Distinct offsets touch disjoint rows, so calls with different offsets and
// the same step may run concurrently on one framebuffer.
func (st *ScreenTriangle) ScanRows(fb *Framebuffer, tex *Texture, offset, step int) int {
	if st.Area == 0 {
		return 0
	}
	v1, v2, v3 := st.V[0], st.V[1], st.V[2]
	invArea := 1 / st.Area
	written := 0

	for y := st.MinY + offset; y < st.MaxY; y += step {
		for x := st.MinX; x < st.MaxX; x++ {
			w1 := edgeAt(v2, v3, x, y)
			w2 := edgeAt(v3, v1, x, y)
			w3 := edgeAt(v1, v2, x, y)
			if w1 < 0 || w2 < 0 || w3 < 0 {
				continue
			}
			w1 *= invArea
			w2 *= invArea
			w3 *= invArea

			depth := 1 / (w1*v1.Z + w2*v2.Z + w3*v3.Z)
			if !fb.SetDepth(x, y, depth) {
				continue
			}

			u := depth * (w1*v1.UV.U*v1.Z + w2*v2.UV.U*v2.Z + w3*v3.UV.U*v3.Z)
			v := depth * (w1*v1.UV.V*v1.Z + w2*v2.UV.V*v2.Z + w3*v3.UV.V*v3.Z)
			fb.SetPixel(x, y, tex.Sample(u, v))
			written++
		}
	}
	return written
}

// outline draws the three edges of the projected triangle.
func outline(fb *Framebuffer, v1, v2, v3 ScreenVertex, c Color) {
	fb.DrawLine(int(v1.X), int(v1.Y), int(v2.X), int(v2.Y), c)
	fb.DrawLine(int(v2.X), int(v2.Y), int(v3.X), int(v3.Y), c)
	fb.DrawLine(int(v3.X), int(v3.Y), int(v1.X), int(v1.Y), c)
}

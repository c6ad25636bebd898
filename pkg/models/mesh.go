// Package models provides mesh data for the software renderer: built-in
// primitives and glTF import.
package models

import (
	"math"

	"github.com/taigrr/softraster/pkg/math3d"
)

// MeshData is triangle geometry in the flat layout accepted by
// render.NewModel: positions as x,y,z triples, indices as triangle triples
// and texture coordinates as one u,v pair per index-list corner.
type MeshData struct {
	Name      string
	Positions []float64
	Indices   []uint32
	TexCoords []float64
}

// TriangleCount returns the number of triangles.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexCount returns the number of distinct positions.
func (m *MeshData) VertexCount() int {
	return len(m.Positions) / 3
}

// Bounds returns the axis-aligned bounding box as two points.
// An empty mesh returns two origin points.
func (m *MeshData) Bounds() (lo, hi math3d.Vec4) {
	if len(m.Positions) < 3 {
		return math3d.Point(0, 0, 0), math3d.Point(0, 0, 0)
	}
	lo = math3d.Point(m.Positions[0], m.Positions[1], m.Positions[2])
	hi = lo
	for i := 3; i+2 < len(m.Positions); i += 3 {
		x, y, z := m.Positions[i], m.Positions[i+1], m.Positions[i+2]
		lo.X, hi.X = math.Min(lo.X, x), math.Max(hi.X, x)
		lo.Y, hi.Y = math.Min(lo.Y, y), math.Max(hi.Y, y)
		lo.Z, hi.Z = math.Min(lo.Z, z), math.Max(hi.Z, z)
	}
	return lo, hi
}

// FitTransform returns a model matrix that centers the mesh on the origin
// and scales its largest dimension to size.
func (m *MeshData) FitTransform(size float64) math3d.Mat4 {
	lo, hi := m.Bounds()
	extent := math.Max(hi.X-lo.X, math.Max(hi.Y-lo.Y, hi.Z-lo.Z))
	scale := 1.0
	if extent > 0 {
		scale = size / extent
	}
	center := lo.Add(hi).Scale(0.5)
	return math3d.ScaleUniform(scale).
		Mul(math3d.Translation(math3d.Dir(-center.X, -center.Y, -center.Z)))
}

// Transform applies mat to every position in place.
func (m *MeshData) Transform(mat math3d.Mat4) {
	for i := 0; i+2 < len(m.Positions); i += 3 {
		p := mat.MulVec4(math3d.Point(m.Positions[i], m.Positions[i+1], m.Positions[i+2]))
		m.Positions[i], m.Positions[i+1], m.Positions[i+2] = p.X, p.Y, p.Z
	}
}

package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrSphereResolution is returned for sphere resolutions that cannot form
// a closed surface.
var ErrSphereResolution = errors.New("sphere needs at least 2 meridians and 1 parallel")

// Cube returns the 2x2x2 cube centered on the origin. Its four texture
// coordinate pairs repeat across the index list.
func Cube() *MeshData {
	return &MeshData{
		Name: "cube",
		Positions: []float64{
			-1, -1, -1,
			1, -1, -1,
			1, 1, -1,
			-1, 1, -1,
			-1, -1, 1,
			1, -1, 1,
			1, 1, 1,
			-1, 1, 1,
		},
		Indices: []uint32{
			0, 1, 3, 3, 1, 2,
			1, 5, 2, 2, 5, 6,
			5, 4, 6, 6, 4, 7,
			4, 0, 7, 7, 0, 3,
			3, 2, 7, 7, 2, 6,
			4, 5, 0, 0, 5, 1,
		},
		TexCoords: []float64{
			0, 0,
			1, 0,
			1, 1,
			0, 1,
		},
	}
}

// Sphere builds a UV sphere of the given radius from meridians columns and
// parallels rings, plus one vertex at each pole. It has
// meridians*parallels+2 positions and 2*meridians*parallels triangles.
//
// Vertex 0 is the north pole (0, r, 0) and the last vertex is the south
// pole. Ring i, column j sits at polar angle pi*(i+1)/(parallels+1) and
// azimuth 2*pi*j/meridians.
func Sphere(meridians, parallels int, radius float64) (*MeshData, error) {
	m, n := meridians, parallels
	if m < 2 || n < 1 {
		return nil, fmt.Errorf("%w: got %d meridians, %d parallels", ErrSphereResolution, m, n)
	}

	south := uint32(n*m + 1)
	positions := make([]float64, 3*(n*m+2))
	vertexUV := make([]float64, 2*(n*m+2))

	positions[1] = radius
	positions[3*south+1] = -radius
	vertexUV[0], vertexUV[1] = 1, 0.5
	vertexUV[2*south], vertexUV[2*south+1] = 0, 0.5

	for i := range n {
		beta := math.Pi / float64(n+1) * float64(i+1)
		for j := range m {
			alpha := 2 * math.Pi * float64(j) / float64(m)
			idx := i*m + j + 1

			positions[3*idx] = radius * math.Cos(alpha) * math.Sin(beta)
			positions[3*idx+1] = radius * math.Cos(beta)
			positions[3*idx+2] = radius * math.Sin(alpha) * math.Sin(beta)

			vertexUV[2*idx] = float64(j) / float64(m-1)
			vertexUV[2*idx+1] = float64(i+1) / float64(n+1)
		}
	}

	indices := make([]uint32, 0, 6*n*m)
	tri := func(a, b, c int) {
		indices = append(indices, uint32(a), uint32(b), uint32(c))
	}

	// North lid: a fan around vertex 0.
	for i := range m {
		next := i + 2
		if i == m-1 {
			next = 1
		}
		tri(i+1, next, 0)
	}

	// Strips between neighbouring rings: one triangle per column pointing
	// down, then one per column pointing up.
	for i := range n - 1 {
		for j := 1; j <= m; j++ {
			top, topNext, _, botNext := quad(i, j, m)
			tri(botNext, topNext, top)
		}
		for j := 1; j <= m; j++ {
			top, _, bot, botNext := quad(i, j, m)
			tri(bot, botNext, top)
		}
	}

	// South lid around the last vertex.
	ring := (n-1)*m + 1
	for i := range m {
		next := ring + i + 1
		cur := ring + i
		if i == m-1 {
			next, cur = ring, ring+m-1
		}
		tri(next, cur, int(south))
	}

	// Texture coordinates are stored per corner.
	texCoords := make([]float64, 0, 2*len(indices))
	for _, idx := range indices {
		texCoords = append(texCoords, vertexUV[2*idx], vertexUV[2*idx+1])
	}

	return &MeshData{
		Name:      "sphere",
		Positions: positions,
		Indices:   indices,
		TexCoords: texCoords,
	}, nil
}

// quad returns the corner indices of column j (1-based) between rings i and
// i+1, wrapping the last column back to the first.
func quad(i, j, m int) (top, topNext, bot, botNext int) {
	top, bot = i*m+j, (i+1)*m+j
	topNext, botNext = top+1, bot+1
	if j == m {
		topNext, botNext = i*m+1, (i+1)*m+1
	}
	return top, topNext, bot, botNext
}

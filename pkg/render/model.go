package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/softraster/pkg/math3d"
)

// Model construction errors.
var (
	ErrPositionsNotTriples = errors.New("positions need to be divisible by 3")
	ErrIndicesNotTriples   = errors.New("indices need to be divisible by 3")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrNoTexCoords         = errors.New("texture coordinates are empty")
	ErrTexCoordsNotPairs   = errors.New("texture coordinates need to be divisible by 2")
)

// DefaultNearDistance is the view-space z of the default near clip plane.
const DefaultNearDistance = 1.0

// Vertex is a model-space position with texture coordinates.
type Vertex struct {
	Pos math3d.Vec4
	UV  math3d.Vec2
}

// Triangle holds three vertices by value. Vertices are never shared between
// triangles.
type Triangle struct {
	V [3]Vertex
}

// Pipeline configures how a Model is rendered.
type Pipeline struct {
	Near ClipPlane
	Fill FillStrategy
}

// DefaultPipeline clips at z = 1 and fills serially.
func DefaultPipeline() Pipeline {
	return Pipeline{Near: NearPlane(DefaultNearDistance), Fill: SerialFill{}}
}

// Model is an immutable list of textured triangles.
type Model struct {
	triangles []Triangle
	texture   *Texture
	pipeline  Pipeline
}

// NewModel builds a model from flat arrays: positions as x,y,z triples,
// indices as triangle triples and texCoords as u,v pairs. Corner k of the
// index list takes its coordinates from texCoords[(2k) % len(texCoords)],
// so a short list repeats across the mesh. A nil texture renders white.
func NewModel(positions []float64, indices []uint32, texCoords []float64, tex *Texture) (*Model, error) {
	switch {
	case len(positions)%3 != 0:
		return nil, ErrPositionsNotTriples
	case len(indices)%3 != 0:
		return nil, ErrIndicesNotTriples
	case len(texCoords) == 0 && len(indices) > 0:
		return nil, ErrNoTexCoords
	case len(texCoords)%2 != 0:
		return nil, ErrTexCoordsNotPairs
	}
	if tex == nil {
		tex = DefaultTexture()
	}

	vertexCount := uint32(len(positions) / 3)
	triangles := make([]Triangle, len(indices)/3)
	for i := range triangles {
		for k := range 3 {
			corner := 3*i + k
			idx := indices[corner]
			if idx >= vertexCount {
				return nil, fmt.Errorf("%w: triangle %d uses vertex %d of %d",
					ErrIndexOutOfRange, i, idx, vertexCount)
			}
			tc := (2 * corner) % len(texCoords)
			triangles[i].V[k] = Vertex{
				Pos: math3d.Point(positions[3*idx], positions[3*idx+1], positions[3*idx+2]),
				UV:  math3d.V2(texCoords[tc], texCoords[tc+1]),
			}
		}
	}

	Logger().Debug("model built", "vertices", vertexCount, "triangles", len(triangles),
		"texture", fmt.Sprintf("%dx%d", tex.Width, tex.Height))

	return &Model{triangles: triangles, texture: tex, pipeline: DefaultPipeline()}, nil
}

// WithPipeline returns a copy of the model that renders with p. Triangles
// and texture are shared.
func (m *Model) WithPipeline(p Pipeline) *Model {
	if p.Fill == nil {
		p.Fill = SerialFill{}
	}
	c := *m
	c.pipeline = p
	return &c
}

// Pipeline returns the model's render configuration.
func (m *Model) Pipeline() Pipeline {
	return m.pipeline
}

// TriangleCount returns the number of triangles.
func (m *Model) TriangleCount() int {
	return len(m.triangles)
}

// Triangles returns the model-space triangles. The slice must not be
// modified.
func (m *Model) Triangles() []Triangle {
	return m.triangles
}

// Texture returns the model's texture.
func (m *Model) Texture() *Texture {
	return m.texture
}

// Render draws every triangle into fb. worldView takes model space to view
// space (view.Mul(world)); projection should come from math3d.Perspective
// for the framebuffer's size.
func (m *Model) Render(fb *Framebuffer, projection, worldView math3d.Mat4) {
	var clipped [2]Triangle
	for i := range m.triangles {
		fb.Stats.Triangles++

		var view Triangle
		for k := range 3 {
			view.V[k] = Vertex{
				Pos: worldView.MulVec4(m.triangles[i].V[k].Pos),
				UV:  m.triangles[i].V[k].UV,
			}
		}

		class := m.pipeline.Near.Classify(view)
		if class == 0 {
			fb.Stats.Discarded++
			continue
		}
		if class != 0b111 {
			fb.Stats.Clipped++
		}

		n := m.pipeline.Near.Clip(view, &clipped)
		for j := range n {
			m.rasterize(fb, projection, &clipped[j])
		}
	}
}

// rasterize projects a view-space triangle and fills or outlines it.
func (m *Model) rasterize(fb *Framebuffer, projection math3d.Mat4, tri *Triangle) {
	var sv [3]ScreenVertex
	for k := range 3 {
		p := projection.MulVec4(tri.V[k].Pos).PerspectiveDivide()
		sv[k] = ScreenVertex{X: p.X, Y: p.Y, Z: p.Z, UV: tri.V[k].UV}
	}

	var st ScreenTriangle
	if !setup(sv[0], sv[1], sv[2], fb.Width, fb.Height, &st) {
		fb.Stats.Culled++
		return
	}
	fb.Stats.Rasterized++

	if fb.Wireframe {
		outline(fb, sv[0], sv[1], sv[2], WireframeColor)
		return
	}
	fb.Stats.Pixels += m.pipeline.Fill.Fill(fb, m.texture, &st)
}

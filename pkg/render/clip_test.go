package render

import (
	"math"
	"testing"

	"github.com/taigrr/softraster/pkg/math3d"
)

// vxz builds a vertex in the y=0 plane so clipped areas can be measured in
// the x,z plane.
func vxz(x, z, u float64) Vertex {
	return Vertex{Pos: math3d.Point(x, 0, z), UV: math3d.V2(u, 0)}
}

func tri(a, b, c Vertex) Triangle {
	return Triangle{V: [3]Vertex{a, b, c}}
}

// signedAreaXZ is twice the signed area of the triangle projected onto x,z.
func signedAreaXZ(t Triangle) float64 {
	a, b, c := t.V[0].Pos, t.V[1].Pos, t.V[2].Pos
	return (b.X-a.X)*(c.Z-a.Z) - (b.Z-a.Z)*(c.X-a.X)
}

// rotations returns the three cyclic orderings of a triangle.
func rotations(t Triangle) []Triangle {
	a, b, c := t.V[0], t.V[1], t.V[2]
	return []Triangle{tri(a, b, c), tri(c, a, b), tri(b, c, a)}
}

func TestClipClassification(t *testing.T) {
	near := NearPlane(1)

	tests := []struct {
		name string
		tri  Triangle
		want int
	}{
		{"all inside", tri(vxz(0, 5, 0), vxz(1, 5, 0), vxz(0, 6, 0)), 1},
		{"two inside", tri(vxz(0, 3, 0), vxz(4, 3, 0), vxz(0, -1, 0)), 2},
		{"one inside", tri(vxz(0, 3, 0), vxz(4, -1, 0), vxz(0, -1, 0)), 1},
		{"none inside", tri(vxz(0, 0.5, 0), vxz(4, 0, 0), vxz(0, -1, 0)), 0},
		{"on plane is outside", tri(vxz(0, 1, 0), vxz(1, 1, 0), vxz(0, 1, 0)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, r := range rotations(tt.tri) {
				var out [2]Triangle
				if got := near.Clip(r, &out); got != tt.want {
					t.Errorf("rotation %d: Clip returned %d triangles, want %d", i, got, tt.want)
				}
			}
		})
	}
}

func TestClipAllInsideUnchanged(t *testing.T) {
	in := tri(vxz(0, 5, 0.1), vxz(1, 5, 0.2), vxz(0, 6, 0.3))
	var out [2]Triangle
	if n := NearPlane(1).Clip(in, &out); n != 1 || out[0] != in {
		t.Errorf("Clip = %d, %v; want the input unchanged", n, out[0])
	}
}

func TestClipTwoInsidePreservesArea(t *testing.T) {
	// Trapezoid left above z=1: (0,3) (4,3) (2,1) (0,1), area 6.
	base := tri(vxz(0, 3, 0), vxz(4, 3, 0), vxz(0, -1, 0))
	wantSign := math.Signbit(signedAreaXZ(base))

	for i, r := range rotations(base) {
		var out [2]Triangle
		n := NearPlane(1).Clip(r, &out)
		if n != 2 {
			t.Fatalf("rotation %d: got %d triangles", i, n)
		}

		total := 0.0
		for j := range n {
			a := signedAreaXZ(out[j])
			if math.Signbit(a) != wantSign {
				t.Errorf("rotation %d triangle %d: winding flipped", i, j)
			}
			total += math.Abs(a) / 2
			for k := range 3 {
				if z := out[j].V[k].Pos.Z; z < 1-1e-9 {
					t.Errorf("rotation %d: vertex behind the plane at z=%v", i, z)
				}
			}
		}
		if math.Abs(total-6) > 1e-9 {
			t.Errorf("rotation %d: area = %v, want 6", i, total)
		}
	}
}

func TestClipOneInside(t *testing.T) {
	base := tri(vxz(0, 3, 0), vxz(4, -1, 1), vxz(0, -1, 1))
	wantSign := math.Signbit(signedAreaXZ(base))

	for i, r := range rotations(base) {
		var out [2]Triangle
		if n := NearPlane(1).Clip(r, &out); n != 1 {
			t.Fatalf("rotation %d: got %d triangles", i, n)
		}
		a := signedAreaXZ(out[0])
		if math.Signbit(a) != wantSign {
			t.Errorf("rotation %d: winding flipped", i)
		}
		if math.Abs(math.Abs(a)/2-2) > 1e-9 {
			t.Errorf("rotation %d: area = %v, want 2", i, math.Abs(a)/2)
		}
		// Both cut vertices sit halfway along their edges.
		for k := range 3 {
			v := out[0].V[k]
			if v.Pos.Z == 3 {
				continue
			}
			if math.Abs(v.Pos.Z-1) > 1e-9 {
				t.Errorf("rotation %d: cut vertex z = %v, want 1", i, v.Pos.Z)
			}
			if math.Abs(v.UV.U-0.5) > 1e-9 {
				t.Errorf("rotation %d: cut vertex u = %v, want 0.5", i, v.UV.U)
			}
			if v.Pos.W != 1 {
				t.Errorf("rotation %d: cut vertex w = %v, want 1", i, v.Pos.W)
			}
		}
	}
}

func TestClipTwoInsideUV(t *testing.T) {
	// a inside with u=0, c outside with u=1; the cut lands at t=0.5.
	in := tri(vxz(0, 3, 0), vxz(4, 3, 0), vxz(0, -1, 1))
	var out [2]Triangle
	NearPlane(1).Clip(in, &out)

	// First output is (a, b', a').
	if got := out[0].V[2].UV.U; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("a' u = %v, want 0.5", got)
	}
	if got := out[0].V[1].Pos; math.Abs(got.X-2) > 1e-9 || math.Abs(got.Z-1) > 1e-9 {
		t.Errorf("b' = %v, want (2, 0, 1)", got)
	}
}

func TestClipPlaneCustomDistance(t *testing.T) {
	p := NearPlane(10)
	if d := p.Distance(math3d.Point(3, 4, 10)); d != 0 {
		t.Errorf("Distance on plane = %v", d)
	}
	var out [2]Triangle
	if n := p.Clip(tri(vxz(0, 5, 0), vxz(1, 5, 0), vxz(0, 6, 0)), &out); n != 0 {
		t.Errorf("triangle in front of z=1 but behind z=10 produced %d triangles", n)
	}
}

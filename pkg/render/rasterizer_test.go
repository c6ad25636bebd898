package render

import (
	"math"
	"testing"
)

func sv(x, y float64) ScreenVertex {
	return ScreenVertex{X: x, Y: y, Z: 0.05}
}

func TestEdgeArea(t *testing.T) {
	tests := []struct {
		name      string
		a, b, c   ScreenVertex
		want      float64
		wantFront bool
	}{
		{"front", sv(0, 0), sv(0, 10), sv(10, 0), 100, true},
		{"back", sv(0, 0), sv(10, 0), sv(0, 10), -100, false},
		{"degenerate", sv(0, 0), sv(5, 5), sv(10, 10), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := edge(tt.a, tt.b, tt.c); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("edge = %v, want %v", got, tt.want)
			}
			var st ScreenTriangle
			if got := setup(tt.a, tt.b, tt.c, 100, 100, &st); got != tt.wantFront {
				t.Errorf("setup = %v, want %v", got, tt.wantFront)
			}
		})
	}
}

func TestSetupBounds(t *testing.T) {
	tests := []struct {
		name                   string
		a, b, c                ScreenVertex
		minX, maxX, minY, maxY int
	}{
		{"interior", sv(10.7, 20.2), sv(10.7, 30.9), sv(25.5, 20.2), 9, 26, 19, 31},
		{"clamped low", sv(-5, -5), sv(-5, 8), sv(8, -5), 0, 9, 0, 9},
		{"clamped high", sv(90, 90), sv(90, 150), sv(150, 90), 89, 100, 89, 100},
		{"beyond int range", sv(-1e19, -1e19), sv(0, 1e19), sv(1e19, -1e19), 0, 100, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st ScreenTriangle
			if !setup(tt.a, tt.b, tt.c, 100, 100, &st) {
				t.Fatal("triangle culled")
			}
			if st.MinX != tt.minX || st.MaxX != tt.maxX || st.MinY != tt.minY || st.MaxY != tt.maxY {
				t.Errorf("bounds x[%d,%d) y[%d,%d), want x[%d,%d) y[%d,%d)",
					st.MinX, st.MaxX, st.MinY, st.MaxY, tt.minX, tt.maxX, tt.minY, tt.maxY)
			}
		})
	}
}

func TestScanRowsDegenerate(t *testing.T) {
	fb := NewFramebuffer(16, 16, nil)
	fb.DepthFloor = 0
	var st ScreenTriangle
	setup(sv(0, 0), sv(5, 5), sv(10, 10), fb.Width, fb.Height, &st)

	if n := st.ScanRows(fb, DefaultTexture(), 0, 1); n != 0 {
		t.Errorf("zero-area triangle wrote %d pixels", n)
	}
}

func TestScanRowsPerspectiveDepth(t *testing.T) {
	// Depth is the reciprocal of interpolated 1/z, so a triangle with equal
	// vertex depths yields exactly that depth everywhere.
	fb := NewFramebuffer(32, 32, nil)
	var st ScreenTriangle
	setup(sv(0, 0), sv(0, 32), sv(32, 0), fb.Width, fb.Height, &st)

	if n := st.ScanRows(fb, DefaultTexture(), 0, 1); n == 0 {
		t.Fatal("no pixels written")
	}
	for i, d := range fb.Depth {
		if d != math.MaxFloat64 && math.Abs(d-20) > 1e-9 {
			t.Fatalf("depth[%d] = %v, want 20", i, d)
		}
	}
}

func TestBound(t *testing.T) {
	tests := []struct {
		name  string
		v     float64
		pad   int
		limit int
		want  int
	}{
		{"min interior", 10.7, -1, 100, 9},
		{"max interior", 25.5, 1, 100, 26},
		{"min negative fraction", -0.5, -1, 100, 0},
		{"min just past limit", 100.5, -1, 100, 99},
		{"min far past limit", 150, -1, 100, 100},
		{"max far below zero", -150, 1, 100, 0},
		{"huge positive", 1e300, -1, 100, 100},
		{"huge negative", -1e300, 1, 100, 0},
		{"infinity", math.Inf(1), 1, 100, 100},
		{"nan", math.NaN(), 1, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bound(tt.v, tt.pad, tt.limit); got != tt.want {
				t.Errorf("bound(%v, %d, %d) = %d, want %d", tt.v, tt.pad, tt.limit, got, tt.want)
			}
		})
	}
}

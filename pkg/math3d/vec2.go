package math3d

// Vec2 is a texture coordinate pair. Values outside [0,1] are legal and wrap
// when sampled.
type Vec2 struct {
	U, V float64
}

// V2 creates a new Vec2.
func V2(u, v float64) Vec2 {
	return Vec2{u, v}
}

// Blend returns t*b + (1-t)*a.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Vec2) Blend(b Vec2, t float64) Vec2 {
	return Vec2{t*b.U + (1-t)*a.U, t*b.V + (1-t)*a.V}
}

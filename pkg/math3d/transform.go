package math3d

import "math"

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation creates a translation matrix. W of v is ignored.
func Translation(v Vec4) Mat4 {
	return Mat4{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Scale creates a scaling matrix. W of v is ignored.
func Scale(v Vec4) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(Dir(s, s, s))
}

// RotationX creates a right-handed rotation around the X axis.
func RotationX(theta float64) Mat4 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY creates a right-handed rotation around the Y axis.
func RotationY(theta float64) Mat4 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotationZ creates a right-handed rotation around the Z axis.
func RotationZ(theta float64) Mat4 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective maps view space straight to pixel space for a width x height
// target with horizontal field of view fov (radians).
//
// After the perspective divide, x and y are pixel coordinates and z holds
// 1/z_view, which the rasterizer interpolates linearly in screen space.
// The focal length is d = width / (2*tan(fov/2)); x is mirrored by the -d
// coefficient and y grows downward with view-space y.
func Perspective(width, height int, fov float64) Mat4 {
	d := float64(width) / (2 * math.Tan(fov/2))
	cx := float64(width) / 2
	cy := float64(height) / 2
	return Mat4{
		-d, 0, cx, 0,
		0, d, cy, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	}
}

// LookAt creates a view matrix for a camera at eye looking towards at, with
// world up (0,1,0). The target ends up on the positive view-space Z axis.
// eye == at, or a view direction parallel to up, yields NaN entries.
func LookAt(eye, at Vec4) Mat4 {
	up := Dir(0, 1, 0)
	f := Dir(at.X-eye.X, at.Y-eye.Y, at.Z-eye.Z).Normalize() // Forward
	r := up.Cross(f).Normalize()                             // Right
	u := f.Cross(r).Normalize()                              // Up (recomputed)

	rot := Mat4{
		r.X, r.Y, r.Z, 0,
		u.X, u.Y, u.Z, 0,
		f.X, f.Y, f.Z, 0,
		0, 0, 0, 1,
	}
	return rot.Mul(Translation(Dir(-eye.X, -eye.Y, -eye.Z)))
}

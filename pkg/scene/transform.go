// Package scene holds the world the renderer draws: a camera, entities with
// cached transforms and a generation-checked entity store.
package scene

import "github.com/taigrr/softraster/pkg/math3d"

// Transform is a position, Euler rotation (radians around X, Y, Z) and
// per-axis scale. The world matrix is cached until a component changes.
type Transform struct {
	position math3d.Vec4
	rotation math3d.Vec4
	scale    math3d.Vec4

	world math3d.Mat4
	dirty bool
}

// NewTransform returns an identity transform at the origin.
func NewTransform() Transform {
	return Transform{
		position: math3d.Point(0, 0, 0),
		scale:    math3d.Dir(1, 1, 1),
		world:    math3d.Identity(),
	}
}

// Position returns the translation.
func (t *Transform) Position() math3d.Vec4 { return t.position }

// Rotation returns the Euler angles.
func (t *Transform) Rotation() math3d.Vec4 { return t.rotation }

// Scale returns the per-axis scale.
func (t *Transform) Scale() math3d.Vec4 { return t.scale }

// SetPosition sets the translation. W is forced to 1.
func (t *Transform) SetPosition(p math3d.Vec4) {
	t.position = math3d.Point(p.X, p.Y, p.Z)
	t.dirty = true
}

// SetRotation sets the Euler angles.
func (t *Transform) SetRotation(r math3d.Vec4) {
	t.rotation = r
	t.dirty = true
}

// SetScale sets the per-axis scale.
func (t *Transform) SetScale(s math3d.Vec4) {
	t.scale = s
	t.dirty = true
}

// World returns T * Rz * Ry * Rx * S: scale first, then rotate around X,
// Y and Z in that order, then translate.
func (t *Transform) World() math3d.Mat4 {
	if t.dirty {
		t.world = math3d.Translation(t.position).
			Mul(math3d.RotationZ(t.rotation.Z)).
			Mul(math3d.RotationY(t.rotation.Y)).
			Mul(math3d.RotationX(t.rotation.X)).
			Mul(math3d.Scale(t.scale))
		t.dirty = false
	}
	return t.world
}

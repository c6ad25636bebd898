package scene

import "github.com/taigrr/softraster/pkg/math3d"

// Camera is an eye point looking at a target with world up (0,1,0). The
// view matrix is cached until either point changes.
type Camera struct {
	eye math3d.Vec4
	at  math3d.Vec4

	view  math3d.Mat4
	dirty bool
}

// NewCamera returns a camera at the origin looking down +Z. Its view matrix
// is the identity.
func NewCamera() *Camera {
	return &Camera{
		eye:  math3d.Point(0, 0, 0),
		at:   math3d.Point(0, 0, 1),
		view: math3d.Identity(),
	}
}

// Eye returns the camera position.
func (c *Camera) Eye() math3d.Vec4 { return c.eye }

// At returns the look-at target.
func (c *Camera) At() math3d.Vec4 { return c.at }

// SetEye moves the camera.
func (c *Camera) SetEye(p math3d.Vec4) {
	c.eye = p
	c.dirty = true
}

// SetAt changes the look-at target.
func (c *Camera) SetAt(p math3d.Vec4) {
	c.at = p
	c.dirty = true
}

// View returns the world-to-view matrix.
func (c *Camera) View() math3d.Mat4 {
	if c.dirty {
		c.view = math3d.LookAt(c.eye, c.at)
		c.dirty = false
	}
	return c.view
}

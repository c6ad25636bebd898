package scene

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/softraster/pkg/math3d"
	"github.com/taigrr/softraster/pkg/render"
)

// ModelEntity draws a model at its transform and optionally spins it.
type ModelEntity struct {
	Transform
	Model *render.Model

	// Spin is added to the rotation every second, in radians per axis.
	Spin math3d.Vec4
}

// NewModelEntity wraps m with an identity transform.
func NewModelEntity(m *render.Model) *ModelEntity {
	return &ModelEntity{Transform: NewTransform(), Model: m}
}

func (e *ModelEntity) Update(_ *Level, dt float64) {
	if e.Spin == (math3d.Vec4{}) {
		return
	}
	r := e.Rotation()
	e.SetRotation(math3d.V4(
		math.Mod(r.X+e.Spin.X*dt, 2*math.Pi),
		math.Mod(r.Y+e.Spin.Y*dt, 2*math.Pi),
		math.Mod(r.Z+e.Spin.Z*dt, 2*math.Pi),
		0,
	))
}

func (e *ModelEntity) Render(fb *render.Framebuffer, projection, view math3d.Mat4) {
	if e.Model == nil {
		return
	}
	e.Model.Render(fb, projection, view.Mul(e.World()))
}

func (e *ModelEntity) HandleEvent(Event) {}

// Player defaults.
const (
	DefaultTurnSpeed = 1.0 // radians per second
	DefaultMoveSpeed = 8.0 // units per second

	springFrequency = 6.0
	springDamping   = 1.0
)

// Player is a first-person viewer. W/S (or up/down) move along the heading,
// A/D (or left/right) turn around Y. The level camera trails one unit
// behind the player looking at its position.
type Player struct {
	Transform

	TurnSpeed float64
	MoveSpeed float64

	// Smooth eases turn and move velocities toward their targets with a
	// critically damped spring instead of switching instantly.
	Smooth bool

	forward, back, left, right bool

	turnVel, turnAccel float64
	moveVel, moveAccel float64
}

// NewPlayer creates a player at pos facing +Z.
func NewPlayer(pos math3d.Vec4) *Player {
	p := &Player{
		Transform: NewTransform(),
		TurnSpeed: DefaultTurnSpeed,
		MoveSpeed: DefaultMoveSpeed,
		Smooth:    true,
	}
	p.SetPosition(pos)
	return p
}

// Heading is the unit direction the player faces.
func (p *Player) Heading() math3d.Vec4 {
	return math3d.RotationY(p.Rotation().Y).MulVec4(math3d.Dir(0, 0, 1))
}

func (p *Player) HandleEvent(ev Event) {
	down := ev.Kind == KeyDown
	switch ev.Key {
	case "w", "up":
		p.forward = down
	case "s", "down":
		p.back = down
	case "a", "left":
		p.left = down
	case "d", "right":
		p.right = down
	}
}

func axis(pos, neg bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}

func (p *Player) Update(level *Level, dt float64) {
	// Right turns toward the camera's right, which is negative yaw.
	turnTarget := axis(p.left, p.right) * p.TurnSpeed
	moveTarget := axis(p.forward, p.back) * p.MoveSpeed

	if p.Smooth && dt > 0 {
		spring := harmonica.NewSpring(dt, springFrequency, springDamping)
		p.turnVel, p.turnAccel = spring.Update(p.turnVel, p.turnAccel, turnTarget)
		p.moveVel, p.moveAccel = spring.Update(p.moveVel, p.moveAccel, moveTarget)
	} else {
		p.turnVel, p.moveVel = turnTarget, moveTarget
	}

	r := p.Rotation()
	r.Y = math.Mod(r.Y+p.turnVel*dt, 2*math.Pi)
	p.SetRotation(r)

	heading := p.Heading()
	if p.moveVel != 0 {
		next := p.Position().Add(heading.Scale(p.moveVel * dt))
		if level == nil || level.CanMove(next) {
			p.SetPosition(next)
		} else {
			p.moveVel, p.moveAccel = 0, 0
		}
	}

	if level != nil {
		pos := p.Position()
		level.Camera.SetEye(pos.Sub(heading))
		level.Camera.SetAt(pos)
	}
}

// Render draws nothing; the player is the viewpoint.
func (p *Player) Render(*render.Framebuffer, math3d.Mat4, math3d.Mat4) {}

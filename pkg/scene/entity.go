package scene

import (
	"github.com/taigrr/softraster/pkg/math3d"
	"github.com/taigrr/softraster/pkg/render"
)

// EventKind distinguishes key presses from releases.
type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
)

// Event is a keyboard event delivered to every entity. Key holds a
// lowercase key name such as "w", "left" or "space".
type Event struct {
	Kind EventKind
	Key  string
}

// Entity is an object living in a Level.
type Entity interface {
	Update(level *Level, dt float64)
	Render(fb *render.Framebuffer, projection, view math3d.Mat4)
	HandleEvent(ev Event)
}

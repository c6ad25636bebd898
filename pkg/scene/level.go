package scene

import (
	"fmt"

	"github.com/taigrr/softraster/pkg/math3d"
	"github.com/taigrr/softraster/pkg/render"
)

// MaxEntities is the number of entities a level can hold at once.
const MaxEntities = 200

// Level owns a camera and the entities living in it.
type Level struct {
	Camera *Camera

	// Walkable decides whether a position may be moved into. A nil
	// Walkable allows every move.
	Walkable func(p math3d.Vec4) bool

	entities *Arena[Entity]
}

// NewLevel creates an empty level with a default camera.
func NewLevel() *Level {
	return &Level{
		Camera:   NewCamera(),
		entities: NewArena[Entity](MaxEntities),
	}
}

// Add inserts an entity and returns its handle.
func (l *Level) Add(e Entity) (Handle, error) {
	h, err := l.entities.Insert(e)
	if err != nil {
		return Handle{}, fmt.Errorf("add entity: %w", err)
	}
	return h, nil
}

// Remove deletes the entity for h. Removing during Update or Render is
// allowed.
func (l *Level) Remove(h Handle) bool {
	return l.entities.Remove(h)
}

// Entity returns the entity for h.
func (l *Level) Entity(h Handle) (Entity, bool) {
	return l.entities.Get(h)
}

// Len returns the number of live entities.
func (l *Level) Len() int {
	return l.entities.Len()
}

// CanMove reports whether p is walkable.
func (l *Level) CanMove(p math3d.Vec4) bool {
	if l.Walkable == nil {
		return true
	}
	return l.Walkable(p)
}

// Update advances every entity by dt seconds, in insertion slot order.
func (l *Level) Update(dt float64) {
	for _, e := range l.entities.All() {
		e.Update(l, dt)
	}
}

// Render draws every entity through the camera's view matrix.
func (l *Level) Render(fb *render.Framebuffer, projection math3d.Mat4) {
	view := l.Camera.View()
	for _, e := range l.entities.All() {
		e.Render(fb, projection, view)
	}
}

// HandleEvent broadcasts ev to every entity.
func (l *Level) HandleEvent(ev Event) {
	for _, e := range l.entities.All() {
		e.HandleEvent(ev)
	}
}

package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/softraster/pkg/scene"
)

// keyNames maps the keys the viewer reacts to onto scene key names.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyW:          "w",
	ebiten.KeyA:          "a",
	ebiten.KeyS:          "s",
	ebiten.KeyD:          "d",
	ebiten.KeyQ:          "q",
	ebiten.KeyX:          "x",
	ebiten.KeyArrowUp:    "up",
	ebiten.KeyArrowDown:  "down",
	ebiten.KeyArrowLeft:  "left",
	ebiten.KeyArrowRight: "right",
	ebiten.KeySpace:      "space",
	ebiten.KeyEscape:     "escape",
}

// KeyName returns the scene name for k, or "" for keys that are ignored.
func KeyName(k ebiten.Key) string {
	return keyNames[k]
}

func (w *Window) poll() {
	for k, name := range keyNames {
		if inpututil.IsKeyJustPressed(k) {
			w.emit(scene.Event{Kind: scene.KeyDown, Key: name})
		}
		if inpututil.IsKeyJustReleased(k) {
			w.emit(scene.Event{Kind: scene.KeyUp, Key: name})
		}
	}
}

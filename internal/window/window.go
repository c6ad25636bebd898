// Package window presents frames in a desktop window through ebiten and
// turns its keyboard state into scene events.
package window

import (
	"errors"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/taigrr/softraster/pkg/render"
	"github.com/taigrr/softraster/pkg/scene"
)

// ErrQuit ends Run cleanly when returned from the step function.
var ErrQuit = errors.New("quit")

// eventBuffer is the number of key events held between polls.
const eventBuffer = 64

// Window is a render.Surface backed by an ebiten window. Present may be
// called from the step function; the window draws the latest frame.
type Window struct {
	mu      sync.Mutex
	width   int
	height  int
	staging []byte // RGBA
	fresh   bool

	img    *ebiten.Image
	events chan scene.Event
}

// New creates a window whose logical size matches a width×height frame.
func New(width, height int) *Window {
	return &Window{
		width:   width,
		height:  height,
		staging: make([]byte, width*height*4),
		events:  make(chan scene.Event, eventBuffer),
	}
}

// Present copies fb into the staging buffer. Frames of a different size
// resize the window's logical screen.
func (w *Window) Present(fb *render.Framebuffer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if fb.Width != w.width || fb.Height != w.height {
		w.width, w.height = fb.Width, fb.Height
		w.staging = make([]byte, fb.Width*fb.Height*4)
	}
	fb.CopyRGBA(w.staging)
	w.fresh = true
	return nil
}

// Events delivers key presses and releases. Events are dropped when the
// buffer is full.
func (w *Window) Events() <-chan scene.Event {
	return w.events
}

// Size returns the current frame size.
func (w *Window) Size() (width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

func (w *Window) emit(ev scene.Event) {
	select {
	case w.events <- ev:
	default:
	}
}

// Run opens the window and calls step once per tick until the window
// closes or step returns an error. ErrQuit is not reported.
// It blocks and must be called from the main goroutine.
func (w *Window) Run(title string, tps, scale int, step func() error) error {
	width, height := w.Size()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width*scale, height*scale)
	ebiten.SetTPS(tps)
	return ebiten.RunGame(&hostGame{w: w, step: step})
}

type hostGame struct {
	w    *Window
	step func() error
}

func (g *hostGame) Update() error {
	g.w.poll()
	if g.step == nil {
		return nil
	}
	if err := g.step(); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	w := g.w
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.img == nil || w.img.Bounds().Dx() != w.width || w.img.Bounds().Dy() != w.height {
		if w.img != nil {
			w.img.Deallocate()
		}
		w.img = ebiten.NewImage(w.width, w.height)
		w.fresh = true
	}
	if w.fresh {
		w.img.WritePixels(w.staging)
		w.fresh = false
	}
	screen.DrawImage(w.img, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w.Size()
}

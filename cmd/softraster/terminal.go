package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/softraster/internal/config"
	"github.com/taigrr/softraster/pkg/render"
	"github.com/taigrr/softraster/pkg/scene"
)

// keyHold is how long a terminal key press counts as held when the
// terminal does not report releases.
const keyHold = 150 * time.Millisecond

// terminalKeys are the key names forwarded from the terminal.
var terminalKeys = []string{
	"w", "a", "s", "d", "q", "x",
	"up", "down", "left", "right", "space", "escape",
}

// keyMatcher is satisfied by uv.KeyPressEvent and uv.KeyReleaseEvent.
type keyMatcher interface {
	MatchString(s ...string) bool
}

func keyName(k keyMatcher) string {
	for _, name := range terminalKeys {
		if k.MatchString(name) {
			return name
		}
	}
	return ""
}

// keyLatch synthesizes releases for keys the terminal only reports as
// presses (and repeats).
type keyLatch struct {
	held map[string]time.Time
}

func newKeyLatch() *keyLatch {
	return &keyLatch{held: make(map[string]time.Time)}
}

// press records a press and reports whether the key was up before.
func (l *keyLatch) press(name string, now time.Time) bool {
	_, down := l.held[name]
	l.held[name] = now
	return !down
}

// release forgets a key and reports whether it was held.
func (l *keyLatch) release(name string) bool {
	_, down := l.held[name]
	delete(l.held, name)
	return down
}

// expire returns the keys not pressed again within keyHold of now.
func (l *keyLatch) expire(now time.Time) []string {
	var up []string
	for name, t := range l.held {
		if now.Sub(t) >= keyHold {
			up = append(up, name)
			delete(l.held, name)
		}
	}
	return up
}

func runTerminal(cfg config.Config) error {
	t := uv.DefaultTerminal()

	width, height, err := t.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := t.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	t.EnterAltScreen()
	t.HideCursor()
	t.Resize(width, height)

	cleanup := func() {
		t.ExitAltScreen()
		t.ShowCursor()
		t.Shutdown(context.Background())
	}
	defer cleanup()

	fbWidth, fbHeight := render.FramebufferSize(width, height)
	v, err := newViewer(cfg, render.NewTerminalSurface(t), fbWidth, fbHeight)
	if err != nil {
		return err
	}

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	latch := newKeyLatch()
	targetDuration := time.Second / time.Duration(cfg.FPS)
	lastFrame := time.Now()

	for {
		now := time.Now()

	events:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-t.Events():
				if !ok {
					return nil
				}
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					width, height = ev.Width, ev.Height
					t.Erase()
					t.Resize(width, height)
					v.resize(render.FramebufferSize(width, height))

				case uv.KeyPressEvent:
					if ev.MatchString("ctrl+c") {
						return nil
					}
					name := keyName(ev)
					if name == "" || !latch.press(name, now) {
						continue
					}
					if v.handle(scene.Event{Kind: scene.KeyDown, Key: name}) {
						return nil
					}

				case uv.KeyReleaseEvent:
					if name := keyName(ev); name != "" && latch.release(name) {
						v.handle(scene.Event{Kind: scene.KeyUp, Key: name})
					}
				}
			default:
				break events
			}
		}

		for _, name := range latch.expire(now) {
			v.handle(scene.Event{Kind: scene.KeyUp, Key: name})
		}

		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		if err := v.frame(dt); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

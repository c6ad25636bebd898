package main

import (
	"github.com/taigrr/softraster/internal/config"
	"github.com/taigrr/softraster/internal/window"
)

// windowScale is the window size relative to the framebuffer.
const windowScale = 2

func runWindow(cfg config.Config) error {
	w := window.New(cfg.Width, cfg.Height)
	v, err := newViewer(cfg, w, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	v.hud = true

	dt := 1 / float64(cfg.FPS)
	step := func() error {
		for {
			select {
			case ev := <-w.Events():
				if v.handle(ev) {
					return window.ErrQuit
				}
			default:
				return v.frame(dt)
			}
		}
	}
	return w.Run("softraster", cfg.FPS, windowScale, step)
}

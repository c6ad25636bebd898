package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/softraster/internal/config"
	"github.com/taigrr/softraster/pkg/render"
)

// runHeadless renders n frames at a fixed time step and writes each one
// to dir as frameNNNN.png. Frames render in order; PNG encoding runs on
// up to GOMAXPROCS goroutines and the first write error stops rendering.
func runHeadless(cfg config.Config, n int, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	v, err := newViewer(cfg, nil, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))

	dt := 1 / float64(cfg.FPS)
	bar := progressbar.Default(int64(n), "rendering")
	for i := range n {
		if ctx.Err() != nil {
			break
		}
		if err := v.frame(dt); err != nil {
			return err
		}
		img := v.fb.ToImage()
		path := filepath.Join(dir, fmt.Sprintf("frame%04d.png", i))
		g.Go(func() error {
			if err := render.WritePNG(path, img); err != nil {
				return fmt.Errorf("save frame %d: %w", i, err)
			}
			bar.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	bar.Finish()

	fmt.Fprintf(os.Stderr, "Wrote %d frames to %s\n", n, dir)
	return nil
}

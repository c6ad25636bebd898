// softraster - CPU 3D Rasterizer
// Renders a textured scene with a software pipeline and shows it in the
// terminal, in a desktop window or as a PNG sequence.
//
// Controls:
//
//	W/S         - Move forward/back
//	A/D         - Turn left/right
//	X           - Toggle wireframe
//	Q/Esc       - Quit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/taigrr/softraster/internal/config"
	"github.com/taigrr/softraster/pkg/render"
)

var (
	configPath  = flag.String("config", "", "Path to a YAML config file")
	texturePath = flag.String("texture", "", "Path to texture image (PNG/JPG/GIF/BMP/TIFF/WebP)")
	modelPath   = flag.String("model", "", "Path to a GLB model to add to the scene")
	targetFPS   = flag.Int("fps", 0, "Target FPS (overrides config)")
	wireframe   = flag.Bool("wireframe", false, "Draw triangle outlines instead of filling")
	parallel    = flag.Bool("parallel", false, "Fill scan lines on multiple goroutines")
	windowMode  = flag.Bool("window", false, "Open a desktop window instead of using the terminal")
	frames      = flag.Int("frames", 0, "Render N frames to PNG files and exit")
	outDir      = flag.String("out", "frames", "Output directory for -frames")
	verbose     = flag.Bool("v", false, "Log pipeline events to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "softraster - CPU 3D Rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: softraster [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S         - Move forward/back\n")
		fmt.Fprintf(os.Stderr, "  A/D         - Turn left/right\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  Q/Esc       - Quit\n")
	}
	flag.Parse()

	if *verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *windowMode:
		err = runWindow(cfg)
	case *frames > 0:
		err = runHeadless(cfg, *frames, *outDir)
	case !term.IsTerminal(int(os.Stdout.Fd())):
		err = runHeadless(cfg, 1, *outDir)
	default:
		err = runTerminal(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return config.Config{}, err
		}
	}

	if *texturePath != "" {
		cfg.Texture = *texturePath
	}
	if *modelPath != "" {
		cfg.Model = *modelPath
	}
	if *targetFPS > 0 {
		cfg.FPS = *targetFPS
	}
	if *wireframe {
		cfg.Wireframe = true
	}
	if *parallel {
		cfg.Fill.Mode = config.FillParallel
	}
	return cfg, cfg.Validate()
}

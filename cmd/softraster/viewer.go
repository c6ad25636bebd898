package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/taigrr/softraster/internal/config"
	"github.com/taigrr/softraster/pkg/math3d"
	"github.com/taigrr/softraster/pkg/models"
	"github.com/taigrr/softraster/pkg/render"
	"github.com/taigrr/softraster/pkg/scene"
)

// Scene layout. Everything sits beyond the depth floor.
const (
	sceneDepth  = 30.0
	modelSize   = 8.0
	sphereSteps = 24
)

// viewer owns the framebuffer and level shared by every output mode.
type viewer struct {
	cfg        config.Config
	fb         *render.Framebuffer
	level      *scene.Level
	projection math3d.Mat4

	// hud draws the frame rate into the frame itself.
	hud bool
}

func newViewer(cfg config.Config, surface render.Surface, width, height int) (*viewer, error) {
	level, err := buildLevel(cfg)
	if err != nil {
		return nil, err
	}

	fb := render.NewFramebuffer(width, height, surface)
	fb.DepthFloor = cfg.DepthFloor
	fb.Wireframe = cfg.Wireframe

	v := &viewer{cfg: cfg, fb: fb, level: level}
	v.projection = math3d.Perspective(width, height, cfg.FOV)
	return v, nil
}

func (v *viewer) resize(width, height int) {
	v.fb.Resize(width, height)
	v.projection = math3d.Perspective(width, height, v.cfg.FOV)
}

// handle applies viewer-level keys and forwards the rest to the level.
// It reports whether the viewer should quit.
func (v *viewer) handle(ev scene.Event) bool {
	if ev.Kind == scene.KeyDown {
		switch ev.Key {
		case "q", "escape":
			return true
		case "x":
			v.fb.Wireframe = !v.fb.Wireframe
			return false
		}
	}
	v.level.HandleEvent(ev)
	return false
}

// frame advances the level by dt seconds, draws it and presents.
func (v *viewer) frame(dt float64) error {
	v.level.Update(dt)
	v.fb.Clear()
	v.level.Render(v.fb, v.projection)
	if v.hud {
		v.fb.DrawText(2, 12, fmt.Sprintf("%d FPS", v.fb.FPS()), render.ColorWhite)
	}
	return v.fb.Present()
}

// buildLevel creates the demo scene: a spinning cube and sphere, an
// optional imported model and the player.
func buildLevel(cfg config.Config) (*scene.Level, error) {
	tex := checkerTexture(64, 8)
	if cfg.Texture != "" {
		t, err := render.LoadTexture(cfg.Texture)
		if err != nil {
			return nil, fmt.Errorf("load texture: %w", err)
		}
		tex = t
	}
	pipeline := cfg.Pipeline()

	level := scene.NewLevel()
	if _, err := level.Add(scene.NewPlayer(math3d.Point(0, 0, 0))); err != nil {
		return nil, err
	}

	cube := models.Cube()
	cubeModel, err := render.NewModel(cube.Positions, cube.Indices, cube.TexCoords, tex)
	if err != nil {
		return nil, fmt.Errorf("build cube: %w", err)
	}
	ce := scene.NewModelEntity(cubeModel.WithPipeline(pipeline))
	ce.SetPosition(math3d.Point(-5, 0, sceneDepth))
	ce.SetScale(math3d.Dir(2.5, 2.5, 2.5))
	ce.Spin = math3d.V4(0.3, 0.5, 0, 0)
	if _, err := level.Add(ce); err != nil {
		return nil, err
	}

	sphere, err := models.Sphere(sphereSteps, sphereSteps/2, 3)
	if err != nil {
		return nil, err
	}
	sphereModel, err := render.NewModel(sphere.Positions, sphere.Indices, sphere.TexCoords, tex)
	if err != nil {
		return nil, fmt.Errorf("build sphere: %w", err)
	}
	se := scene.NewModelEntity(sphereModel.WithPipeline(pipeline))
	se.SetPosition(math3d.Point(5, 0, sceneDepth))
	se.Spin = math3d.V4(0, math.Pi*0.4, 0, 0)
	if _, err := level.Add(se); err != nil {
		return nil, err
	}

	if cfg.Model != "" {
		me, err := loadModelEntity(cfg.Model, cfg.Texture != "", tex, pipeline)
		if err != nil {
			return nil, err
		}
		me.SetPosition(math3d.Point(0, 0, sceneDepth+modelSize))
		me.Spin = math3d.V4(0, 0.6, 0, 0)
		if _, err := level.Add(me); err != nil {
			return nil, err
		}
	}
	return level, nil
}

// loadModelEntity imports a GLB file scaled to modelSize. The embedded
// texture is used unless one was configured.
func loadModelEntity(path string, haveTexture bool, tex *render.Texture, pipeline render.Pipeline) (*scene.ModelEntity, error) {
	mesh, img, err := models.LoadGLB(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	mesh.Transform(mesh.FitTransform(modelSize))

	if !haveTexture && img != nil {
		tex = render.TextureFromImage(img)
	}
	m, err := render.NewModel(mesh.Positions, mesh.Indices, mesh.TexCoords, tex)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", mesh.Name, err)
	}
	return scene.NewModelEntity(m.WithPipeline(pipeline)), nil
}

// checkerTexture is the fallback texture: size×size pixels in cell-sized
// squares.
func checkerTexture(size, cell int) *render.Texture {
	light := color.RGBA{200, 200, 200, 255}
	dark := color.RGBA{90, 90, 110, 255}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			c := dark
			if (x/cell+y/cell)%2 == 0 {
				c = light
			}
			img.SetRGBA(x, y, c)
		}
	}
	return render.TextureFromImage(img)
}

package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrTextureSize is returned when a pixel buffer does not match the texture
// dimensions.
var ErrTextureSize = errors.New("texture pixel buffer does not match dimensions")

// Texture is an immutable RGBA8 image sampled with nearest-neighbour
// lookup and repeat wrapping. A Texture may be shared by any number of
// models and read concurrently.
type Texture struct {
	Width  int
	Height int
	Pix    []byte // Row-major, 4 bytes per texel in R,G,B,A order
}

// NewTexture wraps pix as a width x height texture. The slice is not copied.
func NewTexture(width, height int, pix []byte) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTextureSize, width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, got %d",
			ErrTextureSize, width, height, width*height*4, len(pix))
	}
	return &Texture{Width: width, Height: height, Pix: pix}, nil
}

// DefaultTexture returns a 1x1 opaque white texture.
func DefaultTexture() *Texture {
	return &Texture{Width: 1, Height: 1, Pix: []byte{255, 255, 255, 255}}
}

// TextureFromImage converts any image.Image to a texture.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &Texture{Width: b.Dx(), Height: b.Dy(), Pix: rgba.Pix}
}

// LoadTexture loads a texture from a PNG, JPEG, GIF, BMP, TIFF or WebP file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	tex := TextureFromImage(img)
	Logger().Debug("texture loaded", "path", path, "format", format,
		"width", tex.Width, "height", tex.Height)
	return tex, nil
}

// Sample returns the texel under (u, v). Coordinates wrap in both
// directions, so u=1.25 samples the same texel as u=0.25. The texture's
// alpha is discarded and the result is always opaque.
func (t *Texture) Sample(u, v float64) Color {
	x := wrap(int(math.Floor(u*float64(t.Width))), t.Width)
	y := wrap(int(math.Floor(v*float64(t.Height))), t.Height)
	i := (y*t.Width + x) * 4
	return Color{R: t.Pix[i], G: t.Pix[i+1], B: t.Pix[i+2], A: 255}
}

// wrap returns x modulo size in [0, size).
func wrap(x, size int) int {
	x %= size
	if x < 0 {
		x += size
	}
	return x
}

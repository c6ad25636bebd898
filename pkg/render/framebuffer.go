// Package render provides CPU software rasterization: a depth-tested pixel
// target, textures, and triangle models with near-plane clipping.
package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"time"
)

// DefaultDepthFloor is the smallest depth accepted by SetDepth.
const DefaultDepthFloor = 19.0

// bytesPerPixel for the B,G,R,A color buffer.
const bytesPerPixel = 4

// FrameStats counts pipeline work since the last Clear.
type FrameStats struct {
	Triangles  int // Triangles submitted to Model.Render
	Discarded  int // Fully behind the near plane
	Clipped    int // Partially behind the near plane
	Culled     int // Back-facing after projection
	Rasterized int // Triangles that reached the fill stage
	Pixels     int // Pixels that passed the depth test
}

// Framebuffer is the render target: a packed B,G,R,A color buffer (32-bit
// ARGB in little-endian memory order) and a depth buffer of the same size.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []byte    // Row-major, 4 bytes per pixel in B,G,R,A order
	Depth  []float64 // Row-major, interpolated view-space depth

	DepthFloor float64    // SetDepth rejects anything nearer than this
	Wireframe  bool       // Draw triangle edges instead of filling
	Stats      FrameStats // Reset by Clear

	surface    Surface
	now        func() time.Time
	lastFrame  time.Time
	frameTimer float64 // Milliseconds accumulated in the current window
	frames     int
	fps        int
}

// NewFramebuffer creates a cleared framebuffer that presents to surface.
// surface may be nil, in which case Present only updates the frame counter.
func NewFramebuffer(width, height int, surface Surface) *Framebuffer {
	fb := &Framebuffer{
		DepthFloor: DefaultDepthFloor,
		surface:    surface,
		now:        time.Now,
	}
	fb.Resize(width, height)
	fb.lastFrame = fb.now()
	return fb
}

// Resize reallocates both buffers and clears them.
func (fb *Framebuffer) Resize(width, height int) {
	fb.Width = width
	fb.Height = height
	fb.Pixels = make([]byte, width*height*bytesPerPixel)
	fb.Depth = make([]float64, width*height)
	fb.Clear()
}

// Clear zeroes the color buffer, resets every depth to the far sentinel and
// resets Stats.
func (fb *Framebuffer) Clear() {
	clear(fb.Pixels)

	// Use copy-doubling for faster clearing
	n := len(fb.Depth)
	if n > 0 {
		fb.Depth[0] = math.MaxFloat64
		for i := 1; i < n; i *= 2 {
			copy(fb.Depth[i:], fb.Depth[:i])
		}
	}

	fb.Stats = FrameStats{}
}

// SetDepth stores depth at (x, y) and reports true when it is not nearer
// than DepthFloor and strictly nearer than the stored value. Equal depths
// are rejected, so redrawing the same geometry writes nothing.
// Coordinates must be in range.
func (fb *Framebuffer) SetDepth(x, y int, depth float64) bool {
	if depth < fb.DepthFloor {
		return false
	}
	i := y*fb.Width + x
	if depth < fb.Depth[i] {
		fb.Depth[i] = depth
		return true
	}
	return false
}

// DepthAt returns the stored depth at (x, y).
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	return fb.Depth[y*fb.Width+x]
}

// SetPixel writes c at (x, y) without bounds checking. Alpha is stored as-is.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	i := (y*fb.Width + x) * bytesPerPixel
	fb.Pixels[i] = c.B
	fb.Pixels[i+1] = c.G
	fb.Pixels[i+2] = c.R
	fb.Pixels[i+3] = c.A
}

// SetPixelSafe writes c at (x, y), silently dropping writes outside the
// buffer.
func (fb *Framebuffer) SetPixelSafe(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.SetPixel(x, y, c)
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	i := (y*fb.Width + x) * bytesPerPixel
	return Color{R: fb.Pixels[i+2], G: fb.Pixels[i+1], B: fb.Pixels[i], A: fb.Pixels[i+3]}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Both endpoints are drawn and off-buffer pixels are dropped.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := -dy / 2
	if dx > dy {
		err = dx / 2
	}

	for {
		fb.SetPixelSafe(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := err
		if e2 > -dx {
			err -= dy
			x0 += sx
		}
		if e2 < dy {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Present hands the frame to the surface and updates the frame counter.
// FPS reports the number of frames presented during the last full second.
func (fb *Framebuffer) Present() error {
	now := fb.now()
	fb.frameTimer += float64(now.Sub(fb.lastFrame)) / float64(time.Millisecond)
	fb.lastFrame = now

	if fb.frameTimer > 1000 {
		fb.fps = fb.frames
		fb.frames = 0
		fb.frameTimer -= 1000
	}

	var err error
	if fb.surface != nil {
		err = fb.surface.Present(fb)
	}
	fb.frames++
	if err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// FPS returns the frames presented during the last completed one-second
// window.
func (fb *Framebuffer) FPS() int {
	return fb.fps
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.CopyRGBA(img.Pix)
	return img
}

// CopyRGBA writes the color buffer into dst in R,G,B,A order.
// dst must hold at least Width*Height*4 bytes.
func (fb *Framebuffer) CopyRGBA(dst []byte) {
	for i := 0; i+3 < len(fb.Pixels); i += bytesPerPixel {
		dst[i] = fb.Pixels[i+2]
		dst[i+1] = fb.Pixels[i+1]
		dst[i+2] = fb.Pixels[i]
		dst[i+3] = fb.Pixels[i+3]
	}
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return WritePNG(path, fb.ToImage())
}

// WritePNG encodes img to a PNG file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

package render

import (
	"image"
	"sync"
)

// Surface receives finished frames from Framebuffer.Present.
// Implementations must not retain fb after Present returns.
type Surface interface {
	Present(fb *Framebuffer) error
}

// SurfaceFunc adapts a function to the Surface interface.
type SurfaceFunc func(fb *Framebuffer) error

// Present calls f(fb).
func (f SurfaceFunc) Present(fb *Framebuffer) error {
	return f(fb)
}

// ImageSurface keeps a copy of the most recently presented frame.
type ImageSurface struct {
	mu     sync.Mutex
	img    *image.RGBA
	frames int
}

// Present copies the frame into the surface's image.
func (s *ImageSurface) Present(fb *Framebuffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.img == nil || s.img.Rect.Dx() != fb.Width || s.img.Rect.Dy() != fb.Height {
		s.img = image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	}
	fb.CopyRGBA(s.img.Pix)
	s.frames++
	return nil
}

// Image returns the last presented frame, or nil before the first Present.
// The returned image is shared; callers must not modify it.
func (s *ImageSurface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img
}

// Frames returns how many frames have been presented.
func (s *ImageSurface) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

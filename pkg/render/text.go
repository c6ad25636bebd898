package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ColorModel implements image/draw.Image.
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image/draw.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image/draw.Image.
func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.GetPixel(x, y)
}

// Set implements image/draw.Image. Depth is not touched.
func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.SetPixelSafe(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

// DrawText draws s with its baseline starting at (x, y) using a fixed 7x13
// bitmap face. It is meant for overlays and ignores the depth buffer.
func (fb *Framebuffer) DrawText(x, y int, s string, c Color) {
	d := font.Drawer{
		Dst:  fb,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

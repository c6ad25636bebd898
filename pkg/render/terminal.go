package render

import (
	"fmt"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalSurface presents frames as half-block cells: each terminal row
// shows two framebuffer rows, the upper one as the foreground of "▀" and
// the lower one as the background. The framebuffer should therefore be
// columns wide and 2*rows tall.
type TerminalSurface struct {
	Screen  uv.Screen
	Flush   func() error // Called after the cells are written; may be nil
	ShowFPS bool
}

// NewTerminalSurface presents to t and flushes with t.Display.
func NewTerminalSurface(t *uv.Terminal) *TerminalSurface {
	return &TerminalSurface{Screen: t, Flush: t.Display, ShowFPS: true}
}

// FramebufferSize returns the framebuffer dimensions that fill a terminal
// of the given size.
func FramebufferSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Present implements Surface.
func (s *TerminalSurface) Present(fb *Framebuffer) error {
	area := s.Screen.Bounds()
	s.draw(fb, area)
	if s.ShowFPS {
		s.label(area, fmt.Sprintf(" %d FPS ", fb.FPS()))
	}
	if s.Flush == nil {
		return nil
	}
	if err := s.Flush(); err != nil {
		return fmt.Errorf("flush terminal: %w", err)
	}
	return nil
}

func (s *TerminalSurface) draw(fb *Framebuffer, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(col, topY)),
					Bg: cellColor(fb.GetPixel(col, botY)),
				},
			}
			s.Screen.SetCell(col, row, cell)
		}
	}
}

// label writes text in the top-left corner.
func (s *TerminalSurface) label(area uv.Rectangle, text string) {
	col := area.Min.X
	for _, r := range text {
		if col >= area.Max.X {
			return
		}
		s.Screen.SetCell(col, area.Min.Y, &uv.Cell{
			Content: string(r),
			Width:   1,
			Style:   uv.Style{Fg: ColorGreen, Bg: ColorBlack},
		})
		col++
	}
}

// cellColor maps cleared (transparent) pixels to the terminal default.
func cellColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

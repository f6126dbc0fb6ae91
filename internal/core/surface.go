package core

import "math"

// Surface is the drawing boundary the simulation renders through.
// Coordinates are world units; each host decides how they map to output.
type Surface interface {
	// Clear fills the whole surface with the given background color.
	Clear(c Color)

	// FillCircle draws a filled circle centred on (x, y) with radius r.
	FillCircle(x, y, r float64, c Color)

	// DrawText writes text with its top-left corner at (x, y).
	DrawText(x, y float64, text string, c Color)
}

// Glyphs used when rasterising circles into cells.
const (
	FillGlyph  = '█'
	PointGlyph = '●'
)

// ScaledSurface implements Surface on top of a Screen by mapping a fixed
// world size onto whatever cell grid the terminal currently offers.
type ScaledSurface struct {
	screen *Screen
	worldW float64
	worldH float64

	// Last text line drawn since Clear, so lines below it keep their own row.
	hasText bool
	textY   float64
	textRow int
}

// NewScaledSurface wraps screen so that worldW x worldH covers all of it.
func NewScaledSurface(screen *Screen, worldW, worldH float64) *ScaledSurface {
	return &ScaledSurface{screen: screen, worldW: worldW, worldH: worldH}
}

// Screen returns the underlying cell buffer.
func (s *ScaledSurface) Screen() *Screen {
	return s.screen
}

// scale returns cells per world unit on each axis.
func (s *ScaledSurface) scale() (float64, float64) {
	return float64(s.screen.Width()) / s.worldW, float64(s.screen.Height()) / s.worldH
}

// ToCell converts a world position to the cell containing it.
func (s *ScaledSurface) ToCell(x, y float64) (int, int) {
	sx, sy := s.scale()
	return int(math.Floor(x * sx)), int(math.Floor(y * sy))
}

// Clear fills every cell with a blank of the given color.
func (s *ScaledSurface) Clear(c Color) {
	s.screen.Fill(Cell{Rune: ' ', Color: c})
	s.hasText = false
}

// FillCircle sets every cell whose centre lies inside the circle.
// Circles smaller than a cell still mark the cell holding their centre.
func (s *ScaledSurface) FillCircle(x, y, r float64, c Color) {
	sx, sy := s.scale()
	if sx <= 0 || sy <= 0 {
		return
	}

	x0, y0 := s.ToCell(x-r, y-r)
	x1, y1 := s.ToCell(x+r, y+r)

	drawn := false
	for cy := y0; cy <= y1; cy++ {
		wy := (float64(cy) + 0.5) / sy
		for cx := x0; cx <= x1; cx++ {
			wx := (float64(cx) + 0.5) / sx
			dx, dy := wx-x, wy-y
			if dx*dx+dy*dy <= r*r {
				s.screen.Set(cx, cy, FillGlyph, c)
				drawn = true
			}
		}
	}

	if !drawn {
		cx, cy := s.ToCell(x, y)
		s.screen.Set(cx, cy, PointGlyph, c)
	}
}

// DrawText writes text starting at the cell containing (x, y). Text placed
// below the previous line never lands on its row, even when both map to the
// same cell row on a short screen.
func (s *ScaledSurface) DrawText(x, y float64, text string, c Color) {
	cx, cy := s.ToCell(x, y)
	if s.hasText && y > s.textY && cy <= s.textRow {
		cy = s.textRow + 1
	}
	s.hasText, s.textY, s.textRow = true, y, cy
	s.screen.DrawText(cx, cy, text, c)
}

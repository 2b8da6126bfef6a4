package popover

import (
	"fmt"
	"image"
	"math"

	"gioui.org/f32"
)

// Rect is an axis aligned rectangle in floating point coordinates.
// Min is inclusive and Max exclusive, like image.Rectangle.
type Rect struct {
	Min, Max f32.Point
}

// MakeRect returns the canonical rectangle with the given corners.
func MakeRect(x0, y0, x1, y1 float32) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Min: f32.Pt(x0, y0), Max: f32.Pt(x1, y1)}
}

// FromImageRect converts an integer rectangle.
func FromImageRect(r image.Rectangle) Rect {
	return MakeRect(float32(r.Min.X), float32(r.Min.Y), float32(r.Max.X), float32(r.Max.Y))
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// Dx returns the width of r.
func (r Rect) Dx() float32 { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() float32 { return r.Max.Y - r.Min.Y }

// Size returns the width and height of r.
func (r Rect) Size() f32.Point { return f32.Pt(r.Dx(), r.Dy()) }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Add translates r by p.
func (r Rect) Add(p f32.Point) Rect { return Rect{Min: r.Min.Add(p), Max: r.Max.Add(p)} }

// Contains reports whether pt lies in r.
func (r Rect) Contains(pt f32.Point) bool {
	return pt.X >= r.Min.X && pt.X < r.Max.X && pt.Y >= r.Min.Y && pt.Y < r.Max.Y
}

// Round returns the smallest integer rectangle covering r.
func (r Rect) Round() image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.Min.X))), int(math.Floor(float64(r.Min.Y))),
		int(math.Ceil(float64(r.Max.X))), int(math.Ceil(float64(r.Max.Y))),
	)
}

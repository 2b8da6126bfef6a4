package popover

import (
	"gioui.org/f32"
	"github.com/esimov/popover/utils"
)

// Placement is the side of the anchor the bubble occupies.
type Placement uint8

const (
	Down Placement = iota
	Up
	Left
	Right
	// Auto resolves to Up or Down at show time, based on the space left below the anchor.
	Auto
)

func (p Placement) String() string {
	switch p {
	case Down:
		return "down"
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	case Auto:
		return "auto"
	}
	return "unknown"
}

// ParsePlacement returns the placement with the given name.
func ParsePlacement(s string) (Placement, bool) {
	for _, p := range []Placement{Down, Up, Left, Right, Auto} {
		if p.String() == s {
			return p, true
		}
	}
	return Down, false
}

// Align classifies the arrow position along the edge it is attached to.
type Align uint8

const (
	AlignCenter Align = iota
	// AlignStart means the arrow is flush with the left (Up, Down)
	// or the top (Left, Right) edge of the frame.
	AlignStart
	// AlignEnd means the arrow is flush with the right (Up, Down)
	// or the bottom (Left, Right) edge of the frame.
	AlignEnd
)

// Layout is the result of the placement computation.
type Layout struct {
	// Frame is the bubble rectangle, arrow included, in container coordinates.
	Frame Rect
	// Pivot is the normalized point scale animations are centered on.
	Pivot f32.Point
	// Arrow is the arrow tip in frame coordinates.
	Arrow f32.Point
	// ContentOffset is the content origin in frame coordinates.
	ContentOffset f32.Point
	Align         Align
}

// ResolvePlacement resolves the Auto mode into Up or Down. The source is the
// rectangle, in container coordinates, the popover is shown from; a zero sized
// rectangle is used for point anchors. Other modes are returned unchanged.
func ResolvePlacement(mode Placement, source Rect, content, container f32.Point, arrowHeight float32) Placement {
	if mode != Auto {
		return mode
	}
	if source.Min.Y+source.Dy()+arrowHeight+content.Y > container.Y {
		return Up
	}
	return Down
}

// AnchorPoint returns the point of the source rectangle the arrow touches.
func AnchorPoint(source Rect, p Placement) f32.Point {
	midX := source.Min.X + source.Dx()*0.5
	midY := source.Min.Y + source.Dy()*0.5

	switch p {
	case Up:
		return f32.Pt(midX, source.Min.Y)
	case Left:
		return f32.Pt(source.Min.X, midY)
	case Right:
		return f32.Pt(source.Max.X, midY)
	default:
		return f32.Pt(midX, source.Max.Y)
	}
}

// ComputeFrame computes the bubble rectangle for a content of the given size
// anchored at the given container point. The placement must be resolved.
func ComputeFrame(anchor, content, container f32.Point, p Placement, arrow f32.Point, sideEdge float32) Layout {
	var l Layout

	switch p {
	case Left, Right:
		y := clampAxis(anchor.Y-content.Y*0.5, content.Y, container.Y, sideEdge)
		x := anchor.X
		if p == Left {
			x = anchor.X - content.X - arrow.Y
		}
		l.Frame = MakeRect(x, y, x+content.X+arrow.Y, y+content.Y)
		l.Arrow = anchor.Sub(l.Frame.Min)
		if p == Right {
			l.ContentOffset = f32.Pt(arrow.Y, 0)
			l.Pivot = f32.Pt(0, ratio(l.Arrow.Y, l.Frame.Dy()))
		} else {
			l.Pivot = f32.Pt(1, ratio(l.Arrow.Y, l.Frame.Dy()))
		}
		l.Align = alignment(anchor.Y, l.Frame.Min.Y, l.Frame.Max.Y)
	default:
		x := clampAxis(anchor.X-content.X*0.5, content.X, container.X, sideEdge)
		y := anchor.Y
		if p == Up {
			y = anchor.Y - content.Y - arrow.Y
		}
		l.Frame = MakeRect(x, y, x+content.X, y+content.Y+arrow.Y)
		l.Arrow = anchor.Sub(l.Frame.Min)
		if p == Up {
			l.Pivot = f32.Pt(ratio(l.Arrow.X, l.Frame.Dx()), 1)
		} else {
			l.ContentOffset = f32.Pt(0, arrow.Y)
			l.Pivot = f32.Pt(ratio(l.Arrow.X, l.Frame.Dx()), 0)
		}
		l.Align = alignment(anchor.X, l.Frame.Min.X, l.Frame.Max.X)
	}

	if arrow == (f32.Point{}) {
		l.Pivot = f32.Pt(0.5, 0.5)
	}
	return l
}

// clampAxis shifts the start coordinate of a segment of the given length back
// inside the [0, limit] interval, keeping a margin from the edge it crossed.
// The margin is only applied when the segment fits inside the interval and
// never pushes the segment past the opposite edge.
func clampAxis(start, length, limit, margin float32) float32 {
	if length >= limit {
		margin = 0
	} else {
		margin = utils.Min(margin, limit-length)
	}
	if overflow := start + length - limit; overflow > 0 {
		return start - (overflow + margin)
	}
	if start < 0 {
		return start + utils.Abs(start) + margin
	}
	return start
}

func alignment(anchor, min, max float32) Align {
	switch anchor {
	case min:
		return AlignStart
	case max:
		return AlignEnd
	}
	return AlignCenter
}

// ratio returns v/length clamped to [0, 1], or 0 for a degenerate length.
func ratio(v, length float32) float32 {
	if length == 0 {
		return 0
	}
	return utils.Clamp(v/length, 0, 1)
}

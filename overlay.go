package popover

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
)

// OverlayKind is the rendering variant of the backdrop.
type OverlayKind uint8

const (
	// OverlayDim fills the container with a flat color.
	OverlayDim OverlayKind = iota
	// OverlayBlurred blurs the container content and tints it.
	OverlayBlurred
	// OverlayHighlight fills the container except a rounded hole around the source view.
	OverlayHighlight
)

func (k OverlayKind) String() string {
	switch k {
	case OverlayDim:
		return "dim"
	case OverlayBlurred:
		return "blur"
	case OverlayHighlight:
		return "highlight"
	}
	return "unknown"
}

// Overlay is the backdrop attached below the bubble. An invisible overlay
// still receives taps.
type Overlay struct {
	owner   *Popover
	kind    OverlayKind
	color   color.NRGBA
	blur    BlurStyle
	visible bool
	alpha   float32
	mask    Mask
}

func (*Overlay) layer() {}

// newOverlay creates the backdrop of a show. The hole is used only when
// highlight is set.
func newOverlay(owner *Popover, cfg Config, size f32.Point, hole Rect, highlight bool) *Overlay {
	o := &Overlay{
		owner:   owner,
		kind:    OverlayDim,
		color:   cfg.OverlayColor,
		blur:    cfg.OverlayBlur,
		visible: cfg.ShowOverlay,
		mask:    Mask{Outer: Rect{Max: size}},
	}
	switch {
	case highlight:
		o.kind = OverlayHighlight
		o.mask.Hole = hole
		o.mask.Radius = cfg.HighlightCornerRadius
	case cfg.OverlayBlur != BlurNone:
		o.kind = OverlayBlurred
	}
	return o
}

// Kind returns the rendering variant.
func (o *Overlay) Kind() OverlayKind { return o.kind }

// Color returns the dimming color.
func (o *Overlay) Color() color.NRGBA { return o.color }

// BlurStyle returns the blur style of an OverlayBlurred overlay.
func (o *Overlay) BlurStyle() BlurStyle { return o.blur }

// Visible reports whether the overlay is drawn at all.
func (o *Overlay) Visible() bool { return o.visible }

// Alpha returns the current opacity, between 0 and 1.
func (o *Overlay) Alpha() float32 { return o.alpha }

// Mask returns the area covered by the overlay.
func (o *Overlay) Mask() Mask { return o.mask }

// Tap delivers a tap on the backdrop. It dismisses the owning popover when
// dismissing on overlay taps is enabled and reports whether it did.
func (o *Overlay) Tap() bool {
	p := o.owner
	if p == nil || !p.cfg.DismissOnOverlayTap {
		return false
	}
	if p.state != Showing && p.state != Shown {
		return false
	}
	p.Dismiss()
	return true
}

// Mask is a rectangle with an optional rounded hole, filled with the even-odd rule.
type Mask struct {
	Outer  Rect
	Hole   Rect
	Radius float32
}

// HasHole reports whether the mask has a non empty hole.
func (m Mask) HasHole() bool {
	return !m.Hole.Empty()
}

// Contours returns the outer contour traced clockwise, followed by the hole
// traced counter-clockwise. Both the non-zero and the even-odd rule leave the
// hole empty.
func (m Mask) Contours() []Outline {
	c := []Outline{RoundedRect(m.Outer, 0)}
	if m.HasHole() {
		c = append(c, RoundedRect(m.Hole, m.Radius).Reverse())
	}
	return c
}

// Contains reports whether pt is covered by the mask.
func (m Mask) Contains(pt f32.Point) bool {
	n := 0
	for _, c := range m.Contours() {
		if c.Contains(pt) {
			n++
		}
	}
	return n%2 == 1
}

// Path records every contour of the mask as a single Gio path.
func (m Mask) Path(ops *op.Ops) clip.PathSpec {
	var path clip.Path
	path.Begin(ops)
	for _, c := range m.Contours() {
		c.Append(&path)
	}
	return path.End()
}

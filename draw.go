package popover

import (
	"image"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// Widget adapts a Gio widget of fixed dimensions into a View.
type Widget struct {
	Dims image.Point
	W    layout.Widget
}

// Size implements View.
func (w *Widget) Size() f32.Point {
	return f32.Pt(float32(w.Dims.X), float32(w.Dims.Y))
}

// Window is a Container drawing popovers on top of a Gio layout.
// The attached layers are drawn in attach order over the body widget.
type Window struct {
	*Stage
	timeline *Timeline
	clicks   map[Layer]*gesture.Click
}

// NewWindow creates a window container advancing the given timeline on every frame.
func NewWindow(tl *Timeline) *Window {
	return &Window{
		Stage:    NewStage(f32.Point{}),
		timeline: tl,
		clicks:   make(map[Layer]*gesture.Click),
	}
}

// Layout lays out the body, then the attached overlays and popovers.
func (w *Window) Layout(gtx C, body layout.Widget) D {
	max := gtx.Constraints.Max
	w.Resize(f32.Pt(float32(max.X), float32(max.Y)))

	w.processEvents(gtx)
	w.timeline.Advance(gtx.Now)

	dims := body(gtx)

	layers := w.Layers()
	for _, l := range layers {
		switch l := l.(type) {
		case *Overlay:
			w.drawOverlay(gtx, l)
		case *Popover:
			w.drawPopover(gtx, l)
		}
	}
	w.gc(layers)

	if len(layers) > 0 {
		key.InputOp{Tag: w, Keys: key.NameEscape}.Add(gtx.Ops)
		key.FocusOp{Tag: w}.Add(gtx.Ops)
	}
	if w.timeline.Active() {
		op.InvalidateOp{}.Add(gtx.Ops)
	}
	return dims
}

// Escape delivers an escape request to the top-most popover.
func (w *Window) Escape() bool {
	layers := w.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		if p, ok := layers[i].(*Popover); ok && p.PerformEscape() {
			return true
		}
	}
	return false
}

func (w *Window) processEvents(gtx C) {
	for _, e := range gtx.Events(w) {
		if e, ok := e.(key.Event); ok && e.Name == key.NameEscape && e.State == key.Press {
			w.Escape()
		}
	}
	for l, click := range w.clicks {
		for _, e := range click.Events(gtx.Queue) {
			if e.Type != gesture.TypeClick {
				continue
			}
			// Taps on the bubble are swallowed by its own click area.
			if o, ok := l.(*Overlay); ok {
				o.Tap()
			}
		}
	}
}

func (w *Window) click(l Layer) *gesture.Click {
	c, ok := w.clicks[l]
	if !ok {
		c = new(gesture.Click)
		w.clicks[l] = c
	}
	return c
}

// gc drops the click handlers of detached layers.
func (w *Window) gc(layers []Layer) {
	attached := make(map[Layer]bool, len(layers))
	for _, l := range layers {
		attached[l] = true
	}
	for l := range w.clicks {
		if !attached[l] {
			delete(w.clicks, l)
		}
	}
}

func (w *Window) drawOverlay(gtx C, o *Overlay) {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	w.click(o).Add(gtx.Ops)

	if !o.Visible() {
		return
	}
	// Gio cannot sample the frame being drawn, so blurred overlays
	// are approximated by their tint.
	col := o.Color()
	if o.Kind() == OverlayBlurred {
		col = o.BlurStyle().Tint()
	}
	col.A = uint8(float32(col.A)*o.Alpha() + 0.5)

	if o.Kind() == OverlayHighlight {
		paint.FillShape(gtx.Ops, col, clip.Outline{Path: o.Mask().Path(gtx.Ops)}.Op())
		return
	}
	paint.ColorOp{Color: col}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

func (w *Window) drawPopover(gtx C, p *Popover) {
	if p.Scale() < dismissScale {
		return
	}
	defer op.Affine(p.Transform()).Push(gtx.Ops).Pop()

	outline := p.Outline()
	defer clip.Outline{Path: outline.Path(gtx.Ops)}.Op().Push(gtx.Ops).Pop()
	w.click(p).Add(gtx.Ops)

	paint.ColorOp{Color: p.Config().BubbleColor}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	content, ok := p.Content().(*Widget)
	if !ok || content.W == nil {
		return
	}
	defer op.Affine(f32.Affine2D{}.Offset(p.Layout().ContentOffset)).Push(gtx.Ops).Pop()

	radius := int(p.Config().CornerRadius)
	defer clip.UniformRRect(image.Rectangle{Max: content.Dims}, radius).Push(gtx.Ops).Pop()

	cgtx := gtx
	cgtx.Constraints = layout.Exact(content.Dims)
	content.W(cgtx)
}

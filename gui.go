package popover

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/esimov/popover/utils"
)

var (
	defaultBkgColor  = color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf7, A: 0xff}
	defaultTextColor = color.NRGBA{R: 0x1c, G: 0x1c, B: 0x1e, A: 0xff}
)

// trigger is a button of the preview window showing a popover when clicked.
type trigger struct {
	label  string
	btn    widget.Clickable
	view   *Box
	dialog bool
	// pos is the button position as a fraction of the window size.
	pos f32.Point
}

// Preview is a Gio window with buttons spread over its area, each one
// showing a popover anchored to it. It is used to try out the options.
type Preview struct {
	cfg struct {
		window struct {
			w, h  float32
			title string
		}
		content image.Point
	}
	opts     []Option
	theme    *material.Theme
	timeline *Timeline
	window   *Window
	triggers []*trigger
	popover  *Popover
}

// NewPreview initializes the preview window with the popover options.
func NewPreview(w, h int, opts ...Option) *Preview {
	p := &Preview{
		opts:     opts,
		theme:    material.NewTheme(gofont.Collection()),
		timeline: NewTimeline(),
	}
	p.cfg.window.w, p.cfg.window.h = float32(w), float32(h)
	p.cfg.window.title = "Popover preview"
	p.cfg.content = image.Pt(220, 90)
	p.window = NewWindow(p.timeline)

	btnSize := f32.Pt(120, 44)
	for _, t := range []struct {
		label  string
		pos    f32.Point
		dialog bool
	}{
		{label: "Top left", pos: f32.Pt(0.1, 0.08)},
		{label: "Top right", pos: f32.Pt(0.9, 0.08)},
		{label: "Center", pos: f32.Pt(0.5, 0.5)},
		{label: "Bottom left", pos: f32.Pt(0.1, 0.92)},
		{label: "Bottom right", pos: f32.Pt(0.9, 0.92)},
		{label: "Dialog", pos: f32.Pt(0.5, 0.92), dialog: true},
	} {
		p.triggers = append(p.triggers, &trigger{
			label:  t.label,
			view:   &Box{W: btnSize.X, H: btnSize.Y},
			dialog: t.dialog,
			pos:    t.pos,
		})
	}
	return p
}

// Run opens the window and processes its events until it gets closed.
func (p *Preview) Run() error {
	w := app.NewWindow(app.Title(p.cfg.window.title), app.Size(
		unit.Dp(p.cfg.window.w),
		unit.Dp(p.cfg.window.h),
	))

	var ops op.Ops
	for e := range w.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			p.window.Layout(gtx, p.layout)
			e.Frame(gtx.Ops)
		case key.Event:
			if e.Name == key.NameEscape && e.State == key.Press {
				if !p.window.Escape() {
					w.Close()
				}
			}
		case system.DestroyEvent:
			return e.Err
		}
	}
	return nil
}

// layout draws the background and the trigger buttons and shows the
// popover of a clicked button.
func (p *Preview) layout(gtx C) D {
	paint.Fill(gtx.Ops, defaultBkgColor)

	size := gtx.Constraints.Max
	for _, t := range p.triggers {
		bs := t.view.Size()
		x := utils.Clamp(float32(size.X)*t.pos.X-bs.X*0.5, 0, float32(size.X)-bs.X)
		y := utils.Clamp(float32(size.Y)*t.pos.Y-bs.Y*0.5, 0, float32(size.Y)-bs.Y)
		frame := MakeRect(x, y, x+bs.X, y+bs.Y)
		p.window.Track(t.view, frame)

		if t.btn.Clicked() {
			p.show(t)
		}

		stack := op.Affine(f32.Affine2D{}.Offset(frame.Min)).Push(gtx.Ops)
		bgtx := gtx
		bgtx.Constraints = layout.Exact(image.Pt(int(bs.X), int(bs.Y)))
		material.Button(p.theme, &t.btn, t.label).Layout(bgtx)
		stack.Pop()
	}
	return D{Size: size}
}

func (p *Preview) show(t *trigger) {
	if p.popover != nil && p.popover.State() != Unattached {
		return
	}
	opts := append([]Option{PlacementMode(Auto)}, p.opts...)
	p.popover = New(p.timeline, opts...)

	msg := fmt.Sprintf("Shown from %q", t.label)
	content := &Widget{
		Dims: p.cfg.content,
		W: func(gtx C) D {
			return layout.Center.Layout(gtx, func(gtx C) D {
				lbl := material.Body1(p.theme, msg)
				lbl.Color = defaultTextColor
				return lbl.Layout(gtx)
			})
		},
	}
	var err error
	if t.dialog {
		err = p.popover.ShowAsDialog(content, p.window)
	} else {
		err = p.popover.ShowFromView(content, t.view, p.window)
	}
	if err != nil {
		log.Printf(utils.DecorateText("unable to show the popover: %v\n", utils.ErrorMessage), err)
	}
}

// Package tui shows popovers on a terminal screen, one unit being one cell.
package tui

import (
	"image/color"
	"strings"
	"time"

	"gioui.org/f32"
	"github.com/esimov/popover"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Text is a view made of lines of text.
type Text struct {
	Lines []string
	Style tcell.Style
}

// NewText splits s into lines.
func NewText(s string) *Text {
	return &Text{Lines: strings.Split(s, "\n"), Style: tcell.StyleDefault}
}

// Size implements popover.View. The width is the display width of the longest line.
func (t *Text) Size() f32.Point {
	w := 0
	for _, l := range t.Lines {
		if n := runewidth.StringWidth(l); n > w {
			w = n
		}
	}
	return f32.Pt(float32(w), float32(len(t.Lines)))
}

// Screen is a popover.Container drawing the attached layers on a tcell screen.
// Draw paints over what the application drew for the current frame, so it
// has to be called after the application drawing and before Show.
type Screen struct {
	*popover.Stage
	screen   tcell.Screen
	timeline *popover.Timeline
	pressed  bool
}

// New creates a container covering the whole terminal screen.
func New(s tcell.Screen, tl *popover.Timeline) *Screen {
	w, h := s.Size()
	return &Screen{
		Stage:    popover.NewStage(f32.Pt(float32(w), float32(h))),
		screen:   s,
		timeline: tl,
	}
}

// Animating reports whether some animation is running.
func (s *Screen) Animating() bool {
	return s.timeline.Active()
}

// Draw advances the animations to now and draws the attached layers.
func (s *Screen) Draw(now time.Time) {
	s.timeline.Advance(now)

	for _, l := range s.Layers() {
		switch l := l.(type) {
		case *popover.Overlay:
			s.drawOverlay(l)
		case *popover.Popover:
			s.drawPopover(l)
		}
	}
}

// HandleEvent routes escape keys and mouse presses to the attached layers and
// reports whether the event was consumed.
func (s *Screen) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		s.Resize(f32.Pt(float32(w), float32(h)))
	case *tcell.EventKey:
		if ev.Key() != tcell.KeyEscape {
			return false
		}
		layers := s.Layers()
		for i := len(layers) - 1; i >= 0; i-- {
			if p, ok := layers[i].(*popover.Popover); ok && p.PerformEscape() {
				return true
			}
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		press := down && !s.pressed
		s.pressed = down
		if !press {
			return false
		}
		x, y := ev.Position()
		return s.tap(center(x, y))
	}
	return false
}

// tap delivers a press to the top-most layer under pt.
func (s *Screen) tap(pt f32.Point) bool {
	layers := s.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		switch l := layers[i].(type) {
		case *popover.Popover:
			if l.HitTest(pt) {
				return true
			}
		case *popover.Overlay:
			return l.Tap()
		}
	}
	return false
}

func (s *Screen) drawOverlay(o *popover.Overlay) {
	if !o.Visible() || o.Alpha() <= 0 {
		return
	}
	col := o.Color()
	if o.Kind() == popover.OverlayBlurred {
		col = o.BlurStyle().Tint()
	}
	alpha := float32(col.A) / 255 * o.Alpha()
	mask := o.Mask()

	w, h := s.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if o.Kind() == popover.OverlayHighlight && !mask.Contains(center(x, y)) {
				continue
			}
			mainc, combc, style, _ := s.screen.GetContent(x, y)
			fg, bg, attr := style.Decompose()
			if fg != tcell.ColorDefault {
				fg = mix(fg, col, alpha)
			}
			style = tcell.StyleDefault.
				Foreground(fg).
				Background(mix(bg, col, alpha)).
				Attributes(attr)
			s.screen.SetContent(x, y, mainc, combc, style)
		}
	}
}

func (s *Screen) drawPopover(p *popover.Popover) {
	if p.Scale() <= 0 {
		return
	}
	bubble := p.Config().BubbleColor
	bg := tcell.NewRGBColor(int32(bubble.R), int32(bubble.G), int32(bubble.B))
	fill := tcell.StyleDefault.Background(bg)

	frame := p.Layout().Frame
	tr := p.Transform()
	min, max := tr.Transform(f32.Pt(0, 0)), tr.Transform(frame.Size())
	for y := int(min.Y) - 1; y <= int(max.Y)+1; y++ {
		for x := int(min.X) - 1; x <= int(max.X)+1; x++ {
			if p.HitTest(center(x, y)) {
				s.screen.SetContent(x, y, ' ', nil, fill)
			}
		}
	}

	text, ok := p.Content().(*Text)
	if !ok || p.State() != popover.Shown {
		return
	}
	fg, _, attr := text.Style.Decompose()
	style := fill.Foreground(fg).Attributes(attr)
	origin := frame.Min.Add(p.Layout().ContentOffset)
	for i, line := range text.Lines {
		x, y := int(origin.X+0.5), int(origin.Y+0.5)+i
		for _, r := range line {
			s.screen.SetContent(x, y, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}
}

// center returns the center of a cell.
func center(x, y int) f32.Point {
	return f32.Pt(float32(x)+0.5, float32(y)+0.5)
}

// mix blends the overlay color over a cell color. The default color is
// considered black.
func mix(c tcell.Color, over color.NRGBA, alpha float32) tcell.Color {
	var r, g, b int32
	if c != tcell.ColorDefault {
		r, g, b = c.RGB()
	}
	blend := func(a int32, o uint8) int32 {
		if a < 0 {
			a = 0
		}
		return int32(float32(a)*(1-alpha) + float32(o)*alpha + 0.5)
	}
	return tcell.NewRGBColor(blend(r, over.R), blend(g, over.G), blend(b, over.B))
}

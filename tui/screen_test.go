package tui

import (
	"image/color"
	"testing"
	"time"

	"gioui.org/f32"
	"github.com/esimov/popover"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func newScreen(t *testing.T) (tcell.SimulationScreen, *Screen) {
	sim := tcell.NewSimulationScreen("UTF-8")
	assert.NoError(t, sim.Init())
	sim.SetSize(40, 20)

	return sim, New(sim, popover.NewTimeline())
}

// show shows "hello" below a button placed at (18, 2) and runs the entrance animation.
func show(t *testing.T, s *Screen, opts ...popover.Option) *popover.Popover {
	btn := &popover.Box{W: 4, H: 1}
	s.Track(btn, popover.MakeRect(18, 2, 22, 3))

	opts = append([]popover.Option{
		popover.ArrowSize(f32.Pt(2, 1)),
		popover.CornerRadius(0),
		popover.SideEdge(1),
	}, opts...)
	p := popover.New(s.timeline, opts...)
	assert.NoError(t, p.ShowFromView(NewText("hello"), btn, s))

	now := time.Now()
	s.Draw(now)
	s.Draw(now.Add(time.Second))
	assert.Equal(t, popover.Shown, p.State())

	return p
}

func TestScreen_DrawBubble(t *testing.T) {
	assert := assert.New(t)
	sim, s := newScreen(t)

	show(t, s)
	assert.False(s.Animating())

	mainc, _, style, _ := sim.GetContent(18, 4)
	_, bg, _ := style.Decompose()
	assert.Equal('h', mainc)
	assert.Equal(tcell.NewRGBColor(255, 255, 255), bg)

	mainc, _, _, _ = sim.GetContent(22, 4)
	assert.Equal('o', mainc)
}

func TestScreen_OverlayTint(t *testing.T) {
	assert := assert.New(t)
	sim, s := newScreen(t)

	show(t, s, popover.OverlayColor(color.NRGBA{R: 255, A: 255}))

	_, _, style, _ := sim.GetContent(0, 0)
	_, bg, _ := style.Decompose()
	assert.Equal(tcell.NewRGBColor(255, 0, 0), bg)
}

func TestScreen_Escape(t *testing.T) {
	assert := assert.New(t)
	_, s := newScreen(t)

	p := show(t, s)
	assert.False(s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(s.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.Equal(popover.Dismissing, p.State())

	now := time.Now()
	s.Draw(now)
	s.Draw(now.Add(time.Second))
	assert.Equal(popover.Unattached, p.State())
	assert.Empty(s.Layers())
	assert.False(s.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestScreen_MouseTap(t *testing.T) {
	assert := assert.New(t)
	_, s := newScreen(t)

	p := show(t, s)

	// Presses on the bubble are swallowed.
	assert.True(s.HandleEvent(tcell.NewEventMouse(18, 4, tcell.Button1, tcell.ModNone)))
	assert.Equal(popover.Shown, p.State())

	// Holding the button down is not a new press.
	assert.False(s.HandleEvent(tcell.NewEventMouse(1, 18, tcell.Button1, tcell.ModNone)))
	assert.False(s.HandleEvent(tcell.NewEventMouse(1, 18, tcell.ButtonNone, tcell.ModNone)))

	assert.True(s.HandleEvent(tcell.NewEventMouse(1, 18, tcell.Button1, tcell.ModNone)))
	assert.Equal(popover.Dismissing, p.State())
}

func TestScreen_NoTapDismiss(t *testing.T) {
	assert := assert.New(t)
	_, s := newScreen(t)

	p := show(t, s, popover.DismissOnOverlayTap(false))
	assert.False(s.HandleEvent(tcell.NewEventMouse(1, 18, tcell.Button1, tcell.ModNone)))
	assert.Equal(popover.Shown, p.State())
}

func TestScreen_Resize(t *testing.T) {
	assert := assert.New(t)
	sim, s := newScreen(t)

	sim.SetSize(60, 30)
	s.HandleEvent(tcell.NewEventResize(60, 30))
	assert.Equal(f32.Pt(60, 30), s.Size())
}

func TestText_Size(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(f32.Pt(5, 1), NewText("hello").Size())
	assert.Equal(f32.Pt(4, 2), NewText("ab\n日本").Size())
}

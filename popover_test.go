package popover

import (
	"testing"
	"time"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	events []string
}

func (r *recorder) watch(p *Popover) {
	p.OnWillShow(func() { r.events = append(r.events, "willShow") })
	p.OnDidShow(func() { r.events = append(r.events, "didShow") })
	p.OnWillDismiss(func() { r.events = append(r.events, "willDismiss") })
	p.OnDidDismiss(func() { r.events = append(r.events, "didDismiss") })
}

func newStage() (*Stage, *Timeline) {
	return NewStage(f32.Pt(400, 300)), NewTimeline()
}

func TestPopover_Lifecycle(t *testing.T) {
	assert := assert.New(t)

	stage, tl := newStage()
	p := New(tl)
	var rec recorder
	rec.watch(p)

	content := &Box{W: 100, H: 50}
	assert.Equal(Unattached, p.State())
	assert.NoError(p.ShowAtPoint(content, f32.Pt(200, 100), stage))
	assert.Equal(Showing, p.State())
	assert.Equal(float32(0), p.Scale())
	assert.Equal([]string{"willShow"}, rec.events)
	assert.Equal([]Layer{p.Overlay(), p}, stage.Layers())
	assert.Same(content, p.Content())

	now := time.Now()
	tl.Advance(now)
	tl.Advance(now.Add(300 * time.Millisecond))
	assert.Equal(Showing, p.State())
	assert.Greater(p.Overlay().Alpha(), float32(0))

	tl.Advance(now.Add(time.Second))
	assert.Equal(Shown, p.State())
	assert.Equal(float32(1), p.Scale())
	assert.Equal(float32(1), p.Overlay().Alpha())
	assert.Equal([]string{"willShow", "didShow"}, rec.events)

	p.Dismiss()
	assert.Equal(Dismissing, p.State())
	assert.Equal([]string{"willShow", "didShow", "willDismiss"}, rec.events)
	// Layers stay attached during the exit animation.
	assert.Len(stage.Layers(), 2)

	now = now.Add(2 * time.Second)
	tl.Advance(now)
	tl.Advance(now.Add(150 * time.Millisecond))
	assert.Less(p.Scale(), float32(1))
	assert.Less(p.Overlay().Alpha(), float32(1))

	tl.Advance(now.Add(time.Second))
	assert.Equal(Unattached, p.State())
	assert.Equal([]string{"willShow", "didShow", "willDismiss", "didDismiss"}, rec.events)
	assert.Empty(stage.Layers())
	assert.Nil(p.Content())
	assert.False(tl.Active())
}

func TestPopover_Handlers(t *testing.T) {
	assert := assert.New(t)

	stage, _ := newStage()
	var shown, dismissed int
	p := NewWithHandlers(nil, func() { shown++ }, func() { dismissed++ })

	assert.NoError(p.ShowAtPoint(&Box{W: 10, H: 10}, f32.Pt(50, 50), stage))
	assert.Equal(Shown, p.State())
	assert.Equal(1, shown)

	p.Dismiss()
	assert.Equal(Unattached, p.State())
	assert.Equal(1, dismissed)

	// A popover can be shown again once dismissed.
	assert.NoError(p.ShowAtPoint(&Box{W: 10, H: 10}, f32.Pt(50, 50), stage))
	assert.Equal(2, shown)
}

func TestPopover_Errors(t *testing.T) {
	assert := assert.New(t)

	stage, tl := newStage()
	p := New(tl)
	content := &Box{W: 100, H: 50}

	assert.ErrorIs(p.ShowAtPoint(content, f32.Pt(10, 10), nil), ErrNoContainer)
	assert.ErrorIs(p.ShowFromView(content, &Box{}, nil), ErrNoContainer)
	assert.ErrorIs(p.ShowAsDialog(content, nil), ErrNoContainer)
	assert.ErrorIs(p.ShowFromView(content, &Box{W: 1, H: 1}, stage), ErrUnknownView)
	assert.Equal(Unattached, p.State())
	assert.Empty(stage.Layers())

	// Failed shows leave the options editable.
	assert.NoError(p.SetOptions(CornerRadius(2)))

	assert.NoError(p.ShowAtPoint(content, f32.Pt(10, 10), stage))
	assert.ErrorIs(p.ShowAtPoint(content, f32.Pt(10, 10), stage), ErrAlreadyShown)
	assert.ErrorIs(p.SetOptions(CornerRadius(4)), ErrConfigFrozen)
	assert.Equal(float32(2), p.Config().CornerRadius)
}

func TestPopover_DismissWhileShowing(t *testing.T) {
	assert := assert.New(t)

	stage, tl := newStage()
	p := New(tl)
	var rec recorder
	rec.watch(p)

	assert.NoError(p.ShowAtPoint(&Box{W: 100, H: 50}, f32.Pt(200, 100), stage))
	now := time.Now()
	tl.Advance(now)
	tl.Advance(now.Add(100 * time.Millisecond))
	scale := p.Scale()

	p.Dismiss()
	assert.Equal(Dismissing, p.State())
	assert.Equal(scale, p.Scale())

	// A second dismiss does nothing.
	p.Dismiss()
	assert.False(p.PerformEscape())

	tl.Advance(now.Add(200 * time.Millisecond))
	tl.Advance(now.Add(2 * time.Second))
	assert.Equal(Unattached, p.State())
	assert.Equal([]string{"willShow", "willDismiss", "didDismiss"}, rec.events)
}

func TestPopover_DismissFromWillShow(t *testing.T) {
	assert := assert.New(t)

	stage, _ := newStage()
	p := New(nil)
	var rec recorder
	rec.watch(p)
	p.OnWillShow(func() {
		rec.events = append(rec.events, "willShow")
		p.Dismiss()
	})

	assert.NoError(p.ShowAtPoint(&Box{W: 10, H: 10}, f32.Pt(50, 50), stage))
	assert.Equal(Unattached, p.State())
	assert.Equal([]string{"willShow", "willDismiss", "didDismiss"}, rec.events)
	assert.Empty(stage.Layers())
}

func TestPopover_DismissUnattached(t *testing.T) {
	p := New(nil)
	var rec recorder
	rec.watch(p)

	p.Dismiss()
	assert.False(t, p.PerformEscape())
	assert.Equal(t, Unattached, p.State())
	assert.Empty(t, rec.events)
}

func TestPopover_ShowFromView(t *testing.T) {
	assert := assert.New(t)

	stage, _ := newStage()
	source := &Box{W: 40, H: 20}
	stage.Track(source, MakeRect(180, 40, 220, 60))

	p := New(nil, HighlightSourceView(true), HighlightCornerRadius(4))
	assert.NoError(p.ShowFromView(&Box{W: 100, H: 50}, source, stage))

	l := p.Layout()
	assert.Equal(Down, p.Placement())
	assert.Equal(MakeRect(150, 60, 250, 120), l.Frame)
	assert.Equal(f32.Pt(50, 0), l.Arrow)

	o := p.Overlay()
	assert.Equal(OverlayHighlight, o.Kind())
	assert.Equal(MakeRect(180, 40, 220, 60), o.Mask().Hole)
	assert.Equal(float32(4), o.Mask().Radius)
	assert.False(o.Mask().Contains(f32.Pt(200, 50)))
	assert.True(o.Mask().Contains(f32.Pt(10, 10)))
}

func TestPopover_HighlightFromPoint(t *testing.T) {
	stage, _ := newStage()
	p := New(nil, HighlightSourceView(true))
	assert.NoError(t, p.ShowAtPoint(&Box{W: 100, H: 50}, f32.Pt(200, 100), stage))
	assert.Equal(t, OverlayDim, p.Overlay().Kind())
}

func TestPopover_AutoPlacement(t *testing.T) {
	assert := assert.New(t)

	stage, _ := newStage()
	p := New(nil, PlacementMode(Auto))
	assert.NoError(p.ShowAtPoint(&Box{W: 100, H: 50}, f32.Pt(200, 280), stage))
	assert.Equal(Up, p.Placement())
	assert.Equal(float32(1), p.Layout().Pivot.Y)
	p.Dismiss()

	// Auto is resolved again on every show.
	assert.NoError(p.ShowAtPoint(&Box{W: 100, H: 50}, f32.Pt(200, 20), stage))
	assert.Equal(Down, p.Placement())
	assert.Equal(Auto, p.Config().Placement)
}

func TestPopover_Dialog(t *testing.T) {
	assert := assert.New(t)

	stage, _ := newStage()
	p := New(nil, PlacementMode(Left))
	assert.NoError(p.ShowAsDialog(&Box{W: 100, H: 50}, stage))

	l := p.Layout()
	assert.Equal(MakeRect(150, 125, 250, 175), l.Frame)
	assert.Equal(f32.Pt(0.5, 0.5), l.Pivot)
	assert.Equal(f32.Point{}, l.ContentOffset)
	assert.Equal(4, arcs(p.Outline()))
	assert.Equal(Left, p.Config().Placement)
	assert.Equal(f32.Pt(16, 10), p.Config().ArrowSize)
}

func TestPopover_OverlayTap(t *testing.T) {
	assert := assert.New(t)

	stage, _ := newStage()
	p := New(nil)
	assert.NoError(p.ShowAtPoint(&Box{W: 100, H: 50}, f32.Pt(200, 100), stage))
	o := p.Overlay()
	assert.True(o.Visible())
	assert.True(o.Tap())
	assert.Equal(Unattached, p.State())
	assert.False(o.Tap())

	p = New(nil, DismissOnOverlayTap(false))
	assert.NoError(p.ShowAtPoint(&Box{W: 100, H: 50}, f32.Pt(200, 100), stage))
	assert.False(p.Overlay().Tap())
	assert.Equal(Shown, p.State())
}

func TestPopover_InvisibleOverlay(t *testing.T) {
	assert := assert.New(t)

	stage, _ := newStage()
	p := New(nil, ShowOverlay(false))
	assert.NoError(p.ShowAtPoint(&Box{W: 100, H: 50}, f32.Pt(200, 100), stage))
	assert.False(p.Overlay().Visible())
	assert.True(p.Overlay().Tap())

	p = New(nil, ShowOverlay(false), DismissOnOverlayTap(false))
	assert.NoError(p.ShowAtPoint(&Box{W: 100, H: 50}, f32.Pt(200, 100), stage))
	assert.Nil(p.Overlay())
	assert.Equal([]Layer{p}, stage.Layers())
}

func TestPopover_BlurOverlay(t *testing.T) {
	stage, _ := newStage()
	p := New(nil, OverlayBlur(BlurLight))
	assert.NoError(t, p.ShowAtPoint(&Box{W: 100, H: 50}, f32.Pt(200, 100), stage))
	assert.Equal(t, OverlayBlurred, p.Overlay().Kind())
	assert.Equal(t, BlurLight, p.Overlay().BlurStyle())
}

func TestPopover_HitTest(t *testing.T) {
	assert := assert.New(t)

	stage, tl := newStage()
	p := New(tl)
	assert.False(p.HitTest(f32.Pt(200, 130)))

	assert.NoError(p.ShowAtPoint(&Box{W: 100, H: 50}, f32.Pt(200, 100), stage))
	// The scale is zero before the first frame.
	assert.False(p.HitTest(f32.Pt(200, 130)))

	now := time.Now()
	tl.Advance(now)
	tl.Advance(now.Add(time.Second))
	assert.Equal(Shown, p.State())

	assert.Equal(MakeRect(150, 100, 250, 160), p.Layout().Frame)
	assert.True(p.HitTest(f32.Pt(200, 130)))
	assert.True(p.HitTest(f32.Pt(200, 104)))
	assert.False(p.HitTest(f32.Pt(160, 104)))
	assert.False(p.HitTest(f32.Pt(300, 130)))

	tr := p.Transform()
	assert.Equal(f32.Pt(150, 100), tr.Transform(f32.Point{}))
}

func TestPopover_TransformPivot(t *testing.T) {
	assert := assert.New(t)

	stage, tl := newStage()
	p := New(tl)
	assert.NoError(p.ShowAtPoint(&Box{W: 100, H: 50}, f32.Pt(200, 100), stage))

	now := time.Now()
	tl.Advance(now)
	tl.Advance(now.Add(50 * time.Millisecond))

	// The arrow tip stays in place while the bubble scales.
	tip := p.Transform().Transform(p.Layout().Arrow)
	assert.InDelta(200, tip.X, 1e-3)
	assert.InDelta(100, tip.Y, 1e-3)
}

package popover

import (
	"errors"

	"gioui.org/f32"
)

// State is the lifecycle state of a popover.
type State uint8

const (
	Unattached State = iota
	Showing
	Shown
	Dismissing
)

func (s State) String() string {
	switch s {
	case Unattached:
		return "unattached"
	case Showing:
		return "showing"
	case Shown:
		return "shown"
	case Dismissing:
		return "dismissing"
	}
	return "unknown"
}

var (
	// ErrNoContainer is returned when a show is requested without a container.
	ErrNoContainer = errors.New("popover: no container to attach to")
	// ErrAlreadyShown is returned when showing a popover which is not unattached.
	ErrAlreadyShown = errors.New("popover: already shown")
	// ErrUnknownView is returned when the source view is not tracked by the container.
	ErrUnknownView = errors.New("popover: source view not found in container")
	// ErrConfigFrozen is returned when changing the options after the first show.
	ErrConfigFrozen = errors.New("popover: options cannot change after the first show")
)

// dismissScale is the scale the exit animation shrinks to. A zero scale
// would make the transform non invertible.
const dismissScale = 0.0001

// Popover is a bubble with an arrow pointing at an anchor, shown over a
// backdrop and animated in and out of its container.
// A Popover is driven from a single goroutine, usually the host UI loop.
type Popover struct {
	cfg    Config
	anim   Animator
	frozen bool

	state     State
	content   View
	container Container
	overlay   *Overlay
	placement Placement
	layout    Layout
	outline   Outline
	scale     float32
	cancels   []Cancel

	onWillShow    func()
	onDidShow     func()
	onWillDismiss func()
	onDidDismiss  func()
}

func (*Popover) layer() {}

// New creates a popover driven by the given animator. A nil animator
// completes every animation as soon as it is scheduled.
func New(anim Animator, opts ...Option) *Popover {
	if anim == nil {
		anim = immediate{}
	}
	return &Popover{
		cfg:   NewConfig(opts...),
		anim:  anim,
		scale: 1,
	}
}

// NewWithHandlers creates a popover and registers its didShow and didDismiss callbacks.
func NewWithHandlers(anim Animator, didShow, didDismiss func(), opts ...Option) *Popover {
	p := New(anim, opts...)
	p.onDidShow = didShow
	p.onDidDismiss = didDismiss
	return p
}

// OnWillShow registers the callback fired before the entrance animation starts.
func (p *Popover) OnWillShow(fn func()) { p.onWillShow = fn }

// OnDidShow registers the callback fired once the entrance animation completed.
func (p *Popover) OnDidShow(fn func()) { p.onDidShow = fn }

// OnWillDismiss registers the callback fired before the exit animation starts.
func (p *Popover) OnWillDismiss(fn func()) { p.onWillDismiss = fn }

// OnDidDismiss registers the callback fired once the popover has been detached.
func (p *Popover) OnDidDismiss(fn func()) { p.onDidDismiss = fn }

// SetOptions applies options on top of the current configuration.
func (p *Popover) SetOptions(opts ...Option) error {
	if p.frozen {
		return ErrConfigFrozen
	}
	p.cfg.Apply(opts...)
	return nil
}

// Config returns the current configuration.
func (p *Popover) Config() Config { return p.cfg }

// ShowAtPoint shows the content with the arrow pointing at a container point.
func (p *Popover) ShowAtPoint(content View, point f32.Point, c Container) error {
	return p.show(content, c, Rect{Min: point, Max: point}, false, false)
}

// ShowFromView shows the content with the arrow pointing at a view tracked by the container.
func (p *Popover) ShowFromView(content View, source View, c Container) error {
	if c == nil {
		return ErrNoContainer
	}
	frame, ok := c.FrameOf(source)
	if !ok {
		return ErrUnknownView
	}
	return p.show(content, c, frame, true, false)
}

// ShowAsDialog shows the content without arrow, centered in the container.
func (p *Popover) ShowAsDialog(content View, c Container) error {
	return p.show(content, c, Rect{}, false, true)
}

func (p *Popover) show(content View, c Container, source Rect, fromView, dialog bool) error {
	if c == nil {
		return ErrNoContainer
	}
	if p.state != Unattached {
		return ErrAlreadyShown
	}
	p.frozen = true

	cfg := p.cfg
	size := content.Size()
	bounds := c.Size()
	arrow := cfg.ArrowSize

	placement := ResolvePlacement(cfg.Placement, source, size, bounds, arrow.Y)
	anchor := AnchorPoint(source, placement)
	if dialog {
		arrow = f32.Point{}
		placement = Down
		anchor = f32.Pt(bounds.X*0.5, (bounds.Y-size.Y)*0.5)
	}

	p.overlay = nil
	if cfg.ShowOverlay || cfg.DismissOnOverlayTap {
		p.overlay = newOverlay(p, cfg, bounds, source, fromView && cfg.HighlightSourceView)
		c.Attach(p.overlay)
	}
	p.content = content
	p.container = c
	c.Attach(p)

	p.placement = placement
	p.layout = ComputeFrame(anchor, size, bounds, placement, arrow, cfg.SideEdge)
	p.outline = BuildOutline(p.layout.Frame.Size(), p.layout.Arrow, placement, arrow, cfg.CornerRadius, p.layout.Align)
	p.scale = 0
	p.state = Showing

	fire(p.onWillShow)
	// The callback may have dismissed the popover already.
	if p.state != Showing {
		return nil
	}

	if o := p.overlay; o != nil {
		p.cancels = append(p.cancels, p.anim.Animate(Animation{
			Duration: cfg.AnimationIn / 3,
			Curve:    Linear{},
			Step:     func(v float32) { o.alpha = v },
		}))
	}
	p.cancels = append(p.cancels, p.anim.Animate(Animation{
		Duration: cfg.AnimationIn,
		Curve:    Spring{Damping: cfg.SpringDamping, Velocity: cfg.SpringVelocity},
		Step:     func(v float32) { p.scale = v },
		Done:     p.didShow,
	}))
	return nil
}

func (p *Popover) didShow() {
	p.cancels = nil
	p.scale = 1
	if p.overlay != nil {
		p.overlay.alpha = 1
	}
	p.state = Shown
	fire(p.onDidShow)
}

// Dismiss starts the exit animation. A dismiss during the entrance animation
// cancels it and shrinks the bubble from its current scale. Dismissing an
// unattached or already dismissing popover does nothing.
func (p *Popover) Dismiss() {
	if p.state != Showing && p.state != Shown {
		return
	}
	for _, cancel := range p.cancels {
		cancel()
	}
	p.cancels = nil
	p.state = Dismissing

	fire(p.onWillDismiss)

	fromScale := p.scale
	var fromAlpha float32
	if p.overlay != nil {
		fromAlpha = p.overlay.alpha
	}
	o := p.overlay
	p.cancels = append(p.cancels, p.anim.Animate(Animation{
		Duration: p.cfg.AnimationOut,
		Curve:    EaseInOut{},
		Step: func(v float32) {
			p.scale = fromScale + (dismissScale-fromScale)*v
			if o != nil {
				o.alpha = fromAlpha * (1 - v)
			}
		},
		Done: p.didDismiss,
	}))
}

// PerformEscape handles an accessibility escape request like Dismiss and
// reports whether the popover was dismissed.
func (p *Popover) PerformEscape() bool {
	if p.state != Showing && p.state != Shown {
		return false
	}
	p.Dismiss()
	return true
}

func (p *Popover) didDismiss() {
	c := p.container
	if p.overlay != nil {
		p.overlay.alpha = 0
		c.Detach(p.overlay)
	}
	c.Detach(p)

	p.cancels = nil
	p.content = nil
	p.container = nil
	p.scale = 1
	p.state = Unattached
	fire(p.onDidDismiss)
}

// State returns the lifecycle state.
func (p *Popover) State() State { return p.state }

// Layout returns the layout of the current or last show.
func (p *Popover) Layout() Layout { return p.layout }

// Outline returns the bubble outline in frame coordinates.
func (p *Popover) Outline() Outline { return p.outline }

// Scale returns the current animated scale of the bubble.
func (p *Popover) Scale() float32 { return p.scale }

// Content returns the shown content, nil once dismissed.
func (p *Popover) Content() View { return p.content }

// Overlay returns the backdrop of the current show, if any.
func (p *Popover) Overlay() *Overlay { return p.overlay }

// Placement returns the resolved placement of the current or last show.
func (p *Popover) Placement() Placement { return p.placement }

// Transform maps frame coordinates to container coordinates: the bubble is
// scaled about its pivot and moved to the frame origin.
func (p *Popover) Transform() f32.Affine2D {
	f := p.layout.Frame
	pivot := f32.Pt(f.Dx()*p.layout.Pivot.X, f.Dy()*p.layout.Pivot.Y)
	return f32.Affine2D{}.
		Scale(pivot, f32.Pt(p.scale, p.scale)).
		Offset(f.Min)
}

// HitTest reports whether a container point falls inside the bubble.
func (p *Popover) HitTest(pt f32.Point) bool {
	if p.state == Unattached || p.scale < dismissScale {
		return false
	}
	local := p.Transform().Invert().Transform(pt)
	return p.outline.Contains(local)
}

func fire(fn func()) {
	if fn != nil {
		fn()
	}
}

// immediate completes animations as soon as they are scheduled.
type immediate struct{}

func (immediate) Animate(a Animation) Cancel {
	if a.Step != nil {
		a.Step(1)
	}
	if a.Done != nil {
		a.Done()
	}
	return func() {}
}

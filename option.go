package popover

import (
	"image/color"
	"time"

	"gioui.org/f32"
	"github.com/esimov/popover/utils"
)

// Option is a single configuration directive. The set of directives is closed:
// only the types declared in this package implement it.
type Option interface {
	option()
}

type (
	// ArrowSize sets the width and height of the triangular pointer.
	// A zero size disables the arrow.
	ArrowSize f32.Point
	// AnimationIn sets the duration of the entrance animation.
	AnimationIn time.Duration
	// AnimationOut sets the duration of the exit animation.
	AnimationOut time.Duration
	// CornerRadius sets the radius of the bubble corners.
	CornerRadius float32
	// SideEdge sets the minimum margin kept from the container's edges.
	SideEdge float32
	// OverlayColor sets the dimming color of the backdrop.
	OverlayColor color.NRGBA
	// OverlayBlur blurs the backdrop instead of dimming it.
	OverlayBlur BlurStyle
	// PlacementMode sets on which side of the anchor the bubble is shown.
	PlacementMode Placement
	// BubbleColor sets the fill color of the bubble.
	BubbleColor color.NRGBA
	// DismissOnOverlayTap dismisses the popover when the backdrop is tapped.
	DismissOnOverlayTap bool
	// ShowOverlay toggles the visible backdrop.
	ShowOverlay bool
	// HighlightSourceView cuts a hole around the source view in the backdrop.
	HighlightSourceView bool
	// HighlightCornerRadius sets the corner radius of the highlight hole.
	HighlightCornerRadius float32
	// SpringDamping sets the damping ratio of the entrance spring.
	SpringDamping float32
	// SpringVelocity sets the initial velocity of the entrance spring.
	SpringVelocity float32
)

func (ArrowSize) option()             {}
func (AnimationIn) option()           {}
func (AnimationOut) option()          {}
func (CornerRadius) option()          {}
func (SideEdge) option()              {}
func (OverlayColor) option()          {}
func (OverlayBlur) option()           {}
func (PlacementMode) option()         {}
func (BubbleColor) option()           {}
func (DismissOnOverlayTap) option()   {}
func (ShowOverlay) option()           {}
func (HighlightSourceView) option()   {}
func (HighlightCornerRadius) option() {}
func (SpringDamping) option()         {}
func (SpringVelocity) option()        {}

// Config holds the resolved popover options.
type Config struct {
	ArrowSize             f32.Point
	AnimationIn           time.Duration
	AnimationOut          time.Duration
	CornerRadius          float32
	SideEdge              float32
	Placement             Placement
	OverlayColor          color.NRGBA
	OverlayBlur           BlurStyle
	BubbleColor           color.NRGBA
	DismissOnOverlayTap   bool
	ShowOverlay           bool
	HighlightSourceView   bool
	HighlightCornerRadius float32
	SpringDamping         float32
	SpringVelocity        float32
}

// DefaultConfig returns the configuration used when no option is provided.
func DefaultConfig() Config {
	return Config{
		ArrowSize:           f32.Pt(16, 10),
		AnimationIn:         600 * time.Millisecond,
		AnimationOut:        300 * time.Millisecond,
		CornerRadius:        6,
		SideEdge:            20,
		Placement:           Down,
		OverlayColor:        color.NRGBA{A: 0x33},
		BubbleColor:         color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		DismissOnOverlayTap: true,
		ShowOverlay:         true,
		SpringDamping:       0.7,
		SpringVelocity:      3,
	}
}

// NewConfig applies the options in order on top of the default configuration.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	return cfg
}

// Apply applies the options in order. Later options win over earlier ones
// targeting the same field. Negative sizes are clamped to zero.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		switch o := opt.(type) {
		case ArrowSize:
			c.ArrowSize = f32.Pt(utils.Max(o.X, 0), utils.Max(o.Y, 0))
		case AnimationIn:
			c.AnimationIn = time.Duration(o)
		case AnimationOut:
			c.AnimationOut = time.Duration(o)
		case CornerRadius:
			c.CornerRadius = utils.Max(float32(o), 0)
		case SideEdge:
			c.SideEdge = utils.Max(float32(o), 0)
		case OverlayColor:
			c.OverlayColor = color.NRGBA(o)
		case OverlayBlur:
			c.OverlayBlur = BlurStyle(o)
		case PlacementMode:
			c.Placement = Placement(o)
		case BubbleColor:
			c.BubbleColor = color.NRGBA(o)
		case DismissOnOverlayTap:
			c.DismissOnOverlayTap = bool(o)
		case ShowOverlay:
			c.ShowOverlay = bool(o)
		case HighlightSourceView:
			c.HighlightSourceView = bool(o)
		case HighlightCornerRadius:
			c.HighlightCornerRadius = utils.Max(float32(o), 0)
		case SpringDamping:
			c.SpringDamping = float32(o)
		case SpringVelocity:
			c.SpringVelocity = float32(o)
		}
	}
}

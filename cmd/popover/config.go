package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"gioui.org/f32"
	"github.com/esimov/popover"
	"github.com/esimov/popover/utils"
	"gopkg.in/yaml.v3"
)

// options holds the popover options read from the YAML file and the command
// line. Unset fields keep the popover defaults.
type options struct {
	Placement             *string        `yaml:"placement"`
	ArrowWidth            *float32       `yaml:"arrow_width"`
	ArrowHeight           *float32       `yaml:"arrow_height"`
	AnimationIn           *time.Duration `yaml:"animation_in"`
	AnimationOut          *time.Duration `yaml:"animation_out"`
	CornerRadius          *float32       `yaml:"corner_radius"`
	SideEdge              *float32       `yaml:"side_edge"`
	OverlayColor          *string        `yaml:"overlay_color"`
	OverlayBlur           *string        `yaml:"overlay_blur"`
	BubbleColor           *string        `yaml:"bubble_color"`
	DismissOnOverlayTap   *bool          `yaml:"dismiss_on_overlay_tap"`
	ShowOverlay           *bool          `yaml:"show_overlay"`
	HighlightSourceView   *bool          `yaml:"highlight_source_view"`
	HighlightCornerRadius *float32       `yaml:"highlight_corner_radius"`
	SpringDamping         *float32       `yaml:"spring_damping"`
	SpringVelocity        *float32       `yaml:"spring_velocity"`
}

// loadOptions reads the options of a YAML file.
func loadOptions(path string) (options, error) {
	f, err := os.Open(path)
	if err != nil {
		return options{}, fmt.Errorf("unable to open the config file: %w", err)
	}
	defer f.Close()

	return decodeOptions(f)
}

// decodeOptions decodes YAML options. Unknown keys are rejected.
func decodeOptions(r io.Reader) (options, error) {
	var o options

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && err != io.EOF {
		return options{}, fmt.Errorf("invalid config file: %w", err)
	}
	return o, nil
}

// merge returns o overridden by the fields set in other.
func (o options) merge(other options) options {
	o.Placement = pick(o.Placement, other.Placement)
	o.ArrowWidth = pick(o.ArrowWidth, other.ArrowWidth)
	o.ArrowHeight = pick(o.ArrowHeight, other.ArrowHeight)
	o.AnimationIn = pick(o.AnimationIn, other.AnimationIn)
	o.AnimationOut = pick(o.AnimationOut, other.AnimationOut)
	o.CornerRadius = pick(o.CornerRadius, other.CornerRadius)
	o.SideEdge = pick(o.SideEdge, other.SideEdge)
	o.OverlayColor = pick(o.OverlayColor, other.OverlayColor)
	o.OverlayBlur = pick(o.OverlayBlur, other.OverlayBlur)
	o.BubbleColor = pick(o.BubbleColor, other.BubbleColor)
	o.DismissOnOverlayTap = pick(o.DismissOnOverlayTap, other.DismissOnOverlayTap)
	o.ShowOverlay = pick(o.ShowOverlay, other.ShowOverlay)
	o.HighlightSourceView = pick(o.HighlightSourceView, other.HighlightSourceView)
	o.HighlightCornerRadius = pick(o.HighlightCornerRadius, other.HighlightCornerRadius)
	o.SpringDamping = pick(o.SpringDamping, other.SpringDamping)
	o.SpringVelocity = pick(o.SpringVelocity, other.SpringVelocity)
	return o
}

func pick[T any](a, b *T) *T {
	if b != nil {
		return b
	}
	return a
}

// popoverOptions converts the set fields into popover options.
func (o options) popoverOptions() ([]popover.Option, error) {
	var opts []popover.Option

	if o.Placement != nil {
		p, ok := popover.ParsePlacement(*o.Placement)
		if !ok {
			return nil, fmt.Errorf("unknown placement %q", *o.Placement)
		}
		opts = append(opts, popover.PlacementMode(p))
	}
	if o.ArrowWidth != nil || o.ArrowHeight != nil {
		size := popover.DefaultConfig().ArrowSize
		if o.ArrowWidth != nil {
			size.X = *o.ArrowWidth
		}
		if o.ArrowHeight != nil {
			size.Y = *o.ArrowHeight
		}
		opts = append(opts, popover.ArrowSize(f32.Pt(size.X, size.Y)))
	}
	if o.AnimationIn != nil {
		opts = append(opts, popover.AnimationIn(*o.AnimationIn))
	}
	if o.AnimationOut != nil {
		opts = append(opts, popover.AnimationOut(*o.AnimationOut))
	}
	if o.CornerRadius != nil {
		opts = append(opts, popover.CornerRadius(*o.CornerRadius))
	}
	if o.SideEdge != nil {
		opts = append(opts, popover.SideEdge(*o.SideEdge))
	}
	if o.OverlayColor != nil {
		c, err := utils.HexToRGBA(*o.OverlayColor)
		if err != nil {
			return nil, fmt.Errorf("invalid overlay color: %w", err)
		}
		opts = append(opts, popover.OverlayColor(c))
	}
	if o.OverlayBlur != nil {
		s, ok := popover.ParseBlurStyle(*o.OverlayBlur)
		if !ok {
			return nil, fmt.Errorf("unknown blur style %q", *o.OverlayBlur)
		}
		opts = append(opts, popover.OverlayBlur(s))
	}
	if o.BubbleColor != nil {
		c, err := utils.HexToRGBA(*o.BubbleColor)
		if err != nil {
			return nil, fmt.Errorf("invalid bubble color: %w", err)
		}
		opts = append(opts, popover.BubbleColor(c))
	}
	if o.DismissOnOverlayTap != nil {
		opts = append(opts, popover.DismissOnOverlayTap(*o.DismissOnOverlayTap))
	}
	if o.ShowOverlay != nil {
		opts = append(opts, popover.ShowOverlay(*o.ShowOverlay))
	}
	if o.HighlightSourceView != nil {
		opts = append(opts, popover.HighlightSourceView(*o.HighlightSourceView))
	}
	if o.HighlightCornerRadius != nil {
		opts = append(opts, popover.HighlightCornerRadius(*o.HighlightCornerRadius))
	}
	if o.SpringDamping != nil {
		opts = append(opts, popover.SpringDamping(*o.SpringDamping))
	}
	if o.SpringVelocity != nil {
		opts = append(opts, popover.SpringVelocity(*o.SpringVelocity))
	}
	return opts, nil
}

package popover

import (
	"image/color"
	"testing"
	"time"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
)

func TestOption_Defaults(t *testing.T) {
	assert := assert.New(t)

	cfg := NewConfig()
	assert.Equal(DefaultConfig(), cfg)
	assert.Equal(f32.Pt(16, 10), cfg.ArrowSize)
	assert.Equal(600*time.Millisecond, cfg.AnimationIn)
	assert.Equal(300*time.Millisecond, cfg.AnimationOut)
	assert.Equal(Down, cfg.Placement)
	assert.Equal(BlurNone, cfg.OverlayBlur)
	assert.True(cfg.ShowOverlay)
	assert.True(cfg.DismissOnOverlayTap)
	assert.False(cfg.HighlightSourceView)
}

func TestOption_Apply(t *testing.T) {
	assert := assert.New(t)

	red := color.NRGBA{R: 0xff, A: 0xff}
	cfg := NewConfig(
		ArrowSize(f32.Pt(20, 12)),
		AnimationIn(time.Second),
		AnimationOut(100*time.Millisecond),
		CornerRadius(3),
		SideEdge(4),
		OverlayColor(red),
		OverlayBlur(BlurDark),
		PlacementMode(Auto),
		BubbleColor(red),
		DismissOnOverlayTap(false),
		ShowOverlay(false),
		HighlightSourceView(true),
		HighlightCornerRadius(8),
		SpringDamping(0.5),
		SpringVelocity(1),
	)
	assert.Equal(Config{
		ArrowSize:             f32.Pt(20, 12),
		AnimationIn:           time.Second,
		AnimationOut:          100 * time.Millisecond,
		CornerRadius:          3,
		SideEdge:              4,
		Placement:             Auto,
		OverlayColor:          red,
		OverlayBlur:           BlurDark,
		BubbleColor:           red,
		HighlightSourceView:   true,
		HighlightCornerRadius: 8,
		SpringDamping:         0.5,
		SpringVelocity:        1,
	}, cfg)
}

func TestOption_LaterWins(t *testing.T) {
	assert := assert.New(t)

	cfg := NewConfig(CornerRadius(2), PlacementMode(Up), CornerRadius(9))
	assert.Equal(float32(9), cfg.CornerRadius)
	assert.Equal(Up, cfg.Placement)

	cfg.Apply(PlacementMode(Left))
	assert.Equal(Left, cfg.Placement)
	assert.Equal(float32(9), cfg.CornerRadius)
}

func TestOption_Clamp(t *testing.T) {
	assert := assert.New(t)

	cfg := NewConfig(
		ArrowSize(f32.Pt(-1, 5)),
		CornerRadius(-3),
		SideEdge(-10),
		HighlightCornerRadius(-1),
	)
	assert.Equal(f32.Pt(0, 5), cfg.ArrowSize)
	assert.Equal(float32(0), cfg.CornerRadius)
	assert.Equal(float32(0), cfg.SideEdge)
	assert.Equal(float32(0), cfg.HighlightCornerRadius)
}

package popover

import (
	"image"
	"image/color"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
)

var (
	blue = color.NRGBA{B: 0xff, A: 0xff}
	red  = color.NRGBA{R: 0xff, A: 0xff}
)

func render(p *Popover, content image.Image) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, 200, 150))
	NewRenderer().Render(dst, uniform(dst.Bounds().Size(), blue), p, content)
	return dst
}

func TestRaster_Unattached(t *testing.T) {
	dst := render(New(nil), nil)
	assert.Equal(t, blue, dst.NRGBAAt(100, 65))

	dst = render(nil, nil)
	assert.Equal(t, blue, dst.NRGBAAt(0, 0))
}

func TestRaster_Bubble(t *testing.T) {
	assert := assert.New(t)

	stage := NewStage(f32.Pt(200, 150))
	p := New(nil, OverlayColor(color.NRGBA{A: 0x33}))
	assert.NoError(p.ShowAtPoint(&Box{W: 80, H: 40}, f32.Pt(100, 40), stage))
	assert.Equal(MakeRect(60, 40, 140, 90), p.Layout().Frame)

	dst := render(p, uniform(image.Pt(80, 40), red))

	// The overlay dims the backdrop.
	dim := dst.NRGBAAt(5, 5)
	assert.InDelta(204, int(dim.B), 1)
	assert.Equal(uint8(0), dim.R)
	assert.Equal(uint8(0xff), dim.A)

	// The arrow is filled with the bubble color.
	assert.Equal(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, dst.NRGBAAt(99, 45))
	// The content covers the body.
	assert.Equal(red, dst.NRGBAAt(100, 70))
	// Outside the rounded corners only the overlay is drawn.
	assert.Equal(dim, dst.NRGBAAt(60, 50))
	assert.Equal(dim, dst.NRGBAAt(150, 70))
}

func TestRaster_HiddenOverlay(t *testing.T) {
	stage := NewStage(f32.Pt(200, 150))
	p := New(nil, ShowOverlay(false))
	assert.NoError(t, p.ShowAtPoint(&Box{W: 80, H: 40}, f32.Pt(100, 40), stage))

	dst := render(p, nil)
	assert.Equal(t, blue, dst.NRGBAAt(5, 5))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, dst.NRGBAAt(100, 70))
}

func TestRaster_Highlight(t *testing.T) {
	assert := assert.New(t)

	stage := NewStage(f32.Pt(200, 150))
	source := &Box{W: 40, H: 20}
	stage.Track(source, MakeRect(80, 10, 120, 30))

	p := New(nil, HighlightSourceView(true), OverlayColor(color.NRGBA{A: 0x80}))
	assert.NoError(p.ShowFromView(&Box{W: 80, H: 40}, source, stage))

	dst := render(p, nil)
	hole := dst.NRGBAAt(100, 20)
	assert.InDelta(0xff, int(hole.B), 1)

	dim := dst.NRGBAAt(5, 5)
	assert.InDelta(0x7f, int(dim.B), 1)
}

func TestRaster_Blur(t *testing.T) {
	assert := assert.New(t)

	stage := NewStage(f32.Pt(200, 150))
	p := New(nil, OverlayBlur(BlurDark))
	assert.NoError(p.ShowAtPoint(&Box{W: 80, H: 40}, f32.Pt(100, 40), stage))

	for _, b := range []Blurrer{GaussianBlur{}, StackBlur{}} {
		dst := image.NewNRGBA(image.Rect(0, 0, 200, 150))
		r := &Renderer{Blurrer: b}
		r.Render(dst, uniform(dst.Bounds().Size(), blue), p, nil)

		// A uniform backdrop stays uniform once blurred, then gets tinted.
		c := dst.NRGBAAt(5, 5)
		assert.InDelta(0x0e, int(c.R), 2, "%T", b)
		assert.InDelta(0x8d, int(c.B), 2, "%T", b)
		assert.Equal(uint8(0xff), c.A, "%T", b)
	}
}

func TestRaster_Dismissed(t *testing.T) {
	stage := NewStage(f32.Pt(200, 150))
	p := New(nil)
	assert.NoError(t, p.ShowAtPoint(&Box{W: 80, H: 40}, f32.Pt(100, 40), stage))
	p.Dismiss()

	dst := render(p, nil)
	assert.Equal(t, blue, dst.NRGBAAt(100, 70))
}

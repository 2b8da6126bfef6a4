package popover

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlur_Styles(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"none", "extra-light", "light", "dark", "regular", "prominent"} {
		s, ok := ParseBlurStyle(name)
		assert.True(ok, name)
		assert.Equal(name, s.String())
	}
	_, ok := ParseBlurStyle("frosted")
	assert.False(ok)

	assert.Equal(float64(0), BlurNone.Radius())
	assert.Equal(color.NRGBA{}, BlurNone.Tint())
	assert.Equal(float64(12), BlurProminent.Radius())
	assert.Equal(uint8(0x80), BlurDark.Tint().A)
	assert.Equal("unknown", BlurStyle(42).String())
	assert.Equal(float64(0), BlurStyle(42).Radius())
}

func TestBlur_StackBlurUniform(t *testing.T) {
	assert := assert.New(t)

	c := color.NRGBA{R: 0x20, G: 0x80, B: 0xf0, A: 0xff}
	src := uniform(image.Pt(12, 9), c)
	res := stackBlur(src, 3)

	assert.NotSame(src, res)
	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			assert.Equal(c, res.NRGBAAt(x, y))
		}
	}
}

func TestBlur_StackBlurZeroRadius(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(1, 1, color.NRGBA{R: 0xff, A: 0xff})

	res := stackBlur(src, 0)
	assert.NotSame(t, src, res)
	assert.Equal(t, src.Pix, res.Pix)
}

func TestBlur_StackBlurSpreads(t *testing.T) {
	assert := assert.New(t)

	src := image.NewNRGBA(image.Rect(0, 0, 9, 9))
	src.SetNRGBA(4, 4, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	res := stackBlur(src, 2)

	center := res.NRGBAAt(4, 4).A
	assert.Greater(center, uint8(0))
	assert.Less(center, uint8(0xff))
	assert.Greater(res.NRGBAAt(5, 5).A, uint8(0))
	assert.Less(res.NRGBAAt(5, 5).A, center)
	assert.Equal(uint8(0), res.NRGBAAt(0, 0).A)
	// The kernel is symmetric.
	assert.Equal(res.NRGBAAt(3, 4), res.NRGBAAt(5, 4))
	assert.Equal(res.NRGBAAt(4, 3), res.NRGBAAt(4, 5))
}

func TestBlur_Blurrers(t *testing.T) {
	assert := assert.New(t)

	src := uniform(image.Pt(10, 6), color.NRGBA{G: 0xff, A: 0xff})
	for _, b := range []Blurrer{GaussianBlur{}, StackBlur{}} {
		res := b.Blur(src, 2)
		assert.Equal(image.Rect(0, 0, 10, 6), res.Bounds(), "%T", b)
		assert.InDelta(0xff, int(res.NRGBAAt(5, 3).G), 1, "%T", b)
	}
	assert.Same(src, GaussianBlur{}.Blur(src, 0))
}

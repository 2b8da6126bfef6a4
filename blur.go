package popover

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// BlurStyle selects the strength and tint of a blurred overlay.
type BlurStyle uint8

const (
	BlurNone BlurStyle = iota
	BlurExtraLight
	BlurLight
	BlurDark
	BlurRegular
	BlurProminent
)

var blurStyles = [...]struct {
	name   string
	radius float64
	tint   color.NRGBA
}{
	BlurNone:       {name: "none"},
	BlurExtraLight: {name: "extra-light", radius: 8, tint: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb3}},
	BlurLight:      {name: "light", radius: 8, tint: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x66}},
	BlurDark:       {name: "dark", radius: 8, tint: color.NRGBA{R: 0x1c, G: 0x1c, B: 0x1c, A: 0x80}},
	BlurRegular:    {name: "regular", radius: 10, tint: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40}},
	BlurProminent:  {name: "prominent", radius: 12, tint: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x99}},
}

func (s BlurStyle) String() string {
	if int(s) < len(blurStyles) {
		return blurStyles[s].name
	}
	return "unknown"
}

// Radius returns the blur radius, in pixels, of the style.
func (s BlurStyle) Radius() float64 {
	if int(s) < len(blurStyles) {
		return blurStyles[s].radius
	}
	return 0
}

// Tint returns the color laid over the blurred backdrop.
func (s BlurStyle) Tint() color.NRGBA {
	if int(s) < len(blurStyles) {
		return blurStyles[s].tint
	}
	return color.NRGBA{}
}

// ParseBlurStyle returns the blur style with the given name.
func ParseBlurStyle(name string) (BlurStyle, bool) {
	for i, s := range blurStyles {
		if s.name == name {
			return BlurStyle(i), true
		}
	}
	return BlurNone, false
}

// Blurrer blurs the backdrop of a blurred overlay.
type Blurrer interface {
	Blur(img image.Image, radius float64) *image.NRGBA
}

// GaussianBlur blurs images with a Gaussian kernel.
type GaussianBlur struct{}

// Blur implements Blurrer. The radius is used as the standard deviation of the kernel.
func (GaussianBlur) Blur(img image.Image, radius float64) *image.NRGBA {
	if radius <= 0 {
		return toNRGBA(img)
	}
	return imaging.Blur(img, radius)
}

// StackBlur approximates a Gaussian blur with the faster stack blur algorithm.
type StackBlur struct{}

// Blur implements Blurrer.
func (StackBlur) Blur(img image.Image, radius float64) *image.NRGBA {
	return stackBlur(toNRGBA(img), int(radius+0.5))
}

// Package imop implements the Porter-Duff compositing operators on NRGBA images.
package imop

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/esimov/popover/utils"
)

// Op is a Porter-Duff compositing operator.
type Op uint8

const (
	Clear Op = iota
	Copy
	Dst
	SrcOver
	DstOver
	SrcIn
	DstIn
	SrcOut
	DstOut
	SrcAtop
	DstAtop
	Xor
)

var names = [...]string{
	Clear:   "clear",
	Copy:    "copy",
	Dst:     "dst",
	SrcOver: "src_over",
	DstOver: "dst_over",
	SrcIn:   "src_in",
	DstIn:   "dst_in",
	SrcOut:  "src_out",
	DstOut:  "dst_out",
	SrcAtop: "src_atop",
	DstAtop: "dst_atop",
	Xor:     "xor",
}

func (op Op) String() string {
	if int(op) < len(names) {
		return names[op]
	}
	return "unknown"
}

// Parse returns the operator with the given name.
func Parse(name string) (Op, bool) {
	for i, n := range names {
		if n == name {
			return Op(i), true
		}
	}
	return SrcOver, false
}

// factors returns the fractions of the source and the destination kept by
// the operator, given the source and destination alpha.
func (op Op) factors(as, ab float64) (fa, fb float64) {
	switch op {
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 0, 0
}

// Pixel composes the source color with the destination color.
func Pixel(src, dst color.NRGBA, op Op) color.NRGBA {
	as, ab := float64(src.A)/255, float64(dst.A)/255
	fa, fb := op.factors(as, ab)

	ao := fa*as + fb*ab
	if ao <= 0 {
		return color.NRGBA{}
	}
	// The channels are premultiplied for the composition, then divided back
	// by the resulting alpha.
	mix := func(cs, cb uint8) uint8 {
		c := (fa*as*float64(cs) + fb*ab*float64(cb)) / ao
		return uint8(utils.Clamp(c+0.5, 0, 255))
	}
	return color.NRGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: uint8(utils.Clamp(ao*255+0.5, 0, 255)),
	}
}

// Draw composes src onto dst inside the rectangle r of dst, src being
// aligned so that sp corresponds to r.Min.
func Draw(dst *image.NRGBA, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	// Points of r outside of src are composed with a transparent source.
	s := image.NewNRGBA(image.Rectangle{Max: r.Size()})
	draw.Draw(s, s.Bounds(), src, sp, draw.Src)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := dst.PixOffset(x, y)
			j := s.PixOffset(x-r.Min.X, y-r.Min.Y)
			d := color.NRGBA{R: dst.Pix[i], G: dst.Pix[i+1], B: dst.Pix[i+2], A: dst.Pix[i+3]}
			c := color.NRGBA{R: s.Pix[j], G: s.Pix[j+1], B: s.Pix[j+2], A: s.Pix[j+3]}
			o := Pixel(c, d, op)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = o.R, o.G, o.B, o.A
		}
	}
}

// Fade multiplies the alpha channel of img by the given factor.
func Fade(img *image.NRGBA, factor float64) {
	factor = utils.Clamp(factor, 0, 1)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(float64(img.Pix[i])*factor + 0.5)
	}
}

package popover

import (
	"image"
	"image/draw"

	"gioui.org/f32"
	"github.com/disintegration/imaging"
	"github.com/esimov/popover/imop"
	"golang.org/x/image/vector"
)

// Renderer draws popovers into images without a GPU. It is used to produce
// snapshots and animation frames.
type Renderer struct {
	// Blurrer blurs the backdrop of blurred overlays. GaussianBlur is used when nil.
	Blurrer Blurrer
}

// NewRenderer creates a renderer using the Gaussian blur.
func NewRenderer() *Renderer {
	return &Renderer{Blurrer: GaussianBlur{}}
}

// Render draws the backdrop, the overlay, the bubble and the content of the
// popover into dst. The content image is scaled along with the bubble and
// clipped to the rounded content area.
func (r *Renderer) Render(dst *image.NRGBA, backdrop image.Image, p *Popover, content image.Image) {
	bounds := dst.Bounds()
	if backdrop != nil {
		draw.Draw(dst, bounds, backdrop, backdrop.Bounds().Min, draw.Src)
	}
	if p == nil || p.State() == Unattached {
		return
	}
	if o := p.Overlay(); o != nil && o.Visible() && o.Alpha() > 0 {
		r.drawOverlay(dst, o)
	}
	if p.Scale() < dismissScale {
		return
	}

	// Masks are rasterized in the coordinates of the container, which start at the bounds minimum of dst.
	tr := p.Transform()
	mask := rasterize(bounds.Size(), tr, p.Outline())
	draw.DrawMask(dst, bounds, image.NewUniform(p.Config().BubbleColor), image.Point{}, mask, image.Point{}, draw.Over)

	if content != nil {
		r.drawContent(dst, p, content, tr)
	}
}

func (r *Renderer) drawOverlay(dst *image.NRGBA, o *Overlay) {
	bounds := dst.Bounds()
	size := bounds.Size()

	var layer *image.NRGBA
	switch o.Kind() {
	case OverlayBlurred:
		blurrer := r.Blurrer
		if blurrer == nil {
			blurrer = GaussianBlur{}
		}
		style := o.BlurStyle()
		layer = toNRGBA(blurrer.Blur(dst, style.Radius()))
		if layer == dst {
			layer = imaging.Clone(dst)
		}
		imop.Draw(layer, layer.Bounds(), image.NewUniform(style.Tint()), image.Point{}, imop.SrcOver)
	default:
		layer = uniform(size, o.Color())
	}

	if m := o.Mask(); o.Kind() == OverlayHighlight && m.HasHole() {
		hole := RoundedRect(m.Hole, m.Radius)
		imop.Draw(layer, layer.Bounds(), rasterize(size, f32.Affine2D{}, hole), image.Point{}, imop.DstOut)
	}

	imop.Fade(layer, float64(o.Alpha()))
	imop.Draw(dst, bounds, layer, image.Point{}, imop.SrcOver)
}

func (r *Renderer) drawContent(dst *image.NRGBA, p *Popover, content image.Image, tr f32.Affine2D) {
	l := p.Layout()
	csize := content.Bounds().Size()
	area := Rect{Min: l.ContentOffset, Max: l.ContentOffset.Add(toPoint(csize))}

	min := tr.Transform(area.Min)
	max := tr.Transform(area.Max)
	dr := MakeRect(min.X, min.Y, max.X, max.Y).Round()
	if dr.Dx() < 1 || dr.Dy() < 1 {
		return
	}
	scaled := imaging.Resize(content, dr.Dx(), dr.Dy(), imaging.Linear)

	clipMask := rasterize(dst.Bounds().Size(), tr, RoundedRect(area, p.Config().CornerRadius))
	draw.DrawMask(dst, dr.Add(dst.Bounds().Min), scaled, image.Point{}, clipMask, dr.Min, draw.Over)
}

// rasterize returns the coverage of the outline transformed by tr.
func rasterize(size image.Point, tr f32.Affine2D, o Outline) *image.Alpha {
	mask := image.NewAlpha(image.Rectangle{Max: size})
	if size.X <= 0 || size.Y <= 0 {
		return mask
	}
	z := vector.NewRasterizer(size.X, size.Y)
	o.Rasterize(z, tr)
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

func toPoint(p image.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}

package popover

import (
	"math"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"github.com/esimov/popover/utils"
	"golang.org/x/image/vector"
)

// SegmentKind identifies the drawing command of a segment.
type SegmentKind uint8

const (
	MoveTo SegmentKind = iota
	LineTo
	ArcTo
)

// Segment is a single drawing command of an outline.
// Angles are expressed in radians; a positive sweep runs clockwise on screen.
type Segment struct {
	Kind   SegmentKind
	To     f32.Point
	Center f32.Point
	Radius float32
	Start  float32
	Sweep  float32
}

// Outline is a single closed contour made of lines and circular arcs.
type Outline struct {
	Segments []Segment
}

// corner describes one rounded corner of the bubble body.
type corner struct {
	center f32.Point
	sharp  f32.Point
	// start is the angle, in degrees, the corner arc starts at.
	start float32
}

// unit vectors for the multiples of 90 degrees.
var quadrant = [4]f32.Point{{X: 1}, {Y: 1}, {X: -1}, {Y: -1}}

// edge directions when the body is traced clockwise: top, right, bottom, left.
var edgeDir = [4]f32.Point{{X: 1}, {Y: 1}, {X: -1}, {Y: -1}}

func (c corner) arcStart(r float32) f32.Point {
	return c.center.Add(quadrant[int(c.start)/90%4].Mul(r))
}

func (c corner) arcEnd(r float32) f32.Point {
	return c.center.Add(quadrant[(int(c.start)/90+1)%4].Mul(r))
}

// BuildOutline traces the bubble of the given size with its arrow notch.
// The tip is the arrow point in frame coordinates and arrow is the arrow size
// (width along the edge, height across it). The contour starts at the tip and
// walks the body clockwise; the corner next to a flush arrow is left square.
func BuildOutline(size, tip f32.Point, p Placement, arrow f32.Point, radius float32, align Align) Outline {
	body := Rect{Max: size}
	k := 0
	switch p {
	case Up:
		body.Max.Y -= arrow.Y
		k = 2
	case Left:
		body.Max.X -= arrow.Y
		k = 1
	case Right:
		body.Min.X += arrow.Y
		k = 3
	default:
		body.Min.Y += arrow.Y
	}

	r := utils.Clamp(radius, 0, utils.Max(utils.Min(body.Dx(), body.Dy())*0.5, 0))
	corners := [4]corner{
		{center: f32.Pt(body.Max.X-r, body.Min.Y+r), sharp: f32.Pt(body.Max.X, body.Min.Y), start: 270},
		{center: f32.Pt(body.Max.X-r, body.Max.Y-r), sharp: body.Max, start: 0},
		{center: f32.Pt(body.Min.X+r, body.Max.Y-r), sharp: f32.Pt(body.Min.X, body.Max.Y), start: 90},
		{center: f32.Pt(body.Min.X+r, body.Min.Y+r), sharp: body.Min, start: 180},
	}

	// The arrow sits on edge k, which runs from corner s to corner k.
	s := (k + 3) % 4
	d := edgeDir[k]
	forward := k < 2

	var skipStart, skipEnd bool
	if arrow != (f32.Point{}) {
		skipStart = (align == AlignStart) == forward && align != AlignCenter
		skipEnd = (align == AlignEnd) == forward && align != AlignCenter
	}

	var base f32.Point
	if k%2 == 0 {
		base = f32.Pt(tip.X, corners[s].sharp.Y)
	} else {
		base = f32.Pt(corners[s].sharp.X, tip.Y)
	}

	lo, hi := along(corners[s].arcEnd(r), d), along(corners[k].arcStart(r), d)
	if skipStart {
		lo = along(corners[s].sharp, d)
	}
	if skipEnd {
		hi = along(corners[k].sharp, d)
	}
	exit := slide(base, d, arrow.X*0.5, lo, hi)
	entry := slide(base, d, -arrow.X*0.5, lo, hi)
	if skipEnd {
		exit = corners[k].sharp
	}
	if skipStart {
		entry = corners[s].sharp
	}

	var b outlineBuilder
	b.move(tip)
	b.line(exit)
	if !skipEnd {
		b.corner(corners[k], r)
	}
	for j := 1; j <= 3; j++ {
		i := (k + j) % 4
		if i == s && skipStart {
			b.line(corners[s].sharp)
			continue
		}
		b.corner(corners[i], r)
	}
	b.line(entry)
	b.close(tip)

	return Outline{Segments: b.segs}
}

// RoundedRect returns the outline of a rounded rectangle, traced clockwise
// starting from the middle of its top edge.
func RoundedRect(r Rect, radius float32) Outline {
	o := BuildOutline(r.Size(), f32.Pt(r.Dx()*0.5, 0), Down, f32.Point{}, radius, AlignCenter)
	return o.Offset(r.Min)
}

// along returns the coordinate of pt along the direction d.
func along(pt, d f32.Point) float32 {
	return pt.X*d.X + pt.Y*d.Y
}

// slide moves pt by delta along d, keeping its coordinate along d within [lo, hi].
func slide(pt, d f32.Point, delta, lo, hi float32) f32.Point {
	a := along(pt, d)
	target := a + delta
	if lo <= hi {
		target = utils.Clamp(target, lo, hi)
	}
	return pt.Add(d.Mul(target - a))
}

type outlineBuilder struct {
	segs []Segment
	pen  f32.Point
}

func (b *outlineBuilder) move(to f32.Point) {
	b.segs = append(b.segs, Segment{Kind: MoveTo, To: to})
	b.pen = to
}

func (b *outlineBuilder) line(to f32.Point) {
	if to == b.pen {
		return
	}
	b.segs = append(b.segs, Segment{Kind: LineTo, To: to})
	b.pen = to
}

// close ends the contour with a line back to its first point, even a zero length one.
func (b *outlineBuilder) close(start f32.Point) {
	b.segs = append(b.segs, Segment{Kind: LineTo, To: start})
	b.pen = start
}

// corner draws a line to the beginning of the corner arc followed by a
// quarter circle sweeping clockwise.
func (b *outlineBuilder) corner(c corner, r float32) {
	b.line(c.arcStart(r))
	if r <= 0 {
		return
	}
	end := c.arcEnd(r)
	b.segs = append(b.segs, Segment{
		Kind:   ArcTo,
		To:     end,
		Center: c.center,
		Radius: r,
		Start:  radians(c.start),
		Sweep:  radians(90),
	})
	b.pen = end
}

func radians(degrees float32) float32 {
	return math.Pi * degrees / 180
}

// Start returns the first point of the contour.
func (o Outline) Start() f32.Point {
	if len(o.Segments) == 0 {
		return f32.Point{}
	}
	return o.Segments[0].To
}

// End returns the last point of the contour.
func (o Outline) End() f32.Point {
	if len(o.Segments) == 0 {
		return f32.Point{}
	}
	return o.Segments[len(o.Segments)-1].To
}

// Closed reports whether the contour ends where it starts.
func (o Outline) Closed() bool {
	return len(o.Segments) > 0 && o.Start() == o.End()
}

// Offset returns the outline translated by delta.
func (o Outline) Offset(delta f32.Point) Outline {
	segs := make([]Segment, len(o.Segments))
	for i, s := range o.Segments {
		s.To = s.To.Add(delta)
		s.Center = s.Center.Add(delta)
		segs[i] = s
	}
	return Outline{Segments: segs}
}

// Reverse returns the same contour traced in the opposite direction.
func (o Outline) Reverse() Outline {
	n := len(o.Segments)
	if n == 0 {
		return o
	}
	segs := make([]Segment, 0, n)
	segs = append(segs, Segment{Kind: MoveTo, To: o.End()})
	for i := n - 1; i > 0; i-- {
		s := o.Segments[i]
		s.To = o.Segments[i-1].To
		if s.Kind == ArcTo {
			s.Start += s.Sweep
			s.Sweep = -s.Sweep
		}
		segs = append(segs, s)
	}
	return Outline{Segments: segs}
}

// Points flattens the outline into a polyline. Arcs are subdivided so that
// consecutive points are at most tolerance apart along the arc.
func (o Outline) Points(tolerance float32) []f32.Point {
	if tolerance <= 0 {
		tolerance = 0.5
	}
	var pts []f32.Point
	for _, s := range o.Segments {
		if s.Kind != ArcTo {
			pts = append(pts, s.To)
			continue
		}
		length := utils.Abs(s.Sweep) * s.Radius
		n := int(math.Ceil(float64(length / tolerance)))
		if n < 1 {
			n = 1
		}
		for i := 1; i < n; i++ {
			a := float64(s.Start + s.Sweep*float32(i)/float32(n))
			pts = append(pts, s.Center.Add(f32.Pt(
				s.Radius*float32(math.Cos(a)),
				s.Radius*float32(math.Sin(a)),
			)))
		}
		pts = append(pts, s.To)
	}
	return pts
}

// Bounds returns the smallest rectangle enclosing the outline.
func (o Outline) Bounds() Rect {
	pts := o.Points(1)
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = utils.Min(r.Min.X, p.X)
		r.Min.Y = utils.Min(r.Min.Y, p.Y)
		r.Max.X = utils.Max(r.Max.X, p.X)
		r.Max.Y = utils.Max(r.Max.Y, p.Y)
	}
	return r
}

// Contains reports whether pt lies inside the outline, using the non-zero winding rule.
func (o Outline) Contains(pt f32.Point) bool {
	return winding(o.Points(0.25), pt) != 0
}

// winding returns the winding number of the closed polygon around pt.
func winding(poly []f32.Point, pt f32.Point) int {
	n := len(poly)
	if n < 3 {
		return 0
	}
	w := 0
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		cross := (b.X-a.X)*(pt.Y-a.Y) - (pt.X-a.X)*(b.Y-a.Y)
		if a.Y <= pt.Y {
			if b.Y > pt.Y && cross > 0 {
				w++
			}
		} else if b.Y <= pt.Y && cross < 0 {
			w--
		}
	}
	return w
}

// Path records the outline as a Gio path.
func (o Outline) Path(ops *op.Ops) clip.PathSpec {
	var path clip.Path
	path.Begin(ops)
	o.Append(&path)
	return path.End()
}

// Append adds the outline as a new contour of a path being recorded.
func (o Outline) Append(path *clip.Path) {
	for _, s := range o.Segments {
		switch s.Kind {
		case MoveTo:
			path.MoveTo(s.To)
		case LineTo:
			path.LineTo(s.To)
		case ArcTo:
			path.ArcTo(s.Center, s.Center, s.Sweep)
		}
	}
	path.Close()
}

// Rasterize adds the outline, transformed by tr, to the rasterizer.
// Arcs are approximated by cubic Bézier curves. Points are clamped to the
// rasterizer bounds, which leaves the coverage inside the bounds unchanged.
func (o Outline) Rasterize(z *vector.Rasterizer, tr f32.Affine2D) {
	size := z.Size()
	at := func(p f32.Point) f32.Point {
		p = tr.Transform(p)
		return f32.Pt(
			utils.Clamp(p.X, 0, float32(size.X)),
			utils.Clamp(p.Y, 0, float32(size.Y)),
		)
	}

	var pen f32.Point
	for _, s := range o.Segments {
		switch s.Kind {
		case MoveTo:
			to := at(s.To)
			z.MoveTo(to.X, to.Y)
		case LineTo:
			to := at(s.To)
			z.LineTo(to.X, to.Y)
		case ArcTo:
			a0, a1 := float64(s.Start), float64(s.Start+s.Sweep)
			k := s.Radius * 4 / 3 * float32(math.Tan(float64(s.Sweep)/4))
			c1 := pen.Add(f32.Pt(-float32(math.Sin(a0)), float32(math.Cos(a0))).Mul(k))
			c2 := s.To.Sub(f32.Pt(-float32(math.Sin(a1)), float32(math.Cos(a1))).Mul(k))
			c1, c2, to := at(c1), at(c2), at(s.To)
			z.CubeTo(c1.X, c1.Y, c2.X, c2.Y, to.X, to.Y)
		}
		pen = s.To
	}
	z.ClosePath()
}

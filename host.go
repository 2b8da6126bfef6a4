package popover

import (
	"gioui.org/f32"
)

// View is a piece of host content: either the content shown inside the
// bubble or a source view the popover is anchored to.
// Containers compare views by identity, so views are usually pointers.
type View interface {
	Size() f32.Point
}

// Container is the host surface popovers are attached into.
type Container interface {
	Size() f32.Point
	// FrameOf returns the rectangle of a view in container coordinates.
	FrameOf(v View) (Rect, bool)
	Attach(l Layer)
	Detach(l Layer)
}

// Layer is a surface attached to a container by a popover.
// It is implemented by *Popover and *Overlay only.
type Layer interface {
	layer()
}

// Box is a fixed size view without content.
type Box struct {
	W, H float32
}

// Size implements View.
func (b *Box) Size() f32.Point { return f32.Pt(b.W, b.H) }

// Stage is a Container keeping track of view frames and attached layers.
// Host bindings embed it and draw its layers in attach order.
type Stage struct {
	size   f32.Point
	frames map[View]Rect
	layers []Layer
}

// NewStage creates a stage of the given size.
func NewStage(size f32.Point) *Stage {
	return &Stage{
		size:   size,
		frames: make(map[View]Rect),
	}
}

// Size implements Container.
func (s *Stage) Size() f32.Point { return s.size }

// Resize changes the stage size. Shown popovers keep their layout.
func (s *Stage) Resize(size f32.Point) { s.size = size }

// Track records the frame of a view, in stage coordinates.
func (s *Stage) Track(v View, frame Rect) {
	if s.frames == nil {
		s.frames = make(map[View]Rect)
	}
	s.frames[v] = frame
}

// Untrack forgets a view.
func (s *Stage) Untrack(v View) {
	delete(s.frames, v)
}

// FrameOf implements Container.
func (s *Stage) FrameOf(v View) (Rect, bool) {
	r, ok := s.frames[v]
	return r, ok
}

// Attach implements Container.
func (s *Stage) Attach(l Layer) {
	for _, a := range s.layers {
		if a == l {
			return
		}
	}
	s.layers = append(s.layers, l)
}

// Detach implements Container.
func (s *Stage) Detach(l Layer) {
	for i, a := range s.layers {
		if a == l {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			return
		}
	}
}

// Layers returns the attached layers, bottom first.
func (s *Stage) Layers() []Layer {
	return append([]Layer(nil), s.layers...)
}

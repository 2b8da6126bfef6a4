package popover

import (
	"math"
	"sync"
	"time"

	"github.com/esimov/popover/utils"
)

// Curve maps the linear progress of an animation to the animated value.
// Both ends are fixed: Ease(0) == 0 and Ease(1) == 1; values in between may
// leave the [0, 1] interval.
type Curve interface {
	Ease(t float32) float32
}

// Linear advances the value at constant speed.
type Linear struct{}

// Ease implements Curve.
func (Linear) Ease(t float32) float32 { return utils.Clamp(t, 0, 1) }

// EaseInOut accelerates at the beginning and decelerates at the end.
type EaseInOut struct{}

// Ease implements Curve.
func (EaseInOut) Ease(t float32) float32 {
	t = utils.Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// Spring is a damped harmonic oscillator settling in the animation duration.
// Damping is the damping ratio: values below 1 overshoot the target.
// Velocity is the initial velocity, a value of 1 corresponding to the total
// animation distance traversed over the animation duration.
type Spring struct {
	Damping  float32
	Velocity float32
}

// Ease implements Curve.
func (s Spring) Ease(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	zeta := math.Max(float64(s.Damping), 0.05)
	// The natural frequency is chosen so that the oscillation envelope has
	// decayed to less than 0.1% of the distance at the end of the animation.
	omega := math.Min(math.Max(12, 7/zeta), 80)
	v := float64(s.Velocity)
	x := float64(t)

	var d float64
	if zeta < 1 {
		wd := omega * math.Sqrt(1-zeta*zeta)
		b := (v - zeta*omega) / wd
		d = math.Exp(-zeta*omega*x) * (-math.Cos(wd*x) + b*math.Sin(wd*x))
	} else {
		d = math.Exp(-omega*x) * (-1 + (v-omega)*x)
	}
	return float32(1 + d)
}

// Animation is a numeric transition driven by an Animator.
type Animation struct {
	Duration time.Duration
	Curve    Curve
	// Step receives the eased progress each time the animation advances.
	Step func(v float32)
	// Done is called once the animation ran to completion.
	Done func()
}

// Cancel stops a scheduled animation. The completion callback of a cancelled
// animation is never called.
type Cancel func()

// Animator schedules animations on the host animation runtime.
type Animator interface {
	Animate(a Animation) Cancel
}

type track struct {
	anim      Animation
	start     time.Time
	started   bool
	cancelled bool
}

// Timeline is an Animator advanced explicitly with the host frame time.
type Timeline struct {
	mu     sync.Mutex
	tracks []*track
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Animate implements Animator. The animation starts at the next Advance call.
func (tl *Timeline) Animate(a Animation) Cancel {
	if a.Curve == nil {
		a.Curve = Linear{}
	}
	tr := &track{anim: a}

	tl.mu.Lock()
	tl.tracks = append(tl.tracks, tr)
	tl.mu.Unlock()

	return func() {
		tl.mu.Lock()
		defer tl.mu.Unlock()

		tr.cancelled = true
	}
}

// Active reports whether some animation is still running.
func (tl *Timeline) Active() bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	for _, tr := range tl.tracks {
		if !tr.cancelled {
			return true
		}
	}
	return false
}

// Advance moves every running animation to the given time, calling the step
// functions and the completion callbacks of the finished animations.
// Callbacks are invoked without holding the timeline lock, so they may
// schedule or cancel animations.
func (tl *Timeline) Advance(now time.Time) {
	tl.mu.Lock()
	pending := tl.tracks
	tl.tracks = nil
	tl.mu.Unlock()

	var running []*track
	for _, tr := range pending {
		if tl.cancelled(tr) {
			continue
		}
		if !tr.started {
			tr.start = now
			tr.started = true
		}
		t := float32(1)
		if d := tr.anim.Duration; d > 0 {
			t = utils.Clamp(float32(now.Sub(tr.start))/float32(d), 0, 1)
		}
		if tr.anim.Step != nil {
			tr.anim.Step(tr.anim.Curve.Ease(t))
		}
		if t < 1 {
			running = append(running, tr)
			continue
		}
		// A step function may have cancelled its own animation.
		if !tl.cancelled(tr) && tr.anim.Done != nil {
			tr.anim.Done()
		}
	}

	tl.mu.Lock()
	tl.tracks = append(running, tl.tracks...)
	tl.mu.Unlock()
}

func (tl *Timeline) cancelled(tr *track) bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	return tr.cancelled
}

package main

import (
	"log"
	"time"

	"gioui.org/f32"
	"github.com/esimov/popover"
	"github.com/esimov/popover/tui"
	"github.com/esimov/popover/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// button is a clickable label of the terminal demo.
type button struct {
	label string
	view  *popover.Box
	// x and y are the label position as a fraction of the screen size.
	x, y float32
}

// runTerminal shows popovers anchored to labels spread over the terminal.
// Clicking a label shows a popover, q quits.
func runTerminal(opts []popover.Option) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := scr.Init(); err != nil {
		return err
	}
	defer scr.Fini()
	scr.EnableMouse()

	tl := popover.NewTimeline()
	host := tui.New(scr, tl)

	buttons := []*button{
		{label: "[ top left ]", x: 0.1, y: 0.1},
		{label: "[ top right ]", x: 0.9, y: 0.1},
		{label: "[ center ]", x: 0.5, y: 0.5},
		{label: "[ bottom ]", x: 0.5, y: 0.9},
	}
	for _, b := range buttons {
		b.view = &popover.Box{W: float32(runewidth.StringWidth(b.label)), H: 1}
	}

	// Cells are twice as high as wide, so the geometry is scaled down.
	opts = append([]popover.Option{
		popover.ArrowSize(f32.Pt(2, 1)),
		popover.CornerRadius(0),
		popover.SideEdge(1),
		popover.PlacementMode(popover.Auto),
	}, opts...)

	var current *popover.Popover
	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event)
	go pumpEvents(scr, events, done)

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	draw := func() {
		scr.Clear()
		w, h := scr.Size()
		for _, b := range buttons {
			bw := int(b.view.W)
			x := utils.Clamp(int(float32(w)*b.x)-bw/2, 0, w-bw)
			y := utils.Clamp(int(float32(h)*b.y), 0, h-1)
			host.Track(b.view, popover.MakeRect(float32(x), float32(y), float32(x+bw), float32(y+1)))
			for _, r := range b.label {
				scr.SetContent(x, y, r, nil, tcell.StyleDefault.Bold(true))
				x += runewidth.RuneWidth(r)
			}
		}
		host.Draw(time.Now())
		scr.Show()
	}

	draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if host.HandleEvent(ev) {
				continue
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
			case *tcell.EventMouse:
				if ev.Buttons()&tcell.Button1 == 0 {
					continue
				}
				if current != nil && current.State() != popover.Unattached {
					continue
				}
				x, y := ev.Position()
				pt := f32.Pt(float32(x)+0.5, float32(y)+0.5)
				for _, b := range buttons {
					if r, ok := host.FrameOf(b.view); ok && r.Contains(pt) {
						current = popover.New(tl, opts...)
						showFrom(current, tui.NewText(" Shown from\n "+b.label+" "), b.view, host)
						break
					}
				}
			}
			draw()
		case <-ticker.C:
			if host.Animating() {
				draw()
			}
		}
	}
}

// pumpEvents forwards the screen events to the events channel until the
// screen gets finalized or the done channel is closed.
func pumpEvents(scr tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)

	for {
		ev := scr.PollEvent()
		if ev == nil {
			return
		}
		select {
		case <-done:
			return
		case events <- ev:
		}
	}
}

// showFrom shows the popover pointing at the view and logs the reason it
// could not be shown.
func showFrom(p *popover.Popover, content, view popover.View, c popover.Container) bool {
	if err := p.ShowFromView(content, view, c); err != nil {
		log.Printf(utils.DecorateText("unable to show the popover: %v\n", utils.ErrorMessage), err)
		return false
	}
	return true
}

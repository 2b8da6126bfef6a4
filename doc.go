/*
Package popover implements a popover bubble: a rounded panel with a triangular
arrow pointing at an anchor, shown over a dimmed, blurred or highlighted backdrop
and animated in and out of its container.

The package is split in a pure part, computing where the bubble goes and what it
looks like, and host bindings drawing it:

  - ComputeFrame, ResolvePlacement and AnchorPoint place the bubble around its anchor.
  - BuildOutline traces the bubble contour with its arrow notch.
  - Popover drives the show and dismiss lifecycle through an Animator.
  - Window draws the attached layers with Gio, Renderer rasterizes them into
    images and the tui package draws them on a terminal.

A minimal use, with a container keeping track of the view frames:

	stage := popover.NewStage(f32.Pt(640, 480))
	button := &popover.Box{W: 120, H: 40}
	stage.Track(button, popover.MakeRect(260, 220, 380, 260))

	p := popover.New(popover.NewTimeline(), popover.PlacementMode(popover.Auto))
	if err := p.ShowFromView(&popover.Box{W: 220, H: 90}, button, stage); err != nil {
		log.Fatal(err)
	}

The command line interface renders snapshots and animation frames, opens a
preview window or runs a terminal demo. To check the supported flags type:

	$ popover --help
*/
package popover

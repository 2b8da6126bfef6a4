package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"gioui.org/app"
	"gioui.org/f32"
	"github.com/esimov/popover"
	"github.com/esimov/popover/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┌─┐┌─┐┌─┐┬  ┬┌─┐┬─┐
├─┘│ │├─┘│ │└┐┌┘├┤ ├┬┘
┴  └─┘┴  └─┘ └┘ └─┘┴└─

Popover bubble renderer.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	configFile  = flag.String("config", "", "YAML file with the popover options")
	source      = flag.String("in", "", "Backdrop image or directory of images (a plain background is used when empty)")
	destination = flag.String("out", pipeName, "Destination image, or directory when rendering frames or a source directory")
	width       = flag.Int("width", 640, "Canvas width")
	height      = flag.Int("height", 480, "Canvas height")
	background  = flag.String("bg", "#d8dee9", "Canvas background color")
	anchor      = flag.String("source", "", "Source view rectangle as x,y,w,h (defaults to a centered button)")
	contentFile = flag.String("content", "", "Content image shown inside the bubble")
	contentSize = flag.String("content-size", "220x90", "Content size when no content image is provided")
	dialog      = flag.Bool("dialog", false, "Show the popover as a dialog")
	frames      = flag.Bool("frames", false, "Render the show and dismiss animation frames")
	fps         = flag.Int("fps", 30, "Frames per second of the rendered animation")
	stackBlur   = flag.Bool("stackblur", false, "Use the stack blur algorithm for blurred overlays")
	preview     = flag.Bool("preview", false, "Open the preview window")
	terminal    = flag.Bool("term", false, "Run the terminal demo")
	workers     = flag.Int("workers", runtime.NumCPU(), "Number of files encoded concurrently")

	// Popover option flags, applied over the config file.
	placement   = flag.String("placement", "down", "Placement: up, down, left, right or auto")
	arrowWidth  = flag.Float64("arrow-width", 16, "Arrow width")
	arrowHeight = flag.Float64("arrow-height", 10, "Arrow height")
	radius      = flag.Float64("radius", 6, "Corner radius")
	sideEdge    = flag.Float64("side-edge", 20, "Margin kept from the canvas edges")
	bubble      = flag.String("bubble", "#ffffff", "Bubble color")
	overlay     = flag.String("overlay", "#00000033", "Overlay color")
	blur        = flag.String("blur", "none", "Overlay blur style: none, extra-light, light, dark, regular or prominent")
	highlight   = flag.Bool("highlight", false, "Cut a hole around the source view in the overlay")
	noOverlay   = flag.Bool("no-overlay", false, "Hide the overlay")
	animIn      = flag.Duration("in-duration", 600*time.Millisecond, "Entrance animation duration")
	animOut     = flag.Duration("out-duration", 300*time.Millisecond, "Exit animation duration")
	damping     = flag.Float64("damping", 0.7, "Spring damping ratio of the entrance animation")
	velocity    = flag.Float64("velocity", 3, "Spring initial velocity of the entrance animation")
)

// spinner used to instantiate and call the progress indicator.
var spinner *utils.Spinner

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	opts, err := collectOptions()
	if err != nil {
		log.Fatalf(utils.DecorateText("%v\n", utils.ErrorMessage), err)
	}

	switch {
	case *preview:
		go func() {
			if err := popover.NewPreview(*width, *height, opts...).Run(); err != nil {
				log.Fatalf(utils.DecorateText("preview error: %v\n", utils.ErrorMessage), err)
			}
			os.Exit(0)
		}()
		app.Main()
	case *terminal:
		if err := runTerminal(opts); err != nil {
			log.Fatalf(utils.DecorateText("terminal error: %v\n", utils.ErrorMessage), err)
		}
	default:
		now := time.Now()
		if err := render(opts); err != nil {
			printStatus(*destination, err)
			os.Exit(1)
		}
		printStatus(*destination, nil)
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
}

// collectOptions merges the config file options with the flags set on the command line.
func collectOptions() ([]popover.Option, error) {
	var file options
	if *configFile != "" {
		o, err := loadOptions(*configFile)
		if err != nil {
			return nil, err
		}
		file = o
	}
	return file.merge(flagOptions()).popoverOptions()
}

// flagOptions returns the options of the flags explicitly set.
func flagOptions() options {
	var o options
	f32p := func(v float64) *float32 {
		f := float32(v)
		return &f
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "placement":
			o.Placement = placement
		case "arrow-width":
			o.ArrowWidth = f32p(*arrowWidth)
		case "arrow-height":
			o.ArrowHeight = f32p(*arrowHeight)
		case "radius":
			o.CornerRadius = f32p(*radius)
		case "side-edge":
			o.SideEdge = f32p(*sideEdge)
		case "bubble":
			o.BubbleColor = bubble
		case "overlay":
			o.OverlayColor = overlay
		case "blur":
			o.OverlayBlur = blur
		case "highlight":
			o.HighlightSourceView = highlight
		case "no-overlay":
			show := !*noOverlay
			o.ShowOverlay = &show
		case "in-duration":
			o.AnimationIn = animIn
		case "out-duration":
			o.AnimationOut = animOut
		case "damping":
			o.SpringDamping = f32p(*damping)
		case "velocity":
			o.SpringVelocity = f32p(*velocity)
		}
	})
	return o
}

// scene holds what a rendered popover is made of.
type scene struct {
	backdrop image.Image
	content  image.Image
	stage    *popover.Stage
	source   *popover.Box
	timeline *popover.Timeline
	popover  *popover.Popover
}

func newScene(opts []popover.Option, backdrop string) (*scene, error) {
	s := &scene{timeline: popover.NewTimeline()}

	if backdrop != "" {
		img, err := popover.DecodeImage(backdrop)
		if err != nil {
			return nil, err
		}
		s.backdrop = img
	} else {
		bg, err := utils.HexToRGBA(*background)
		if err != nil {
			return nil, fmt.Errorf("invalid background color: %w", err)
		}
		s.backdrop = &image.Uniform{C: bg}
	}
	size := image.Pt(*width, *height)
	if backdrop != "" {
		size = s.backdrop.Bounds().Size()
	}
	s.stage = popover.NewStage(f32.Pt(float32(size.X), float32(size.Y)))

	if *contentFile != "" {
		img, err := popover.DecodeImage(*contentFile)
		if err != nil {
			return nil, err
		}
		s.content = img
	} else {
		var cw, ch int
		if _, err := fmt.Sscanf(*contentSize, "%dx%d", &cw, &ch); err != nil {
			return nil, fmt.Errorf("invalid content size %q: %w", *contentSize, err)
		}
		img := image.NewNRGBA(image.Rect(0, 0, cw, ch))
		fill(img, color.NRGBA{R: 0xec, G: 0xef, B: 0xf4, A: 0xff})
		s.content = img
	}

	frame := popover.MakeRect(float32(size.X)/2-60, float32(size.Y)/2-20, float32(size.X)/2+60, float32(size.Y)/2+20)
	if *anchor != "" {
		var x, y, w, h float32
		if _, err := fmt.Sscanf(*anchor, "%f,%f,%f,%f", &x, &y, &w, &h); err != nil {
			return nil, fmt.Errorf("invalid source rectangle %q: %w", *anchor, err)
		}
		frame = popover.MakeRect(x, y, x+w, y+h)
	}
	s.source = &popover.Box{W: frame.Dx(), H: frame.Dy()}
	s.stage.Track(s.source, frame)

	s.popover = popover.New(s.timeline, opts...)
	return s, nil
}

func (s *scene) show() error {
	cs := s.content.Bounds().Size()
	view := &popover.Box{W: float32(cs.X), H: float32(cs.Y)}
	if *dialog {
		return s.popover.ShowAsDialog(view, s.stage)
	}
	return s.popover.ShowFromView(view, s.source, s.stage)
}

// render draws the popover once shown, or every frame of its animation.
// A source directory renders one snapshot per backdrop image it contains.
func render(opts []popover.Option) error {
	renderer := popover.NewRenderer()
	if *stackBlur {
		renderer.Blurrer = popover.StackBlur{}
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ POPOVER", utils.StatusMessage),
		utils.DecorateText("is rendering the frames...", utils.DefaultMessage))
	spinner = utils.NewSpinner(os.Stderr, spinnerText, 200*time.Millisecond, true)

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		os.Exit(1)
	}()

	spinner.Start()
	defer spinner.Stop()

	if *source != "" {
		fs, err := os.Stat(*source)
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		if fs.IsDir() {
			if *destination == pipeName {
				return errors.New("a destination directory is required for a source directory")
			}
			return renderDir(renderer, opts, *source, *destination, *workers)
		}
	}

	s, err := newScene(opts, *source)
	if err != nil {
		return err
	}
	if err := s.show(); err != nil {
		return err
	}

	if !*frames {
		dst, err := output(*destination)
		if err != nil {
			return err
		}
		defer dst.Close()
		return s.snapshot(renderer, dst)
	}

	if err := os.MkdirAll(*destination, 0755); err != nil {
		return fmt.Errorf("unable to create the destination directory: %w", err)
	}
	n, err := s.renderFrames(renderer, *destination, *fps, *workers, func(n int) {
		spinner.SetMessage(fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ POPOVER", utils.StatusMessage),
			utils.DecorateText(fmt.Sprintf("is rendering frame %d...", n), utils.DefaultMessage)))
	})
	if err != nil {
		return err
	}
	spinner.StopMsg = fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ POPOVER", utils.StatusMessage),
		utils.DecorateText(fmt.Sprintf("rendered %d frames ✔", n), utils.DefaultMessage))
	return nil
}

// snapshot encodes the popover once its entrance animation completed.
func (s *scene) snapshot(r *popover.Renderer, w io.Writer) error {
	start := time.Now()
	s.timeline.Advance(start)
	s.timeline.Advance(start.Add(s.popover.Config().AnimationIn))

	return popover.EncodeImage(w, s.draw(r))
}

func (s *scene) draw(r *popover.Renderer) *image.NRGBA {
	size := s.stage.Size()
	dst := image.NewNRGBA(image.Rect(0, 0, int(size.X), int(size.Y)))
	r.Render(dst, s.backdrop, s.popover, s.content)
	return dst
}

// output returns the writer of the destination path.
func output(out string) (io.WriteCloser, error) {
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, nil
	}
	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return f, nil
}

func fill(img *image.NRGBA, c color.NRGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// printStatus displays the relevant information about the rendering process.
func printStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr,
			utils.DecorateText("\nError rendering the popover: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		return
	}
	if fname != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe popover has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/esimov/popover"
	"github.com/esimov/popover/utils"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// validExtensions are the backdrop image types rendered from a directory.
var validExtensions = []string{".jpg", ".png", ".jpeg", ".bmp"}

// result holds the destination of an encoded image and the error encountered, if any.
type result struct {
	path string
	err  error
}

// frame is a rendered animation frame waiting to be encoded.
type frame struct {
	path string
	img  *image.NRGBA
}

func workerCount(n int) int {
	if n <= 0 || n > maxWorkers {
		return runtime.NumCPU()
	}
	return n
}

// renderDir renders a snapshot over every backdrop image found in the src
// directory tree and saves them as png files into the dst directory.
func renderDir(r *popover.Renderer, opts []popover.Option, src, dst string, workers int) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("unable to create the destination directory: %w", err)
	}
	workers = workerCount(workers)

	done := make(chan interface{})
	defer close(done)

	paths, errc := walkDir(done, src, validExtensions)
	ch := make(chan result)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			consumer(r, opts, dst, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var err error
	for res := range ch {
		if res.err != nil {
			err = res.err
		}
		printStatus(res.path, res.err)
	}
	if werr := <-errc; werr != nil && err == nil {
		err = werr
	}
	return err
}

// consumer reads the backdrop paths from the paths channel and renders a snapshot over each of them.
func consumer(
	r *popover.Renderer,
	opts []popover.Option,
	dest string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".png"
		out := filepath.Join(dest, name)
		err := snapshotFile(r, opts, src, out)

		select {
		case <-done:
			return
		case res <- result{path: out, err: err}:
		}
	}
}

// snapshotFile renders the popover over the backdrop image and saves it to out.
// The renderer is only read, so it is shared between the workers.
func snapshotFile(r *popover.Renderer, opts []popover.Option, backdrop, out string) error {
	s, err := newScene(opts, backdrop)
	if err != nil {
		return err
	}
	if err := s.show(); err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	defer f.Close()

	if err := s.snapshot(r, f); err != nil {
		os.Remove(out)
		return err
	}
	return nil
}

// renderFrames advances the animation frame by frame at the given rate,
// dismissing the popover once shown. The frames are rendered in order and
// encoded concurrently. progress, if not nil, receives the number of frames
// rendered so far. It returns the number of frames rendered.
func (s *scene) renderFrames(r *popover.Renderer, dir string, fps, workers int, progress func(n int)) (int, error) {
	if fps <= 0 {
		fps = 30
	}
	step := time.Second / time.Duration(fps)
	workers = workerCount(workers)

	jobs := make(chan frame, workers)
	res := make(chan result)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for f := range jobs {
				res <- result{path: f.path, err: writePNG(f.path, f.img)}
			}
		}()
	}
	go func() {
		defer close(res)
		wg.Wait()
	}()

	errc := make(chan error, 1)
	go func() {
		var err error
		for out := range res {
			if out.err != nil && err == nil {
				err = out.err
			}
		}
		errc <- err
	}()

	n := 0
	now := time.Now()
	for dismissed := false; ; n++ {
		s.timeline.Advance(now)
		jobs <- frame{
			path: filepath.Join(dir, fmt.Sprintf("frame_%04d.png", n)),
			img:  s.draw(r),
		}
		if progress != nil {
			progress(n + 1)
		}
		if s.popover.State() == popover.Shown && !dismissed {
			dismissed = true
			s.popover.Dismiss()
		}
		if s.popover.State() == popover.Unattached {
			break
		}
		now = now.Add(step)
	}
	close(jobs)

	return n + 1, <-errc
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the frame file: %w", err)
	}
	if err := popover.EncodeImage(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each supported image to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() || !utils.Contains(srcExts, strings.ToLower(filepath.Ext(f.Name()))) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// Stack blur, as described at
// http://incubator.quasimondo.com/processing/fast_blur_deluxe.php
// The kernel is a triangle of 2*radius+1 taps, applied on rows then on columns.

package popover

import (
	"image"
)

// stackBlur returns a blurred copy of src.
func stackBlur(src *image.NRGBA, radius int) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	if radius < 1 {
		return dst
	}

	width, height := dst.Bounds().Dx(), dst.Bounds().Dy()
	if width == 0 || height == 0 {
		return dst
	}
	line := make([]uint32, width+height)

	for y := 0; y < height; y++ {
		row := y * dst.Stride
		for c := 0; c < 4; c++ {
			blurLine(dst.Pix, row+c, 4, width, radius, line)
		}
	}
	for x := 0; x < width; x++ {
		for c := 0; c < 4; c++ {
			blurLine(dst.Pix, x*4+c, dst.Stride, height, radius, line)
		}
	}
	return dst
}

// blurLine blurs n samples of pix starting at off and spaced by step.
// Samples outside of the line repeat the edge values.
func blurLine(pix []uint8, off, step, n, radius int, buf []uint32) {
	for i := 0; i < n; i++ {
		buf[i] = uint32(pix[off+i*step])
	}
	at := func(i int) uint32 {
		if i < 0 {
			i = 0
		} else if i >= n {
			i = n - 1
		}
		return buf[i]
	}

	var sum, out, in uint32
	for j := -radius; j <= radius; j++ {
		w := radius + 1 - j
		if j < 0 {
			w = radius + 1 + j
		}
		sum += at(j) * uint32(w)
		if j <= 0 {
			out += at(j)
		} else {
			in += at(j)
		}
	}

	// The triangle weights sum up to (radius+1)².
	div := uint32((radius + 1) * (radius + 1))
	for i := 0; i < n; i++ {
		pix[off+i*step] = uint8((sum + div/2) / div)

		sum = sum - out + in + at(i+radius+1)
		out = out - at(i-radius) + at(i+1)
		in = in - at(i+1) + at(i+radius+1)
	}
}

// Package display holds the off-screen framebuffer drawn each cycle and the
// sinks that push it to a physical or simulated screen.
package display

import (
	"fmt"
	"image"
	"sync"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Frame is a monochrome off-screen buffer laid out like SSD1306 GDDRAM: one
// byte per 8 vertical pixels.
type Frame struct {
	img *image1bit.VerticalLSB
}

// NewFrame allocates a cleared width x height frame.
func NewFrame(width, height int) *Frame {
	return &Frame{img: image1bit.NewVerticalLSB(image.Rect(0, 0, width, height))}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.img.Rect.Dx() }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.img.Rect.Dy() }

// Image exposes the frame to image-based drivers.
func (f *Frame) Image() image.Image { return f.img }

// Bytes returns the raw page-ordered buffer.
func (f *Frame) Bytes() []byte { return f.img.Pix }

// Clear turns every pixel off.
func (f *Frame) Clear() {
	for i := range f.img.Pix {
		f.img.Pix[i] = 0
	}
}

// Set writes one pixel. Coordinates outside the frame are ignored.
func (f *Frame) Set(x, y int, on bool) {
	if !(image.Point{X: x, Y: y}).In(f.img.Rect) {
		return
	}
	f.img.SetBit(x, y, image1bit.Bit(on))
}

// Pixel reports whether the pixel at x, y is on.
func (f *Frame) Pixel(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(f.img.Rect) {
		return false
	}
	return bool(f.img.BitAt(x, y))
}

// DrawRect draws a width x height rectangle whose top-left corner is at
// (left, top). When filled is false only the one-pixel outline is drawn.
// Parts outside the frame are clipped.
func (f *Frame) DrawRect(top, left, width, height int, filled, on bool) {
	if width <= 0 || height <= 0 {
		return
	}
	right := left + width - 1
	bottom := top + height - 1
	if filled {
		for y := top; y <= bottom; y++ {
			for x := left; x <= right; x++ {
				f.Set(x, y, on)
			}
		}
		return
	}
	for x := left; x <= right; x++ {
		f.Set(x, top, on)
		f.Set(x, bottom, on)
	}
	for y := top; y <= bottom; y++ {
		f.Set(left, y, on)
		f.Set(right, y, on)
	}
}

// Clone returns an independent copy of the frame.
func (f *Frame) Clone() *Frame {
	c := NewFrame(f.Width(), f.Height())
	copy(c.img.Pix, f.img.Pix)
	return c
}

// Lit counts the pixels that are on.
func (f *Frame) Lit() int {
	n := 0
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			if f.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

// Sink receives a finished frame and pushes it to a screen.
type Sink interface {
	Flush(f *Frame) error
}

// Recorder is a Sink keeping a copy of the last flushed frame.
type Recorder struct {
	mu      sync.Mutex
	last    *Frame
	flushes int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Flush(f *Frame) error {
	if f == nil {
		return fmt.Errorf("flush: nil frame")
	}
	c := f.Clone()
	r.mu.Lock()
	r.last = c
	r.flushes++
	r.mu.Unlock()
	return nil
}

// Last returns the most recently flushed frame, or nil.
func (r *Recorder) Last() *Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Flushes returns the number of frames received.
func (r *Recorder) Flushes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushes
}

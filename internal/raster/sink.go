package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/san-kum/constellate/internal/render"
)

// Background is the backdrop frames are flattened onto.
var Background = color.RGBA{R: 10, G: 10, B: 10, A: 255}

var ErrNotAttached = errors.New("raster: no surface attached")

// Sink is a headless host. It accepts a raster Surface and turns its
// frames into PNG snapshots or an animated GIF.
type Sink struct {
	surface *Surface
	frames  []*image.Paletted
	delays  []int
	delay   int
}

// NewSink records GIF frames shown for delay hundredths of a second.
func NewSink(delay int) *Sink {
	if delay <= 0 {
		delay = 2
	}
	return &Sink{delay: delay}
}

func (k *Sink) Attach(s render.Surface) error {
	rs, ok := s.(*Surface)
	if !ok {
		return fmt.Errorf("raster sink cannot hold %T", s)
	}
	k.surface = rs
	return nil
}

// Capture appends the current frame to the recording.
func (k *Sink) Capture() error {
	if k.surface == nil {
		return ErrNotAttached
	}
	img := k.surface.Flatten(Background)
	p := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.Draw(p, p.Bounds(), img, img.Bounds().Min, draw.Src)
	k.frames = append(k.frames, p)
	k.delays = append(k.delays, k.delay)
	return nil
}

func (k *Sink) Frames() int { return len(k.frames) }

func (k *Sink) EncodeGIF(w io.Writer) error {
	if len(k.frames) == 0 {
		return errors.New("raster: no frames captured")
	}
	return gif.EncodeAll(w, &gif.GIF{Image: k.frames, Delay: k.delays, LoopCount: 0})
}

// EncodePNG writes the current frame.
func (k *Sink) EncodePNG(w io.Writer) error {
	if k.surface == nil {
		return ErrNotAttached
	}
	return png.Encode(w, k.surface.Flatten(Background))
}

package raster

import (
	"bytes"
	"image/gif"
	"image/png"
	"testing"
	"time"

	"github.com/san-kum/constellate/internal/anim"
	"github.com/san-kum/constellate/internal/field"
	"github.com/san-kum/constellate/internal/particle"
	"github.com/san-kum/constellate/internal/render/rendertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newField(t *testing.T, sink *Sink, q *anim.FrameQueue) *field.Field {
	t.Helper()
	cfg := field.Config{
		Width: 64, Height: 48, Count: 2,
		Size: 2, Color: "#ffffff", MaxLine: 40, LineWidth: 2,
		Host: sink,
	}
	f, err := field.New(cfg, NewSurface,
		field.WithScheduler(q),
		field.WithClock(anim.NewStepClock(time.Unix(0, 0), 40*time.Millisecond)),
		field.WithParticles([]particle.Particle{{X: 10, Y: 24, Speed: 50}, {X: 40, Y: 24, Speed: 50, Angle: 180}}))
	require.NoError(t, err)
	return f
}

func TestSurfaceDrawsMarkersAndLines(t *testing.T) {
	sink := NewSink(4)
	newField(t, sink, &anim.FrameQueue{})

	img := sink.surface.Image()
	_, _, _, a := img.At(10, 24).RGBA()
	assert.NotZero(t, a, "marker pixel should be painted")
	_, _, _, a = img.At(25, 24).RGBA()
	assert.NotZero(t, a, "line pixel should be painted")
	_, _, _, a = img.At(5, 5).RGBA()
	assert.Zero(t, a, "background should stay clear")
}

func TestSinkEncodesPNG(t *testing.T) {
	sink := NewSink(0)
	newField(t, sink, &anim.FrameQueue{})

	var buf bytes.Buffer
	require.NoError(t, sink.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestSinkRecordsGIF(t *testing.T) {
	sink := NewSink(4)
	q := &anim.FrameQueue{}
	newField(t, sink, q)

	for i := 0; i < 3; i++ {
		q.RunFrame()
		require.NoError(t, sink.Capture())
	}

	var buf bytes.Buffer
	require.NoError(t, sink.EncodeGIF(&buf))
	g, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, g.Image, 3)
	assert.Equal(t, []int{4, 4, 4}, g.Delay)
}

func TestSinkRejectsForeignSurface(t *testing.T) {
	sink := NewSink(1)
	assert.Error(t, sink.Attach(rendertest.New(1, 1)))
	assert.ErrorIs(t, sink.Capture(), ErrNotAttached)
	assert.Error(t, sink.EncodeGIF(&bytes.Buffer{}))
}

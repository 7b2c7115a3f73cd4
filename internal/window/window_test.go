package window

import (
	"testing"

	"github.com/san-kum/constellate/internal/anim"
	"github.com/san-kum/constellate/internal/render/rendertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRejectsForeignSurface(t *testing.T) {
	g := NewGame(&anim.FrameQueue{})
	err := g.Attach(rendertest.New(10, 10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot hold")
}

func TestGameNeedsSurface(t *testing.T) {
	g := NewGame(&anim.FrameQueue{})
	w, h := g.Layout(640, 480)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
	assert.Error(t, g.Update())
	assert.Error(t, Run(g, "constellate", 60))
}

func TestNewSurfaceRejectsEmpty(t *testing.T) {
	_, err := NewSurface(0, 10)
	assert.Error(t, err)
}

func TestOnSurfaceExcludesFarEdges(t *testing.T) {
	assert.True(t, onSurface(0, 0, 640, 480))
	assert.True(t, onSurface(639, 479, 640, 480))
	assert.False(t, onSurface(640, 100, 640, 480))
	assert.False(t, onSurface(100, 480, 640, 480))
	assert.False(t, onSurface(-1, 0, 640, 480))
}

package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/constellate/internal/particle"
	"github.com/san-kum/constellate/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSVGFrame(t *testing.T) {
	svg := NewSVG(100, 50, "#000000")
	r := render.Renderer{Color: render.MustParseColor("#efefef"), Size: 1, MaxLine: 20, LineWidth: 1.5}
	r.Render(svg, []particle.Particle{{X: 0, Y: 0}, {X: 10, Y: 0}})

	out := svg.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Equal(t, 1, strings.Count(out, "<line"))
	assert.Equal(t, 2, strings.Count(out, "<circle"))
	assert.Contains(t, out, `stroke="#efefef" stroke-opacity="0.502" stroke-width="1.50"`)
	assert.Contains(t, out, `width="100" height="50"`)
}

func TestSVGClearStartsNewFrame(t *testing.T) {
	svg := NewSVG(10, 10, "")
	r := render.Renderer{Color: render.MustParseColor("#fff"), Size: 1, MaxLine: 5, LineWidth: 1}
	r.Render(svg, []particle.Particle{{X: 1, Y: 1}})
	r.Render(svg, []particle.Particle{{X: 2, Y: 2}})

	out := svg.String()
	assert.Equal(t, 1, strings.Count(out, "<circle"))
	assert.Contains(t, out, `cx="2.00"`)
	assert.NotContains(t, out, "<rect")
}

func TestSVGWriteTo(t *testing.T) {
	svg := NewSVG(4, 4, "")
	var buf bytes.Buffer
	n, err := svg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.True(t, strings.HasSuffix(buf.String(), "</svg>\n"))
}

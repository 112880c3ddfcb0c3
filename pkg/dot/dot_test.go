package dot

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSvgPan(t *testing.T) {
	assert := assert.New(t)
	svg := `<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg">
<g id="graph0" class="graph"><title>g</title></g>
</svg>`

	out := SvgPan(svg)
	assert.True(strings.HasPrefix(out, `<svg width="100%" height="100%" xmlns=`))
	assert.Contains(out, `<g id="viewport" transform="scale(0.5,0.5) translate(0,0)"><g id="graph0"`)
	assert.Contains(out, `<script type="text/ecmascript"><![CDATA[`)
	assert.True(strings.HasSuffix(out, "</g></svg>"))
}

func TestSvgPan_notSvg(t *testing.T) {
	assert.Equal(t, "digraph {}", SvgPan("digraph {}"))
}

func TestRenderSVG(t *testing.T) {
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("graphviz not installed")
	}
	var buf bytes.Buffer
	require.NoError(t, RenderSVG(context.Background(), strings.NewReader(`digraph { a -> b }`), &buf))
	assert.Contains(t, buf.String(), `id="viewport"`)
}

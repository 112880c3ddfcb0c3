package dot

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"regexp"

	"github.com/google/pprof/third_party/svgpan"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNoGraphviz is returned when the graphviz `dot` binary is not on the PATH.
var ErrNoGraphviz = errors.New("graphviz 'dot' not found on PATH")

var (
	viewBox  = regexp.MustCompile(`<svg\s*width="[^"]+"\s*height="[^"]+"\s*viewBox="[^"]+"`)
	graphID  = regexp.MustCompile(`<g id="graph\d"`)
	svgClose = regexp.MustCompile(`</svg>`)
)

// SvgPan makes an SVG rendered by dot pannable and zoomable in a browser: the fixed size is
// replaced by 100%, and the graph is wrapped in a viewport group driven by the svgpan script
// (the same treatment pprof gives its graphs).
func SvgPan(svg string) string {
	if loc := viewBox.FindStringIndex(svg); loc != nil {
		svg = svg[:loc[0]] + `<svg width="100%" height="100%"` + svg[loc[1]:]
	}
	if loc := graphID.FindStringIndex(svg); loc != nil {
		svg = svg[:loc[0]] +
			`<script type="text/ecmascript"><![CDATA[` + svgpan.JSSource + `]]></script>` +
			`<g id="viewport" transform="scale(0.5,0.5) translate(0,0)">` +
			svg[loc[0]:]
	}
	if loc := svgClose.FindStringIndex(svg); loc != nil {
		svg = svg[:loc[0]] + `</g>` + svg[loc[0]:]
	}
	return svg
}

// Execute renders DOT source from input as SVG into output.
func Execute(ctx context.Context, input io.Reader, output io.Writer) error {
	path, err := exec.LookPath("dot")
	if err != nil {
		return ErrNoGraphviz
	}
	errBuff := new(bytes.Buffer)
	cmd := exec.CommandContext(ctx, path, "-Tsvg")
	cmd.Stdin = input
	cmd.Stdout = output
	cmd.Stderr = errBuff
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "could not run 'dot': %s", errBuff.String())
	}
	return nil
}

// RenderSVG renders DOT source into a pannable SVG.
func RenderSVG(ctx context.Context, input io.Reader, w io.Writer) error {
	out := new(bytes.Buffer)
	if err := Execute(ctx, input, out); err != nil {
		return err
	}
	zap.L().Named("dot").Debug("rendered svg", zap.Int("bytes", out.Len()))
	_, err := io.WriteString(w, SvgPan(out.String()))
	return err
}

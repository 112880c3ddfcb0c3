package plan

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dominikbraun/graph/draw"
	"github.com/klothoplatform/sesdomain/pkg/dot"
	"github.com/klothoplatform/sesdomain/pkg/records"
	"github.com/pkg/errors"
)

type Format string

const (
	FormatText Format = "text"
	FormatDOT  Format = "dot"
	FormatZone Format = "zone"
	// FormatSVG needs graphviz installed.
	FormatSVG Format = "svg"
)

var Formats = []Format{FormatText, FormatDOT, FormatZone, FormatSVG}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", errors.Errorf("unknown format %q (expected one of %v)", s, Formats)
}

// Write renders the plan in the given format.
func (p *Plan) Write(ctx context.Context, w io.Writer, f Format) error {
	switch f {
	case FormatText, "":
		return p.WriteText(w)
	case FormatDOT:
		return p.WriteDOT(w)
	case FormatZone:
		return p.WriteZone(w)
	case FormatSVG:
		return p.WriteSVG(ctx, w)
	}
	return errors.Errorf("unknown format %q", f)
}

// WriteText lists the steps in dependency order followed by the records the zone will hold.
func (p *Plan) WriteText(w io.Writer) error {
	order, err := p.Order()
	if err != nil {
		return err
	}
	pw := &errWriter{w: w}
	pw.printf("Email domain %s (environment %s) in zone %s\n\n", p.Names.SendDomain, p.Names.Environment, p.Zone)
	for i, step := range order {
		pw.printf("%2d. %s\n", i+1, step.Id)
		for _, k := range sortedKeys(step.Properties) {
			pw.printf("      %s: %s\n", k, step.Properties[k])
		}
		if step.Record != nil {
			pw.printf("      values: %s\n", strings.Join(step.Record.Values, ", "))
		}
		deps, err := p.Dependencies(step.Id)
		if err != nil {
			return err
		}
		if len(deps) > 0 {
			names := make([]string, len(deps))
			for j, d := range deps {
				names[j] = d.Name
			}
			pw.printf("      depends on: %s\n", strings.Join(names, ", "))
		}
	}
	pw.printf("\nRecords:\n")
	for _, r := range p.Records {
		pw.printf("  %-18s %s %d %s %s\n", r.Key, records.ExpandName(r.Name, p.Zone), r.TTL, r.Type, strings.Join(r.Values, ","))
	}
	return pw.err
}

func (p *Plan) WriteDOT(w io.Writer) error {
	return draw.DOT(p.Graph, w, draw.GraphAttribute("rankdir", "LR"))
}

// WriteSVG renders the dependency graph with graphviz.
func (p *Plan) WriteSVG(ctx context.Context, w io.Writer) error {
	var src bytes.Buffer
	if err := p.WriteDOT(&src); err != nil {
		return err
	}
	return dot.RenderSVG(ctx, &src, w)
}

// WriteZone writes the records as a zone-file fragment for the plan's zone.
func (p *Plan) WriteZone(w io.Writer) error {
	return records.WriteZone(w, p.Zone, p.Records)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortIds(ids []ResourceId) {
	sort.Slice(ids, func(i, j int) bool {
		return ResourceIdLess(ids[i], ids[j])
	})
}

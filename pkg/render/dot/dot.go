// Package dot renders a possibility library's title-reference graph -
// which schema can pull in which other schema - as a Graphviz DOT
// document, useful for spotting unreachable schemas or accidental cycles
// before ever running the generator.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-graphviz"

	"github.com/worldseedr/worldseedr/pkg/schema"
)

// ToDOT converts a Library's reference graph to Graphviz DOT format. Each
// schema is a node; each PossibilityChild reference (by Title for Known
// and Random children, by Source for Final children) becomes an edge.
func ToDOT(lib schema.Library) string {
	titles := make([]string, 0, len(lib))
	for title := range lib {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n\n")

	for _, title := range titles {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", title, fmtLabel(title, lib[title]))
	}

	buf.WriteString("\n")
	for _, title := range titles {
		for _, edge := range references(lib[title]) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", title, edge)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(title string, p schema.Possibility) string {
	return fmt.Sprintf("%s\n%s (%.0fx%.0f)", title, p.Contents.Mode, p.Width, p.Height)
}

// references lists the distinct titles p's children point at, in
// declaration order with duplicates removed.
func references(p schema.Possibility) []string {
	seen := make(map[string]bool)
	var out []string
	for _, child := range p.Contents.Children {
		target := child.Title
		if child.Type == schema.TypeFinal {
			target = child.Source
		}
		if target == "" || seen[target] {
			continue
		}
		seen[target] = true
		out = append(out, target)
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dotSrc string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dotSrc))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

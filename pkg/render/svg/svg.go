// Package svg renders a flat list of placed rectangles - the terminal
// output of a generation run - to an SVG document, independent of how
// those rectangles were produced.
package svg

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/worldseedr/worldseedr/pkg/geometry"
)

// Placement is one rectangle to draw: a title and the box it occupies.
type Placement struct {
	Title    string
	Position geometry.Position
}

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	showLabels bool
	stroke     string
	fill       string
	background string
}

// WithLabels draws each placement's title centered in its rectangle.
func WithLabels() Option { return func(r *renderer) { r.showLabels = true } }

// WithStroke sets the rectangle outline color. Default "black".
func WithStroke(color string) Option { return func(r *renderer) { r.stroke = color } }

// WithFill sets the rectangle fill color. Default "white".
func WithFill(color string) Option { return func(r *renderer) { r.fill = color } }

// WithBackground sets the document background color. Default "transparent".
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

func newRenderer(opts ...Option) renderer {
	r := renderer{stroke: "black", fill: "white", background: "transparent"}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Render draws placements to an SVG document whose frame runs from the
// origin to the largest Right and Top of any placement. Placements are sorted by title before drawing so output
// is stable across runs that place the same set in a different order.
func Render(placements []Placement, opts ...Option) []byte {
	r := newRenderer(opts...)

	sorted := slices.Clone(placements)
	slices.SortFunc(sorted, func(a, b Placement) int {
		return cmp.Compare(a.Title, b.Title)
	})

	width, height := frameSize(sorted)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", width, height, r.background)

	for _, p := range sorted {
		renderRect(&buf, r, p, height)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// frameSize returns the smallest width/height that contains every
// placement, treating each Position's left/bottom as offsets from the
// origin.
func frameSize(placements []Placement) (float64, float64) {
	var w, h float64
	for _, p := range placements {
		if p.Position.Right > w {
			w = p.Position.Right
		}
		if p.Position.Top > h {
			h = p.Position.Top
		}
	}
	return w, h
}

// renderRect draws p flipped into SVG's top-down coordinate space: our
// Position has Top as the larger y-value, SVG has y grow downward.
func renderRect(buf *bytes.Buffer, r renderer, p Placement, frameHeight float64) {
	x := p.Position.Left
	y := frameHeight - p.Position.Top
	w := p.Position.Width()
	h := p.Position.Height()

	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`+"\n",
		x, y, w, h, r.fill, r.stroke)

	if r.showLabels {
		cx := x + w/2
		cy := y + h/2
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-size="10">%s</text>`+"\n",
			cx, cy, escapeText(p.Title))
	}
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/mosaicflow/pkg/masonry"
)

// defaultColumnWidth is used when a snapshot carries no container width.
const defaultColumnWidth = 240.0

var palette = []string{"#5fafaf", "#87afd7", "#d7af5f", "#af87af", "#87af87", "#d78787"}

// Option configures SVG and Text rendering.
type Option func(*renderer)

type renderer struct {
	gap    float64
	labels map[string]string
	unit   float64
}

// WithGap sets the spacing between items and columns in the SVG.
func WithGap(gap float64) Option { return func(r *renderer) { r.gap = max(0, gap) } }

// WithLabels shows labels instead of item IDs.
func WithLabels(labels map[string]string) Option {
	return func(r *renderer) { r.labels = labels }
}

// WithLineHeight sets how much item height one text line stands for.
func WithLineHeight(unit float64) Option {
	return func(r *renderer) {
		if unit > 0 {
			r.unit = unit
		}
	}
}

func newRenderer(opts ...Option) renderer {
	r := renderer{gap: 4, unit: 40}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r renderer) label(id string) string {
	if l, ok := r.labels[id]; ok && l != "" {
		return l
	}
	return id
}

// SVG renders s as an SVG document.
func SVG(s masonry.Snapshot, opts ...Option) []byte {
	r := newRenderer(opts...)

	width := s.ContainerWidth
	if width <= 0 {
		width = defaultColumnWidth * float64(max(1, len(s.Columns)))
	}
	height := s.MaxHeight() + r.gap*float64(maxItems(s)+1)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	buf.WriteString(`  <style>.item text { font: 12px sans-serif; fill: #1c1c1c; }</style>` + "\n")

	x := 0.0
	for _, c := range s.Columns {
		colWidth := width * c.Share / 100
		fmt.Fprintf(&buf, `  <g class="%s" data-column="%d">`+"\n", html.EscapeString(s.ColumnClass), c.Index)
		y := r.gap
		for j, it := range c.Items {
			renderItem(&buf, r, it, x+r.gap/2, y, colWidth-r.gap, palette[(c.Index+j)%len(palette)])
			y += it.Height + r.gap
		}
		buf.WriteString("  </g>\n")
		x += colWidth
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderItem(buf *bytes.Buffer, r renderer, it masonry.ItemSnapshot, x, y, w float64, fill string) {
	id := html.EscapeString(it.ID)
	fmt.Fprintf(buf, `    <g class="item" id="item-%s">`+"\n", id)
	fmt.Fprintf(buf, `      <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s"/>`+"\n",
		x, y, max(0, w), it.Height, fill)
	if it.Height >= 16 {
		fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f">%s</text>`+"\n",
			x+6, y+14, html.EscapeString(r.label(it.ID)))
	}
	buf.WriteString("    </g>\n")
}

func maxItems(s masonry.Snapshot) int {
	n := 0
	for _, c := range s.Columns {
		n = max(n, len(c.Items))
	}
	return n
}

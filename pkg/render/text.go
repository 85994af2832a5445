package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mosaicflow/pkg/masonry"
)

var (
	columnStyle = lipgloss.NewStyle().PaddingRight(1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Text renders s as columns side by side within width terminal cells. Each
// item is a bordered box whose height follows the item height.
func Text(s masonry.Snapshot, width int, opts ...Option) string {
	r := newRenderer(opts...)
	n := max(1, len(s.Columns))
	inner := max(3, width/n-3) // border and padding take three cells

	cols := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		blocks := make([]string, 0, len(c.Items))
		for j, it := range c.Items {
			blocks = append(blocks, r.textItem(it, inner, palette[(c.Index+j)%len(palette)]))
		}
		footer := footerStyle.Render(truncate(fmt.Sprintf("%.0f", c.Height), inner+2))
		blocks = append(blocks, footer)
		cols[i] = columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (r renderer) textItem(it masonry.ItemSnapshot, inner int, color string) string {
	lines := max(1, int(math.Round(it.Height/r.unit)))
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Width(inner).
		Height(lines)
	return style.Render(truncate(r.label(it.ID), inner))
}

// truncate shortens s to at most n cells, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimSpace(string(runes)) + "…"
}

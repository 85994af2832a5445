package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mosaicflow/pkg/masonry"
)

func sample() masonry.Snapshot {
	return masonry.Snapshot{
		ContainerWidth: 480,
		ColumnClass:    "grid__col",
		Columns: []masonry.ColumnSnapshot{
			{Index: 0, Share: 50, Height: 140, Items: []masonry.ItemSnapshot{{ID: "a", Height: 100}, {ID: "c", Height: 40}}},
			{Index: 1, Share: 50, Height: 60, Items: []masonry.ItemSnapshot{{ID: "b&b", Height: 60}}},
		},
		Items: []string{"a", "b&b", "c"},
	}
}

func TestSVG(t *testing.T) {
	svg := string(SVG(sample(), WithGap(0), WithLabels(map[string]string{"a": "Alpha"})))

	checks := []string{
		`viewBox="0 0 480.0 140.0"`,
		`<g class="grid__col" data-column="0">`,
		`<g class="grid__col" data-column="1">`,
		`<rect x="0.0" y="0.0" width="240.0" height="100.0"`,
		`<rect x="0.0" y="100.0" width="240.0" height="40.0"`,
		`<rect x="240.0" y="0.0" width="240.0" height="60.0"`,
		`>Alpha</text>`,
		`id="item-b&amp;b"`,
	}
	for _, want := range checks {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q\n%s", want, svg)
		}
	}
	if strings.Count(svg, "<rect") != 3 {
		t.Errorf("SVG has %d rects, want 3", strings.Count(svg, "<rect"))
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not terminated")
	}
}

func TestSVGWithoutWidth(t *testing.T) {
	s := sample()
	s.ContainerWidth = 0
	svg := string(SVG(s, WithGap(0)))
	if !strings.Contains(svg, `viewBox="0 0 480.0 140.0"`) {
		t.Errorf("SVG should fall back to default column width:\n%s", svg)
	}
}

func TestText(t *testing.T) {
	out := Text(sample(), 40, WithLineHeight(20))

	for _, want := range []string{"a", "b&b", "c", "140", "60"} {
		if !strings.Contains(out, want) {
			t.Errorf("Text missing %q\n%s", want, out)
		}
	}
	if w := lipgloss.Width(out); w > 40 {
		t.Errorf("Text width = %d, want <= 40\n%s", w, out)
	}
	// a: 5 lines + 2 border, c: 2 + 2, footer 1.
	if h := lipgloss.Height(out); h != 12 {
		t.Errorf("Text height = %d, want 12\n%s", h, out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"overflowing", 6, "overf…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

package masonry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestColumnCount(t *testing.T) {
	tests := []struct {
		name     string
		width    float64
		minWidth float64
		want     int
	}{
		{"exact multiple", 720, 240, 3},
		{"just below multiple", 719, 240, 2},
		{"narrower than one item", 100, 240, 1},
		{"zero width", 0, 240, 1},
		{"zero min width", 720, 0, 1},
		{"fractional", 500.5, 250.25, 2},
		{"huge ratio", math.MaxFloat64, 1, maxColumns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := columnCount(tt.width, tt.minWidth); got != tt.want {
				t.Errorf("columnCount(%v, %v) = %d, want %d", tt.width, tt.minWidth, got, tt.want)
			}
		})
	}
}

func TestFillAllRoundRobin(t *testing.T) {
	m := newFake(720)
	items := m.items(1, 1, 1, 1, 1, 1, 1)

	var set columnSet
	set.converge(3)
	fillAll(items, &set)

	got := make([][]string, 0, 3)
	for _, c := range set.active() {
		var ids []string
		for _, it := range c.items {
			ids = append(ids, it.ID)
		}
		got = append(got, ids)
	}
	want := [][]string{{"i0", "i3", "i6"}, {"i1", "i4"}, {"i2", "i5"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fillAll mismatch (-want +got):\n%s", diff)
	}
}

func TestFillAllBalancedCounts(t *testing.T) {
	m := newFake(0)
	for k := 0; k <= 25; k++ {
		for n := 1; n <= 6; n++ {
			items := m.items(make([]float64, k)...)
			var set columnSet
			set.converge(n)
			fillAll(items, &set)

			lo, hi := k, 0
			for _, c := range set.active() {
				lo = min(lo, c.Len())
				hi = max(hi, c.Len())
			}
			if hi-lo > 1 {
				t.Errorf("k=%d n=%d: column sizes differ by %d", k, n, hi-lo)
			}
		}
	}
}

func TestFillAllIsIdempotent(t *testing.T) {
	m := newFake(0)
	items := m.items(3, 1, 4, 1, 5, 9, 2, 6)

	var set columnSet
	set.converge(3)
	fillAll(items, &set)
	first := assignment(set.active())
	fillAll(items, &set)
	second := assignment(set.active())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second fill differs (-first +second):\n%s", diff)
	}
}

func TestFillAllDrainsPendingColumns(t *testing.T) {
	m := newFake(0)
	items := m.items(1, 2, 3, 4, 5, 6, 7, 8)

	var set columnSet
	set.converge(4)
	fillAll(items, &set)

	if !set.converge(2) {
		t.Fatal("converge(2) reported no change")
	}
	if got := len(set.cols); got != 4 {
		t.Fatalf("pending columns deleted early: have %d columns, want 4", got)
	}
	if set.cols[3].Len() == 0 {
		t.Fatal("pending column lost its items before redistribution")
	}

	fillAll(items, &set)
	if got := len(set.cols); got != 2 {
		t.Fatalf("columns after fill = %d, want 2", got)
	}
	want := [][]string{{"i0", "i2", "i4", "i6"}, {"i1", "i3", "i5", "i7"}}
	if diff := cmp.Diff(want, assignment(set.active())); diff != "" {
		t.Errorf("assignment mismatch (-want +got):\n%s", diff)
	}
}

func assignment(cols []*Column) [][]string {
	out := make([][]string, len(cols))
	for i, c := range cols {
		ids := []string{}
		for _, it := range c.items {
			ids = append(ids, it.ID)
		}
		out[i] = ids
	}
	return out
}

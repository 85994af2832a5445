package masonry

import (
	"fmt"
	"testing"
)

// fakeMeasurer measures items by ID; unknown IDs measure as zero.
type fakeMeasurer struct {
	width   float64
	heights map[string]float64
}

func newFake(width float64) *fakeMeasurer {
	return &fakeMeasurer{width: width, heights: make(map[string]float64)}
}

func (f *fakeMeasurer) ContainerWidth() float64        { return f.width }
func (f *fakeMeasurer) ItemHeight(it *Item) float64    { return f.heights[it.ID] }
func (f *fakeMeasurer) ColumnHeight(c *Column) float64 { return f.sum(c) }

func (f *fakeMeasurer) sum(c *Column) float64 {
	var h float64
	for _, it := range c.items {
		h += f.heights[it.ID]
	}
	return h
}

// items declares heights and returns items named after their heights' order.
func (f *fakeMeasurer) items(heights ...float64) []*Item {
	out := make([]*Item, len(heights))
	for i, h := range heights {
		id := fmt.Sprintf("i%d", i)
		f.heights[id] = h
		out[i] = NewItem(id, nil)
	}
	return out
}

func (f *fakeMeasurer) columnHeights(e *Engine) []float64 {
	cols := e.columns.active()
	out := make([]float64, len(cols))
	for i, c := range cols {
		out[i] = f.sum(c)
	}
	return out
}

func mustNew(t *testing.T, m Measurer, items []*Item, opts Options) *Engine {
	t.Helper()
	e, err := New(m, items, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func opts(threshold float64, level bool) Options {
	o := DefaultOptions()
	o.Threshold = threshold
	o.LevelBottom = level
	return o
}

// checkPartition verifies every registry item sits in exactly one live column
// and that no pending columns survive.
func checkPartition(t *testing.T, e *Engine) {
	t.Helper()
	seen := make(map[string]int)
	for _, c := range e.columns.cols {
		if c.pending {
			t.Errorf("pending column %d survived an operation", c.index)
		}
		for _, it := range c.items {
			seen[it.ID]++
		}
	}
	for _, it := range e.registry.items {
		if seen[it.ID] != 1 {
			t.Errorf("item %s placed %d times, want 1", it.ID, seen[it.ID])
		}
		delete(seen, it.ID)
	}
	for id := range seen {
		t.Errorf("column holds unmanaged item %s", id)
	}
	if e.columns.count() < 1 {
		t.Errorf("column count = %d, want >= 1", e.columns.count())
	}
}

// Package measure provides Measurer implementations for masonry engines that
// do not sit on a live rendering surface: tests, the CLI and the HTTP service.
//
// [Fixed] answers from declared item heights and a settable container width.
// [Funcs] adapts plain functions, which is convenient when heights live in
// the caller's own data structures.
package measure

import (
	"math"
	"sync"

	"github.com/matzehuels/mosaicflow/pkg/masonry"
)

// Fixed measures items by declared heights. A column's height is the sum of
// its items' heights. Unknown items measure as NaN, which the engine rejects
// as a measurement error.
type Fixed struct {
	mu      sync.RWMutex
	width   float64
	heights map[*masonry.Item]float64
}

// NewFixed returns a Fixed measurer with the given container width.
func NewFixed(width float64) *Fixed {
	return &Fixed{width: width, heights: make(map[*masonry.Item]float64)}
}

// SetWidth changes the container width reported to the engine.
func (f *Fixed) SetWidth(width float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width = width
}

// Set declares the height of it.
func (f *Fixed) Set(it *masonry.Item, height float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heights[it] = height
}

// Forget drops the declared height of it.
func (f *Fixed) Forget(it *masonry.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.heights, it)
}

// Item creates an item with the given ID and declared height.
func (f *Fixed) Item(id string, height float64) *masonry.Item {
	it := masonry.NewItem(id, nil)
	f.Set(it, height)
	return it
}

// ContainerWidth implements masonry.Measurer.
func (f *Fixed) ContainerWidth() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.width
}

// ItemHeight implements masonry.Measurer.
func (f *Fixed) ItemHeight(it *masonry.Item) float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	h, ok := f.heights[it]
	if !ok {
		return math.NaN()
	}
	return h
}

// ColumnHeight implements masonry.Measurer.
func (f *Fixed) ColumnHeight(c *masonry.Column) float64 {
	return Sum(c, f.ItemHeight)
}

var _ masonry.Measurer = (*Fixed)(nil)

// Sum adds up the heights of a column's items.
func Sum(c *masonry.Column, height func(*masonry.Item) float64) float64 {
	var total float64
	for _, it := range c.Items() {
		total += height(it)
	}
	return total
}

// Funcs adapts functions to masonry.Measurer. A nil Column sums Item over
// the column's items.
type Funcs struct {
	Width  func() float64
	Item   func(*masonry.Item) float64
	Column func(*masonry.Column) float64
}

// ContainerWidth implements masonry.Measurer.
func (m Funcs) ContainerWidth() float64 { return m.Width() }

// ItemHeight implements masonry.Measurer.
func (m Funcs) ItemHeight(it *masonry.Item) float64 { return m.Item(it) }

// ColumnHeight implements masonry.Measurer.
func (m Funcs) ColumnHeight(c *masonry.Column) float64 {
	if m.Column != nil {
		return m.Column(c)
	}
	return Sum(c, m.Item)
}

var _ masonry.Measurer = Funcs{}

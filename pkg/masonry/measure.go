package masonry

import (
	"strconv"

	"github.com/matzehuels/mosaicflow/pkg/errors"
)

// Measurer supplies the sizes the engine lays out against. Implementations
// must return finite, non-negative values and must not mutate the layout.
//
// For leveling to terminate within its move budget, a column's height must
// grow and shrink by exactly the height of the item appended to or removed
// from it.
type Measurer interface {
	ContainerWidth() float64
	ItemHeight(it *Item) float64
	ColumnHeight(c *Column) float64
}

// checked validates every value read from a Measurer.
type checked struct {
	m Measurer
}

func (c checked) containerWidth() (float64, error) {
	w := c.m.ContainerWidth()
	if err := errors.ValidateMeasure("container width", w); err != nil {
		return 0, errors.Wrap(errors.ErrCodeMeasurement,
			&errors.MeasurementError{Subject: "container", Value: w}, "measure container")
	}
	return w, nil
}

func (c checked) itemHeight(it *Item) (float64, error) {
	h := c.m.ItemHeight(it)
	if err := errors.ValidateMeasure("item height", h); err != nil {
		return 0, errors.Wrap(errors.ErrCodeMeasurement,
			&errors.MeasurementError{Subject: "item", ID: it.ID, Value: h}, "measure item")
	}
	return h, nil
}

func (c checked) columnHeights(cols []*Column) ([]float64, error) {
	heights := make([]float64, len(cols))
	for i, col := range cols {
		h := c.m.ColumnHeight(col)
		if err := errors.ValidateMeasure("column height", h); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMeasurement,
				&errors.MeasurementError{Subject: "column", ID: strconv.Itoa(col.index), Value: h}, "measure column")
		}
		heights[i] = h
	}
	return heights, nil
}

// extremes returns the indices of the lowest and highest value, first
// occurrence winning ties.
func extremes(heights []float64) (lowest, highest int) {
	for i, h := range heights {
		if h < heights[lowest] {
			lowest = i
		}
		if h > heights[highest] {
			highest = i
		}
	}
	return lowest, highest
}

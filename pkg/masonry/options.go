package masonry

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaicflow/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultItemSelector selects every direct child of the container.
	DefaultItemSelector = "> *"

	// DefaultColumnClass tags generated columns.
	DefaultColumnClass = "mosaicflow__column"

	// DefaultMinItemWidth is the narrowest a column may become, in the
	// measurer's width unit.
	DefaultMinItemWidth = 240.0

	// DefaultThreshold is the smallest height-gap improvement worth a move.
	DefaultThreshold = 40.0
)

// =============================================================================
// Options
// =============================================================================

// Options configures an Engine. Start from [DefaultOptions]: the zero value
// disables leveling and has no usable MinItemWidth.
type Options struct {
	// ItemSelector names which elements of a container are items. The engine
	// does not interpret it; discovery code does.
	ItemSelector string `json:"item_selector,omitempty" toml:"item_selector" mapstructure:"item_selector"`

	// ColumnClass tags generated columns for the rendering side.
	ColumnClass string `json:"column_class,omitempty" toml:"column_class" mapstructure:"column_class"`

	// MinItemWidth determines the column count: floor(width / MinItemWidth).
	MinItemWidth float64 `json:"min_item_width" toml:"min_item_width" mapstructure:"min_item_width"`

	// Threshold is the minimum gap improvement required to move an item.
	Threshold float64 `json:"threshold" toml:"threshold" mapstructure:"threshold"`

	// LevelBottom enables the balancer. When false items stay where the
	// round-robin distribution or Add put them.
	LevelBottom bool `json:"level_bottom" toml:"level_bottom" mapstructure:"level_bottom"`

	// Runtime options (not serialized)
	Logger    *log.Logger `json:"-" toml:"-" mapstructure:"-"`
	Observers []Observer  `json:"-" toml:"-" mapstructure:"-"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		ItemSelector: DefaultItemSelector,
		ColumnClass:  DefaultColumnClass,
		MinItemWidth: DefaultMinItemWidth,
		Threshold:    DefaultThreshold,
		LevelBottom:  true,
	}
}

// Validate checks numeric ranges and fills empty string fields and the
// logger with defaults.
func (o *Options) Validate() error {
	if math.IsNaN(o.MinItemWidth) || math.IsInf(o.MinItemWidth, 0) || o.MinItemWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min item width must be a positive number, got %v", o.MinItemWidth)
	}
	if math.IsNaN(o.Threshold) || math.IsInf(o.Threshold, 0) || o.Threshold < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "threshold must be a non-negative number, got %v", o.Threshold)
	}
	if o.ItemSelector == "" {
		o.ItemSelector = DefaultItemSelector
	}
	if o.ColumnClass == "" {
		o.ColumnClass = DefaultColumnClass
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ColumnCount returns the number of columns these options produce for a
// container width.
func (o Options) ColumnCount(width float64) int {
	return columnCount(width, o.MinItemWidth)
}

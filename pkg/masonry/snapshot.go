package masonry

// =============================================================================
// Snapshot - Serializable Layout State
// =============================================================================

// Snapshot is a measured, serializable copy of an engine's placement. It is
// what renderers, caches and stores work with.
type Snapshot struct {
	ID             string           `json:"id,omitempty" bson:"_id,omitempty"`
	ContainerWidth float64          `json:"container_width" bson:"container_width"`
	MinItemWidth   float64          `json:"min_item_width" bson:"min_item_width"`
	Threshold      float64          `json:"threshold" bson:"threshold"`
	LevelBottom    bool             `json:"level_bottom" bson:"level_bottom"`
	ColumnClass    string           `json:"column_class,omitempty" bson:"column_class,omitempty"`
	Columns        []ColumnSnapshot `json:"columns" bson:"columns"`
	Items          []string         `json:"items" bson:"items"`
}

// ColumnSnapshot describes one column of a Snapshot.
type ColumnSnapshot struct {
	Index  int            `json:"index" bson:"index"`
	Share  float64        `json:"share" bson:"share"`
	Height float64        `json:"height" bson:"height"`
	Items  []ItemSnapshot `json:"items" bson:"items"`
}

// ItemSnapshot is a placed item with its measured height.
type ItemSnapshot struct {
	ID     string  `json:"id" bson:"id"`
	Height float64 `json:"height" bson:"height"`
}

// ColumnCount returns the number of columns in the snapshot.
func (s Snapshot) ColumnCount() int { return len(s.Columns) }

// MaxHeight returns the height of the tallest column.
func (s Snapshot) MaxHeight() float64 {
	var h float64
	for _, c := range s.Columns {
		h = max(h, c.Height)
	}
	return h
}

// Snapshot measures the current layout and returns a copy of it.
func (e *Engine) Snapshot() (Snapshot, error) {
	width, err := e.measure.containerWidth()
	if err != nil {
		return Snapshot{}, err
	}
	cols := e.columns.active()
	heights, err := e.measure.columnHeights(cols)
	if err != nil {
		return Snapshot{}, err
	}

	s := Snapshot{
		ContainerWidth: width,
		MinItemWidth:   e.opts.MinItemWidth,
		Threshold:      e.opts.Threshold,
		LevelBottom:    e.opts.LevelBottom,
		ColumnClass:    e.opts.ColumnClass,
		Columns:        make([]ColumnSnapshot, len(cols)),
		Items:          make([]string, 0, e.registry.len()),
	}
	for _, it := range e.registry.items {
		s.Items = append(s.Items, it.ID)
	}
	for i, c := range cols {
		cs := ColumnSnapshot{
			Index:  c.index,
			Share:  c.share,
			Height: heights[i],
			Items:  make([]ItemSnapshot, len(c.items)),
		}
		for j, it := range c.items {
			h, err := e.measure.itemHeight(it)
			if err != nil {
				return Snapshot{}, err
			}
			cs.Items[j] = ItemSnapshot{ID: it.ID, Height: h}
		}
		s.Columns[i] = cs
	}
	return s, nil
}

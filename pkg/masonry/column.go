package masonry

// Column is one vertical strip of the layout. It owns the placement order of
// its items, not the items themselves.
type Column struct {
	index   int
	share   float64
	items   []*Item
	pending bool
}

// Index is the 0-based position of the column, left to right.
func (c *Column) Index() int { return c.index }

// Share is the column's width share in percent of the container.
func (c *Column) Share() float64 { return c.share }

// Len returns the number of items placed in the column.
func (c *Column) Len() int { return len(c.items) }

// Items returns the column's items in placement order.
func (c *Column) Items() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

// Last returns the trailing item, or nil for an empty column.
func (c *Column) Last() *Item {
	if len(c.items) == 0 {
		return nil
	}
	return c.items[len(c.items)-1]
}

// Pending reports whether the column is marked for removal.
func (c *Column) Pending() bool { return c.pending }

func (c *Column) push(it *Item) { c.items = append(c.items, it) }

func (c *Column) pop() *Item {
	it := c.Last()
	if it != nil {
		c.items[len(c.items)-1] = nil
		c.items = c.items[:len(c.items)-1]
	}
	return it
}

// detach removes the item with the given ID, keeping the order of the rest.
func (c *Column) detach(id string) bool {
	for i, it := range c.items {
		if it.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Column) clear() { c.items = nil }

// columnSet is the ordered sequence of columns. Columns beyond the desired
// count are tombstoned as pending and only deleted by prune, after a full
// redistribution has moved their items elsewhere.
type columnSet struct {
	cols []*Column
}

// count returns the number of live (non-pending) columns.
func (s *columnSet) count() int {
	n := 0
	for _, c := range s.cols {
		if !c.pending {
			n++
		}
	}
	return n
}

// active returns the live columns in index order.
func (s *columnSet) active() []*Column {
	out := make([]*Column, 0, len(s.cols))
	for _, c := range s.cols {
		if !c.pending {
			out = append(out, c)
		}
	}
	return out
}

// converge moves the live column count to desired and reports whether it
// changed. Shrinking only marks trailing columns as pending.
func (s *columnSet) converge(desired int) bool {
	if desired < 1 {
		desired = 1
	}
	current := s.count()
	if desired == current {
		return false
	}

	if desired > current {
		// Revive tombstones before creating new columns.
		for _, c := range s.cols {
			if c.pending && current < desired {
				c.pending = false
				current++
			}
		}
		for current < desired {
			s.cols = append(s.cols, &Column{index: len(s.cols)})
			current++
		}
	} else {
		for i := desired; i < len(s.cols); i++ {
			s.cols[i].pending = true
		}
	}

	share := 100 / float64(desired)
	for _, c := range s.cols {
		if !c.pending {
			c.share = share
		}
	}
	return true
}

// prune deletes pending columns. Callers must drain them first.
func (s *columnSet) prune() {
	kept := s.cols[:0]
	for _, c := range s.cols {
		if c.pending {
			if len(c.items) != 0 {
				panic("masonry: pruning a column that still holds items")
			}
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(s.cols); i++ {
		s.cols[i] = nil
	}
	s.cols = kept
	for i, c := range s.cols {
		c.index = i
	}
}

// locate returns the live column holding the item with the given ID.
func (s *columnSet) locate(id string) *Column {
	for _, c := range s.cols {
		for _, it := range c.items {
			if it.ID == id {
				return c
			}
		}
	}
	return nil
}

func (s *columnSet) clearItems() {
	for _, c := range s.cols {
		c.clear()
	}
}

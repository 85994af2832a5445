package masonry

import "fmt"

// Item is a handle to one visual unit. The engine owns only its placement;
// Value is carried through untouched for the caller.
type Item struct {
	ID    string
	Value any
}

// NewItem returns an item with the given ID. An empty ID is replaced by a
// generated one when the item is handed to an engine.
func NewItem(id string, value any) *Item {
	return &Item{ID: id, Value: value}
}

func (it *Item) String() string {
	if it == nil {
		return "<nil>"
	}
	return it.ID
}

// generateID mirrors the "mosaic-<instance>-itemid-<n>" scheme so generated
// IDs stay unique across engines in one process.
func generateID(instance int64, n int) string {
	return fmt.Sprintf("mosaic-%d-itemid-%d", instance, n)
}

// registry is the canonical ordered sequence of managed items.
type registry struct {
	items []*Item
	byID  map[string]*Item
}

func newRegistry() registry {
	return registry{byID: make(map[string]*Item)}
}

func (r *registry) len() int { return len(r.items) }

func (r *registry) contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

func (r *registry) get(id string) (*Item, bool) {
	it, ok := r.byID[id]
	return it, ok
}

func (r *registry) append(it *Item) {
	r.items = append(r.items, it)
	r.byID[it.ID] = it
}

// remove deletes the item with the given ID and reports whether it was present.
func (r *registry) remove(id string) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			break
		}
	}
	return true
}

func (r *registry) clear() {
	r.items = nil
	r.byID = make(map[string]*Item)
}

// snapshot returns a copy of the item sequence.
func (r *registry) snapshot() []*Item {
	out := make([]*Item, len(r.items))
	copy(out, r.items)
	return out
}

package masonry

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaicflow/pkg/errors"
	"github.com/matzehuels/mosaicflow/pkg/observability"
)

// instances numbers engines for generated item IDs.
var instances atomic.Int64

// Engine is the layout orchestrator. It owns the item registry and the
// column set and is the only thing that mutates them.
type Engine struct {
	uid      int64
	itemSeq  int
	opts     Options
	measure  checked
	balance  balancer
	logger   *log.Logger
	registry registry
	columns  columnSet
	subs     []subscription
	nextSub  int
	busy     bool
	ready    bool
}

// New initializes an engine over items: it assigns missing IDs, emits
// start, runs the first refill and emits ready.
func New(m Measurer, items []*Item, opts Options) (*Engine, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "measurer is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		uid:      instances.Add(1) - 1,
		opts:     opts,
		measure:  checked{m: m},
		logger:   opts.Logger,
		registry: newRegistry(),
	}
	e.balance = balancer{
		measure:   e.measure,
		threshold: opts.Threshold,
		enabled:   opts.LevelBottom,
		logger:    opts.Logger,
	}
	for _, fn := range opts.Observers {
		if fn != nil {
			e.Subscribe(fn)
		}
	}

	for _, it := range items {
		if err := e.admit(it); err != nil {
			return nil, err
		}
		e.registry.append(it)
	}

	e.emit(EventStart, nil)
	if err := e.Refill(); err != nil {
		return nil, err
	}
	e.ready = true
	e.emit(EventReady, nil)
	return e, nil
}

// Ready reports whether initialization completed. Observers see false until
// the ready event.
func (e *Engine) Ready() bool { return e.ready }

// Options returns the validated options the engine runs with.
func (e *Engine) Options() Options { return e.opts }

// Instance returns the engine's process-unique number.
func (e *Engine) Instance() int64 { return e.uid }

// ColumnCount returns the current number of columns.
func (e *Engine) ColumnCount() int { return e.columns.count() }

// Columns returns the live columns. The slice is a copy; the columns are
// read-only views.
func (e *Engine) Columns() []*Column { return e.columns.active() }

// Items returns all managed items in registry order.
func (e *Engine) Items() []*Item { return e.registry.snapshot() }

// Len returns the number of managed items.
func (e *Engine) Len() int { return e.registry.len() }

// Assignment returns the item IDs of each column in placement order.
func (e *Engine) Assignment() [][]string {
	cols := e.columns.active()
	out := make([][]string, len(cols))
	for i, c := range cols {
		ids := make([]string, len(c.items))
		for j, it := range c.items {
			ids[j] = it.ID
		}
		out[i] = ids
	}
	return out
}

// Refill recomputes the column count from the container width. When it
// changed, the columns are resized, every item is redistributed and the
// bottom edge is leveled; otherwise nothing moves.
func (e *Engine) Refill() (err error) {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	e.emit(EventFill, nil)
	defer e.emit(EventFilled, nil)

	width, err := e.measure.containerWidth()
	if err != nil {
		return err
	}
	desired := columnCount(width, e.opts.MinItemWidth)
	before := e.columns.count()
	if !e.columns.converge(desired) {
		return nil
	}

	start := time.Now()
	defer func() {
		observability.Layout().OnRefill(desired, e.registry.len(), time.Since(start), err)
	}()

	e.logger.Debug("column count changed", "from", before, "to", desired, "width", width)
	fillAll(e.registry.items, &e.columns)
	_, err = e.balance.level(e.columns.active(), e.registry.len())
	e.emit(EventLayoutChanged, nil)
	return err
}

// Add appends it to the registry, places it on the shortest column and
// re-levels. Items without an ID get a generated one; the ID is taken back
// if the item could not be placed.
func (e *Engine) Add(it *Item) (err error) {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()
	defer func() { observability.Layout().OnMutation("add", it.String(), err) }()

	seq, generated := e.itemSeq, it != nil && it.ID == ""
	if err := e.admit(it); err != nil {
		return err
	}
	defer func() {
		if generated && !e.registry.contains(it.ID) {
			it.ID = ""
			e.itemSeq = seq
		}
	}()

	e.emit(EventAdd, it)
	defer e.emit(EventAdded, it)

	cols := e.columns.active()
	if len(cols) == 0 {
		return errors.New(errors.ErrCodeInternal, "layout has no columns")
	}
	heights, err := e.measure.columnHeights(cols)
	if err != nil {
		return err
	}
	lowest, _ := extremes(heights)

	e.registry.append(it)
	cols[lowest].push(it)
	e.logger.Debug("added item", "item", it.ID, "column", lowest)

	_, err = e.balance.level(cols, e.registry.len())
	e.emit(EventLayoutChanged, it)
	return err
}

// Remove detaches it from its column and the registry, then re-levels.
// Items are matched by ID. Removing an unmanaged item fails with
// ErrCodeItemNotFound and changes nothing.
func (e *Engine) Remove(it *Item) (err error) {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()
	defer func() { observability.Layout().OnMutation("remove", it.String(), err) }()

	if it == nil || !e.registry.contains(it.ID) {
		return errors.New(errors.ErrCodeItemNotFound, "item %s is not managed by this layout", it)
	}
	managed, _ := e.registry.get(it.ID)

	e.emit(EventRemove, managed)
	defer e.emit(EventRemoved, managed)

	if col := e.columns.locate(managed.ID); col != nil {
		col.detach(managed.ID)
		e.logger.Debug("removed item", "item", managed.ID, "column", col.index)
	}
	e.registry.remove(managed.ID)

	_, err = e.balance.level(e.columns.active(), e.registry.len())
	e.emit(EventLayoutChanged, managed)
	return err
}

// RemoveID removes the managed item with the given ID.
func (e *Engine) RemoveID(id string) error {
	return e.Remove(&Item{ID: id})
}

// Lookup returns the managed item with the given ID.
func (e *Engine) Lookup(id string) (*Item, bool) {
	return e.registry.get(id)
}

// Empty drops every item while keeping the column count.
func (e *Engine) Empty() (err error) {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()
	defer func() { observability.Layout().OnMutation("empty", "", err) }()

	e.registry.clear()
	e.columns.clearItems()
	e.logger.Debug("emptied layout", "columns", e.columns.count())
	e.emit(EventLayoutChanged, nil)
	return nil
}

// admit validates it and assigns an ID when it has none.
func (e *Engine) admit(it *Item) error {
	if it == nil {
		return errors.New(errors.ErrCodeInvalidInput, "item is nil")
	}
	if it.ID == "" {
		for {
			e.itemSeq++
			id := generateID(e.uid, e.itemSeq)
			if !e.registry.contains(id) {
				it.ID = id
				break
			}
		}
	}
	if err := errors.ValidateItemID(it.ID); err != nil {
		return err
	}
	if e.registry.contains(it.ID) {
		return errors.New(errors.ErrCodeDuplicateItem, "item %s is already managed", it.ID)
	}
	return nil
}

func (e *Engine) enter() error {
	if e.busy {
		return errors.New(errors.ErrCodeReentrant, "engine operation called during a notification")
	}
	e.busy = true
	return nil
}

func (e *Engine) leave() { e.busy = false }

package masonry

// EventKind names a lifecycle notification.
type EventKind string

const (
	EventStart         EventKind = "start"
	EventReady         EventKind = "ready"
	EventFill          EventKind = "fill"
	EventFilled        EventKind = "filled"
	EventAdd           EventKind = "add"
	EventAdded         EventKind = "added"
	EventRemove        EventKind = "remove"
	EventRemoved       EventKind = "removed"
	EventLayoutChanged EventKind = "layout-changed"
)

// Event is delivered to observers. Item is set for add and remove events.
type Event struct {
	Kind EventKind
	Item *Item
}

// Observer receives engine notifications synchronously. Observers must not
// call engine operations; the engine rejects such calls.
type Observer func(Event)

type subscription struct {
	id int
	fn Observer
}

// Subscribe registers an observer and returns a function that removes it.
func (e *Engine) Subscribe(fn Observer) (unsubscribe func()) {
	e.nextSub++
	id := e.nextSub
	e.subs = append(e.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) emit(kind EventKind, it *Item) {
	if len(e.subs) == 0 {
		return
	}
	ev := Event{Kind: kind, Item: it}
	subs := make([]subscription, len(e.subs))
	copy(subs, e.subs)
	for _, s := range subs {
		s.fn(ev)
	}
}

package masonry

import (
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/mosaicflow/pkg/errors"
)

// Command names an operation dispatched through Instances.
type Command string

const (
	CommandRefill Command = "refill"
	CommandAdd    Command = "add"
	CommandRemove Command = "remove"
	CommandEmpty  Command = "empty"
)

// Instances tracks one engine per container so a container is never
// initialized twice. Attach creates an engine when the container has none;
// Dispatch forwards commands to an existing one.
type Instances struct {
	mu      sync.Mutex
	engines map[string]*Engine
}

// NewInstances returns an empty instance registry.
func NewInstances() *Instances {
	return &Instances{engines: make(map[string]*Engine)}
}

// Attach returns the engine for containerID, creating it from m, items and
// opts when absent. An empty containerID gets a random one. The returned
// bool reports whether a new engine was created; for existing engines items
// and opts are ignored. The registry is not locked while the engine runs, so
// observers may use it. When two callers race, the first engine stored wins.
func (r *Instances) Attach(containerID string, m Measurer, items []*Item, opts Options) (*Engine, string, bool, error) {
	if containerID == "" {
		containerID = uuid.NewString()
	}
	if e, ok := r.Get(containerID); ok {
		return e, containerID, false, nil
	}

	e, err := New(m, items, opts)
	if err != nil {
		return nil, containerID, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.engines[containerID]; ok {
		return existing, containerID, false, nil
	}
	r.engines[containerID] = e
	return e, containerID, true, nil
}

// Get returns the engine attached to containerID.
func (r *Instances) Get(containerID string) (*Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.engines[containerID]
	return e, ok
}

// Dispatch runs cmd on the engine attached to containerID. item is used by
// CommandAdd and CommandRemove only. The command runs outside the registry
// lock; engines still reject calls made from their own observers.
func (r *Instances) Dispatch(containerID string, cmd Command, item *Item) error {
	e, ok := r.Get(containerID)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no layout attached to container %q", containerID)
	}

	switch cmd {
	case CommandRefill:
		return e.Refill()
	case CommandAdd:
		return e.Add(item)
	case CommandRemove:
		return e.Remove(item)
	case CommandEmpty:
		return e.Empty()
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown command %q", cmd)
	}
}

// Detach forgets the engine attached to containerID and reports whether
// there was one.
func (r *Instances) Detach(containerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.engines[containerID]; !ok {
		return false
	}
	delete(r.engines, containerID)
	return true
}

// Len returns the number of attached engines.
func (r *Instances) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.engines)
}

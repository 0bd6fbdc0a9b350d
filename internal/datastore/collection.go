package datastore

import (
	"encoding/json"
	"reflect"
	"sync"

	"github.com/nikmy/datamaps/internal/pubsub"
	"github.com/nikmy/datamaps/internal/repo/models"
	"github.com/nikmy/datamaps/pkg/errors"
)

type entry[R models.Record, M any] struct {
	record R
	model  M
}

// Collection is a keyed map of one entity kind. Each record is
// wrapped into a model at insertion time; wrappers are replaced
// as a whole when a different record arrives for the same id.
type Collection[R models.Record, M any] struct {
	kind  models.Kind
	wrap  func(R) M
	owner *DataStore

	// writeMu orders writers, so events leave in mutation order
	writeMu sync.Mutex

	mu    sync.RWMutex
	items map[string]entry[R, M]
}

func newCollection[R models.Record, M any](owner *DataStore, kind models.Kind, wrap func(R) M) *Collection[R, M] {
	return &Collection[R, M]{
		kind:  kind,
		wrap:  wrap,
		owner: owner,
		items: make(map[string]entry[R, M]),
	}
}

func (c *Collection[R, M]) Kind() models.Kind {
	return c.kind
}

// Add upserts records by id. Records equal to the stored
// ones keep their wrappers and publish nothing.
func (c *Collection[R, M]) Add(records ...R) {
	c.add(c.owner.origin, records...)
}

// Delete removes id. Absent ids are ignored.
func (c *Collection[R, M]) Delete(id string) {
	c.delete(c.owner.origin, id)
}

func (c *Collection[R, M]) Get(id string) (M, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[id]
	return e.model, ok
}

func (c *Collection[R, M]) Record(id string) (R, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[id]
	return e.record, ok
}

func (c *Collection[R, M]) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.items[id]
	return ok
}

func (c *Collection[R, M]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

func (c *Collection[R, M]) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	return ids
}

// All returns wrappers in no particular order.
func (c *Collection[R, M]) All() []M {
	return c.Filter(nil)
}

func (c *Collection[R, M]) Records() []R {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records := make([]R, 0, len(c.items))
	for _, e := range c.items {
		records = append(records, e.record)
	}
	return records
}

func (c *Collection[R, M]) Filter(keep func(M) bool) []M {
	c.mu.RLock()
	defer c.mu.RUnlock()

	models := make([]M, 0, len(c.items))
	for _, e := range c.items {
		if keep == nil || keep(e.model) {
			models = append(models, e.model)
		}
	}
	return models
}

// Reset drops every entry, e.g. on logout.
func (c *Collection[R, M]) Reset() {
	c.reset(c.owner.origin)
}

func (c *Collection[R, M]) add(origin string, records ...R) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	changed := make([]R, 0, len(records))

	c.mu.Lock()
	for _, r := range records {
		id := r.GetID()
		if old, ok := c.items[id]; ok && reflect.DeepEqual(old.record, r) {
			continue
		}

		c.items[id] = entry[R, M]{record: r, model: c.wrap(r)}
		changed = append(changed, r)
	}
	c.mu.Unlock()

	for _, r := range changed {
		c.owner.notifyUpsert(c.kind, r, origin)
	}
}

func (c *Collection[R, M]) delete(origin string, id string) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	_, ok := c.items[id]
	delete(c.items, id)
	c.mu.Unlock()

	if ok {
		c.owner.notify(pubsub.NewEvent(string(c.kind), id, pubsub.OpDelete, origin))
	}
}

func (c *Collection[R, M]) reset(origin string) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	c.items = make(map[string]entry[R, M])
	c.mu.Unlock()

	c.owner.notify(pubsub.NewEvent(string(c.kind), "", pubsub.OpReset, origin))
}

// prune deletes every id missing from keep.
func (c *Collection[R, M]) prune(origin string, keep []R) {
	alive := make(map[string]struct{}, len(keep))
	for _, r := range keep {
		alive[r.GetID()] = struct{}{}
	}

	for _, id := range c.IDs() {
		if _, ok := alive[id]; !ok {
			c.delete(origin, id)
		}
	}
}

func (c *Collection[R, M]) apply(ev pubsub.Event) error {
	switch ev.Op {
	case pubsub.OpUpsert:
		var r R
		err := json.Unmarshal(ev.Payload, &r)
		if err != nil {
			return errors.WrapFailf(err, "decode %s payload", c.kind)
		}
		if r.GetID() != ev.Key {
			return errors.Errorf("%s payload id %q does not match key %q", c.kind, r.GetID(), ev.Key)
		}
		c.add(ev.Origin, r)
	case pubsub.OpDelete:
		c.delete(ev.Origin, ev.Key)
	case pubsub.OpReset:
		c.reset(ev.Origin)
	default:
		return errors.Errorf("unknown op %q", ev.Op)
	}
	return nil
}

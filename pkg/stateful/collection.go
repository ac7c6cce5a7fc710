package stateful

import (
	"slices"
	"sync"
)

// Entity is an object that can be kept in a Collection.
type Entity interface {
	// GetID returns the unique id of the entity.
	GetID() string
	// ParentID returns the id of the owning object, or "" for top-level objects.
	ParentID() string
}

// Collection is an ordered, id-keyed set of entities.
type Collection[T Entity] struct {
	mu    sync.RWMutex
	name  string
	order []string
	items map[string]T
}

// NewCollection creates an empty collection. The name is used in errors.
func NewCollection[T Entity](name string) *Collection[T] {
	return &Collection[T]{
		name:  name,
		items: make(map[string]T),
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Put inserts or replaces an entity by id. Replacing keeps the original
// position in the ordering.
func (c *Collection[T]) Put(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := item.GetID()
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = item
}

// Get returns the entity with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	return item, ok
}

// MustGet returns the entity or a *NotFoundError.
func (c *Collection[T]) MustGet(id string) (T, error) {
	item, ok := c.Get(id)
	if !ok {
		return item, &NotFoundError{Resource: c.name, ID: id}
	}
	return item, nil
}

// Delete removes the entity with the given id and reports whether it existed.
func (c *Collection[T]) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return true
}

// List returns the entities owned by parentID (all entities when parentID is
// empty) paginated by q.
func (c *Collection[T]) List(parentID string, q ListQuery) []T {
	items, _ := c.Page(parentID, q)
	return items
}

// Page is List that also reports whether more entities follow the page.
func (c *Collection[T]) Page(parentID string, q ListQuery) ([]T, bool) {
	q = q.Normalize()

	c.mu.RLock()
	ordered := make([]T, 0, len(c.order))
	for _, id := range c.order {
		item := c.items[id]
		if parentID != "" && item.ParentID() != parentID {
			continue
		}
		ordered = append(ordered, item)
	}
	c.mu.RUnlock()

	if q.Order == OrderDesc {
		slices.Reverse(ordered)
	}

	if q.After != "" {
		i := indexOf(ordered, q.After)
		if i < 0 {
			return []T{}, false
		}
		ordered = ordered[i+1:]
	}

	if q.Before != "" {
		i := indexOf(ordered, q.Before)
		if i < 0 {
			return []T{}, false
		}
		ordered = ordered[:i]
	}

	if len(ordered) > q.Limit {
		return ordered[:q.Limit], true
	}
	return ordered, false
}

// Len returns the number of entities in the collection.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Reset removes all entities and returns how many were dropped.
func (c *Collection[T]) Reset() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.items)
	c.order = nil
	c.items = make(map[string]T)
	return n
}

func indexOf[T Entity](items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool { return item.GetID() == id })
}

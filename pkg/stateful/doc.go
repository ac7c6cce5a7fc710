// Package stateful provides the in-memory object store backing the mock.
//
// The store keeps one ordered Collection per object kind. Collections preserve
// insertion order, which is the order objects were created in, and support
// cursor pagination over that order:
//
//   - Put upserts by id (full replace; an existing entry keeps its position)
//   - Get returns a copy of the stored value
//   - Delete removes an entry and reports whether it was present
//   - List filters by parent id and applies limit/order/after/before
//
// Core Types:
//
//   - StateStore: the assistants, threads, messages and runs collections
//   - Collection: an ordered, id-keyed set of entities
//   - ListQuery: pagination parameters parsed from a query string
//
// The store never enforces relationships between collections. A message may
// reference a thread that does not exist; handlers decide whether to check.
//
// Usage:
//
//	store := stateful.NewStateStore()
//	store.Threads.Put(thread)
//	t, ok := store.Threads.Get(thread.ID)
//	msgs := store.Messages.List(thread.ID, stateful.ListQuery{Order: stateful.OrderAsc})
//	deleted := store.Threads.Delete(thread.ID)
//
//	store.Reset() // drop everything between tests
package stateful

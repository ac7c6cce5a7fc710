package endpoints

import (
	"log/slog"
	"net/http"

	"github.com/getmockd/mockd-openai/pkg/builders"
	"github.com/getmockd/mockd-openai/pkg/httputil"
	"github.com/getmockd/mockd-openai/pkg/schema"
	"github.com/getmockd/mockd-openai/pkg/stateful"
)

// ThreadsMock serves /threads.
type ThreadsMock struct {
	baseMock

	Create   *Route
	Retrieve *Route
	Update   *Route
	Delete   *Route
}

// NewThreadsMock creates a threads mock. A nil store gets a private one.
func NewThreadsMock(store *stateful.StateStore, cfg Config, log *slog.Logger) *ThreadsMock {
	m := &ThreadsMock{baseMock: newBaseMock(stateful.ResourceThreads, store, cfg, log)}
	m.Create = m.route("create", http.MethodPost, "/threads", m.create)
	m.Retrieve = m.route("retrieve", http.MethodGet, "/threads/{thread_id}", m.retrieve)
	m.Update = m.route("update", http.MethodPost, "/threads/{thread_id}", m.update)
	m.Delete = m.route("delete", http.MethodDelete, "/threads/{thread_id}", m.delete)
	return m
}

func (m *ThreadsMock) create(w http.ResponseWriter, r *http.Request) {
	var params schema.ThreadCreateParams
	if !decodeBody(w, r, &params, true) {
		return
	}

	thread, messages := builders.Thread(params)
	m.store.Threads.Put(thread)
	for _, msg := range messages {
		m.store.Messages.Put(msg)
	}
	httputil.WriteCreated(w, thread)
}

func (m *ThreadsMock) retrieve(w http.ResponseWriter, r *http.Request) {
	thread, ok := m.store.Threads.Get(r.PathValue("thread_id"))
	if !ok {
		httputil.WriteNotFound(w)
		return
	}
	httputil.WriteOK(w, thread)
}

func (m *ThreadsMock) update(w http.ResponseWriter, r *http.Request) {
	var params schema.ThreadUpdateParams
	if !decodeBody(w, r, &params, true) {
		return
	}

	thread, ok := m.store.Threads.Get(r.PathValue("thread_id"))
	if !ok {
		httputil.WriteNotFound(w)
		return
	}
	if params.Metadata.Present {
		thread.Metadata = params.Metadata.Value
	}

	m.store.Threads.Put(thread)
	httputil.WriteOK(w, thread)
}

// delete answers 200 whether or not the thread existed. Messages and runs of
// the thread are left in the store.
func (m *ThreadsMock) delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("thread_id")
	deleted := m.store.Threads.Delete(id)
	httputil.WriteOK(w, schema.ThreadDeleted{
		ID:      id,
		Object:  schema.ObjectThreadDeleted,
		Deleted: deleted,
	})
}

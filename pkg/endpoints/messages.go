package endpoints

import (
	"log/slog"
	"net/http"

	"github.com/getmockd/mockd-openai/pkg/builders"
	"github.com/getmockd/mockd-openai/pkg/httputil"
	"github.com/getmockd/mockd-openai/pkg/schema"
	"github.com/getmockd/mockd-openai/pkg/stateful"
)

// MessagesMock serves /threads/{thread_id}/messages.
type MessagesMock struct {
	baseMock

	Create   *Route
	List     *Route
	Retrieve *Route
	Update   *Route
}

// NewMessagesMock creates a messages mock. A nil store gets a private one.
func NewMessagesMock(store *stateful.StateStore, cfg Config, log *slog.Logger) *MessagesMock {
	m := &MessagesMock{baseMock: newBaseMock(stateful.ResourceMessages, store, cfg, log)}
	m.Create = m.route("create", http.MethodPost, "/threads/{thread_id}/messages", m.create)
	m.List = m.route("list", http.MethodGet, "/threads/{thread_id}/messages", m.list)
	m.Retrieve = m.route("retrieve", http.MethodGet, "/threads/{thread_id}/messages/{message_id}", m.retrieve)
	m.Update = m.route("update", http.MethodPost, "/threads/{thread_id}/messages/{message_id}", m.update)
	return m
}

func (m *MessagesMock) create(w http.ResponseWriter, r *http.Request) {
	threadID := r.PathValue("thread_id")
	if m.threadMissing(threadID) {
		httputil.WriteNotFound(w)
		return
	}

	var params schema.MessageCreateParams
	if !decodeBody(w, r, &params, false) {
		return
	}

	msg := builders.Message(threadID, params)
	m.store.Messages.Put(msg)
	httputil.WriteCreated(w, msg)
}

func (m *MessagesMock) list(w http.ResponseWriter, r *http.Request) {
	threadID := r.PathValue("thread_id")
	if m.threadMissing(threadID) {
		httputil.WriteNotFound(w)
		return
	}

	items, hasMore := m.store.Messages.Page(threadID, listQuery(r))
	httputil.WriteOK(w, schema.NewCursorPage(items, hasMore))
}

func (m *MessagesMock) retrieve(w http.ResponseWriter, r *http.Request) {
	if m.threadMissing(r.PathValue("thread_id")) {
		httputil.WriteNotFound(w)
		return
	}

	msg, ok := m.store.Messages.Get(r.PathValue("message_id"))
	if !ok {
		httputil.WriteNotFound(w)
		return
	}
	httputil.WriteOK(w, msg)
}

func (m *MessagesMock) update(w http.ResponseWriter, r *http.Request) {
	if m.threadMissing(r.PathValue("thread_id")) {
		httputil.WriteNotFound(w)
		return
	}

	var params schema.MessageUpdateParams
	if !decodeBody(w, r, &params, true) {
		return
	}

	msg, ok := m.store.Messages.Get(r.PathValue("message_id"))
	if !ok {
		httputil.WriteNotFound(w)
		return
	}
	if params.Metadata.Present {
		msg.Metadata = params.Metadata.Value
	}

	m.store.Messages.Put(msg)
	httputil.WriteOK(w, msg)
}

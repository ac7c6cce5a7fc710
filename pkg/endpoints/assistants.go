package endpoints

import (
	"log/slog"
	"net/http"

	"github.com/getmockd/mockd-openai/pkg/builders"
	"github.com/getmockd/mockd-openai/pkg/httputil"
	"github.com/getmockd/mockd-openai/pkg/schema"
	"github.com/getmockd/mockd-openai/pkg/stateful"
)

// AssistantsMock serves /assistants.
type AssistantsMock struct {
	baseMock

	Create   *Route
	List     *Route
	Retrieve *Route
	Update   *Route
	Delete   *Route
}

// NewAssistantsMock creates an assistants mock. A nil store gets a private one.
func NewAssistantsMock(store *stateful.StateStore, cfg Config, log *slog.Logger) *AssistantsMock {
	m := &AssistantsMock{baseMock: newBaseMock(stateful.ResourceAssistants, store, cfg, log)}
	m.Create = m.route("create", http.MethodPost, "/assistants", m.create)
	m.List = m.route("list", http.MethodGet, "/assistants", m.list)
	m.Retrieve = m.route("retrieve", http.MethodGet, "/assistants/{assistant_id}", m.retrieve)
	m.Update = m.route("update", http.MethodPost, "/assistants/{assistant_id}", m.update)
	m.Delete = m.route("delete", http.MethodDelete, "/assistants/{assistant_id}", m.delete)
	return m
}

func (m *AssistantsMock) create(w http.ResponseWriter, r *http.Request) {
	var params schema.AssistantCreateParams
	if !decodeBody(w, r, &params, false) {
		return
	}
	if params.Model == "" {
		httputil.WriteBadRequest(w, "Missing required parameter: 'model'.")
		return
	}

	asst := builders.Assistant(params)
	m.store.Assistants.Put(asst)
	httputil.WriteCreated(w, asst)
}

func (m *AssistantsMock) list(w http.ResponseWriter, r *http.Request) {
	items, hasMore := m.store.Assistants.Page("", listQuery(r))
	httputil.WriteOK(w, schema.NewCursorPage(items, hasMore))
}

func (m *AssistantsMock) retrieve(w http.ResponseWriter, r *http.Request) {
	asst, ok := m.store.Assistants.Get(r.PathValue("assistant_id"))
	if !ok {
		httputil.WriteNotFound(w)
		return
	}
	httputil.WriteOK(w, asst)
}

func (m *AssistantsMock) update(w http.ResponseWriter, r *http.Request) {
	var params schema.AssistantUpdateParams
	if !decodeBody(w, r, &params, true) {
		return
	}

	asst, ok := m.store.Assistants.Get(r.PathValue("assistant_id"))
	if !ok {
		httputil.WriteNotFound(w)
		return
	}

	if params.Model.Present && params.Model.Value != "" {
		asst.Model = params.Model.Value
	}
	if params.Name.Present {
		asst.Name = params.Name.Value
	}
	if params.Description.Present {
		asst.Description = params.Description.Value
	}
	if params.Instructions.Present {
		asst.Instructions = params.Instructions.Value
	}
	if params.Tools.Present {
		asst.Tools = append([]schema.Tool{}, params.Tools.Value...)
	}
	if params.FileIDs.Present {
		asst.FileIDs = append([]string{}, params.FileIDs.Value...)
	}
	if params.Metadata.Present {
		asst.Metadata = params.Metadata.Value
	}

	m.store.Assistants.Put(asst)
	httputil.WriteOK(w, asst)
}

func (m *AssistantsMock) delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("assistant_id")
	deleted := m.store.Assistants.Delete(id)
	httputil.WriteOK(w, schema.AssistantDeleted{
		ID:      id,
		Object:  schema.ObjectAssistantDeleted,
		Deleted: deleted,
	})
}

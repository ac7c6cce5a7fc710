package endpoints

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getmockd/mockd-openai/pkg/builders"
	"github.com/getmockd/mockd-openai/pkg/chaos"
	"github.com/getmockd/mockd-openai/pkg/httputil"
	"github.com/getmockd/mockd-openai/pkg/schema"
	"github.com/getmockd/mockd-openai/pkg/stateful"
	"github.com/getmockd/mockd-openai/pkg/streaming"
)

// RunsMock serves /threads/{thread_id}/runs.
type RunsMock struct {
	baseMock

	Create            *Route
	List              *Route
	Retrieve          *Route
	Update            *Route
	Cancel            *Route
	SubmitToolOutputs *Route
}

// NewRunsMock creates a runs mock. A nil store gets a private one.
func NewRunsMock(store *stateful.StateStore, cfg Config, log *slog.Logger) *RunsMock {
	m := &RunsMock{baseMock: newBaseMock(stateful.ResourceRuns, store, cfg, log)}
	m.Create = m.route("create", http.MethodPost, "/threads/{thread_id}/runs", m.create)
	m.List = m.route("list", http.MethodGet, "/threads/{thread_id}/runs", m.list)
	m.Retrieve = m.route("retrieve", http.MethodGet, "/threads/{thread_id}/runs/{run_id}", m.retrieve)
	m.Update = m.route("update", http.MethodPost, "/threads/{thread_id}/runs/{run_id}", m.update)
	m.Cancel = m.route("cancel", http.MethodPost, "/threads/{thread_id}/runs/{run_id}/cancel", m.cancel)
	m.SubmitToolOutputs = m.route("submit_tool_outputs", http.MethodPost,
		"/threads/{thread_id}/runs/{run_id}/submit_tool_outputs", m.submitToolOutputs)
	return m
}

// scripted returns the sequence entry for the current call, or nil.
func (m *RunsMock) scripted(r *http.Request, method string) *schema.PartialRun {
	inv := chaos.GetInvocation(r.Context())
	return m.cfg.Sequence.Next(method, inv.SequenceIndex())
}

func (m *RunsMock) create(w http.ResponseWriter, r *http.Request) {
	threadID := r.PathValue("thread_id")
	if m.threadMissing(threadID) {
		httputil.WriteNotFound(w)
		return
	}

	var params schema.RunCreateParams
	if !decodeBody(w, r, &params, false) {
		return
	}

	scripted := m.scripted(r, schema.MethodCreate)
	extra := scripted
	if m.cfg.ValidateAssistantExists {
		asst, ok := m.store.Assistants.Get(params.AssistantID)
		if !ok {
			httputil.WriteNotFound(w)
			return
		}
		// Scripted fields win, then request fields, then the assistant.
		extra = scripted.FillFrom(params.Overrides()).FillFrom(schema.AssistantDefaults(asst))
	}

	if params.Stream {
		// Streamed runs do not inherit from the assistant.
		run := builders.Run(threadID, params, scripted.FillFrom(streaming.RunDefaults()))
		if err := streaming.Write(r.Context(), w, http.StatusCreated, streaming.CreateRunEventStream(run, m.store)); err != nil {
			m.log.Debug("run stream ended early", "run", run.ID, "error", err)
		}
		return
	}

	run := builders.Run(threadID, params, extra)
	m.store.Runs.Put(run)
	httputil.WriteCreated(w, run)
}

func (m *RunsMock) list(w http.ResponseWriter, r *http.Request) {
	threadID := r.PathValue("thread_id")
	if m.threadMissing(threadID) {
		httputil.WriteNotFound(w)
		return
	}

	items, hasMore := m.store.Runs.Page(threadID, listQuery(r))
	httputil.WriteOK(w, schema.NewCursorPage(items, hasMore))
}

func (m *RunsMock) retrieve(w http.ResponseWriter, r *http.Request) {
	if m.threadMissing(r.PathValue("thread_id")) {
		httputil.WriteNotFound(w)
		return
	}

	run, ok := m.store.Runs.Get(r.PathValue("run_id"))
	if !ok {
		httputil.WriteNotFound(w)
		return
	}

	partial := m.scripted(r, schema.MethodRetrieve)
	if m.cfg.ValidateAssistantExists {
		// The assistant may have been deleted since the run was created.
		if asst, ok := m.store.Assistants.Get(run.AssistantID); ok {
			partial = partial.FillFrom(schema.AssistantDefaults(asst))
		}
	}
	if partial != nil && len(partial.Tools) == 0 {
		// An empty tool list never clears the run's tools.
		partial.Tools = nil
	}

	partial.ApplyTo(&run)
	m.store.Runs.Put(run)
	httputil.WriteOK(w, run)
}

func (m *RunsMock) update(w http.ResponseWriter, r *http.Request) {
	if m.threadMissing(r.PathValue("thread_id")) {
		httputil.WriteNotFound(w)
		return
	}

	var params schema.RunUpdateParams
	if !decodeBody(w, r, &params, true) {
		return
	}

	run, ok := m.store.Runs.Get(r.PathValue("run_id"))
	if !ok {
		httputil.WriteNotFound(w)
		return
	}
	if params.Metadata.Present {
		run.Metadata = params.Metadata.Value
	}

	m.store.Runs.Put(run)
	httputil.WriteOK(w, run)
}

// cancel stores the run as cancelled and answers with the transitional
// cancelling status, as the live API does.
func (m *RunsMock) cancel(w http.ResponseWriter, r *http.Request) {
	if m.threadMissing(r.PathValue("thread_id")) {
		httputil.WriteNotFound(w)
		return
	}

	run, ok := m.store.Runs.Get(r.PathValue("run_id"))
	if !ok {
		httputil.WriteNotFound(w)
		return
	}
	if isTerminal(run.Status) {
		httputil.WriteBadRequest(w, fmt.Sprintf("Cannot cancel run with status '%s'.", run.Status))
		return
	}

	now := builders.Now()
	run.Status = schema.RunStatusCancelled
	run.CancelledAt = &now
	run.RequiredAction = nil
	m.store.Runs.Put(run)

	run.Status = schema.RunStatusCancelling
	httputil.WriteOK(w, run)
}

func (m *RunsMock) submitToolOutputs(w http.ResponseWriter, r *http.Request) {
	if m.threadMissing(r.PathValue("thread_id")) {
		httputil.WriteNotFound(w)
		return
	}

	var params schema.SubmitToolOutputsParams
	if !decodeBody(w, r, &params, false) {
		return
	}

	run, ok := m.store.Runs.Get(r.PathValue("run_id"))
	if !ok {
		httputil.WriteNotFound(w)
		return
	}
	if run.Status != schema.RunStatusRequiresAction {
		httputil.WriteBadRequest(w, fmt.Sprintf(
			"Runs in status %q do not accept tool outputs.", run.Status))
		return
	}

	run.Status = schema.RunStatusQueued
	run.RequiredAction = nil
	m.store.Runs.Put(run)
	httputil.WriteOK(w, run)
}

func isTerminal(s schema.RunStatus) bool {
	switch s {
	case schema.RunStatusCompleted, schema.RunStatusFailed,
		schema.RunStatusCancelled, schema.RunStatusExpired:
		return true
	}
	return false
}

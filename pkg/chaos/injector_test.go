package chaos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/getmockd/mockd-openai/pkg/schema"
)

func TestSideEffects_Validate(t *testing.T) {
	tests := []struct {
		name    string
		effects SideEffects
		wantErr bool
	}{
		{"zero", SideEffects{}, false},
		{"valid", SideEffects{Latency: time.Second, Failures: 3, FailureStatus: 503}, false},
		{"negative latency", SideEffects{Latency: -time.Second}, true},
		{"negative failures", SideEffects{Failures: -1}, true},
		{"non-5xx status", SideEffects{FailureStatus: 404}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.effects.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInjector_FailureBudget(t *testing.T) {
	inj := NewInjector(SideEffects{Failures: 2})
	ctx := context.Background()

	want := []bool{true, true, false, false}
	for i, injected := range want {
		inv, err := inj.Next(ctx)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i+1, err)
		}
		if inv.Call != i+1 {
			t.Errorf("call %d: got Call=%d", i+1, inv.Call)
		}
		if inv.Injected != injected {
			t.Errorf("call %d: Injected=%v, want %v", i+1, inv.Injected, injected)
		}
	}

	stats := inj.GetStats()
	if stats.TotalCalls != 4 || stats.InjectedFailures != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestInvocation_SequenceIndex(t *testing.T) {
	tests := []struct {
		inv  Invocation
		want int
	}{
		{Invocation{Call: 1, Failures: 0}, 0},
		{Invocation{Call: 2, Failures: 0}, 1},
		{Invocation{Call: 3, Failures: 2}, 0},
		{Invocation{Call: 5, Failures: 2}, 2},
	}

	for _, tt := range tests {
		if got := tt.inv.SequenceIndex(); got != tt.want {
			t.Errorf("%+v.SequenceIndex() = %d, want %d", tt.inv, got, tt.want)
		}
	}
}

func TestInjector_Latency(t *testing.T) {
	inj := NewInjector(SideEffects{Latency: 50 * time.Millisecond})

	start := time.Now()
	if _, err := inj.Next(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected at least 50ms delay, got %v", elapsed)
	}
}

func TestInjector_LatencyCancelled(t *testing.T) {
	inj := NewInjector(SideEffects{Latency: time.Minute})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := inj.Next(ctx); err == nil {
		t.Fatal("expected context error")
	}
	// The call still counts.
	if inj.CallCount() != 1 {
		t.Errorf("expected call count 1, got %d", inj.CallCount())
	}
}

func TestInjector_UpdateAndReset(t *testing.T) {
	inj := NewInjector(SideEffects{})
	_, _ = inj.Next(context.Background())

	if err := inj.UpdateSideEffects(SideEffects{Failures: -2}); err == nil {
		t.Error("expected validation error")
	}
	if err := inj.UpdateSideEffects(SideEffects{Failures: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Counter is preserved across updates: call 2 is inside the new budget.
	inv, _ := inj.Next(context.Background())
	if !inv.Injected || inv.SequenceIndex() != -1 {
		t.Errorf("unexpected invocation after update: %+v", inv)
	}

	inj.Reset()
	if inj.CallCount() != 0 {
		t.Errorf("expected reset counter, got %d", inj.CallCount())
	}
}

func TestMiddleware(t *testing.T) {
	var handled []Invocation
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled = append(handled, GetInvocation(r.Context()))
		w.WriteHeader(http.StatusCreated)
	})
	mw := NewMiddleware(handler, NewInjector(SideEffects{Failures: 1, FailureStatus: 503}), nil)

	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/threads", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var body schema.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body.Error.Code == nil || *body.Error.Code != InjectedFailureCode {
		t.Errorf("unexpected error code: %v", body.Error.Code)
	}
	if len(handled) != 0 {
		t.Fatal("handler must not run for injected failures")
	}

	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/threads", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(handled) != 1 || handled[0].Call != 2 || handled[0].SequenceIndex() != 0 {
		t.Errorf("unexpected invocation in handler: %+v", handled)
	}
}

func TestGetInvocation_Missing(t *testing.T) {
	if inv := GetInvocation(context.Background()); inv != (Invocation{}) {
		t.Errorf("expected zero invocation, got %+v", inv)
	}
}

func TestStatusRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := NewStatusRecorder(rec)

	_, _ = sr.Write([]byte("data"))
	sr.WriteHeader(http.StatusTeapot)
	sr.Flush()

	if sr.Status() != http.StatusOK {
		t.Errorf("expected implicit 200 to be recorded first, got %d", sr.Status())
	}
	if !rec.Flushed {
		t.Error("expected Flush to reach the underlying writer")
	}
	if sr.Unwrap() != rec {
		t.Error("Unwrap should return the wrapped writer")
	}
}

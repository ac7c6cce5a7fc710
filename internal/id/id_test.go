package id

import (
	"strings"
	"testing"
)

func TestNew_Format(t *testing.T) {
	tests := []struct {
		kind   Kind
		gen    func() string
		prefix string
	}{
		{KindAssistant, Assistant, "asst_"},
		{KindThread, Thread, "thread_"},
		{KindMessage, Message, "msg_"},
		{KindRun, Run, "run_"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got := tt.gen()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
			if len(got) != len(tt.prefix)+SuffixLength {
				t.Errorf("expected length %d, got %d", len(tt.prefix)+SuffixLength, len(got))
			}
			if !Is(got, tt.kind) {
				t.Errorf("Is(%q, %q) = false", got, tt.kind)
			}
		})
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		v := Message()
		if seen[v] {
			t.Fatalf("duplicate id generated: %s", v)
		}
		seen[v] = true
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		want bool
	}{
		{"thread_" + strings.Repeat("a", 24), KindThread, true},
		{"thread_" + strings.Repeat("a", 24), KindRun, false},
		{"thread_" + strings.Repeat("a", 23), KindThread, false},
		{"thread_" + strings.Repeat("-", 24), KindThread, false},
		{"", KindThread, false},
	}

	for _, tt := range tests {
		if got := Is(tt.in, tt.kind); got != tt.want {
			t.Errorf("Is(%q, %q) = %v, want %v", tt.in, tt.kind, got, tt.want)
		}
	}
}

func TestRequest(t *testing.T) {
	r := Request()
	if !strings.HasPrefix(r, "req_") {
		t.Errorf("expected req_ prefix, got %q", r)
	}
	if len(r) != 4+32 {
		t.Errorf("expected 36 characters, got %d", len(r))
	}
}

func TestAlphanumeric(t *testing.T) {
	s := Alphanumeric(64)
	if len(s) != 64 {
		t.Fatalf("expected length 64, got %d", len(s))
	}
	for _, c := range s {
		if !strings.ContainsRune(charset, c) {
			t.Errorf("unexpected character %q", c)
		}
	}
}

package stateful

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/getmockd/mockd-openai/pkg/schema"
)

// =============================================================================
// Helpers
// =============================================================================

func seedMessages(c *Collection[schema.Message], threadID string, n int) []string {
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = fmt.Sprintf("msg_%s_%d", threadID, i)
		c.Put(schema.Message{ID: ids[i], ThreadID: threadID})
	}
	return ids
}

func messageIDs(msgs []schema.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// =============================================================================
// Collection Tests
// =============================================================================

func TestCollection_PutGet(t *testing.T) {
	c := NewCollection[schema.Thread](ResourceThreads)

	if _, ok := c.Get("thread_missing"); ok {
		t.Error("expected missing thread to be absent")
	}

	c.Put(schema.Thread{ID: "thread_1", Metadata: schema.Metadata{"a": "1"}})
	got, ok := c.Get("thread_1")
	if !ok {
		t.Fatal("expected thread_1 to be present")
	}
	if got.Metadata["a"] != "1" {
		t.Errorf("expected metadata a=1, got %v", got.Metadata)
	}
}

func TestCollection_PutReplacesInPlace(t *testing.T) {
	c := NewCollection[schema.Thread](ResourceThreads)
	c.Put(schema.Thread{ID: "t1"})
	c.Put(schema.Thread{ID: "t2"})
	c.Put(schema.Thread{ID: "t1", Metadata: schema.Metadata{"v": 2}})

	if c.Len() != 2 {
		t.Fatalf("expected 2 threads, got %d", c.Len())
	}

	got := c.List("", ListQuery{Order: OrderAsc})
	if got[0].ID != "t1" || got[1].ID != "t2" {
		t.Errorf("expected replacement to keep position, got %s,%s", got[0].ID, got[1].ID)
	}
	if got[0].Metadata["v"] != 2 {
		t.Errorf("expected replaced value, got %v", got[0].Metadata)
	}
}

func TestCollection_Delete(t *testing.T) {
	c := NewCollection[schema.Thread](ResourceThreads)
	c.Put(schema.Thread{ID: "t1"})

	if !c.Delete("t1") {
		t.Error("first delete should report true")
	}
	if c.Delete("t1") {
		t.Error("second delete should report false")
	}
	if len(c.List("", DefaultListQuery())) != 0 {
		t.Error("deleted thread still listed")
	}
}

func TestCollection_MustGet(t *testing.T) {
	c := NewCollection[schema.Run](ResourceRuns)

	_, err := c.MustGet("run_x")
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if StatusCode(err) != http.StatusNotFound {
		t.Errorf("expected 404, got %d", StatusCode(err))
	}
}

func TestCollection_ListFiltersByParent(t *testing.T) {
	c := NewCollection[schema.Message](ResourceMessages)
	seedMessages(c, "a", 3)
	seedMessages(c, "b", 2)

	if n := len(c.List("a", DefaultListQuery())); n != 3 {
		t.Errorf("expected 3 messages for thread a, got %d", n)
	}
	if n := len(c.List("b", DefaultListQuery())); n != 2 {
		t.Errorf("expected 2 messages for thread b, got %d", n)
	}
	if n := len(c.List("", DefaultListQuery())); n != 5 {
		t.Errorf("expected 5 messages overall, got %d", n)
	}
}

func TestCollection_ListOrder(t *testing.T) {
	c := NewCollection[schema.Message](ResourceMessages)
	ids := seedMessages(c, "t", 5)

	asc := messageIDs(c.List("t", ListQuery{Order: OrderAsc}))
	if !equalIDs(asc, ids) {
		t.Errorf("asc: expected %v, got %v", ids, asc)
	}

	desc := messageIDs(c.List("t", ListQuery{}))
	want := []string{ids[4], ids[3], ids[2], ids[1], ids[0]}
	if !equalIDs(desc, want) {
		t.Errorf("desc (default): expected %v, got %v", want, desc)
	}
}

func TestCollection_ListCursorPagination(t *testing.T) {
	c := NewCollection[schema.Message](ResourceMessages)
	ids := seedMessages(c, "t", 5)

	page1, more := c.Page("t", ListQuery{Limit: 2, Order: OrderAsc})
	if !equalIDs(messageIDs(page1), ids[0:2]) {
		t.Fatalf("page1: expected %v, got %v", ids[0:2], messageIDs(page1))
	}
	if !more {
		t.Error("page1: expected has_more")
	}

	page2, more := c.Page("t", ListQuery{Limit: 2, Order: OrderAsc, After: page1[1].ID})
	if !equalIDs(messageIDs(page2), ids[2:4]) {
		t.Fatalf("page2: expected %v, got %v", ids[2:4], messageIDs(page2))
	}
	if !more {
		t.Error("page2: expected has_more")
	}

	page3, more := c.Page("t", ListQuery{Limit: 2, Order: OrderAsc, After: page2[1].ID})
	if !equalIDs(messageIDs(page3), ids[4:5]) {
		t.Fatalf("page3: expected %v, got %v", ids[4:5], messageIDs(page3))
	}
	if more {
		t.Error("page3: expected no more")
	}
}

func TestCollection_ListCursorFollowsOrdering(t *testing.T) {
	c := NewCollection[schema.Message](ResourceMessages)
	ids := seedMessages(c, "t", 5)

	// In desc order "after ids[2]" means older entries.
	got := messageIDs(c.List("t", ListQuery{Order: OrderDesc, After: ids[2]}))
	want := []string{ids[1], ids[0]}
	if !equalIDs(got, want) {
		t.Errorf("desc after: expected %v, got %v", want, got)
	}

	got = messageIDs(c.List("t", ListQuery{Order: OrderAsc, Before: ids[2]}))
	want = []string{ids[0], ids[1]}
	if !equalIDs(got, want) {
		t.Errorf("asc before: expected %v, got %v", want, got)
	}
}

func TestCollection_ListCursorEdgeCases(t *testing.T) {
	c := NewCollection[schema.Message](ResourceMessages)
	ids := seedMessages(c, "t", 5)
	other := seedMessages(c, "u", 1)

	tests := []struct {
		name string
		q    ListQuery
		want []string
	}{
		{"unknown after", ListQuery{Order: OrderAsc, After: "msg_nope"}, []string{}},
		{"unknown before", ListQuery{Order: OrderAsc, Before: "msg_nope"}, []string{}},
		{"cursor from other thread", ListQuery{Order: OrderAsc, After: other[0]}, []string{}},
		{"after last", ListQuery{Order: OrderAsc, After: ids[4]}, []string{}},
		{"both cursors", ListQuery{Order: OrderAsc, After: ids[0], Before: ids[3]}, []string{ids[1], ids[2]}},
		{"both cursors inverted", ListQuery{Order: OrderAsc, After: ids[3], Before: ids[0]}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := messageIDs(c.List("t", tt.q))
			if !equalIDs(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCollection_Reset(t *testing.T) {
	c := NewCollection[schema.Message](ResourceMessages)
	seedMessages(c, "t", 3)

	if n := c.Reset(); n != 3 {
		t.Errorf("expected 3 cleared, got %d", n)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty collection, got %d", c.Len())
	}
}

// =============================================================================
// ListQuery Tests
// =============================================================================

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		query string
		want  ListQuery
	}{
		{"", ListQuery{Limit: 20, Order: OrderDesc}},
		{"limit=5&order=asc", ListQuery{Limit: 5, Order: OrderAsc}},
		{"limit=abc", ListQuery{Limit: 20, Order: OrderDesc}},
		{"limit=0", ListQuery{Limit: 20, Order: OrderDesc}},
		{"limit=-3", ListQuery{Limit: 20, Order: OrderDesc}},
		{"limit=-5", ListQuery{Limit: 20, Order: OrderDesc}},
		{"limit=1", ListQuery{Limit: 1, Order: OrderDesc}},
		{"limit=500", ListQuery{Limit: 100, Order: OrderDesc}},
		{"order=sideways", ListQuery{Limit: 20, Order: OrderDesc}},
		{"order=ASC", ListQuery{Limit: 20, Order: OrderAsc}},
		{"after=msg_a&before=msg_b", ListQuery{Limit: 20, Order: OrderDesc, After: "msg_a", Before: "msg_b"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("bad query: %v", err)
			}
			got := ParseListQuery(values)
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

// =============================================================================
// StateStore Tests
// =============================================================================

func TestStateStore_Overview(t *testing.T) {
	s := NewStateStore()
	s.Threads.Put(schema.Thread{ID: "t1"})
	s.Messages.Put(schema.Message{ID: "m1", ThreadID: "t1"})
	s.Messages.Put(schema.Message{ID: "m2", ThreadID: "t1"})

	o := s.Overview()
	if o.TotalItems != 3 {
		t.Errorf("expected 3 total items, got %d", o.TotalItems)
	}
	if o.Counts[ResourceMessages] != 2 {
		t.Errorf("expected 2 messages, got %d", o.Counts[ResourceMessages])
	}
}

func TestStateStore_Reset(t *testing.T) {
	s := NewStateStore()
	s.Threads.Put(schema.Thread{ID: "t1"})
	s.Runs.Put(schema.Run{ID: "r1", ThreadID: "t1"})

	resp := s.Reset()
	if !resp.Reset || resp.Total != 2 {
		t.Errorf("unexpected reset response: %+v", resp)
	}
	if s.ThreadExists("t1") {
		t.Error("thread survived reset")
	}
}

func TestStateStore_DeleteThreadLeavesChildren(t *testing.T) {
	s := NewStateStore()
	s.Threads.Put(schema.Thread{ID: "t1"})
	s.Messages.Put(schema.Message{ID: "m1", ThreadID: "t1"})

	s.Threads.Delete("t1")
	if _, ok := s.Messages.Get("m1"); !ok {
		t.Error("store must not cascade deletes")
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Resource: ResourceThreads, ID: "thread_x"}
	if err.Error() != `threads item "thread_x" not found` {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if err.Hint() == "" {
		t.Error("expected a hint")
	}

	v := &ValidationError{Field: "role", Message: "must be user or assistant"}
	if StatusCode(v) != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", StatusCode(v))
	}
	if StatusCode(fmt.Errorf("plain")) != http.StatusInternalServerError {
		t.Error("expected 500 for plain errors")
	}
}

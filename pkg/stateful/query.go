package stateful

import (
	"net/url"
	"strconv"
	"strings"
)

// Order is the direction of a listing over creation order.
type Order string

// Listing orders.
const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Pagination limits.
const (
	DefaultLimit = 20
	MinLimit     = 1
	MaxLimit     = 100
)

// ListQuery contains cursor pagination parameters.
type ListQuery struct {
	// Limit is the page size (default 20 when absent or non-positive, at most 100).
	Limit int
	// Order is "asc" or "desc" over creation order (default "desc").
	Order Order
	// After is an exclusive cursor: only entities following it are returned.
	After string
	// Before is an exclusive cursor: only entities preceding it are returned.
	Before string
}

// DefaultListQuery returns a ListQuery with the default limit and order.
func DefaultListQuery() ListQuery {
	return ListQuery{Limit: DefaultLimit, Order: OrderDesc}
}

// ParseListQuery reads limit, order, after and before from a query string.
// Invalid values fall back to defaults; it never fails.
func ParseListQuery(values url.Values) ListQuery {
	q := DefaultListQuery()

	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Limit = n
		}
	}

	q.Order = Order(strings.ToLower(values.Get("order")))
	q.After = values.Get("after")
	q.Before = values.Get("before")

	return q.Normalize()
}

// Normalize applies defaults and clamps the limit. Non-positive limits are
// invalid and fall back to DefaultLimit.
func (q ListQuery) Normalize() ListQuery {
	switch {
	case q.Limit < MinLimit:
		q.Limit = DefaultLimit
	case q.Limit > MaxLimit:
		q.Limit = MaxLimit
	}

	if q.Order != OrderAsc && q.Order != OrderDesc {
		q.Order = OrderDesc
	}
	return q
}

package schema

// CursorPage is the list envelope returned by list endpoints.
type CursorPage[T any] struct {
	Object  string  `json:"object"`
	Data    []T     `json:"data"`
	FirstID *string `json:"first_id"`
	LastID  *string `json:"last_id"`
	HasMore bool    `json:"has_more"`
}

// NewCursorPage wraps items in a list envelope.
func NewCursorPage[T interface{ GetID() string }](items []T, hasMore bool) CursorPage[T] {
	if items == nil {
		items = []T{}
	}
	page := CursorPage[T]{
		Object:  ObjectList,
		Data:    items,
		HasMore: hasMore,
	}
	if len(items) > 0 {
		first := items[0].GetID()
		last := items[len(items)-1].GetID()
		page.FirstID = &first
		page.LastID = &last
	}
	return page
}

// ErrorBody is the API error envelope.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes an API error.
type ErrorDetail struct {
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Param   *string `json:"param"`
	Code    *string `json:"code"`
}

package liststate

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize is the page size applied when none is requested.
	DefaultPageSize = 20
	// MaxPageSize caps the requested page size.
	MaxPageSize = 100
)

// AllowedSorts lists the sort keys accepted from the query string.
var AllowedSorts = []string{"newest", "oldest", "status", "title"}

// AllowedStatuses lists the status filter values accepted from the query string.
var AllowedStatuses = []string{
	"submitted", "in_review", "quoted", "approved", "won", "lost", "cancelled",
}

// ListState is the canonical filter/paging state for quote list views.
type ListState struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Sort     string `json:"sort"`
	Status   string `json:"status"`
	Q        string `json:"q"`
	HasBids  bool   `json:"hasBids"`
	Awarded  bool   `json:"awarded"`
}

// Default returns the list state used when no parameters are present.
func Default() ListState {
	return ListState{Page: 1, PageSize: DefaultPageSize, Sort: "newest"}
}

// ParseListState reads named query parameters into a ListState, applying
// defaults, allow-lists and clamping. Unknown or malformed values fall back
// to defaults rather than erroring.
func ParseListState(values url.Values) ListState {
	state := Default()

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 1 {
		state.Page = page
	}
	if size, err := strconv.Atoi(values.Get("pageSize")); err == nil && size > 0 {
		if size > MaxPageSize {
			size = MaxPageSize
		}
		state.PageSize = size
	}
	if sort := values.Get("sort"); contains(AllowedSorts, sort) {
		state.Sort = sort
	}
	if status := values.Get("status"); contains(AllowedStatuses, status) {
		state.Status = status
	}
	state.Q = values.Get("q")
	state.HasBids = values.Get("hasBids") == "true"
	state.Awarded = values.Get("awarded") == "true"

	return state
}

// BuildListQuery round-trips a ListState back into a canonical query string,
// omitting values that match the defaults.
func BuildListQuery(state ListState) string {
	values := url.Values{}

	if state.Page > 1 {
		values.Set("page", strconv.Itoa(state.Page))
	}
	if state.PageSize != DefaultPageSize && state.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(state.PageSize))
	}
	if state.Sort != "" && state.Sort != "newest" {
		values.Set("sort", state.Sort)
	}
	if state.Status != "" {
		values.Set("status", state.Status)
	}
	if state.Q != "" {
		values.Set("q", state.Q)
	}
	if state.HasBids {
		values.Set("hasBids", "true")
	}
	if state.Awarded {
		values.Set("awarded", "true")
	}

	return values.Encode()
}

// Offset converts page/pageSize into a SQL offset.
func (s ListState) Offset() int {
	return (s.Page - 1) * s.PageSize
}

func contains(allowed []string, v string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

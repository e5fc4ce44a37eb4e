package shared

// Pagination bounds used when callers omit or exceed limits
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PageRequest is an offset-based page window.
type PageRequest struct {
	Skip  int
	Limit int
}

// NewPageRequest validates skip/limit. A zero limit falls back to DefaultPageLimit.
func NewPageRequest(skip, limit int) (PageRequest, error) {
	if skip < 0 {
		return PageRequest{}, Validation("skip must be greater than or equal to 0")
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 1 || limit > MaxPageLimit {
		return PageRequest{}, Validation("limit must be between 1 and %d", MaxPageLimit)
	}
	return PageRequest{Skip: skip, Limit: limit}, nil
}

// Page represents one offset-based page of results
type Page[T any] struct {
	Items       []T   `json:"items"`
	Total       int64 `json:"total"`
	Skip        int   `json:"skip"`
	Limit       int   `json:"limit"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPage creates a page and derives the navigation flags from skip, limit and total.
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Total:       total,
		Skip:        req.Skip,
		Limit:       req.Limit,
		HasNext:     int64(req.Skip+req.Limit) < total,
		HasPrevious: req.Skip > 0,
	}
}

// MapPage converts the items of a page while keeping its bookkeeping.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[U]{
		Items:       items,
		Total:       p.Total,
		Skip:        p.Skip,
		Limit:       p.Limit,
		HasNext:     p.HasNext,
		HasPrevious: p.HasPrevious,
	}
}

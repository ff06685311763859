package pipeline

// Pagination defaults. Non-positive requests are clamped to the minimums
// rather than rejected; the clamp policy is applied uniformly across every
// paginated operation.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is a normalized pagination window.
type Page struct {
	Number int
	Limit  int
}

// NormalizePage applies defaults for absent values (zero) and clamps
// non-positive inputs to 1.
func NormalizePage(p Page) Page {
	if p.Number == 0 {
		p.Number = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	return p
}

// Offset is the number of records skipped before the window starts.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Meta describes a paginated result. TotalCount is computed against the same
// filter predicate as the windowed read; TotalPages is zero exactly when
// TotalCount is zero.
type Meta struct {
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

// NewMeta derives result metadata for a total count under the given window.
func NewMeta(totalCount int, p Page) Meta {
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + p.Limit - 1) / p.Limit
	}
	return Meta{
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       p.Number,
		Limit:      p.Limit,
	}
}

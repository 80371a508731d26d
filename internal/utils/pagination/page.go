package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Request is a page/limit pair as it arrives from a query string.
type Request struct {
	Page  int
	Limit int
	// Disabled returns every row and no metadata.
	Disabled bool
}

// Meta describes where a page sits in the full result set.
type Meta struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// Normalize replaces out-of-range values with defaults and caps the limit.
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.Limit < 1 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	return r
}

// Offset is the number of rows to skip. Call on a normalized request.
func (r Request) Offset() int {
	return (r.Page - 1) * r.Limit
}

// NewMeta builds metadata for a normalized request and the total row count.
func NewMeta(r Request, total int) *Meta {
	pages := 0
	if r.Limit > 0 {
		pages = (total + r.Limit - 1) / r.Limit
	}
	return &Meta{
		Total:   total,
		Page:    r.Page,
		Limit:   r.Limit,
		Pages:   pages,
		HasNext: r.Page < pages,
		HasPrev: r.Page > 1,
	}
}

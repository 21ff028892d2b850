package pagination

import (
	"fmt"
	"math"
)

// Meta contains derived metadata about a paginated result set, used to
// enable or disable navigation affordances and render display counters.
type Meta struct {
	Page       int  `json:"page"        yaml:"page"`
	PageSize   int  `json:"page_size"   yaml:"page_size"`
	TotalPages int  `json:"total_pages" yaml:"total_pages"`
	TotalItems int  `json:"total_items" yaml:"total_items"`
	HasPrev    bool `json:"has_prev"    yaml:"has_prev"`
	HasNext    bool `json:"has_next"    yaml:"has_next"`

	// RangeStart and RangeEnd are the 1-based item positions covered by
	// the current page. For an empty result set RangeStart is 1 and
	// RangeEnd is 0; RangeLabel renders that as "no items" rather than
	// the literal "1-0".
	RangeStart int `json:"range_start" yaml:"range_start"`
	RangeEnd   int `json:"range_end"   yaml:"range_end"`
}

// NewMeta derives pagination metadata from a page position and total count.
func NewMeta(page, pageSize, total int) Meta {
	if page < 1 {
		page = 1
	}
	if total < 0 {
		total = 0
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	rangeEnd := page * pageSize
	if rangeEnd > total {
		rangeEnd = total
	}

	return Meta{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		RangeStart: (page-1)*pageSize + 1,
		RangeEnd:   rangeEnd,
	}
}

// RangeLabel renders the covered item range for display, e.g.
// "91-95 of 95". An empty result set renders as "no items".
func (m Meta) RangeLabel() string {
	if m.TotalItems == 0 {
		return "no items"
	}
	return fmt.Sprintf("%d-%d of %d", m.RangeStart, m.RangeEnd, m.TotalItems)
}

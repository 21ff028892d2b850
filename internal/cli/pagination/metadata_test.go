package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		total    int
		want     Meta
	}{
		{
			name:     "first page of many",
			page:     1,
			pageSize: 10,
			total:    95,
			want: Meta{
				Page: 1, PageSize: 10, TotalPages: 10, TotalItems: 95,
				HasPrev: false, HasNext: true, RangeStart: 1, RangeEnd: 10,
			},
		},
		{
			name:     "last partial page",
			page:     10,
			pageSize: 10,
			total:    95,
			want: Meta{
				Page: 10, PageSize: 10, TotalPages: 10, TotalItems: 95,
				HasPrev: true, HasNext: false, RangeStart: 91, RangeEnd: 95,
			},
		},
		{
			name:     "middle page",
			page:     5,
			pageSize: 10,
			total:    95,
			want: Meta{
				Page: 5, PageSize: 10, TotalPages: 10, TotalItems: 95,
				HasPrev: true, HasNext: true, RangeStart: 41, RangeEnd: 50,
			},
		},
		{
			name:     "empty result set",
			page:     1,
			pageSize: 10,
			total:    0,
			want: Meta{
				Page: 1, PageSize: 10, TotalPages: 0, TotalItems: 0,
				HasPrev: false, HasNext: false, RangeStart: 1, RangeEnd: 0,
			},
		},
		{
			name:     "single full page",
			page:     1,
			pageSize: 10,
			total:    10,
			want: Meta{
				Page: 1, PageSize: 10, TotalPages: 1, TotalItems: 10,
				HasPrev: false, HasNext: false, RangeStart: 1, RangeEnd: 10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMeta(tt.page, tt.pageSize, tt.total))
		})
	}
}

func TestMeta_RangeLabel(t *testing.T) {
	assert.Equal(t, "91-95 of 95", NewMeta(10, 10, 95).RangeLabel())
	assert.Equal(t, "1-10 of 95", NewMeta(1, 10, 95).RangeLabel())
	assert.Equal(t, "no items", NewMeta(1, 10, 0).RangeLabel(), "total=0 must not render as the literal 1-0")
}

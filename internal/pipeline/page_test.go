package pipeline

import "testing"

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		name       string
		number     int
		limit      int
		wantNumber int
		wantLimit  int
	}{
		{"defaults", 0, 0, 1, 10},
		{"explicit", 3, 25, 3, 25},
		{"negativePage", -4, 10, 1, 10},
		{"negativeLimit", 2, -1, 2, 1},
		{"bothNegative", -1, -1, 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NormalizePage(Page{Number: tc.number, Limit: tc.limit})
			if p.Number != tc.wantNumber || p.Limit != tc.wantLimit {
				t.Fatalf("got page %d limit %d, want %d %d", p.Number, p.Limit, tc.wantNumber, tc.wantLimit)
			}
		})
	}
}

func TestPageOffset(t *testing.T) {
	if got := NormalizePage(Page{Number: 1, Limit: 10}).Offset(); got != 0 {
		t.Fatalf("first page offset = %d, want 0", got)
	}
	if got := NormalizePage(Page{Number: 3, Limit: 7}).Offset(); got != 14 {
		t.Fatalf("third page offset = %d, want 14", got)
	}
}

func TestNewMeta(t *testing.T) {
	cases := []struct {
		name       string
		total      int
		page       Page
		wantPages  int
	}{
		{"empty", 0, Page{Number: 1, Limit: 10}, 0},
		{"exactFit", 20, Page{Number: 2, Limit: 10}, 2},
		{"partialLastPage", 21, Page{Number: 1, Limit: 10}, 3},
		{"singleRecord", 1, Page{Number: 1, Limit: 10}, 1},
		{"fiveOverTwo", 5, Page{Number: 2, Limit: 2}, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := NewMeta(tc.total, tc.page)
			if meta.TotalPages != tc.wantPages {
				t.Fatalf("totalPages = %d, want %d", meta.TotalPages, tc.wantPages)
			}
			if meta.TotalCount != tc.total || meta.Page != tc.page.Number || meta.Limit != tc.page.Limit {
				t.Fatalf("unexpected meta: %+v", meta)
			}
			if (meta.TotalPages == 0) != (meta.TotalCount == 0) {
				t.Fatalf("totalPages must be zero exactly when totalCount is zero: %+v", meta)
			}
		})
	}
}

// Requesting every page with a fixed limit must cover the whole set in
// non-overlapping windows whose sizes sum to the total count.
func TestWindowsPartitionTotal(t *testing.T) {
	const total = 53
	const limit = 7

	meta := NewMeta(total, NormalizePage(Page{Number: 1, Limit: limit}))
	seen := 0
	for n := 1; n <= meta.TotalPages; n++ {
		p := NormalizePage(Page{Number: n, Limit: limit})
		size := total - p.Offset()
		if size > limit {
			size = limit
		}
		if size < 0 {
			size = 0
		}
		seen += size
	}

	if seen != total {
		t.Fatalf("windows covered %d records, want %d", seen, total)
	}
}

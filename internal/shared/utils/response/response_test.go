package response

import "testing"

func TestNewPageTotals(t *testing.T) {
	p := NewPage([]string{"a", "b"}, 1, 10, 23)
	if p.Pagination.TotalPages != 3 {
		t.Errorf("pages = %d, want 3", p.Pagination.TotalPages)
	}
	if p.Pagination.Total != 23 {
		t.Errorf("total = %d, want 23", p.Pagination.Total)
	}
}

func TestNewPageNilItems(t *testing.T) {
	p := NewPage[int](nil, 2, 10, 0)
	if p.Items == nil {
		t.Fatal("items must serialize as [] not null")
	}
	if p.Pagination.TotalPages != 0 {
		t.Errorf("pages = %d, want 0", p.Pagination.TotalPages)
	}
}

func TestTotalPagesZeroLimit(t *testing.T) {
	if got := TotalPages(10, 0); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

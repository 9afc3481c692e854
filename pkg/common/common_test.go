package common

import (
	"testing"
)

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{10000, "Rp 10.000"},
		{150000, "Rp 150.000"},
		{155000, "Rp 155.000"},
		{1234567, "Rp 1.234.567"},
		{1000000000, "Rp 1.000.000.000"},
		{155000.4, "Rp 155.000"}, // fractions round to whole rupiah
		{-25000, "-Rp 25.000"},
	}

	for _, c := range cases {
		if got := FormatRupiah(c.amount); got != c.want {
			t.Errorf("FormatRupiah(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}

func TestPaginateResponse(t *testing.T) {
	// Test case 1: Normal pagination
	total := int64(100)
	page := 1
	limit := 10
	data := []string{"item1", "item2"}

	res := PaginateResponse(data, total, page, limit, "")

	if res.Message != "success" {
		t.Errorf("Expected default message success, got %s", res.Message)
	}
	if res.CurrentPage != 1 {
		t.Errorf("Expected CurrentPage 1, got %d", res.CurrentPage)
	}
	if res.LastPage != 10 {
		t.Errorf("Expected LastPage 10, got %d", res.LastPage)
	}
	if res.NextPage != 2 {
		t.Errorf("Expected NextPage 2, got %d", res.NextPage)
	}
	if res.PrevPage != 0 {
		t.Errorf("Expected PrevPage 0, got %d", res.PrevPage)
	}
	if res.Count != 100 {
		t.Errorf("Expected Count 100, got %d", res.Count)
	}

	// Test case 2: Last page
	page = 10
	res = PaginateResponse(data, total, page, limit, "")
	if res.NextPage != 0 {
		t.Errorf("Expected NextPage 0 for last page, got %d", res.NextPage)
	}

	// Test case 3: Middle page
	page = 5
	res = PaginateResponse(data, total, page, limit, "")
	if res.PrevPage != 4 {
		t.Errorf("Expected PrevPage 4, got %d", res.PrevPage)
	}
	if res.NextPage != 6 {
		t.Errorf("Expected NextPage 6, got %d", res.NextPage)
	}

	// Test case 4: Empty result set
	res = PaginateResponse([]string{}, 0, 1, 10, "")
	if res.LastPage != 0 {
		t.Errorf("Expected LastPage 0 for empty set, got %d", res.LastPage)
	}
	if res.NextPage != 0 {
		t.Errorf("Expected NextPage 0 for empty set, got %d", res.NextPage)
	}
}

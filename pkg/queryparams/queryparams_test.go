package queryparams

import "testing"

func TestValidateClampsOutOfRangeValues(t *testing.T) {
	p := ListParams{Page: -1, PerPage: 500, OrderBy: "yukarı"}
	p.Validate()

	if p.Page != DefaultPage {
		t.Errorf("sayfa %d bekleniyordu, %d geldi", DefaultPage, p.Page)
	}
	if p.PerPage != DefaultPerPage {
		t.Errorf("sayfa boyutu %d bekleniyordu, %d geldi", DefaultPerPage, p.PerPage)
	}
	if p.OrderBy != DefaultOrderBy {
		t.Errorf("sıralama yönü %q bekleniyordu, %q geldi", DefaultOrderBy, p.OrderBy)
	}

	valid := ListParams{Page: 3, PerPage: 50, OrderBy: "asc"}
	valid.Validate()
	if valid.Page != 3 || valid.PerPage != 50 || valid.OrderBy != "asc" {
		t.Errorf("geçerli değerler değişmemeliydi: %+v", valid)
	}
}

func TestCalculateOffset(t *testing.T) {
	cases := []struct {
		page, perPage, want int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 15, 30},
		{0, 20, 0}, // geçersiz sayfa varsayılana çekilir
	}
	for _, tc := range cases {
		p := ListParams{Page: tc.page, PerPage: tc.perPage}
		if got := p.CalculateOffset(); got != tc.want {
			t.Errorf("sayfa %d, boyut %d: offset %d bekleniyordu, %d geldi", tc.page, tc.perPage, tc.want, got)
		}
	}
}

func TestCalculateTotalPages(t *testing.T) {
	cases := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 20, 0},
		{20, 20, 1},
		{21, 20, 2},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := CalculateTotalPages(tc.total, tc.perPage); got != tc.want {
			t.Errorf("toplam %d, boyut %d: %d sayfa bekleniyordu, %d geldi", tc.total, tc.perPage, tc.want, got)
		}
	}
}

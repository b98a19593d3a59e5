package table

import (
	"testing"

	"github.com/fulldump/biff"
)

func TestPaginate_Coverage(t *testing.T) {

	rows := samplePonds()

	for size := 1; size <= 7; size++ {
		_, pageCount := Paginate(rows, 0, size)

		all := []pond{}
		for i := 0; i < pageCount; i++ {
			page, _ := Paginate(rows, i, size)
			all = append(all, page...)
		}

		if !biff.AssertEqual(all, rows) {
			t.Fatalf("page size %d does not cover the rows", size)
		}
	}
}

func TestPaginate_Clamp(t *testing.T) {

	biff.Alternative("Clamp page index", func(a *biff.A) {

		rows := samplePonds()

		a.Alternative("Negative index", func(a *biff.A) {
			page, count := Paginate(rows, -3, 2)
			biff.AssertEqual(count, 3)
			biff.AssertEqual(names(page), []string{"North A", "North B"})
		})

		a.Alternative("Past the end", func(a *biff.A) {
			page, count := Paginate(rows, 99, 2)
			biff.AssertEqual(count, 3)
			biff.AssertEqual(names(page), []string{"East"})
		})

		a.Alternative("Empty rows have one page", func(a *biff.A) {
			page, count := Paginate([]pond{}, 4, 10)
			biff.AssertEqual(count, 1)
			biff.AssertEqual(len(page), 0)
		})

		a.Alternative("Invalid size falls back to default", func(a *biff.A) {
			page, count := Paginate(rows, 0, 0)
			biff.AssertEqual(count, 1)
			biff.AssertEqual(len(page), 5)
		})
	})
}

func TestPaginate_ReturnsCopy(t *testing.T) {

	rows := samplePonds()
	page, _ := Paginate(rows, 0, 2)
	page[0].Name = "changed"

	biff.AssertEqual(rows[0].Name, "North A")
}

func TestDisplayWindow(t *testing.T) {

	cases := []struct {
		page, size, total int
		first, last       int
	}{
		{1, 10, 0, 0, 0},
		{1, 10, 5, 1, 5},
		{2, 10, 25, 11, 20},
		{3, 10, 25, 21, 25},
		{5, 10, 25, 25, 25},
		{0, 10, 25, 1, 10},
		{1, 0, 25, 0, 0},
	}

	for _, c := range cases {
		first, last := DisplayWindow(c.page, c.size, c.total)
		if first != c.first || last != c.last {
			t.Errorf("DisplayWindow(%d, %d, %d) = (%d, %d), want (%d, %d)",
				c.page, c.size, c.total, first, last, c.first, c.last)
		}
	}

	biff.AssertEqual(WindowLabel(11, 20, 25), "Showing 11 to 20 of 25 results")
}

func TestNormalizePageSize(t *testing.T) {
	biff.AssertEqual(NormalizePageSize(0), 10)
	biff.AssertEqual(NormalizePageSize(-5), 10)
	biff.AssertEqual(NormalizePageSize(10), 10)
	biff.AssertEqual(NormalizePageSize(15), 20)
	biff.AssertEqual(NormalizePageSize(100), 100)
	biff.AssertEqual(NormalizePageSize(500), 100)
}

func TestRun(t *testing.T) {

	page := Run(samplePonds(), Query{
		Search:  "a",
		Filters: Filters{"active": Flag(true)},
		Sort:    &SortSpec{Field: "fish", Direction: Descending},
		Page:    7,
		Size:    10,
	}, pondSchema())

	biff.AssertEqual(names(page.Rows), []string{"South A", "North A", "East"})
	biff.AssertEqual(page.PageIndex, 0)
	biff.AssertEqual(page.PageSize, 10)
	biff.AssertEqual(page.TotalElements, 3)
	biff.AssertEqual(page.TotalPages, 1)
	biff.AssertEqual(page.Label, "Showing 1 to 3 of 3 results")
}

func TestRun_NoResults(t *testing.T) {

	page := Run(samplePonds(), Query{Search: "zzz"}, pondSchema())

	biff.AssertEqual(len(page.Rows), 0)
	biff.AssertNotNil(page.Rows)
	biff.AssertEqual(page.TotalElements, 0)
	biff.AssertEqual(page.TotalPages, 1)
	biff.AssertEqual(page.FirstShown, 0)
	biff.AssertEqual(page.LastShown, 0)
}

package table

import (
	"testing"

	"github.com/fulldump/biff"
)

func TestView_FilterScenario(t *testing.T) {

	biff.Alternative("Five ponds, two active", func(a *biff.A) {

		rows := samplePonds()
		v := NewView(pondSchema())

		v.TogglePanel()
		v.SetFilter("status", Exact("Active"))
		biff.AssertEqual(v.PanelState(), PanelOpenDirty)

		// pending filters do not change the rows
		biff.AssertEqual(v.Render(rows).TotalElements, 5)

		biff.AssertTrue(v.ApplyFilters())
		page := v.Render(rows)
		biff.AssertEqual(names(page.Rows), []string{"North A", "South A"})
		biff.AssertEqual(page.Label, "Showing 1 to 2 of 2 results")

		a.Alternative("Clear resets to the full set", func(a *biff.A) {
			v.ClearFilters()
			biff.AssertEqual(v.Render(rows).Rows, rows)
		})

		a.Alternative("Remove the pill", func(a *biff.A) {
			v.TogglePanel()
			biff.AssertTrue(v.RemoveFilter("status"))
			biff.AssertEqual(v.PanelState(), PanelClosed)
			biff.AssertEqual(len(v.Render(rows).Rows), 5)
		})
	})
}

func TestView_PageResets(t *testing.T) {

	biff.Alternative("On the last page", func(a *biff.A) {

		rows := append(samplePonds(), samplePonds()...)
		v := NewView(pondSchema(), WithPageSize[pond](5))
		biff.AssertEqual(v.PageSize(), 10)

		v.SetPageSize(3)
		biff.AssertEqual(v.PageSize(), 10)

		v.SetPage(1)
		page := v.Render(rows)
		biff.AssertEqual(page.PageIndex, 0)

		a.Alternative("Out of range pages clamp on render", func(a *biff.A) {
			v.SetPageSize(10)
			v.SetPage(50)
			v.Render(rows)
			biff.AssertEqual(v.PageIndex(), 0)
		})

		a.Alternative("Search goes back to the first page", func(a *biff.A) {
			rows = append(rows, rows...)
			v.SetPage(1)
			biff.AssertEqual(v.Render(rows).PageIndex, 1)
			v.SetSearchTerm("north")
			biff.AssertEqual(v.PageIndex(), 0)
			biff.AssertEqual(v.Render(rows).TotalElements, 8)
		})
	})
}

func TestView_ToggleSort(t *testing.T) {

	v := NewView(pondSchema())

	v.ToggleSort("fish")
	biff.AssertEqual(v.Sort(), &SortSpec{Field: "fish", Direction: Ascending})

	v.ToggleSort("fish")
	biff.AssertEqual(v.Sort(), &SortSpec{Field: "fish", Direction: Descending})
	biff.AssertEqual(names(v.Render(samplePonds()).Rows), []string{"South A", "North A", "North B", "East", "South B"})

	v.ToggleSort("fish")
	biff.AssertNil(v.Sort())

	v.ToggleSort("fish")
	v.ToggleSort("name")
	biff.AssertEqual(v.Sort(), &SortSpec{Field: "name", Direction: Ascending})
}

func TestView_Query(t *testing.T) {

	v := NewView(pondSchema(), WithSort[pond](SortSpec{Field: "name", Direction: Descending}))
	v.SetSearchTerm("pond")
	v.TogglePanel()
	v.SetFilter("active", Flag(false))
	v.ApplyFilters()

	biff.AssertEqual(v.Query(), Query{
		Search:  "pond",
		Filters: Filters{"active": Flag(false)},
		Sort:    &SortSpec{Field: "name", Direction: Descending},
		Page:    0,
		Size:    10,
	})
}

func TestView_ServerDriven(t *testing.T) {

	pages := []int{}
	sizes := []int{}

	v := NewView(pondSchema(), WithServer[pond](
		func(page int) { pages = append(pages, page) },
		func(size int) { sizes = append(sizes, size) },
	))
	v.SetServerPage(ServerPage{Page: 0, Size: 10, TotalElements: 42, TotalPages: 5})

	v.SetPage(3)
	v.SetPage(99)
	biff.AssertEqual(pages, []int{3, 4})

	v.SetPageSize(20)
	biff.AssertEqual(sizes, []int{20})
	biff.AssertEqual(v.PageIndex(), 0)

	v.SetSearchTerm("zzz")
	biff.AssertEqual(pages, []int{3, 4, 0})

	page := v.Render(samplePonds()[:2])
	biff.AssertEqual(names(page.Rows), []string{"North A", "North B"})
	biff.AssertEqual(page.TotalElements, 42)
	biff.AssertEqual(page.TotalPages, 5)
	biff.AssertEqual(page.PageSize, 20)
	biff.AssertEqual(page.Label, "Showing 1 to 20 of 42 results")
}

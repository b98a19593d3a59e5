package service

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fulldump/biff"
	"github.com/tidwall/gjson"

	"github.com/fulldump/farmgrid/database"
	"github.com/fulldump/farmgrid/table"
)

func newTestService(t *testing.T) *Service {

	db := database.NewDatabase(&database.Config{Dir: t.TempDir()})
	biff.AssertNil(db.Load())

	s, err := NewService(db, nil)
	biff.AssertNil(err)

	col, err := s.CreateDataset("ponds")
	biff.AssertNil(err)

	for i := 1; i <= 25; i++ {
		status := "Stocked"
		if i%2 == 0 {
			status = "Empty"
		}
		_, err := col.Insert(map[string]any{
			"name":   fmt.Sprintf("Pond %02d", i),
			"status": status,
			"size":   i * 100,
		})
		biff.AssertNil(err)
	}

	return s
}

func names(rows []json.RawMessage) []string {
	result := []string{}
	for _, row := range rows {
		result = append(result, gjson.GetBytes(row, "name").String())
	}
	return result
}

func TestFind(t *testing.T) {

	biff.Alternative("Find", func(a *biff.A) {

		s := newTestService(t)

		a.Alternative("Filter and paginate", func(a *biff.A) {
			page, err := s.Find("ponds", table.Query{
				Filters: table.Filters{"status": table.Exact("stocked")},
				Page:    1,
				Size:    10,
			})
			biff.AssertNil(err)
			biff.AssertEqual(page.TotalElements, 13)
			biff.AssertEqual(page.TotalPages, 2)
			biff.AssertEqual(names(page.Rows), []string{"Pond 21", "Pond 23", "Pond 25"})
			biff.AssertEqual(page.Label, "Showing 11 to 13 of 13 results")
		})

		a.Alternative("Range over a number", func(a *biff.A) {
			page, err := s.Find("ponds", table.Query{
				Filters: table.Filters{"size": table.Between(300, 500)},
				Sort:    &table.SortSpec{Field: "size", Direction: table.Descending},
			})
			biff.AssertNil(err)
			biff.AssertEqual(names(page.Rows), []string{"Pond 05", "Pond 04", "Pond 03"})
		})

		a.Alternative("Page out of range is clamped", func(a *biff.A) {
			page, err := s.Find("ponds", table.Query{Page: 40})
			biff.AssertNil(err)
			biff.AssertEqual(page.PageIndex, 2)
			biff.AssertEqual(len(page.Rows), 5)
		})

		a.Alternative("Dataset not found", func(a *biff.A) {
			_, err := s.Find("invented", table.Query{})
			biff.AssertEqual(err, ErrorDatasetNotFound)
		})

		a.Alternative("Metrics", func(a *biff.A) {
			s.Find("ponds", table.Query{})

			w := httptest.NewRecorder()
			s.Metrics().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

			body := w.Body.String()
			biff.AssertTrue(strings.Contains(body, `farmgrid_queries_total{dataset="ponds",origin="find"} 1`))
			biff.AssertTrue(strings.Contains(body, "farmgrid_query_seconds"))
		})
	})
}

func TestViews(t *testing.T) {

	biff.Alternative("Views", func(a *biff.A) {

		s := newTestService(t)

		v, err := s.CreateView("ponds", "farmer")
		biff.AssertNil(err)

		state, err := v.Render()
		biff.AssertNil(err)
		biff.AssertEqual(state.Panel, "closed")
		biff.AssertEqual(state.Sort, &table.SortSpec{Field: "name", Direction: table.Ascending})
		biff.AssertEqual(state.Page.TotalElements, 25)
		biff.AssertEqual(state.Page.Label, "Showing 1 to 10 of 25 results")
		biff.AssertEqual(len(state.Controls), 2)

		a.Alternative("Pages", func(a *biff.A) {
			state, err := v.Update(func(t *table.View[json.RawMessage]) {
				t.SetPage(2)
			})
			biff.AssertNil(err)
			biff.AssertEqual(state.Page.PageIndex, 2)
			biff.AssertEqual(names(state.Page.Rows), []string{"Pond 21", "Pond 22", "Pond 23", "Pond 24", "Pond 25"})

			a.Alternative("Beyond the last page", func(a *biff.A) {
				state, _ := v.Update(func(t *table.View[json.RawMessage]) {
					t.SetPage(9)
				})
				biff.AssertEqual(state.Page.PageIndex, 2)
			})

			a.Alternative("Page size resets the page", func(a *biff.A) {
				state, _ := v.Update(func(t *table.View[json.RawMessage]) {
					t.SetPageSize(20)
				})
				biff.AssertEqual(state.Page.PageIndex, 0)
				biff.AssertEqual(len(state.Page.Rows), 20)
				biff.AssertEqual(state.Page.TotalPages, 2)
			})
		})

		a.Alternative("Filter panel", func(a *biff.A) {
			state, _ := v.Update(func(t *table.View[json.RawMessage]) {
				t.SetPage(1)
				t.TogglePanel()
				t.SetFilter("status", table.Exact("Empty"))
			})
			biff.AssertEqual(state.Panel, "pending")
			biff.AssertEqual(state.Page.TotalElements, 25)
			biff.AssertEqual(state.Page.PageIndex, 1)

			state, _ = v.Update(func(t *table.View[json.RawMessage]) {
				t.ApplyFilters()
			})
			biff.AssertEqual(state.Panel, "open")
			biff.AssertEqual(state.Page.TotalElements, 12)
			biff.AssertEqual(state.Page.PageIndex, 0)

			a.Alternative("Search", func(a *biff.A) {
				state, _ := v.Update(func(t *table.View[json.RawMessage]) {
					t.SetSearchTerm("pond 1")
				})
				biff.AssertEqual(names(state.Page.Rows), []string{"Pond 10", "Pond 12", "Pond 14", "Pond 16", "Pond 18"})
			})

			a.Alternative("Clear", func(a *biff.A) {
				state, _ := v.Update(func(t *table.View[json.RawMessage]) {
					t.ClearFilters()
				})
				biff.AssertEqual(state.Page.TotalElements, 25)
				biff.AssertEqual(state.Applied, table.Filters{})
			})
		})

		a.Alternative("Close", func(a *biff.A) {
			biff.AssertNil(s.CloseView(v.Id))
			_, err := s.GetView(v.Id)
			biff.AssertEqual(err, ErrorViewNotFound)
			biff.AssertEqual(s.CloseView(v.Id), ErrorViewNotFound)
		})

		a.Alternative("Drop dataset closes its views", func(a *biff.A) {
			biff.AssertNil(s.DropDataset("ponds"))
			_, err := s.GetView(v.Id)
			biff.AssertEqual(err, ErrorViewNotFound)
		})

		a.Alternative("Unknown dataset", func(a *biff.A) {
			_, err := s.CreateView("invented", "admin")
			biff.AssertEqual(err, ErrorDatasetNotFound)
		})
	})
}

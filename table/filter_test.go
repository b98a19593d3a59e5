package table

import (
	"encoding/json"
	"testing"

	"github.com/fulldump/biff"
)

func TestApplyFilters(t *testing.T) {

	biff.Alternative("Filter ponds", func(a *biff.A) {

		rows := samplePonds()
		schema := pondSchema()

		a.Alternative("Exact status keeps order", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{"status": Exact("Active")}, schema)
			biff.AssertEqual(names(result), []string{"North A", "South A"})
		})

		a.Alternative("Strings ignore case", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{"status": Exact("active")}, schema)
			biff.AssertEqual(names(result), []string{"North A", "South A"})
		})

		a.Alternative("Filters are ANDed", func(a *biff.A) {
			both := ApplyFilters(rows, Filters{"status": Exact("Active"), "cluster": Exact("Epe")}, schema)
			biff.AssertEqual(names(both), []string{"South A"})

			onlyStatus := names(ApplyFilters(rows, Filters{"status": Exact("Active")}, schema))
			onlyCluster := names(ApplyFilters(rows, Filters{"cluster": Exact("Epe")}, schema))
			for _, name := range names(both) {
				biff.AssertInArray(onlyStatus, name)
				biff.AssertInArray(onlyCluster, name)
			}
		})

		a.Alternative("Boolean flag", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{"active": Flag(true)}, schema)
			biff.AssertEqual(names(result), []string{"North A", "South A", "East"})
		})

		a.Alternative("Flag only matches booleans", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{"status": Flag(true)}, schema)
			biff.AssertEqual(len(result), 0)
		})

		a.Alternative("Numeric range is inclusive", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{"fish": Between(800, 1500)}, schema)
			biff.AssertEqual(names(result), []string{"North A", "North B", "South A"})
		})

		a.Alternative("Open range", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{"fish": Between(nil, 300)}, schema)
			biff.AssertEqual(names(result), []string{"South B", "East"})
		})

		a.Alternative("Date range from calendar strings", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{"stocked": Between("2024-02-01", "2024-03-01")}, schema)
			biff.AssertEqual(names(result), []string{"North B", "South A", "South B"})
		})

		a.Alternative("Number typed as text", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{"fish": Exact("1200")}, schema)
			biff.AssertEqual(names(result), []string{"North A"})
		})

		a.Alternative("Blank filters are inactive", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{
				"status":  Exact(""),
				"cluster": Exact(nil),
				"fish":    Between(nil, ""),
				"query":   Where(nil),
			}, schema)
			biff.AssertEqual(result, rows)
		})

		a.Alternative("Unknown field never matches", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{"cluster.name": Exact("Epe")}, schema)
			biff.AssertEqual(len(result), 0)
		})

		a.Alternative("Query without documents never matches", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{"q": Where(map[string]any{"status": "Active"})}, schema)
			biff.AssertEqual(len(result), 0)
		})
	})
}

func TestApplyFilters_Documents(t *testing.T) {

	rows := []Document{
		{"name": "Batch 1", "cluster": map[string]any{"name": "Epe"}, "harvestedAt": "2024-03-01T18:00:00Z"},
		{"name": "Batch 2", "cluster": map[string]any{"name": "Ikorodu"}, "harvestedAt": "2024-03-02T08:00:00Z"},
		{"name": "Batch 3", "cluster": "Epe"},
	}
	schema := MapSchema()

	biff.Alternative("Documents", func(a *biff.A) {

		a.Alternative("Dot path", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{"cluster.name": Exact("EPE")}, schema)
			biff.AssertEqual(len(result), 1)
			biff.AssertEqual(result[0]["name"], "Batch 1")
		})

		a.Alternative("Date only upper bound covers the whole day", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{"harvestedAt": Between("2024-03-01", "2024-03-01")}, schema)
			biff.AssertEqual(len(result), 1)
			biff.AssertEqual(result[0]["name"], "Batch 1")
		})

		a.Alternative("Query filter", func(a *biff.A) {
			result := ApplyFilters(rows, Filters{"q": Where(map[string]any{"name": "Batch 3"})}, schema)
			biff.AssertEqual(len(result), 1)
			biff.AssertEqual(result[0]["name"], "Batch 3")
		})
	})
}

func TestApplyFilters_JSONRows(t *testing.T) {

	rows := jsonRows(
		`{"id":"1","status":"Active","pond":{"number":3}}`,
		`{"id":"2","status":"Active","pond":{"number":4}}`,
		`{"id":"3","status":"Sold","pond":{"number":3}}`,
	)

	result := ApplyFilters(rows, Filters{
		"status":      Exact("active"),
		"pond.number": Exact(3),
	}, JSONSchema())

	biff.AssertEqual(len(result), 1)
	biff.AssertEqual(string(result[0]), `{"id":"1","status":"Active","pond":{"number":3}}`)
}

func TestApplyFilters_NumericText(t *testing.T) {

	rows := jsonRows(
		`{"size":"10"}`,
		`{"size":"7"}`,
		`{"size":"25"}`,
		`{"size":"large"}`,
	)

	result := ApplyFilters(rows, Filters{"size": Between("5", "20")}, JSONSchema())

	biff.AssertEqual(len(result), 2)
	biff.AssertEqual(string(result[0]), `{"size":"10"}`)
	biff.AssertEqual(string(result[1]), `{"size":"7"}`)
}

func TestFilter_UnmarshalJSON(t *testing.T) {

	filters := Filters{}
	err := json.Unmarshal([]byte(`{
		"status": "Active",
		"active": true,
		"fish": {"from": 100, "to": null},
		"weight": {"$gt": 2},
		"empty": null
	}`), &filters)
	biff.AssertNil(err)

	biff.AssertEqual(filters["status"], Exact("Active"))
	biff.AssertEqual(filters["active"], Flag(true))
	biff.AssertEqual(filters["fish"], Between(float64(100), nil))
	biff.AssertEqual(filters["weight"].Kind, KindQuery)
	biff.AssertEqual(filters["empty"].Active(), false)
	biff.AssertEqual(len(filters.Active()), 4)
}

func TestFilter_MarshalJSON(t *testing.T) {

	data, err := json.Marshal(Filters{
		"fish":   Between(1, 2),
		"status": Exact("Active"),
	})
	biff.AssertNil(err)
	biff.AssertEqual(string(data), `{"fish":{"from":1,"to":2},"status":"Active"}`)
}

func TestFilter_UnmarshalJSON_List(t *testing.T) {
	f := Filter{}
	err := json.Unmarshal([]byte(`["a","b"]`), &f)
	biff.AssertNotNil(err)
}

package table

import (
	"testing"

	"github.com/fulldump/biff"
)

func TestApplySearch_EmptyTermIsIdentity(t *testing.T) {
	rows := samplePonds()
	result := ApplySearch(rows, "", pondSchema())
	biff.AssertEqual(result, rows)
}

func TestApplySearch(t *testing.T) {

	biff.Alternative("Search ponds", func(a *biff.A) {

		rows := samplePonds()
		schema := pondSchema()

		a.Alternative("Substring of the name", func(a *biff.A) {
			result := ApplySearch(rows, "south", schema)
			biff.AssertEqual(names(result), []string{"South A", "South B"})
		})

		a.Alternative("Any string column, any case", func(a *biff.A) {
			result := ApplySearch(rows, "IKORODU", schema)
			biff.AssertEqual(names(result), []string{"North A", "North B"})
		})

		a.Alternative("Numbers do not take part", func(a *biff.A) {
			result := ApplySearch(rows, "1200", schema)
			biff.AssertEqual(len(result), 0)
		})

		a.Alternative("No matches is an empty result", func(a *biff.A) {
			result := ApplySearch(rows, "zzz", schema)
			biff.AssertEqual(len(result), 0)
			biff.AssertEqual(len(rows), 5)
		})
	})
}

func TestApplySearch_JSONRows(t *testing.T) {

	rows := jsonRows(
		`{"name":"Tank 1","cluster":{"name":"Epe"},"fish":12}`,
		`{"name":"Tank 2","notes":"needs aeration"}`,
		`{"name":"Tank 3","fish":"aeration"}`,
	)

	result := ApplySearch(rows, "AERATION", JSONSchema())
	biff.AssertEqual(len(result), 2)
	biff.AssertEqual(string(result[0]), `{"name":"Tank 2","notes":"needs aeration"}`)

	// nested values are not top level strings
	result = ApplySearch(rows, "epe", JSONSchema())
	biff.AssertEqual(len(result), 0)
}

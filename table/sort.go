package table

import (
	"slices"
	"strings"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts asc, desc, ascending and descending in any case.
// Anything else is ascending.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending":
		return Descending
	}
	return Ascending
}

type SortSpec struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// ApplySort returns a sorted copy of rows. Rows with equal keys keep their
// relative order so repeated calls paginate the same way.
func ApplySort[R any](rows []R, spec *SortSpec, schema Schema[R]) []R {

	if spec == nil || spec.Field == "" {
		return rows
	}

	type keyed struct {
		row R
		key scalar
	}

	items := make([]keyed, len(rows))
	for i, row := range rows {
		v, _ := schema.Value(row, spec.Field)
		items[i] = keyed{row: row, key: normalize(v)}
	}

	desc := ParseDirection(string(spec.Direction)) == Descending
	slices.SortStableFunc(items, func(a, b keyed) int {
		c := compare(a.key, b.key)
		if desc {
			return -c
		}
		return c
	})

	result := make([]R, len(items))
	for i, item := range items {
		result[i] = item.row
	}

	return result
}

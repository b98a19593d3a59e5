package table

import (
	"strings"
)

// ApplySearch keeps the rows where any string value contains term, ignoring
// case. An empty term returns rows untouched.
func ApplySearch[R any](rows []R, term string, schema Schema[R]) []R {

	if term == "" {
		return rows
	}

	needle := strings.ToLower(term)

	result := make([]R, 0, len(rows))
	for _, row := range rows {
		if containsTerm(schema.searchValues(row), needle) {
			result = append(result, row)
		}
	}

	return result
}

func containsTerm(values []any, needle string) bool {
	for _, v := range values {
		s := normalize(v)
		if s.kind != kindString {
			continue
		}
		if strings.Contains(strings.ToLower(s.s), needle) {
			return true
		}
	}
	return false
}

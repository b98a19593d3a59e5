package utils

import (
	"testing"

	"github.com/fulldump/biff"
)

func TestSortedKeys(t *testing.T) {
	biff.AssertEqual(SortedKeys(map[string]int{"ponds": 1, "feeds": 2, "sales": 3}), []string{"feeds", "ponds", "sales"})
	biff.AssertEqual(SortedKeys(map[string]int{}), []string{})
}

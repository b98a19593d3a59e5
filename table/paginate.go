package table

import (
	"fmt"
	"slices"
)

// PageSizes are the sizes a list screen offers.
var PageSizes = []int{10, 20, 30, 40, 50, 100}

const DefaultPageSize = 10

// NormalizePageSize snaps size to the smallest allowed size that holds it,
// or to the largest allowed size.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	for _, allowed := range PageSizes {
		if size <= allowed {
			return allowed
		}
	}
	return PageSizes[len(PageSizes)-1]
}

// PageCount is never less than one, an empty table still has a page.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return max(1, (total+pageSize-1)/pageSize)
}

func ClampPage(pageIndex, pageCount int) int {
	return min(max(pageIndex, 0), max(pageCount-1, 0))
}

// Paginate returns a copy of the rows in page pageIndex (zero based) and the
// number of pages. Out of range indexes are clamped.
func Paginate[R any](rows []R, pageIndex, pageSize int) ([]R, int) {

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	pageCount := PageCount(len(rows), pageSize)
	pageIndex = ClampPage(pageIndex, pageCount)

	from := min(pageIndex*pageSize, len(rows))
	to := min(from+pageSize, len(rows))

	return slices.Clone(rows[from:to]), pageCount
}

// DisplayWindow returns the one based positions of the first and last rows
// shown on currentPage (one based). Both are zero for an empty table.
func DisplayWindow(currentPage, pageSize, totalElements int) (firstShown, lastShown int) {

	if totalElements <= 0 || pageSize <= 0 {
		return 0, 0
	}
	if currentPage < 1 {
		currentPage = 1
	}

	firstShown = min((currentPage-1)*pageSize+1, totalElements)
	lastShown = min(currentPage*pageSize, totalElements)

	return
}

func WindowLabel(firstShown, lastShown, totalElements int) string {
	return fmt.Sprintf("Showing %d to %d of %d results", firstShown, lastShown, totalElements)
}

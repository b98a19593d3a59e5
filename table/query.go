package table

// Query is a snapshot of everything that decides which rows are visible.
// It is what a server driven list sends to its data source.
type Query struct {
	Search  string    `json:"search"`
	Filters Filters   `json:"filters"`
	Sort    *SortSpec `json:"sort,omitempty"`
	Page    int       `json:"page"`
	Size    int       `json:"size"`
}

// Page is the visible slice plus the pagination summary.
type Page[R any] struct {
	Rows          []R    `json:"rows"`
	PageIndex     int    `json:"page"`
	PageSize      int    `json:"size"`
	TotalElements int    `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	FirstShown    int    `json:"firstShown"`
	LastShown     int    `json:"lastShown"`
	Label         string `json:"label"`
}

func newPage[R any](rows []R, pageIndex, pageSize, totalElements, totalPages int) Page[R] {
	if rows == nil {
		rows = []R{}
	}
	first, last := DisplayWindow(pageIndex+1, pageSize, totalElements)
	return Page[R]{
		Rows:          rows,
		PageIndex:     pageIndex,
		PageSize:      pageSize,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		FirstShown:    first,
		LastShown:     last,
		Label:         WindowLabel(first, last, totalElements),
	}
}

// Run executes q over rows: search, filters, sort and pagination.
func Run[R any](rows []R, q Query, schema Schema[R]) Page[R] {

	result := ApplySearch(rows, q.Search, schema)
	result = ApplyFilters(result, q.Filters, schema)
	result = ApplySort(result, q.Sort, schema)

	size := NormalizePageSize(q.Size)
	pageRows, pageCount := Paginate(result, q.Page, size)

	return newPage(pageRows, ClampPage(q.Page, pageCount), size, len(result), pageCount)
}

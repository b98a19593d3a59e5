package table

// ServerPage is the pagination summary reported by a remote data source.
type ServerPage struct {
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// View keeps the state of one list screen: search term, filter panel, sort
// and pagination. A View is not safe for concurrent use.
type View[R any] struct {
	schema    Schema[R]
	search    string
	panel     Panel
	sort      *SortSpec
	pageIndex int
	pageSize  int

	serverDriven bool
	server       ServerPage
	onPageChange func(page int)
	onSizeChange func(size int)
}

type Option[R any] func(v *View[R])

func WithPageSize[R any](size int) Option[R] {
	return func(v *View[R]) {
		v.pageSize = NormalizePageSize(size)
	}
}

func WithSort[R any](spec SortSpec) Option[R] {
	return func(v *View[R]) {
		v.sort = &spec
	}
}

// WithServer switches the view to server driven pagination. The callbacks
// ask the data source for another page or size; the view never refetches by
// itself.
func WithServer[R any](onPageChange func(page int), onSizeChange func(size int)) Option[R] {
	return func(v *View[R]) {
		v.serverDriven = true
		v.onPageChange = onPageChange
		v.onSizeChange = onSizeChange
	}
}

func NewView[R any](schema Schema[R], options ...Option[R]) *View[R] {
	v := &View[R]{
		schema:   schema,
		pageSize: DefaultPageSize,
	}
	for _, option := range options {
		option(v)
	}
	return v
}

func (v *View[R]) resetPage() {
	v.pageIndex = 0
	if v.serverDriven && v.onPageChange != nil {
		v.onPageChange(0)
	}
}

// SetSearchTerm applies immediately, there is no commit step.
func (v *View[R]) SetSearchTerm(term string) {
	if term == v.search {
		return
	}
	v.search = term
	v.resetPage()
}

func (v *View[R]) SearchTerm() string {
	return v.search
}

func (v *View[R]) TogglePanel() PanelState {
	return v.panel.Toggle()
}

func (v *View[R]) PanelState() PanelState {
	return v.panel.State()
}

func (v *View[R]) SetFilter(key string, f Filter) bool {
	return v.panel.Edit(key, f)
}

func (v *View[R]) ApplyFilters() bool {
	if !v.panel.Apply() {
		return false
	}
	v.resetPage()
	return true
}

func (v *View[R]) ClearFilters() {
	v.panel.Clear()
	v.resetPage()
}

func (v *View[R]) RemoveFilter(key string) bool {
	if !v.panel.Remove(key) {
		return false
	}
	v.resetPage()
	return true
}

func (v *View[R]) AppliedFilters() Filters {
	return v.panel.Applied()
}

func (v *View[R]) PendingFilters() Filters {
	return v.panel.Pending()
}

// SetSort replaces the active sort, nil removes it.
func (v *View[R]) SetSort(spec *SortSpec) {
	if spec == nil || spec.Field == "" {
		v.sort = nil
	} else {
		s := SortSpec{Field: spec.Field, Direction: ParseDirection(string(spec.Direction))}
		v.sort = &s
	}
	v.resetPage()
}

// ToggleSort cycles a column header: ascending, descending, unsorted.
func (v *View[R]) ToggleSort(field string) {
	switch {
	case v.sort == nil || v.sort.Field != field:
		v.SetSort(&SortSpec{Field: field, Direction: Ascending})
	case v.sort.Direction == Ascending:
		v.SetSort(&SortSpec{Field: field, Direction: Descending})
	default:
		v.SetSort(nil)
	}
}

func (v *View[R]) Sort() *SortSpec {
	if v.sort == nil {
		return nil
	}
	s := *v.sort
	return &s
}

// SetPage moves to a zero based page. The index is clamped when rendering,
// or right away in server mode when the page count is known.
func (v *View[R]) SetPage(pageIndex int) {
	pageIndex = max(pageIndex, 0)
	if v.serverDriven {
		if v.server.TotalPages > 0 {
			pageIndex = ClampPage(pageIndex, v.server.TotalPages)
		}
		v.pageIndex = pageIndex
		if v.onPageChange != nil {
			v.onPageChange(pageIndex)
		}
		return
	}
	v.pageIndex = pageIndex
}

func (v *View[R]) SetPageSize(size int) {
	v.pageSize = NormalizePageSize(size)
	v.pageIndex = 0
	if v.serverDriven && v.onSizeChange != nil {
		v.onSizeChange(v.pageSize)
	}
}

func (v *View[R]) PageIndex() int {
	return v.pageIndex
}

func (v *View[R]) PageSize() int {
	return v.pageSize
}

// SetServerPage stores the summary that came with the last fetched page.
func (v *View[R]) SetServerPage(page ServerPage) {
	v.server = page
	v.pageIndex = max(page.Page, 0)
	if page.Size > 0 {
		v.pageSize = page.Size
	}
}

func (v *View[R]) Query() Query {
	return Query{
		Search:  v.search,
		Filters: v.panel.Applied(),
		Sort:    v.Sort(),
		Page:    v.pageIndex,
		Size:    v.pageSize,
	}
}

// Render computes the visible page. Client side the whole pipeline runs over
// rows; server side rows already are the page and pass through untouched.
func (v *View[R]) Render(rows []R) Page[R] {

	if v.serverDriven {
		total := v.server.TotalElements
		pages := v.server.TotalPages
		if total == 0 && pages == 0 {
			total = len(rows)
		}
		if pages <= 0 {
			pages = PageCount(total, v.pageSize)
		}
		out := make([]R, len(rows))
		copy(out, rows)
		return newPage(out, ClampPage(v.pageIndex, pages), v.pageSize, total, pages)
	}

	page := Run(rows, v.Query(), v.schema)
	v.pageIndex = page.PageIndex

	return page
}

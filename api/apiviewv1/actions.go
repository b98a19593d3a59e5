package apiviewv1

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fulldump/farmgrid/api/apidatasetv1"
	"github.com/fulldump/farmgrid/service"
	"github.com/fulldump/farmgrid/table"
)

type View = table.View[json.RawMessage]

func toggle(ctx context.Context) (*service.ViewState, error) {
	return update(ctx, func(t *View) {
		t.TogglePanel()
	})
}

type searchRequest struct {
	Term string `json:"term"`
}

func search(ctx context.Context, input *searchRequest) (*service.ViewState, error) {
	return update(ctx, func(t *View) {
		t.SetSearchTerm(input.Term)
	})
}

type setFilterRequest struct {
	Key    string       `json:"key"`
	Filter table.Filter `json:"filter"`
}

// setFilter edits the pending filters. It has no effect while the panel is
// closed.
func setFilter(ctx context.Context, input *setFilterRequest) (*service.ViewState, error) {

	if input.Key == "" {
		return nil, fmt.Errorf("%w: filter key is mandatory", apidatasetv1.ErrBadRequest)
	}

	return update(ctx, func(t *View) {
		t.SetFilter(input.Key, input.Filter)
	})
}

func apply(ctx context.Context) (*service.ViewState, error) {
	return update(ctx, func(t *View) {
		t.ApplyFilters()
	})
}

func clearFilters(ctx context.Context) (*service.ViewState, error) {
	return update(ctx, func(t *View) {
		t.ClearFilters()
	})
}

type removeFilterRequest struct {
	Key string `json:"key"`
}

func removeFilter(ctx context.Context, input *removeFilterRequest) (*service.ViewState, error) {
	return update(ctx, func(t *View) {
		t.RemoveFilter(input.Key)
	})
}

// sortBy with a field and no direction behaves like clicking the column
// header: ascending, descending, unsorted. An empty field removes the sort.
func sortBy(ctx context.Context, input *table.SortSpec) (*service.ViewState, error) {
	return update(ctx, func(t *View) {
		switch {
		case input.Field == "":
			t.SetSort(nil)
		case input.Direction == "":
			t.ToggleSort(input.Field)
		default:
			t.SetSort(input)
		}
	})
}

type pageRequest struct {
	Page int `json:"page"`
}

func page(ctx context.Context, input *pageRequest) (*service.ViewState, error) {
	return update(ctx, func(t *View) {
		t.SetPage(input.Page)
	})
}

type pageSizeRequest struct {
	Size int `json:"size"`
}

func pageSize(ctx context.Context, input *pageSizeRequest) (*service.ViewState, error) {
	return update(ctx, func(t *View) {
		t.SetPageSize(input.Size)
	})
}

package apiviewv1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/farmgrid/api/apidatasetv1"
	"github.com/fulldump/farmgrid/service"
	"github.com/fulldump/farmgrid/table"
)

type createViewRequest struct {
	Dataset string `json:"dataset"`
	Role    string `json:"role"`
}

func createView(ctx context.Context, w http.ResponseWriter, input *createViewRequest) (*service.ViewState, error) {

	v, err := apidatasetv1.GetServicer(ctx).CreateView(input.Dataset, input.Role)
	if err != nil {
		return nil, err
	}

	state, err := v.Render()
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return state, nil
}

func getView(ctx context.Context) (*service.ViewState, error) {

	v, err := apidatasetv1.GetServicer(ctx).GetView(box.GetUrlParameter(ctx, "viewId"))
	if err != nil {
		return nil, err
	}

	return v.Render()
}

func closeView(ctx context.Context, w http.ResponseWriter) error {
	return apidatasetv1.GetServicer(ctx).CloseView(box.GetUrlParameter(ctx, "viewId"))
}

func update(ctx context.Context, f func(t *table.View[json.RawMessage])) (*service.ViewState, error) {

	v, err := apidatasetv1.GetServicer(ctx).GetView(box.GetUrlParameter(ctx, "viewId"))
	if err != nil {
		return nil, err
	}

	return v.Update(f)
}

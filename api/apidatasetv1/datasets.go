package apidatasetv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/farmgrid/service"
)

type createDatasetRequest struct {
	Name string `json:"name"`
}

func createDataset(ctx context.Context, w http.ResponseWriter, input *createDatasetRequest) (*service.Dataset, error) {

	s := GetServicer(ctx)

	_, err := s.CreateDataset(input.Name)
	if err != nil {
		return nil, err
	}

	d, err := s.DescribeDataset(input.Name)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return d, nil
}

func getDataset(ctx context.Context) (*service.Dataset, error) {
	return GetServicer(ctx).DescribeDataset(box.GetUrlParameter(ctx, "datasetName"))
}

func listDatasets(ctx context.Context) ([]*service.Dataset, error) {
	return GetServicer(ctx).ListDatasets(), nil
}

func dropDataset(ctx context.Context, w http.ResponseWriter) error {
	return GetServicer(ctx).DropDataset(box.GetUrlParameter(ctx, "datasetName"))
}

package apidatasetv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/farmgrid/table"
)

// find answers one page of the dataset. An empty body is the first page with
// no search, filters nor sort.
func find(ctx context.Context, r *http.Request) (*table.Page[json.RawMessage], error) {

	q := table.Query{}
	err := json.NewDecoder(r.Body).Decode(&q)
	if err != nil && err != io.EOF {
		return nil, err
	}

	return GetServicer(ctx).Find(box.GetUrlParameter(ctx, "datasetName"), q)
}

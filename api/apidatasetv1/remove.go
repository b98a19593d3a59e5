package apidatasetv1

import (
	"context"
	"io"
	"net/http"

	"github.com/fulldump/box"
)

func remove(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	params, err := parseSelection(requestBody)
	if err != nil {
		return err
	}

	col, err := GetServicer(ctx).GetDataset(box.GetUrlParameter(ctx, "datasetName"))
	if err != nil {
		return err
	}

	rows, err := selectRows(params, col)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	for _, row := range rows {
		err := col.Remove(row)
		if err != nil {
			return err
		}
		w.Write(row.Payload)
		w.Write([]byte("\n"))
	}

	return nil
}

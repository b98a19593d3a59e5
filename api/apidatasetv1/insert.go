package apidatasetv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/farmgrid/collection"
	"github.com/fulldump/farmgrid/service"
)

// getOrCreate returns the dataset, creating it on first use.
func getOrCreate(ctx context.Context) (*collection.Collection, error) {

	s := GetServicer(ctx)
	name := box.GetUrlParameter(ctx, "datasetName")

	col, err := s.GetDataset(name)
	if err == service.ErrorDatasetNotFound {
		col, err = s.CreateDataset(name)
		if err == service.ErrorDatasetAlreadyExists {
			col, err = s.GetDataset(name)
		}
	}

	return col, err
}

// insert reads a stream of JSON documents and answers with the stored ones,
// one per line.
func insert(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	col, err := getOrCreate(ctx)
	if err != nil {
		return err
	}

	jsonReader := json.NewDecoder(r.Body)

	for i := 0; true; i++ {
		item := map[string]any{}
		err := jsonReader.Decode(&item)
		if err == io.EOF {
			if i == 0 {
				w.WriteHeader(http.StatusNoContent)
			}
			return nil
		}
		if err != nil {
			return err
		}

		row, err := col.Insert(item)
		if err != nil {
			return err
		}

		if i == 0 {
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.WriteHeader(http.StatusCreated)
		}
		w.Write(row.Payload)
		w.Write([]byte("\n"))
	}

	return nil
}

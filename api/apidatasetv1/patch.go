package apidatasetv1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"
)

// patch merges the same JSON merge patch into every selected row and answers
// with the resulting documents.
func patch(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	params, err := parseSelection(requestBody)
	if err != nil {
		return err
	}

	input := struct {
		Patch map[string]any `json:"patch"`
	}{}
	err = json.Unmarshal(requestBody, &input)
	if err != nil {
		return err
	}
	if input.Patch == nil {
		return fmt.Errorf("%w: patch is mandatory", ErrBadRequest)
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
		payload, err := col.Patch(row, input.Patch)
		if err != nil {
			return err
		}
		w.Write(payload)
		w.Write([]byte("\n"))
	}

	return nil
}

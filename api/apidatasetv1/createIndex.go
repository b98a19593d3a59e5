package apidatasetv1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fulldump/farmgrid/collection"
)

func createIndex(ctx context.Context, w http.ResponseWriter, input *collection.IndexOptions) (*collection.IndexOptions, error) {

	if input.Field == "" {
		return nil, fmt.Errorf("%w: index field is mandatory", ErrBadRequest)
	}

	col, err := getOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	err = col.Index(input)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return input, nil
}

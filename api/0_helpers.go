package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/farmgrid/api/apidatasetv1"
	"github.com/fulldump/farmgrid/collection"
	"github.com/fulldump/farmgrid/service"
)

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

// describeError maps an error to its status code and a human description.
func describeError(ctx context.Context, err error) (int, string) {

	r := box.GetRequest(ctx)

	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError

	switch {
	case err == ErrUnauthorized:
		return http.StatusUnauthorized, "user is not authenticated"
	case err == box.ErrResourceNotFound:
		return http.StatusNotFound, fmt.Sprintf("resource '%s' not found", r.URL.String())
	case err == box.ErrMethodNotAllowed:
		return http.StatusMethodNotAllowed, fmt.Sprintf("method '%s' not allowed", r.Method)
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "the database is not operating, try again later"
	case errors.Is(err, service.ErrorDatasetNotFound):
		return http.StatusNotFound, fmt.Sprintf("dataset '%s' does not exist", box.GetUrlParameter(ctx, "datasetName"))
	case errors.Is(err, service.ErrorViewNotFound):
		return http.StatusNotFound, fmt.Sprintf("view '%s' does not exist or was closed", box.GetUrlParameter(ctx, "viewId"))
	case errors.Is(err, service.ErrorDatasetAlreadyExists):
		return http.StatusConflict, "choose another dataset name"
	case errors.Is(err, collection.ErrIndexConflict):
		return http.StatusConflict, "a unique index already holds that value"
	case errors.Is(err, apidatasetv1.ErrBadRequest):
		return http.StatusBadRequest, "Bad request"
	case errors.As(err, &syntaxError), errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest, "Malformed JSON"
	case errors.As(err, &typeError):
		return http.StatusBadRequest, "Unexpected JSON type"
	}

	return http.StatusInternalServerError, "Unexpected error"
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}

		status, description := describeError(ctx, err)

		w := box.GetResponse(ctx)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		PrettyError{
			Message:     err.Error(),
			Description: description,
		}.MarshalTo(w)
	}
}

package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fulldump/farmgrid/collection"
	"github.com/fulldump/farmgrid/table"
)

var (
	ErrorDatasetNotFound      = errors.New("dataset not found")
	ErrorDatasetAlreadyExists = errors.New("dataset already exists")
	ErrorViewNotFound         = errors.New("view not found")
)

type Servicer interface {
	CreateDataset(name string) (*collection.Collection, error)
	GetDataset(name string) (*collection.Collection, error)
	ListDatasets() []*Dataset
	DescribeDataset(name string) (*Dataset, error)
	DropDataset(name string) error

	Find(name string, q table.Query) (*table.Page[json.RawMessage], error)

	CreateView(dataset, role string) (*View, error)
	GetView(id string) (*View, error)
	CloseView(id string) error

	Metrics() http.Handler
}

package service

import (
	"encoding/json"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/fulldump/farmgrid/access"
	"github.com/fulldump/farmgrid/collection"
	"github.com/fulldump/farmgrid/database"
	"github.com/fulldump/farmgrid/farm"
	"github.com/fulldump/farmgrid/table"
)

type Service struct {
	db      *database.Database
	gate    *access.Gate
	logger  *zap.Logger
	metrics *metrics

	views      map[string]*View
	viewsMutex sync.RWMutex
}

func NewService(db *database.Database, logger *zap.Logger) (*Service, error) {

	if logger == nil {
		logger = zap.NewNop()
	}

	gate, err := farm.NewGate()
	if err != nil {
		return nil, err
	}

	return &Service{
		db:      db,
		gate:    gate,
		logger:  logger,
		metrics: newMetrics(),
		views:   map[string]*View{},
	}, nil
}

// Dataset summarizes a stored collection and, when the dataset belongs to
// the farm catalog, how it is listed.
type Dataset struct {
	Name    string                     `json:"name"`
	Total   int                        `json:"total"`
	Indexes []*collection.IndexOptions `json:"indexes"`
	Catalog *farm.Dataset              `json:"catalog,omitempty"`
}

func describe(name string, col *collection.Collection) *Dataset {
	d := &Dataset{
		Name:    name,
		Total:   col.Len(),
		Indexes: col.ListIndexes(),
	}
	if c, ok := farm.Lookup(name); ok {
		d.Catalog = c
	}
	return d
}

func (s *Service) CreateDataset(name string) (*collection.Collection, error) {
	col, err := s.db.CreateCollection(name)
	if err == database.ErrCollectionExists {
		return nil, ErrorDatasetAlreadyExists
	}
	return col, err
}

func (s *Service) GetDataset(name string) (*collection.Collection, error) {
	col, err := s.db.GetCollection(name)
	if err == database.ErrCollectionNotFound {
		return nil, ErrorDatasetNotFound
	}
	return col, err
}

func (s *Service) DescribeDataset(name string) (*Dataset, error) {
	col, err := s.GetDataset(name)
	if err != nil {
		return nil, err
	}
	return describe(name, col), nil
}

func (s *Service) ListDatasets() []*Dataset {
	result := []*Dataset{}
	for _, name := range s.db.ListCollections() {
		col, err := s.db.GetCollection(name)
		if err != nil {
			continue // dropped meanwhile
		}
		result = append(result, describe(name, col))
	}
	return result
}

// DropDataset removes the collection and closes every view listing it.
func (s *Service) DropDataset(name string) error {

	err := s.db.DropCollection(name)
	if err == database.ErrCollectionNotFound {
		return ErrorDatasetNotFound
	}
	if err != nil {
		return err
	}

	s.viewsMutex.Lock()
	for id, v := range s.views {
		if v.Dataset == name {
			delete(s.views, id)
		}
	}
	s.metrics.views.Set(float64(len(s.views)))
	s.viewsMutex.Unlock()

	return nil
}

func schemaFor(name string) table.Schema[json.RawMessage] {
	if d, ok := farm.Lookup(name); ok {
		return d.Schema()
	}
	return table.JSONSchema()
}

func (s *Service) Metrics() http.Handler {
	return s.metrics.handler()
}

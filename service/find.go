package service

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/fulldump/farmgrid/table"
)

const (
	originFind = "find"
	originView = "view"
)

// Find runs q over a snapshot of the dataset. This is the server side of a
// server driven list: the caller receives one page and the totals.
func (s *Service) Find(name string, q table.Query) (*table.Page[json.RawMessage], error) {
	return s.find(name, q, originFind)
}

func (s *Service) find(name string, q table.Query, origin string) (*table.Page[json.RawMessage], error) {

	col, err := s.GetDataset(name)
	if err != nil {
		return nil, err
	}

	t0 := time.Now()
	page := table.Run(col.Payloads(), q, schemaFor(name))
	s.metrics.observe(name, origin, t0)

	s.logger.Debug("find",
		zap.String("dataset", name),
		zap.String("origin", origin),
		zap.Int("total", page.TotalElements),
		zap.Int("page", page.PageIndex),
		zap.Duration("elapsed", time.Since(t0)))

	return &page, nil
}

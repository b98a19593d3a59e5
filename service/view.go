package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fulldump/farmgrid/farm"
	"github.com/fulldump/farmgrid/table"
)

// View is the state of one list screen kept on the server. Every render asks
// the dataset for exactly the page the view points to.
type View struct {
	Id      string
	Dataset string
	Role    string
	Created time.Time

	mutex    sync.Mutex
	table    *table.View[json.RawMessage]
	controls []farm.Control
	service  *Service
}

type ViewState struct {
	Id       string                      `json:"id"`
	Dataset  string                      `json:"dataset"`
	Role     string                      `json:"role"`
	Search   string                      `json:"search"`
	Panel    string                      `json:"panel"`
	Pending  table.Filters               `json:"pending"`
	Applied  table.Filters               `json:"applied"`
	Sort     *table.SortSpec             `json:"sort"`
	Controls []farm.Control              `json:"controls"`
	Page     table.Page[json.RawMessage] `json:"page"`
}

func (s *Service) CreateView(dataset, role string) (*View, error) {

	_, err := s.GetDataset(dataset)
	if err != nil {
		return nil, err
	}

	v := &View{
		Id:       uuid.New().String(),
		Dataset:  dataset,
		Role:     role,
		Created:  time.Now(),
		controls: []farm.Control{},
		service:  s,
	}

	options := []table.Option[json.RawMessage]{
		table.WithServer[json.RawMessage](
			func(page int) {
				s.metrics.fetches.WithLabelValues(dataset, "page").Inc()
			},
			func(size int) {
				s.metrics.fetches.WithLabelValues(dataset, "size").Inc()
			},
		),
	}
	if d, ok := farm.Lookup(dataset); ok {
		options = append(options, table.WithSort[json.RawMessage](d.Sort))
		v.controls = d.VisibleControls(s.gate, role)
	}
	v.table = table.NewView(schemaFor(dataset), options...)

	s.viewsMutex.Lock()
	s.views[v.Id] = v
	s.metrics.views.Set(float64(len(s.views)))
	s.viewsMutex.Unlock()

	s.logger.Info("view created",
		zap.String("id", v.Id),
		zap.String("dataset", dataset),
		zap.String("role", role))

	return v, nil
}

func (s *Service) GetView(id string) (*View, error) {

	s.viewsMutex.RLock()
	defer s.viewsMutex.RUnlock()

	v, ok := s.views[id]
	if !ok {
		return nil, ErrorViewNotFound
	}

	return v, nil
}

func (s *Service) CloseView(id string) error {

	s.viewsMutex.Lock()
	defer s.viewsMutex.Unlock()

	if _, ok := s.views[id]; !ok {
		return ErrorViewNotFound
	}
	delete(s.views, id)
	s.metrics.views.Set(float64(len(s.views)))

	s.logger.Info("view closed", zap.String("id", id))

	return nil
}

// Update mutates the view state and renders the result.
func (v *View) Update(f func(t *table.View[json.RawMessage])) (*ViewState, error) {

	v.mutex.Lock()
	defer v.mutex.Unlock()

	f(v.table)

	return v.render()
}

func (v *View) Render() (*ViewState, error) {

	v.mutex.Lock()
	defer v.mutex.Unlock()

	return v.render()
}

func (v *View) render() (*ViewState, error) {

	page, err := v.service.find(v.Dataset, v.table.Query(), originView)
	if err != nil {
		return nil, err
	}

	v.table.SetServerPage(table.ServerPage{
		Page:          page.PageIndex,
		Size:          page.PageSize,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	})

	return &ViewState{
		Id:       v.Id,
		Dataset:  v.Dataset,
		Role:     v.Role,
		Search:   v.table.SearchTerm(),
		Panel:    v.table.PanelState().String(),
		Pending:  v.table.PendingFilters(),
		Applied:  v.table.AppliedFilters(),
		Sort:     v.table.Sort(),
		Controls: v.controls,
		Page:     v.table.Render(page.Rows),
	}, nil
}

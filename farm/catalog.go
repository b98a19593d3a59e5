// Package farm describes the list screens of the farm dashboard: which
// columns each dataset shows, which filters it offers and to whom.
package farm

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/fulldump/farmgrid/access"
	"github.com/fulldump/farmgrid/table"
	"github.com/fulldump/farmgrid/utils"
)

type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type Control struct {
	Key   string           `json:"key"`
	Label string           `json:"label"`
	Kind  table.FilterKind `json:"kind"`

	// Roles allowed to see the control. Empty means everyone.
	Roles []string `json:"roles,omitempty"`
}

type Dataset struct {
	Name     string         `json:"name"`
	Title    string         `json:"title"`
	Columns  []Field        `json:"columns"`
	Controls []Control      `json:"controls"`
	Sort     table.SortSpec `json:"sort"`
}

var managers = []string{access.RoleAdmin, access.RoleClusterManager}

var catalog = map[string]*Dataset{
	"farmers": {
		Name:  "farmers",
		Title: "Farmers",
		Columns: []Field{
			{"name", "Name"},
			{"phone", "Phone"},
			{"cluster.name", "Cluster"},
			{"status", "Status"},
			{"createdAt", "Registered"},
		},
		Controls: []Control{
			{Key: "status", Label: "Status", Kind: table.KindExact},
			{Key: "cluster.name", Label: "Cluster", Kind: table.KindExact, Roles: []string{access.RoleAdmin}},
			{Key: "createdAt", Label: "Registered", Kind: table.KindRange},
		},
		Sort: table.SortSpec{Field: "name", Direction: table.Ascending},
	},
	"ponds": {
		Name:  "ponds",
		Title: "Ponds",
		Columns: []Field{
			{"name", "Name"},
			{"farmer.name", "Farmer"},
			{"cluster.name", "Cluster"},
			{"size", "Size (m²)"},
			{"status", "Status"},
			{"active", "Active"},
		},
		Controls: []Control{
			{Key: "status", Label: "Status", Kind: table.KindExact},
			{Key: "active", Label: "Active", Kind: table.KindFlag},
			{Key: "cluster.name", Label: "Cluster", Kind: table.KindExact, Roles: []string{access.RoleAdmin}},
			{Key: "farmer.name", Label: "Farmer", Kind: table.KindExact, Roles: managers},
		},
		Sort: table.SortSpec{Field: "name", Direction: table.Ascending},
	},
	"batches": {
		Name:  "batches",
		Title: "Fish batches",
		Columns: []Field{
			{"code", "Batch"},
			{"pond.name", "Pond"},
			{"species", "Species"},
			{"quantity", "Quantity"},
			{"averageWeight", "Avg. weight (g)"},
			{"stockedAt", "Stocked"},
			{"status", "Status"},
		},
		Controls: []Control{
			{Key: "status", Label: "Status", Kind: table.KindExact},
			{Key: "stockedAt", Label: "Stocked", Kind: table.KindRange},
			{Key: "averageWeight", Label: "Avg. weight", Kind: table.KindRange},
			{Key: "cluster.name", Label: "Cluster", Kind: table.KindExact, Roles: []string{access.RoleAdmin}},
		},
		Sort: table.SortSpec{Field: "stockedAt", Direction: table.Descending},
	},
	"feeds": {
		Name:  "feeds",
		Title: "Feed inventory",
		Columns: []Field{
			{"name", "Feed"},
			{"brand", "Brand"},
			{"pelletSize", "Pellet (mm)"},
			{"stock", "Stock (kg)"},
			{"updatedAt", "Updated"},
		},
		Controls: []Control{
			{Key: "brand", Label: "Brand", Kind: table.KindExact},
			{Key: "stock", Label: "Stock", Kind: table.KindRange},
		},
		Sort: table.SortSpec{Field: "name", Direction: table.Ascending},
	},
	"expenses": {
		Name:  "expenses",
		Title: "Maintenance expenses",
		Columns: []Field{
			{"description", "Description"},
			{"category", "Category"},
			{"pond.name", "Pond"},
			{"amount", "Amount"},
			{"date", "Date"},
		},
		Controls: []Control{
			{Key: "category", Label: "Category", Kind: table.KindExact},
			{Key: "date", Label: "Date", Kind: table.KindRange},
			{Key: "amount", Label: "Amount", Kind: table.KindRange, Roles: managers},
			{Key: "cluster.name", Label: "Cluster", Kind: table.KindExact, Roles: []string{access.RoleAdmin}},
		},
		Sort: table.SortSpec{Field: "date", Direction: table.Descending},
	},
	"sales": {
		Name:  "sales",
		Title: "Sales",
		Columns: []Field{
			{"buyer", "Buyer"},
			{"batch.code", "Batch"},
			{"weight", "Weight (kg)"},
			{"pricePerKg", "Price/kg"},
			{"total", "Total"},
			{"date", "Date"},
			{"paid", "Paid"},
		},
		Controls: []Control{
			{Key: "paid", Label: "Paid", Kind: table.KindFlag},
			{Key: "date", Label: "Date", Kind: table.KindRange},
			{Key: "total", Label: "Total", Kind: table.KindRange, Roles: managers},
			{Key: "cluster.name", Label: "Cluster", Kind: table.KindExact, Roles: []string{access.RoleAdmin}},
		},
		Sort: table.SortSpec{Field: "date", Direction: table.Descending},
	},
	"users": {
		Name:  "users",
		Title: "Users",
		Columns: []Field{
			{"name", "Name"},
			{"email", "Email"},
			{"role", "Role"},
			{"active", "Active"},
		},
		Controls: []Control{
			{Key: "role", Label: "Role", Kind: table.KindExact},
			{Key: "active", Label: "Active", Kind: table.KindFlag},
		},
		Sort: table.SortSpec{Field: "name", Direction: table.Ascending},
	},
}

func Lookup(name string) (*Dataset, bool) {
	d, ok := catalog[name]
	return d, ok
}

// Names returns every dataset name, sorted.
func Names() []string {
	return utils.SortedKeys(catalog)
}

// Schema reads collection rows for this dataset. Columns resolve dot paths
// with gjson; missing fields are absent.
func (d *Dataset) Schema() table.Schema[json.RawMessage] {
	columns := make([]table.Column[json.RawMessage], 0, len(d.Columns))
	for _, f := range d.Columns {
		path := f.Key
		columns = append(columns, table.Column[json.RawMessage]{
			Key:   f.Key,
			Label: f.Label,
			Accessor: func(row json.RawMessage) any {
				return gjson.GetBytes(row, path).Value()
			},
		})
	}

	schema := table.JSONSchema(columns...)

	// Search also reaches nested columns such as cluster.name
	nested := []string{}
	for _, f := range d.Columns {
		if strings.Contains(f.Key, ".") {
			nested = append(nested, f.Key)
		}
	}
	if len(nested) > 0 {
		topLevel := schema.Values
		schema.Values = func(row json.RawMessage) []any {
			values := topLevel(row)
			for _, r := range gjson.GetManyBytes(row, nested...) {
				if r.Type == gjson.String {
					values = append(values, r.Str)
				}
			}
			return values
		}
	}

	return schema
}

func controlName(dataset, control string) string {
	return dataset + "/" + control
}

// NewGate loads the control visibility of every dataset in the catalog.
func NewGate() (*access.Gate, error) {

	g, err := access.NewGate()
	if err != nil {
		return nil, err
	}

	for _, name := range Names() {
		d := catalog[name]
		for _, c := range d.Controls {
			roles := c.Roles
			if len(roles) == 0 {
				roles = []string{access.Everyone}
			}
			for _, role := range roles {
				err := g.Grant(role, controlName(d.Name, c.Key))
				if err != nil {
					return nil, err
				}
			}
		}
	}

	return g, nil
}

// VisibleControls returns the controls role may render, in catalog order.
func (d *Dataset) VisibleControls(g *access.Gate, role string) []Control {

	names := make([]string, len(d.Controls))
	byName := make(map[string]Control, len(d.Controls))
	for i, c := range d.Controls {
		names[i] = controlName(d.Name, c.Key)
		byName[names[i]] = c
	}

	visible := g.Visible(role, names)
	result := make([]Control, 0, len(visible))
	for _, name := range visible {
		result = append(result, byName[name])
	}

	return result
}

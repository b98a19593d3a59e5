package table

import (
	"encoding/json"
	"time"
)

type pond struct {
	Name    string
	Status  string
	Cluster string
	Fish    int
	Active  bool
	Stocked time.Time
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func pondSchema() Schema[pond] {
	return Schema[pond]{
		Columns: []Column[pond]{
			{Key: "name", Label: "Name", Accessor: func(p pond) any { return p.Name }},
			{Key: "status", Label: "Status", Accessor: func(p pond) any { return p.Status }},
			{Key: "cluster", Label: "Cluster", Accessor: func(p pond) any { return p.Cluster }},
			{Key: "fish", Label: "Fish", Accessor: func(p pond) any { return p.Fish }},
			{Key: "active", Label: "Active", Accessor: func(p pond) any { return p.Active }},
			{Key: "stocked", Label: "Stocked", Accessor: func(p pond) any { return p.Stocked }},
		},
	}
}

func samplePonds() []pond {
	return []pond{
		{"North A", "Active", "Ikorodu", 1200, true, day("2024-01-10")},
		{"North B", "Inactive", "Ikorodu", 800, false, day("2024-02-01")},
		{"South A", "Active", "Epe", 1500, true, day("2024-02-15")},
		{"South B", "Harvested", "Epe", 0, false, day("2024-03-01")},
		{"East", "Maintenance", "Badagry", 300, true, day("2024-03-20")},
	}
}

func names(rows []pond) []string {
	result := []string{}
	for _, row := range rows {
		result = append(result, row.Name)
	}
	return result
}

func jsonRows(docs ...string) []json.RawMessage {
	rows := make([]json.RawMessage, len(docs))
	for i, doc := range docs {
		rows[i] = json.RawMessage(doc)
	}
	return rows
}

package collection

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var ErrIndexConflict = errors.New("index conflict")

type IndexOptions struct {
	Name   string `json:"name"`
	Field  string `json:"field"`
	Sparse bool   `json:"sparse"`
}

// IndexMap is a unique index over a string field (or a list of strings).
// Field accepts dot paths. Callers hold the collection lock.
type IndexMap struct {
	Entries map[string]*Row
	Options *IndexOptions
}

func NewIndexMap(options *IndexOptions) *IndexMap {
	return &IndexMap{
		Entries: map[string]*Row{},
		Options: options,
	}
}

func (i *IndexMap) keys(row *Row) ([]string, error) {

	field := i.Options.Field

	value := gjson.GetBytes(row.Payload, field)
	if !value.Exists() {
		if i.Options.Sparse {
			return nil, nil
		}
		return nil, fmt.Errorf("field `%s` is indexed and mandatory", field)
	}

	switch {
	case value.Type == gjson.String:
		return []string{value.Str}, nil
	case value.IsArray():
		keys := []string{}
		for _, item := range value.Array() {
			if item.Type != gjson.String {
				return nil, fmt.Errorf("field `%s` must contain only strings", field)
			}
			keys = append(keys, item.Str)
		}
		return keys, nil
	}

	return nil, fmt.Errorf("type not supported")
}

func (i *IndexMap) AddRow(row *Row) error {

	keys, err := i.keys(row)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if existing, exists := i.Entries[key]; exists && existing != row {
			return fmt.Errorf("%w: field '%s' with value '%s'", ErrIndexConflict, i.Options.Field, key)
		}
	}

	for _, key := range keys {
		i.Entries[key] = row
	}

	return nil
}

func (i *IndexMap) RemoveRow(row *Row) {

	keys, err := i.keys(row)
	if err != nil {
		// nothing was indexed for this row
		return
	}

	for _, key := range keys {
		if i.Entries[key] == row {
			delete(i.Entries, key)
		}
	}
}

func (i *IndexMap) Get(value string) (*Row, bool) {
	row, ok := i.Entries[value]
	return row, ok
}

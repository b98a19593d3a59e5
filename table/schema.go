package table

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Column exposes one displayable value of a row. Accessors are owned by the
// caller and must not modify the row.
type Column[R any] struct {
	Key      string
	Label    string
	Accessor func(row R) any
}

// Schema tells the engine how to read rows of type R.
type Schema[R any] struct {
	Columns []Column[R]

	// Lookup resolves keys that are not columns, typically dot paths like
	// "cluster.name". Optional.
	Lookup func(row R, path string) (any, bool)

	// Values returns the candidates for free text search. When nil every
	// column value is a candidate.
	Values func(row R) []any

	// Document returns the map form of a row, used by query filters. Optional.
	Document func(row R) map[string]any
}

// Value resolves key for row. A nil value counts as absent.
func (s Schema[R]) Value(row R, key string) (any, bool) {
	for _, c := range s.Columns {
		if c.Key != key || c.Accessor == nil {
			continue
		}
		v := c.Accessor(row)
		return v, v != nil
	}
	if s.Lookup != nil {
		return s.Lookup(row, key)
	}
	return nil, false
}

func (s Schema[R]) searchValues(row R) []any {
	if s.Values != nil {
		return s.Values(row)
	}
	values := make([]any, 0, len(s.Columns))
	for _, c := range s.Columns {
		if c.Accessor != nil {
			values = append(values, c.Accessor(row))
		}
	}
	return values
}

type Document = map[string]any

// MapSchema reads rows decoded into maps. Keys that are not columns are
// resolved as dot paths.
func MapSchema(columns ...Column[Document]) Schema[Document] {
	return Schema[Document]{
		Columns: columns,
		Lookup:  LookupPath,
		Values: func(row Document) []any {
			values := make([]any, 0, len(row))
			for _, v := range row {
				values = append(values, v)
			}
			return values
		},
		Document: func(row Document) map[string]any {
			return row
		},
	}
}

// LookupPath walks a dot path through nested maps and slices. Any step that
// does not resolve makes the whole path absent.
func LookupPath(doc Document, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var current any = doc
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			current = node[i]
		default:
			return nil, false
		}
	}

	return current, current != nil
}

// JSONSchema reads rows kept as raw JSON documents, the way collections store
// them. Dot paths are resolved with gjson so rows are never fully decoded for
// sorting or filtering.
func JSONSchema(columns ...Column[json.RawMessage]) Schema[json.RawMessage] {
	return Schema[json.RawMessage]{
		Columns: columns,
		Lookup: func(row json.RawMessage, path string) (any, bool) {
			if path == "" {
				return nil, false
			}
			r := gjson.GetBytes(row, path)
			if !r.Exists() || r.Type == gjson.Null {
				return nil, false
			}
			return r.Value(), true
		},
		Values: func(row json.RawMessage) []any {
			values := []any{}
			gjson.ParseBytes(row).ForEach(func(_, v gjson.Result) bool {
				if v.Type == gjson.String {
					values = append(values, v.Str)
				}
				return true
			})
			return values
		},
		Document: func(row json.RawMessage) map[string]any {
			doc := map[string]any{}
			if err := json.Unmarshal(row, &doc); err != nil {
				return nil
			}
			return doc
		},
	}
}

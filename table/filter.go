package table

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"strings"
	"time"

	"github.com/SierraSoftworks/connor"
)

type FilterKind string

const (
	KindExact FilterKind = "exact"
	KindFlag  FilterKind = "flag"
	KindRange FilterKind = "range"
	KindQuery FilterKind = "query"
)

// Filter is a single field level constraint.
type Filter struct {
	Kind  FilterKind
	Value any // exact value or flag
	From  any // range lower bound, inclusive
	To    any // range upper bound, inclusive
	Query map[string]any
}

func Exact(value any) Filter {
	return Filter{Kind: KindExact, Value: value}
}

func Flag(value bool) Filter {
	return Filter{Kind: KindFlag, Value: value}
}

// Between builds a range filter. Either bound may be nil to leave that side
// open.
func Between(from, to any) Filter {
	return Filter{Kind: KindRange, From: from, To: to}
}

// Where builds a filter evaluated by connor against the row document, e.g.
// {"weight": {"$gt": 120}}.
func Where(query map[string]any) Filter {
	return Filter{Kind: KindQuery, Query: query}
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// Active reports whether the filter constrains anything. Blank filters stay
// in the panel but are skipped.
func (f Filter) Active() bool {
	switch f.Kind {
	case KindExact:
		return !isBlank(f.Value)
	case KindFlag:
		_, ok := f.Value.(bool)
		return ok
	case KindRange:
		return !isBlank(f.From) || !isBlank(f.To)
	case KindQuery:
		return len(f.Query) > 0
	}
	return false
}

// MarshalJSON writes the compact form: scalars for exact, booleans for
// flags, {"from","to"} for ranges and the raw document for queries.
func (f Filter) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case KindRange:
		return json.Marshal(map[string]any{
			"from": f.From,
			"to":   f.To,
		})
	case KindQuery:
		return json.Marshal(f.Query)
	}
	return json.Marshal(f.Value)
}

func (f *Filter) UnmarshalJSON(data []byte) error {

	var value any
	err := json.Unmarshal(data, &value)
	if err != nil {
		return err
	}

	switch v := value.(type) {
	case bool:
		*f = Flag(v)
	case map[string]any:
		if isRangeDocument(v) {
			*f = Between(v["from"], v["to"])
		} else {
			*f = Where(v)
		}
	case []any:
		return fmt.Errorf("filter can not be a list")
	default:
		*f = Exact(v)
	}

	return nil
}

func isRangeDocument(doc map[string]any) bool {
	if len(doc) == 0 {
		return false
	}
	for k := range doc {
		if k != "from" && k != "to" {
			return false
		}
	}
	return true
}

// Filters maps a filter key (a column key or dot path) to its constraint.
type Filters map[string]Filter

func (f Filters) Clone() Filters {
	if f == nil {
		return Filters{}
	}
	return maps.Clone(f)
}

// Active returns only the filters that constrain rows.
func (f Filters) Active() Filters {
	result := Filters{}
	for k, v := range f {
		if v.Active() {
			result[k] = v
		}
	}
	return result
}

// Equal compares the active parts of two filter sets.
func (f Filters) Equal(other Filters) bool {
	a, b := f.Active(), other.Active()
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || !v.equal(w) {
			return false
		}
	}
	return true
}

// equal compares normalized values, so 1200 and float64(1200) are the same
// constraint.
func (f Filter) equal(other Filter) bool {
	if f.Kind != other.Kind {
		return false
	}
	same := func(a, b any) bool {
		if isBlank(a) || isBlank(b) {
			return isBlank(a) && isBlank(b)
		}
		return compare(normalize(a), normalize(b)) == 0
	}
	switch f.Kind {
	case KindRange:
		return same(f.From, other.From) && same(f.To, other.To)
	case KindQuery:
		return reflect.DeepEqual(f.Query, other.Query)
	}
	return same(f.Value, other.Value)
}

// ApplyFilters keeps the rows that satisfy every active filter.
func ApplyFilters[R any](rows []R, filters Filters, schema Schema[R]) []R {

	active := filters.Active()
	if len(active) == 0 {
		return rows
	}

	result := make([]R, 0, len(rows))
	for _, row := range rows {
		if matchAll(row, active, schema) {
			result = append(result, row)
		}
	}

	return result
}

func matchAll[R any](row R, filters Filters, schema Schema[R]) bool {

	var doc map[string]any
	document := func() map[string]any {
		if doc == nil && schema.Document != nil {
			doc = schema.Document(row)
		}
		return doc
	}

	for key, f := range filters {
		if f.Kind == KindQuery {
			if !matchQuery(f.Query, document()) {
				return false
			}
			continue
		}

		value, found := schema.Value(row, key)
		if !found {
			return false
		}
		if !f.match(value) {
			return false
		}
	}

	return true
}

func (f Filter) match(value any) bool {
	switch f.Kind {
	case KindExact:
		return equalValues(normalize(value), normalize(f.Value))
	case KindFlag:
		v := normalize(value)
		want, _ := f.Value.(bool)
		return v.kind == kindBool && v.b == want
	case KindRange:
		return inRange(normalize(value), f.From, f.To)
	}
	return false
}

func matchQuery(query map[string]any, doc map[string]any) bool {
	if doc == nil {
		return false
	}
	match, err := connor.Match(query, doc)
	if err != nil {
		return false
	}
	return match
}

func equalValues(value, want scalar) bool {

	if value.kind == want.kind {
		switch value.kind {
		case kindString:
			return strings.EqualFold(value.s, want.s)
		case kindNumber:
			return value.n == want.n
		case kindBool:
			return value.b == want.b
		case kindTime:
			return value.t.Equal(want.t)
		case kindAbsent:
			return false
		}
		return reflect.DeepEqual(value.raw, want.raw)
	}

	// Select controls hand numbers over as strings
	if value.kind == kindNumber && want.kind == kindString {
		return strings.EqualFold(formatNumber(value.n), strings.TrimSpace(want.s))
	}
	if value.kind == kindString && want.kind == kindNumber {
		return strings.EqualFold(strings.TrimSpace(value.s), formatNumber(want.n))
	}

	// Dates picked from a calendar arrive as strings
	if value.kind == kindTime || want.kind == kindTime {
		a, _, okA := asTime(value)
		b, _, okB := asTime(want)
		return okA && okB && a.Equal(b)
	}

	return false
}

func inRange(value scalar, from, to any) bool {

	if value.kind == kindAbsent {
		return false
	}

	if !isBlank(from) {
		c, ok := compareBound(value, normalize(from), false)
		if !ok || c < 0 {
			return false
		}
	}

	if !isBlank(to) {
		c, ok := compareBound(value, normalize(to), true)
		if !ok || c > 0 {
			return false
		}
	}

	return true
}

// compareBound compares value against a range bound once both are coerced
// to a common kind. ok is false when they can not be compared.
func compareBound(value, bound scalar, upper bool) (int, bool) {

	if value.kind == kindTime || bound.kind == kindTime ||
		(value.kind == kindString && bound.kind == kindString) {
		v, _, okV := asTime(value)
		b, dateOnly, okB := asTime(bound)
		if okV && okB {
			if upper && dateOnly {
				b = b.Add(24*time.Hour - time.Nanosecond)
			}
			return v.Compare(b), true
		}
		if value.kind == kindTime || bound.kind == kindTime {
			return 0, false
		}
	}

	if value.kind == kindNumber || bound.kind == kindNumber {
		v, okV := asNumber(value)
		b, okB := asNumber(bound)
		if !okV || !okB {
			return 0, false
		}
		return compare(scalar{kind: kindNumber, n: v}, scalar{kind: kindNumber, n: b}), true
	}

	if value.kind == kindString && bound.kind == kindString {
		// Form inputs hand numeric bounds over as text
		v, okV := asNumber(value)
		b, okB := asNumber(bound)
		if okV && okB {
			return compare(scalar{kind: kindNumber, n: v}, scalar{kind: kindNumber, n: b}), true
		}
		return strings.Compare(strings.ToLower(value.s), strings.ToLower(bound.s)), true
	}

	return 0, false
}

package table

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type kind int

// Declaration order is the sort order between kinds.
const (
	kindAbsent kind = iota
	kindBool
	kindNumber
	kindTime
	kindString
	kindOther
)

type scalar struct {
	kind kind
	b    bool
	n    float64
	t    time.Time
	s    string
	raw  any
}

func normalize(v any) scalar {
	switch v := v.(type) {
	case nil:
		return scalar{kind: kindAbsent}
	case bool:
		return scalar{kind: kindBool, b: v, raw: v}
	case string:
		return scalar{kind: kindString, s: v, raw: v}
	case float64:
		return scalar{kind: kindNumber, n: v, raw: v}
	case int:
		return scalar{kind: kindNumber, n: float64(v), raw: v}
	case int64:
		return scalar{kind: kindNumber, n: float64(v), raw: v}
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return scalar{kind: kindString, s: string(v), raw: v}
		}
		return scalar{kind: kindNumber, n: n, raw: v}
	case time.Time:
		return scalar{kind: kindTime, t: v, raw: v}
	case *time.Time:
		if v == nil {
			return scalar{kind: kindAbsent}
		}
		return scalar{kind: kindTime, t: *v, raw: *v}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return scalar{kind: kindAbsent}
		}
		return normalize(rv.Elem().Interface())
	case reflect.Bool:
		return scalar{kind: kindBool, b: rv.Bool(), raw: v}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalar{kind: kindNumber, n: float64(rv.Int()), raw: v}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return scalar{kind: kindNumber, n: float64(rv.Uint()), raw: v}
	case reflect.Float32, reflect.Float64:
		return scalar{kind: kindNumber, n: rv.Float(), raw: v}
	case reflect.String:
		return scalar{kind: kindString, s: rv.String(), raw: v}
	}

	return scalar{kind: kindOther, s: fmt.Sprint(v), raw: v}
}

// compare is a total order over normalized values.
func compare(a, b scalar) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}

	switch a.kind {
	case kindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case kindNumber:
		return cmp.Compare(a.n, b.n)
	case kindTime:
		return a.t.Compare(b.t)
	case kindString, kindOther:
		if c := strings.Compare(strings.ToLower(a.s), strings.ToLower(b.s)); c != 0 {
			return c
		}
		return strings.Compare(a.s, b.s)
	}

	return 0
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

const dateOnlyLayout = "2006-01-02"

// asTime returns the time a value stands for. dateOnly reports a bare
// YYYY-MM-DD string.
func asTime(v scalar) (t time.Time, dateOnly bool, ok bool) {
	switch v.kind {
	case kindTime:
		return v.t, false, true
	case kindString:
		s := strings.TrimSpace(v.s)
		if t, err := time.Parse(dateOnlyLayout, s); err == nil {
			return t, true, true
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, false, true
			}
		}
	}
	return time.Time{}, false, false
}

func asNumber(v scalar) (float64, bool) {
	switch v.kind {
	case kindNumber:
		return v.n, true
	case kindString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		return n, err == nil
	}
	return 0, false
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

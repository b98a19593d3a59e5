package collection

import (
	"encoding/json"

	"github.com/google/btree"
)

// Row is a stored document. I is a monotonic id, so ordering rows by I is
// insertion order.
type Row struct {
	I       int64
	Payload json.RawMessage
}

func (r *Row) Less(other *Row) bool {
	return r.I < other.I
}

type rowTree = btree.BTreeG[*Row]

func newRowTree() *rowTree {
	return btree.NewG(32, func(a, b *Row) bool { return a.Less(b) })
}

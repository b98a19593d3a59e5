package collection

import (
	"path/filepath"
	"testing"
)

func Environment(t *testing.T, f func(filename string)) {
	f(filepath.Join(t.TempDir(), "collection.jsonl"))
}

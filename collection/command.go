package collection

import "encoding/json"

// Command is one line of the collection log.
type Command struct {
	Name      string          `json:"name"`
	Uuid      string          `json:"uuid"`
	Timestamp int64           `json:"timestamp"`
	StartByte int64           `json:"start_byte"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	CommandInsert = "insert"
	CommandRemove = "remove"
	CommandPatch  = "patch"
	CommandIndex  = "index"
)

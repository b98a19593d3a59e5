package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/uuid"
)

var ErrClosed = errors.New("collection is closed")

type Collection struct {
	Filename string // Just informative...
	file     *os.File
	rows     *rowTree
	mutex    *sync.RWMutex
	Indexes  map[string]*IndexMap
	maxID    int64
}

// OpenCollection replays the command log in filename and keeps the file open
// for appending.
func OpenCollection(filename string) (*Collection, error) {

	f, err := os.OpenFile(filename, os.O_RDONLY|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("open file for read: %w", err)
	}
	defer f.Close()

	c := &Collection{
		Filename: filename,
		rows:     newRowTree(),
		mutex:    &sync.RWMutex{},
		Indexes:  map[string]*IndexMap{},
	}

	j := json.NewDecoder(f)
	for n := 0; ; n++ {
		command := &Command{}
		err := j.Decode(command)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode command %d: %w", n, err)
		}

		err = c.replay(command)
		if err != nil {
			return nil, fmt.Errorf("replay %s command %d: %w", command.Name, n, err)
		}
	}

	c.file, err = os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("open file for write: %w", err)
	}

	return c, nil
}

type rowReference struct {
	I    int64           `json:"i"`
	Diff json.RawMessage `json:"diff,omitempty"`
}

func (c *Collection) replay(command *Command) error {

	switch command.Name {
	case CommandInsert:
		_, err := c.addRow(command.Payload)
		return err

	case CommandIndex:
		options := &IndexOptions{}
		err := json.Unmarshal(command.Payload, options)
		if err != nil {
			return err
		}
		return c.createIndex(options)

	case CommandRemove:
		params := rowReference{}
		err := json.Unmarshal(command.Payload, &params)
		if err != nil {
			return err
		}
		row, ok := c.rows.Get(&Row{I: params.I})
		if !ok {
			return fmt.Errorf("row %d does not exist", params.I)
		}
		c.removeRow(row)
		return nil

	case CommandPatch:
		params := rowReference{}
		err := json.Unmarshal(command.Payload, &params)
		if err != nil {
			return err
		}
		row, ok := c.rows.Get(&Row{I: params.I})
		if !ok {
			return fmt.Errorf("row %d does not exist", params.I)
		}
		_, err = c.patchRow(row, params.Diff)
		return err
	}

	return fmt.Errorf("unknown command '%s'", command.Name)
}

func (c *Collection) persist(name string, payload any) error {

	if c.file == nil {
		return ErrClosed
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json encode payload: %w", err)
	}

	command := &Command{
		Name:      name,
		Uuid:      uuid.New().String(),
		Timestamp: time.Now().UnixNano(),
		StartByte: 0,
		Payload:   data,
	}

	err = json.NewEncoder(c.file).Encode(command)
	if err != nil {
		return fmt.Errorf("json encode command: %w", err)
	}

	return nil
}

func (c *Collection) addRow(payload json.RawMessage) (*Row, error) {

	row := &Row{
		I:       c.maxID + 1,
		Payload: payload,
	}

	err := indexInsert(c.Indexes, row)
	if err != nil {
		return nil, err
	}

	c.maxID = row.I
	c.rows.ReplaceOrInsert(row)

	return row, nil
}

func (c *Collection) Insert(item map[string]any) (*Row, error) {

	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("json encode payload: %w", err)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.file == nil {
		return nil, ErrClosed
	}

	row, err := c.addRow(payload)
	if err != nil {
		return nil, err
	}

	err = c.persist(CommandInsert, json.RawMessage(payload))
	if err != nil {
		return nil, err
	}

	return row, nil
}

func (c *Collection) removeRow(row *Row) {
	indexRemove(c.Indexes, row)
	c.rows.Delete(row)
}

func (c *Collection) Remove(row *Row) error {

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.file == nil {
		return ErrClosed
	}

	if !c.rows.Has(row) {
		return fmt.Errorf("row %d does not exist", row.I)
	}

	c.removeRow(row)

	return c.persist(CommandRemove, rowReference{I: row.I})
}

// patchRow applies a JSON merge patch and returns the effective diff.
func (c *Collection) patchRow(row *Row, patch []byte) ([]byte, error) {

	newPayload, err := jsonpatch.MergePatch(row.Payload, patch)
	if err != nil {
		return nil, fmt.Errorf("cannot apply patch: %w", err)
	}

	diff, err := jsonpatch.CreateMergePatch(row.Payload, newPayload)
	if err != nil {
		return nil, fmt.Errorf("cannot diff: %w", err)
	}

	oldPayload := row.Payload

	indexRemove(c.Indexes, row)
	row.Payload = newPayload
	err = indexInsert(c.Indexes, row)
	if err != nil {
		indexRemove(c.Indexes, row)
		row.Payload = oldPayload
		indexInsert(c.Indexes, row)
		return nil, err
	}

	return diff, nil
}

// Patch merges patch into the row and returns the resulting payload, read
// while the row is still locked. Rows are shared, so the payload is replaced
// instead of modified.
func (c *Collection) Patch(row *Row, patch any) (json.RawMessage, error) {

	patchBytes, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("marshal patch: %w", err)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.file == nil {
		return nil, ErrClosed
	}

	if !c.rows.Has(row) {
		return nil, fmt.Errorf("row %d does not exist", row.I)
	}

	diff, err := c.patchRow(row, patchBytes)
	if err != nil {
		return nil, err
	}

	payload := row.Payload

	if string(diff) == "{}" {
		return payload, nil
	}

	return payload, c.persist(CommandPatch, rowReference{I: row.I, Diff: diff})
}

func (c *Collection) createIndex(options *IndexOptions) error {

	if options.Name == "" {
		options.Name = options.Field
	}

	if _, exists := c.Indexes[options.Name]; exists {
		return fmt.Errorf("index '%s' already exists", options.Name)
	}

	index := NewIndexMap(options)

	var err error
	c.rows.Ascend(func(row *Row) bool {
		err = index.AddRow(row)
		if err != nil {
			err = fmt.Errorf("index row %d: %w", row.I, err)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}

	c.Indexes[options.Name] = index

	return nil
}

// Index creates a unique index. Values can only be strings or lists of
// strings.
func (c *Collection) Index(options *IndexOptions) error {

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.file == nil {
		return ErrClosed
	}

	err := c.createIndex(options)
	if err != nil {
		return err
	}

	return c.persist(CommandIndex, options)
}

func (c *Collection) ListIndexes() []*IndexOptions {

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	result := []*IndexOptions{}
	for _, index := range c.Indexes {
		result = append(result, index.Options)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

func indexInsert(indexes map[string]*IndexMap, row *Row) error {

	done := []*IndexMap{}
	for name, index := range indexes {
		err := index.AddRow(row)
		if err != nil {
			for _, d := range done {
				d.RemoveRow(row)
			}
			return fmt.Errorf("index add '%s': %w", name, err)
		}
		done = append(done, index)
	}

	return nil
}

func indexRemove(indexes map[string]*IndexMap, row *Row) {
	for _, index := range indexes {
		index.RemoveRow(row)
	}
}

func (c *Collection) FindBy(indexName, value string) (*Row, error) {

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	index, ok := c.Indexes[indexName]
	if !ok {
		return nil, fmt.Errorf("index '%s' not found", indexName)
	}

	row, ok := index.Get(value)
	if !ok {
		return nil, fmt.Errorf("%s '%s' not found", index.Options.Field, value)
	}

	return row, nil
}

func (c *Collection) Get(i int64) (*Row, bool) {

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.rows.Get(&Row{I: i})
}

// Traverse visits rows in insertion order until f returns false. f must not
// modify the collection.
func (c *Collection) Traverse(f func(row *Row) bool) {

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	c.rows.Ascend(f)
}

// Payloads is a snapshot of every document in insertion order.
func (c *Collection) Payloads() []json.RawMessage {

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	result := make([]json.RawMessage, 0, c.rows.Len())
	c.rows.Ascend(func(row *Row) bool {
		result = append(result, row.Payload)
		return true
	})

	return result
}

func (c *Collection) Len() int {

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.rows.Len()
}

func (c *Collection) Close() error {

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.file == nil {
		return nil
	}

	err := c.file.Close()
	c.file = nil

	return err
}

func (c *Collection) Drop() error {

	err := c.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	err = os.Remove(c.Filename)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}

	return nil
}

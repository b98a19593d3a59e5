package database

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fulldump/farmgrid/collection"
	"github.com/fulldump/farmgrid/utils"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

var (
	ErrCollectionExists   = errors.New("collection already exists")
	ErrCollectionNotFound = errors.New("collection not found")
)

type Config struct {
	Dir    string
	Logger *zap.Logger
}

type Database struct {
	config      *Config
	logger      *zap.Logger
	status      string
	statusMutex sync.RWMutex
	collections map[string]*collection.Collection
	mutex       sync.RWMutex
	exit        chan struct{}
	stopOnce    sync.Once
}

func NewDatabase(config *Config) *Database {

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Database{
		config:      config,
		logger:      logger,
		status:      StatusOpening,
		collections: map[string]*collection.Collection{},
		exit:        make(chan struct{}),
	}
}

func (db *Database) GetStatus() string {
	db.statusMutex.RLock()
	defer db.statusMutex.RUnlock()
	return db.status
}

func (db *Database) setStatus(status string) {
	db.statusMutex.Lock()
	db.status = status
	db.statusMutex.Unlock()
}

func (db *Database) filename(name string) string {
	return path.Join(db.config.Dir, name)
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\:`)
}

func (db *Database) CreateCollection(name string) (*collection.Collection, error) {

	if !validName(name) {
		return nil, fmt.Errorf("invalid collection name '%s'", name)
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, exists := db.collections[name]; exists {
		return nil, ErrCollectionExists
	}

	col, err := collection.OpenCollection(db.filename(name))
	if err != nil {
		return nil, err
	}

	db.collections[name] = col
	db.logger.Info("collection created", zap.String("name", name))

	return col, nil
}

func (db *Database) GetCollection(name string) (*collection.Collection, error) {

	db.mutex.RLock()
	defer db.mutex.RUnlock()

	col, exists := db.collections[name]
	if !exists {
		return nil, ErrCollectionNotFound
	}

	return col, nil
}

// ListCollections returns collection names sorted.
func (db *Database) ListCollections() []string {

	db.mutex.RLock()
	defer db.mutex.RUnlock()

	return utils.SortedKeys(db.collections)
}

func (db *Database) DropCollection(name string) error {

	db.mutex.Lock()
	defer db.mutex.Unlock()

	col, exists := db.collections[name]
	if !exists {
		return ErrCollectionNotFound
	}

	err := col.Drop()
	if err != nil {
		return fmt.Errorf("drop '%s': %w", name, err)
	}

	delete(db.collections, name)
	db.logger.Info("collection dropped", zap.String("name", name))

	return nil
}

// Load opens every collection file found in the data directory.
func (db *Database) Load() error {

	dir := db.config.Dir
	db.logger.Info("loading database", zap.String("dir", dir))

	err := os.MkdirAll(dir, 0755)
	if err != nil {
		db.setStatus(StatusClosing)
		return err
	}

	err = filepath.WalkDir(dir, func(filename string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := strings.TrimPrefix(strings.TrimPrefix(filename, dir), "/")

		t0 := time.Now()
		col, err := collection.OpenCollection(filename)
		if err != nil {
			db.logger.Error("open collection", zap.String("filename", filename), zap.Error(err))
			return err
		}
		db.logger.Info("collection loaded",
			zap.String("name", name),
			zap.Int("rows", col.Len()),
			zap.Duration("elapsed", time.Since(t0)))

		db.mutex.Lock()
		db.collections[name] = col
		db.mutex.Unlock()

		return nil
	})

	if err != nil {
		db.setStatus(StatusClosing)
		return err
	}

	db.setStatus(StatusOperating)

	return nil
}

func (db *Database) Start() error {

	go func() {
		err := db.Load()
		if err != nil {
			db.logger.Error("load database", zap.Error(err))
		}
	}()

	<-db.exit

	return nil
}

func (db *Database) Stop() error {

	var lastErr error

	db.stopOnce.Do(func() {
		defer close(db.exit)

		db.setStatus(StatusClosing)

		db.mutex.Lock()
		defer db.mutex.Unlock()

		for name, col := range db.collections {
			db.logger.Info("closing collection", zap.String("name", name))
			err := col.Close()
			if err != nil {
				db.logger.Error("close collection", zap.String("name", name), zap.Error(err))
				lastErr = err
			}
		}
	})

	return lastErr
}

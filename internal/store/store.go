// Package store persists the item collection in a local key/value store.
//
// The collection lives under a single named entry holding a JSON array of
// items, mirroring a browser's local storage. A missing entry is an empty
// catalog.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Makepad-fr/wegive/internal/model"
	"github.com/Makepad-fr/wegive/internal/store/jsonstore"
	"github.com/Makepad-fr/wegive/internal/store/sqlitestore"
)

// ItemsKey is the name of the entry holding the serialized catalog.
const ItemsKey = "surplusItems"

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// KV is the local key/value capability the item store is built on.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Items loads and saves the whole catalog.
type Items interface {
	Load(ctx context.Context) ([]model.SurplusItem, error)
	Save(ctx context.Context, items []model.SurplusItem) error
}

// ItemStore encodes the catalog as JSON under ItemsKey.
type ItemStore struct {
	kv  KV
	key string
}

func NewItemStore(kv KV) *ItemStore {
	return &ItemStore{kv: kv, key: ItemsKey}
}

func (s *ItemStore) Load(ctx context.Context) ([]model.SurplusItem, error) {
	b, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	if !ok {
		return []model.SurplusItem{}, nil
	}
	var items []model.SurplusItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	if items == nil {
		items = []model.SurplusItem{}
	}
	return items, nil
}

func (s *ItemStore) Save(ctx context.Context, items []model.SurplusItem) error {
	if items == nil {
		items = []model.SurplusItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.kv.Put(ctx, s.key, b); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// Backend is a KV that owns resources.
type Backend interface {
	KV
	io.Closer
}

// Open selects a backend by driver name. An empty file uses the driver default.
func Open(driver, dir, file string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverJSON:
		if file == "" {
			file = jsonstore.DefaultFileName
		}
		return jsonstore.New(resolve(dir, file)), nil
	case DriverSQLite:
		if file == "" {
			file = sqlitestore.DefaultFileName
		}
		return sqlitestore.Open(resolve(dir, file))
	}
	return nil, fmt.Errorf("unknown store driver %q (want %s or %s)", driver, DriverJSON, DriverSQLite)
}

func resolve(dir, file string) string {
	if file == ":memory:" || filepath.IsAbs(file) || dir == "" {
		return file
	}
	return filepath.Join(dir, file)
}

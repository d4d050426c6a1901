package services

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/pocketbase/pocketbase/core"

	"billmaker/collections"
)

// KeyValueStore is the persistence boundary for the employee directory.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// MemoryStore is a KeyValueStore held in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// RecordStore keeps each key as one record of the app_storage collection.
type RecordStore struct {
	app core.App
}

func NewRecordStore(app core.App) *RecordStore {
	return &RecordStore{app: app}
}

func (s *RecordStore) Get(key string) (string, bool, error) {
	rec, err := s.app.FindFirstRecordByData(collections.StorageCollection, "key", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("storage: find %q: %w", key, err)
	}
	return rec.GetString("value"), true, nil
}

func (s *RecordStore) Set(key, value string) error {
	rec, err := s.app.FindFirstRecordByData(collections.StorageCollection, "key", key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("storage: find %q: %w", key, err)
		}
		col, err := s.app.FindCollectionByNameOrId(collections.StorageCollection)
		if err != nil {
			return fmt.Errorf("storage: collection not found: %w", err)
		}
		rec = core.NewRecord(col)
		rec.Set("key", key)
	}

	rec.Set("value", value)
	if err := s.app.Save(rec); err != nil {
		return fmt.Errorf("storage: save %q: %w", key, err)
	}
	return nil
}

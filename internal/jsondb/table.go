package jsondb

import (
	"encoding/json"
	"fmt"
)

// Table provides typed whole-table access to one store key holding a
// JSON array of records.
//
// Every mutation is a full read-modify-write of the array: callers
// read the slice, change it in memory and write the whole slice back.
// Two overlapping read-modify-write cycles against the same key lose
// the earlier write, so the owning layer must hold its own lock around
// each logical operation.
type Table[T any] struct {
	store *Store
	key   string
}

// NewTable binds a typed table to a store key.
func NewTable[T any](store *Store, key string) *Table[T] {
	return &Table[T]{store: store, key: key}
}

// Key returns the store key backing the table.
func (t *Table[T]) Key() string {
	return t.key
}

// Exists reports whether the table key has ever been written.
func (t *Table[T]) Exists() (bool, error) {
	_, ok, err := t.store.Get(t.key)
	return ok, err
}

// Read returns all records. An absent key reads as an empty table.
func (t *Table[T]) Read() ([]T, error) {
	data, ok, err := t.store.Get(t.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal table %s: %w", t.key, err)
	}
	return rows, nil
}

// Write replaces all records. A nil slice is persisted as an empty
// JSON array so a written table never reads back as absent.
func (t *Table[T]) Write(rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal table %s: %w", t.key, err)
	}
	return t.store.Put(t.key, data)
}

// ReadRaw returns the records under key as generic maps. Migrations
// use this to inspect and rewrite legacy shapes that no longer
// unmarshal into the current record types.
func ReadRaw(store *Store, key string) ([]map[string]any, error) {
	data, ok, err := store.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal table %s: %w", key, err)
	}
	return rows, nil
}

// WriteRaw replaces the records under key with generic maps.
func WriteRaw(store *Store, key string, rows []map[string]any) error {
	if rows == nil {
		rows = []map[string]any{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal table %s: %w", key, err)
	}
	return store.Put(key, data)
}

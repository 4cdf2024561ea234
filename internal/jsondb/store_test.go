package jsondb

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore(t *testing.T) {
	tempDir := t.TempDir()

	store, err := Open(tempDir)
	if err != nil {
		t.Fatal(err)
	}

	// Absent key.
	_, ok, err := store.Get("db_missing")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("Expected absent key to report !ok")
	}

	// Round-trip.
	if err := store.Put("db_test", []byte(`[{"a":1}]`)); err != nil {
		t.Fatal(err)
	}
	data, ok, err := store.Get("db_test")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("Expected key to exist after Put")
	}
	if string(data) != `[{"a":1}]` {
		t.Errorf("Unexpected data: %s", data)
	}

	// The key is backed by a plain JSON file.
	if _, err := os.Stat(filepath.Join(tempDir, "db_test.json")); err != nil {
		t.Errorf("Expected backing file: %v", err)
	}

	// Overwrite replaces, not appends.
	if err := store.Put("db_test", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	data, _, err = store.Get("db_test")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[]` {
		t.Errorf("Expected overwritten value, got %s", data)
	}
}

func TestStoreReopen(t *testing.T) {
	tempDir := t.TempDir()

	store, err := Open(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put("db_persist", []byte(`["x"]`)); err != nil {
		t.Fatal(err)
	}

	// A fresh Store over the same directory sees the data.
	store2, err := Open(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	data, ok, err := store2.Get("db_persist")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || string(data) != `["x"]` {
		t.Errorf("Expected persisted value, got ok=%v data=%s", ok, data)
	}
}

func TestStoreCacheIsolation(t *testing.T) {
	tempDir := t.TempDir()

	store, err := Open(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put("db_iso", []byte(`[1]`)); err != nil {
		t.Fatal(err)
	}
	data, _, err := store.Get("db_iso")
	if err != nil {
		t.Fatal(err)
	}
	// Mutating the returned slice must not corrupt the cache.
	data[1] = '9'
	again, _, err := store.Get("db_iso")
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != `[1]` {
		t.Errorf("Cache was corrupted by caller mutation: %s", again)
	}
}

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestProcessedStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_posts.json")
	store := NewProcessedStore(path, testLogger())

	set := ProcessedSet{}
	set.Add("zzz")
	set.Add("abc123")
	set.Add("def456")
	store.Save(set)

	loaded := store.Load()
	if !reflect.DeepEqual(loaded.IDs(), []string{"abc123", "def456", "zzz"}) {
		t.Errorf("Load() after Save() = %v", loaded.IDs())
	}
}

func TestProcessedStoreSaveWritesSortedArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_posts.json")
	store := NewProcessedStore(path, testLogger())

	set := ProcessedSet{"b": {}, "a": {}, "c": {}}
	store.Save(set)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		t.Fatalf("history file is not a JSON array: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Errorf("history file content = %v, want sorted [a b c]", ids)
	}
}

func TestProcessedStoreLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	store := NewProcessedStore(path, testLogger())

	set := store.Load()
	if len(set) != 0 {
		t.Errorf("Load() on missing file = %v, want empty set", set.IDs())
	}
}

func TestProcessedStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_posts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewProcessedStore(path, testLogger())
	set := store.Load()
	if len(set) != 0 {
		t.Errorf("Load() on corrupt file = %v, want empty set", set.IDs())
	}
}

func TestProcessedStoreLoadEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_posts.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewProcessedStore(path, testLogger())
	set := store.Load()
	if len(set) != 0 {
		t.Errorf("Load() on empty array = %v, want empty set", set.IDs())
	}
}

func TestProcessedSetContains(t *testing.T) {
	set := ProcessedSet{}
	if set.Contains("abc123") {
		t.Error("empty set must not contain abc123")
	}
	set.Add("abc123")
	if !set.Contains("abc123") {
		t.Error("set must contain abc123 after Add")
	}
}

package store

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) (*JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	return s, path
}

func TestJSONStoreRoundTrip(t *testing.T) {
	s, _ := tempStore(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := s.Set("session", payload{Name: "morning", Count: 3}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got payload
	ok, err := s.Get("session", &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("key missing after Set")
	}
	if got.Name != "morning" || got.Count != 3 {
		t.Errorf("got %+v, want {morning 3}", got)
	}
}

func TestJSONStoreMissingKey(t *testing.T) {
	s, _ := tempStore(t)

	var v string
	ok, err := s.Get("nope", &v)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("missing key reported present")
	}
}

func TestJSONStorePersistsAcrossReopen(t *testing.T) {
	s, path := tempStore(t)
	if err := s.Set("streak", 7); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	var streak int
	ok, err := reopened.Get("streak", &streak)
	if err != nil || !ok {
		t.Fatalf("Get after reopen: ok=%v err=%v", ok, err)
	}
	if streak != 7 {
		t.Errorf("streak = %d, want 7", streak)
	}
}

func TestJSONStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("corrupt file should not fail open: %v", err)
	}

	var v string
	if ok, _ := s.Get("anything", &v); ok {
		t.Error("corrupt store should start empty")
	}

	// The store must still be writable afterwards.
	if err := s.Set("fresh", "value"); err != nil {
		t.Errorf("Set after corrupt open: %v", err)
	}
}

func TestJSONStoreDelete(t *testing.T) {
	s, path := tempStore(t)

	if err := s.Set("temp", true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete("temp"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var v bool
	if ok, _ := s.Get("temp", &v); ok {
		t.Error("key present after Delete")
	}

	// Deleting again is a no-op.
	if err := s.Delete("temp"); err != nil {
		t.Errorf("double Delete: %v", err)
	}

	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if ok, _ := reopened.Get("temp", &v); ok {
		t.Error("deleted key survived reopen")
	}
}

func TestJSONStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "state.json")
	s, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	if err := s.Set("k", 1); err != nil {
		t.Errorf("Set in nested dir: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	var s Store = NewMemory()

	if err := s.Set("count", 42); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var count int
	ok, err := s.Get("count", &count)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if count != 42 {
		t.Errorf("count = %d, want 42", count)
	}

	if err := s.Delete("count"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := s.Get("count", &count); ok {
		t.Error("key present after Delete")
	}
}

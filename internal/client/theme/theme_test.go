package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "theme.json")

	s := Open(path)
	if s.Dark() {
		t.Fatal("expected light default")
	}

	dark, err := s.Toggle()
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if !dark {
		t.Fatal("Toggle did not flip to dark")
	}

	// a fresh store sees the persisted value
	if !Open(path).Dark() {
		t.Error("preference not persisted")
	}

	if err := Open(path).SetDark(false); err != nil {
		t.Fatalf("SetDark error: %v", err)
	}
	if Open(path).Dark() {
		t.Error("explicit value not persisted")
	}
}

func TestOpen_ToleratesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if Open(path).Dark() {
		t.Error("garbage file should default to light")
	}
}

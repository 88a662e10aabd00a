package history

import (
	"path/filepath"
	"testing"
)

func TestAppendAndRecent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	for _, text := range []string{"first", "second", "third"} {
		if err := store.Append(text); err != nil {
			t.Fatalf("Append(%q) error = %v", text, err)
		}
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	want := []string{"third", "second", "first"}
	if len(entries) != len(want) {
		t.Fatalf("Recent() = %v, want %v", entries, want)
	}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i], w)
		}
	}
}

func TestAppendSkipsAdjacentDuplicate(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	store.Append("same")
	store.Append("same")

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Recent() = %v, want a single deduped entry", entries)
	}
}

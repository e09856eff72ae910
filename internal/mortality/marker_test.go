package mortality

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMarkerStoreRoundTrip(t *testing.T) {
	store := NewMarkerStore(t.TempDir())

	if _, found, err := store.Read(Normal); err != nil || found {
		t.Fatalf("fresh store: found=%v err=%v, expected absent", found, err)
	}

	diedAt := time.Date(2025, 3, 14, 15, 9, 26, 0, time.Local)
	if err := store.Write(Normal, Record{Dead: true, DiedAt: diedAt}); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(store.MarkerPath(Normal))
	if err != nil {
		t.Fatalf("marker not written: %v", err)
	}
	if string(data) != "DEAD\n2025-03-14 15:09:26\n" {
		t.Errorf("unexpected marker content %q", data)
	}

	rec, found, err := store.Read(Normal)
	if err != nil || !found {
		t.Fatalf("read after write: found=%v err=%v", found, err)
	}
	if !rec.Dead || !rec.DiedAt.Equal(diedAt) {
		t.Errorf("unexpected record %+v", rec)
	}

	if err := store.Clear(Normal); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, found, _ := store.Read(Normal); found {
		t.Error("marker still present after clear")
	}
	if err := store.Clear(Normal); err != nil {
		t.Errorf("second clear should be a no-op, got %v", err)
	}
}

func TestMarkerStoreModesAreIsolated(t *testing.T) {
	root := t.TempDir()
	store := NewMarkerStore(root)

	if err := store.Write(Hardcore, Record{Dead: true, DiedAt: time.Now()}); err != nil {
		t.Fatalf("write hardcore: %v", err)
	}
	if _, found, _ := store.Read(Normal); found {
		t.Error("hardcore death leaked into normal mode")
	}
	if filepath.Dir(store.MarkerPath(Hardcore)) == filepath.Dir(store.MarkerPath(Normal)) {
		t.Error("modes share a directory")
	}
}

func TestMarkerStoreLegacyAndMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"legacy single line", "DEAD\n"},
		{"garbage timestamp", "DEAD\nyesterday-ish\n"},
		{"empty file", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMarkerStore(t.TempDir())
			dir, err := store.Dir(Normal)
			if err != nil {
				t.Fatalf("dir: %v", err)
			}
			if err := os.WriteFile(filepath.Join(dir, ".death_marker"), []byte(tt.content), 0o644); err != nil {
				t.Fatalf("seed marker: %v", err)
			}

			rec, found, err := store.Read(Normal)
			if err != nil {
				t.Fatalf("read should not fail on %q: %v", tt.content, err)
			}
			if !found || !rec.Dead {
				t.Error("expected dead record")
			}
			if rec.HasTime() {
				t.Errorf("expected unknown time, got %v", rec.DiedAt)
			}
			if rec.ModTime.IsZero() {
				t.Error("expected marker mod time to be filled")
			}
		})
	}
}

func TestMarkerStoreUnwritableRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(root, []byte("not a dir"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	store := NewMarkerStore(root)

	err := store.Write(Normal, Record{Dead: true, DiedAt: time.Now()})
	var cerr *ConfigIOError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigIOError, got %v", err)
	}
	if cerr.Op != "mkdir" {
		t.Errorf("expected mkdir op, got %q", cerr.Op)
	}
}

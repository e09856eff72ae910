package mortality

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	markerFile = ".death_marker"
	deadLine   = "DEAD"

	// TimeLayout is the on-disk timestamp format of markers and the sacrifice log.
	TimeLayout = "2006-01-02 15:04:05"
)

// Record is the persisted mortality state of one mode. A record only exists
// for dead players; alive is the absence of a record.
type Record struct {
	Dead   bool
	DiedAt time.Time // zero for legacy markers without a timestamp line
	// ModTime is the marker file's modification time, filled by Read.
	ModTime time.Time
}

// HasTime reports whether the marker carried a parseable timestamp.
func (r Record) HasTime() bool {
	return !r.DiedAt.IsZero()
}

// MarkerStore persists one Record per mode under a config root:
// <root>/roulette/.death_marker and <root>/roulette_hardcore/.death_marker.
type MarkerStore struct {
	root string
}

// NewMarkerStore creates a store rooted at the given per-user config directory.
func NewMarkerStore(root string) *MarkerStore {
	return &MarkerStore{root: root}
}

// Root returns the config root the store was created with.
func (s *MarkerStore) Root() string {
	return s.root
}

// DirPath returns the mode directory without creating it.
func (s *MarkerStore) DirPath(mode Mode) string {
	return filepath.Join(s.root, mode.dirName())
}

// Dir returns the mode directory, creating it if needed.
func (s *MarkerStore) Dir(mode Mode) (string, error) {
	dir := s.DirPath(mode)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &ConfigIOError{Op: "mkdir", Path: dir, Err: err}
	}
	return dir, nil
}

// MarkerPath returns where the mode's marker lives.
func (s *MarkerStore) MarkerPath(mode Mode) string {
	return filepath.Join(s.DirPath(mode), markerFile)
}

// Read loads the mode's record. found is false when no marker exists. Any
// content other than a parseable timestamp on line 2 still counts as dead.
func (s *MarkerStore) Read(mode Mode) (rec Record, found bool, err error) {
	if _, err := s.Dir(mode); err != nil {
		return Record{}, false, err
	}
	path := s.MarkerPath(mode)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, &ConfigIOError{Op: "stat", Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, &ConfigIOError{Op: "read", Path: path, Err: err}
	}

	rec = Record{Dead: true, ModTime: info.ModTime()}
	rec.DiedAt = parseDiedAt(data)
	return rec, true, nil
}

func parseDiedAt(data []byte) time.Time {
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		if line == 2 {
			ts, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(sc.Text()), time.Local)
			if err != nil {
				return time.Time{}
			}
			return ts
		}
	}
	return time.Time{}
}

// Write overwrites the mode's marker with rec. Records that are not dead are
// written as a Clear.
func (s *MarkerStore) Write(mode Mode, rec Record) error {
	if !rec.Dead {
		return s.Clear(mode)
	}
	if _, err := s.Dir(mode); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString(deadLine)
	buf.WriteByte('\n')
	if rec.HasTime() {
		buf.WriteString(rec.DiedAt.Format(TimeLayout))
		buf.WriteByte('\n')
	}

	path := s.MarkerPath(mode)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &ConfigIOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Clear removes the mode's marker. Clearing an absent marker is a no-op.
func (s *MarkerStore) Clear(mode Mode) error {
	path := s.MarkerPath(mode)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &ConfigIOError{Op: "clear", Path: path, Err: err}
	}
	return nil
}

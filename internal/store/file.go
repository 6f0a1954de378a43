package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"psiagenda/internal/schedule"
)

const (
	appointmentsFile = "appointments.json"
	metaFile         = "meta.json"
)

// storeMeta is the persisted backup metadata: the single last-backup
// timestamp plus the seeded flag. No other history is kept.
type storeMeta struct {
	LastBackup *time.Time `json:"lastBackup,omitempty"`
	Seeded     bool       `json:"seeded,omitempty"`
}

// FileStore persists the appointment collection and its metadata as JSON
// files inside a data directory. The directory is created on first write
// with 0700 permissions and files with 0600, since appointments carry
// patient PII.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir. The directory does not
// have to exist yet.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("store: data directory is required")
	}
	return &FileStore{dir: dir}, nil
}

// DefaultDir returns the conventional data directory,
// $XDG_CONFIG_HOME/psiagenda or the OS equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("store: resolve user config dir: %w", err)
	}
	return filepath.Join(base, "psiagenda"), nil
}

// Dir returns the data directory backing this store.
func (s *FileStore) Dir() string {
	return s.dir
}

// Load returns the full appointment collection. A missing file means an
// empty collection, not an error.
func (s *FileStore) Load(ctx context.Context) ([]schedule.Appointment, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, appointmentsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read appointments: %w", err)
	}

	var appointments []schedule.Appointment
	if err := json.Unmarshal(data, &appointments); err != nil {
		return nil, fmt.Errorf("store: decode appointments: %w", err)
	}
	return appointments, nil
}

// Save replaces the full appointment collection. The file is written to a
// temporary name first and renamed into place so a crash mid-write cannot
// leave a truncated collection behind.
func (s *FileStore) Save(ctx context.Context, appointments []schedule.Appointment) error {
	if appointments == nil {
		appointments = []schedule.Appointment{}
	}
	data, err := json.MarshalIndent(appointments, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode appointments: %w", err)
	}
	return s.writeFile(appointmentsFile, data)
}

// LastBackup returns the last-backup timestamp, if any.
func (s *FileStore) LastBackup(ctx context.Context) (time.Time, bool, error) {
	meta, err := s.loadMeta()
	if err != nil {
		return time.Time{}, false, err
	}
	if meta.LastBackup == nil {
		return time.Time{}, false, nil
	}
	return *meta.LastBackup, true, nil
}

// SetLastBackup records the last-backup timestamp.
func (s *FileStore) SetLastBackup(ctx context.Context, t time.Time) error {
	meta, err := s.loadMeta()
	if err != nil {
		return err
	}
	meta.LastBackup = &t
	return s.saveMeta(meta)
}

// Seeded reports whether example data has been generated before.
func (s *FileStore) Seeded(ctx context.Context) (bool, error) {
	meta, err := s.loadMeta()
	if err != nil {
		return false, err
	}
	return meta.Seeded, nil
}

// MarkSeeded sets the seeded flag.
func (s *FileStore) MarkSeeded(ctx context.Context) error {
	meta, err := s.loadMeta()
	if err != nil {
		return err
	}
	meta.Seeded = true
	return s.saveMeta(meta)
}

func (s *FileStore) loadMeta() (storeMeta, error) {
	var meta storeMeta
	data, err := os.ReadFile(filepath.Join(s.dir, metaFile))
	if errors.Is(err, fs.ErrNotExist) {
		return meta, nil
	}
	if err != nil {
		return meta, fmt.Errorf("store: read metadata: %w", err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("store: decode metadata: %w", err)
	}
	return meta, nil
}

func (s *FileStore) saveMeta(meta storeMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode metadata: %w", err)
	}
	return s.writeFile(metaFile, data)
}

func (s *FileStore) writeFile(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("store: create data directory: %w", err)
	}
	target := filepath.Join(s.dir, name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("store: replace %s: %w", name, err)
	}
	return nil
}

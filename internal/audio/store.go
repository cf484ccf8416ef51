package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	filePrefix      = "speech"
	timestampLayout = "20060102-150405"
	suffixLen       = 8
	maxNameAttempts = 5
)

// Store writes synthesized audio into a single output directory
type Store struct {
	dir    string
	ext    string
	now    func() time.Time
	suffix func() string
}

// NewStore creates a store for dir writing files with extension ext (without dot)
func NewStore(dir, ext string) *Store {
	return &Store{
		dir:    dir,
		ext:    strings.TrimPrefix(ext, "."),
		now:    time.Now,
		suffix: randomSuffix,
	}
}

// Dir returns the output directory
func (s *Store) Dir() string {
	return s.dir
}

// FileName returns speech_<YYYYMMDD-HHMMSS>_<suffix>.<ext> for t
func (s *Store) FileName(t time.Time, suffix string) string {
	return fmt.Sprintf("%s_%s_%s.%s", filePrefix, t.Format(timestampLayout), suffix, s.ext)
}

// EnsureDir creates the output directory if it is missing
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", s.dir, err)
	}
	return nil
}

// Save writes data to a new uniquely named file and returns its path.
// The data lands in a temporary file first, so a reader never sees a partial file.
func (s *Store) Save(data []byte) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".speech-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close audio file: %w", err)
	}

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		path := filepath.Join(s.dir, s.FileName(s.now(), s.suffix()))

		// Link fails if path exists, which keeps earlier files intact.
		err := os.Link(tmpName, path)
		if err == nil {
			return path, nil
		}
		if errors.Is(err, os.ErrExist) {
			continue
		}

		// Hard links are unsupported on some filesystems; fall back to an
		// exclusive create of the target.
		if path, err := s.writeExclusive(path, data); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrExist) {
			return "", err
		}
	}

	return "", fmt.Errorf("failed to find a free file name in %s after %d attempts", s.dir, maxNameAttempts)
}

func (s *Store) writeExclusive(path string, data []byte) (string, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write audio: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close audio file: %w", err)
	}
	return path, nil
}

// Writable reports whether the output directory can be created and written to
func (s *Store) Writable() error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.dir, ".writable-*")
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", s.dir, err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// randomSuffix returns the first 8 hex characters of a random UUID
func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]
}

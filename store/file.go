package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/holdings"
	"github.com/rs/zerolog"
)

// File stores a slot as <dir>/<slot>.json.
type File struct {
	path string
	log  zerolog.Logger
}

var _ holdings.Store = (*File)(nil)

// NewFile returns a File store for slot in dir. The directory is created on first Save.
func NewFile(dir, slot string, log zerolog.Logger) *File {
	return &File{
		path: filepath.Join(dir, slot+".json"),
		log:  log.With().Str("component", "store").Str("store", "file").Logger(),
	}
}

// Path returns the snapshot's file path.
func (s *File) Path() string { return s.path }

// Load reads the snapshot. A missing file is an empty portfolio.
func (s *File) Load(ctx context.Context) (holdings.Portfolio, error) {
	content, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug().Str("path", s.path).Msg("no snapshot yet")
		return holdings.Portfolio{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", s.path, err)
	}
	p, err := holdings.UnmarshalPortfolio(content)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %q: %w", s.path, err)
	}
	s.log.Debug().Str("path", s.path).Int("holdings", len(p)).Msg("snapshot loaded")
	return p, nil
}

// Save writes the snapshot to a temporary file next to the target and renames
// it over the target, so readers see either the old or the new snapshot.
func (s *File) Save(ctx context.Context, p holdings.Portfolio) (err error) {
	content, err := holdings.MarshalPortfolio(p)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %q: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temporary snapshot: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %q: %w", f.Name(), err)
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("cannot sync %q: %w", f.Name(), err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("cannot close %q: %w", f.Name(), err)
	}
	if err = os.Rename(f.Name(), s.path); err != nil {
		return fmt.Errorf("cannot replace %q: %w", s.path, err)
	}
	s.log.Debug().Str("path", s.path).Int("holdings", len(p)).Msg("snapshot saved")
	return nil
}

// Package store persists captured inventories and comparison results
// under the configured data directory:
//
//	<data_dir>/sources/<name>/<category>.csv
//	<data_dir>/sources/<name>/manifest.json
//	<data_dir>/comparisons/<nameA>_<nameB>.csv
//
// Directories are created on demand; only "already exists" is ever
// ignored. A source is always written and read wholesale.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/picstock/picstock/internal/errs"
	"github.com/picstock/picstock/internal/logger"
)

// Store reads and writes inventories below one data directory.
type Store struct {
	dataDir string
	log     *slog.Logger
}

// New creates a Store rooted at dataDir. Nothing is touched on disk
// until the first save.
func New(dataDir string, log *slog.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{dataDir: dataDir, log: log}
}

// DataDir returns the root the store operates under.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) sourcesDir() string {
	return filepath.Join(s.dataDir, "sources")
}

func (s *Store) sourceDir(name string) string {
	return filepath.Join(s.sourcesDir(), name)
}

func (s *Store) comparisonsDir() string {
	return filepath.Join(s.dataDir, "comparisons")
}

// ValidateSourceName rejects names that cannot serve as a single
// portable directory name. Source names become path segments under the
// data root, so separators and dot-names are never acceptable.
func ValidateSourceName(name string) error {
	if name == "" {
		return errs.New("validate", name, errs.KindInvalidArgument,
			fmt.Errorf("source name is empty"))
	}
	if len(name) > 255 {
		return errs.New("validate", name, errs.KindInvalidArgument,
			fmt.Errorf("source name exceeds 255 characters"))
	}
	if name == "." || name == ".." {
		return errs.New("validate", name, errs.KindInvalidArgument,
			fmt.Errorf("source name %q is reserved", name))
	}
	if name[0] == '.' {
		return errs.New("validate", name, errs.KindInvalidArgument,
			fmt.Errorf("source name must not start with a dot"))
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return errs.New("validate", name, errs.KindInvalidArgument,
				fmt.Errorf("source name contains %q; allowed are letters, digits, '.', '-' and '_'", r))
		}
	}
	return nil
}

// DestroySource removes everything persisted for the named source.
// A source that was never analysed is not an error.
func (s *Store) DestroySource(name string) error {
	if err := ValidateSourceName(name); err != nil {
		return err
	}

	dir := s.sourceDir(name)
	if err := os.RemoveAll(dir); err != nil {
		return errs.Classify("destroy", dir, err)
	}

	s.log.Debug("source destroyed", "source", name)
	return nil
}

// ListSources returns the names of all analysed sources, ascending.
// A data directory that does not exist yet simply has no sources.
func (s *Store) ListSources() ([]string, error) {
	entries, err := os.ReadDir(s.sourcesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errs.Classify("list", s.sourcesDir(), err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		// Stray directories that could never have been written by a
		// save are not sources.
		if ValidateSourceName(entry.Name()) != nil {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Strings(names)
	return names, nil
}

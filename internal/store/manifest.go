package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/picstock/picstock/internal/errs"
)

// Manifest records how a source was captured. It lives next to the
// category CSVs and is rewritten on every analyse; LoadInventory never
// reads it.
type Manifest struct {
	Source     string    `json:"source"`
	CapturedAt time.Time `json:"captured_at"`
	Roots      []string  `json:"roots"`
	Files      int       `json:"files"`
	TotalSize  int64     `json:"total_size"`
}

const manifestName = "manifest.json"

// SaveManifest writes the capture manifest for its source. A zero
// CapturedAt is filled with the current time.
func (s *Store) SaveManifest(m *Manifest) error {
	if err := ValidateSourceName(m.Source); err != nil {
		return err
	}

	if m.CapturedAt.IsZero() {
		m.CapturedAt = time.Now()
	}

	dir := s.sourceDir(m.Source)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errs.Classify("save", dir, err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errs.New("save", m.Source, errs.KindUnknown, err)
	}

	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errs.Classify("save", path, err)
	}

	return nil
}

// LoadManifest reads the capture manifest of the named source. A
// source saved by an older layout may not have one; callers treat
// NotFound as "no capture details".
func (s *Store) LoadManifest(name string) (*Manifest, error) {
	if err := ValidateSourceName(name); err != nil {
		return nil, err
	}

	path := filepath.Join(s.sourceDir(name), manifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Classify("load", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errs.New("load", path, errs.KindMalformed, err)
	}

	return &m, nil
}

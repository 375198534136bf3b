package scanner

import (
	"log/slog"

	"github.com/picstock/picstock/internal/config"
	"github.com/picstock/picstock/internal/inventory"
	"github.com/picstock/picstock/internal/logger"
)

// ProgressCallback receives per-file updates while records are being
// collected. Collection runs on a worker pool, so implementations must
// be safe for concurrent use.
type ProgressCallback func(category string, currentPath string, filesFound int, totalSize int64)

// Scanner walks photo trees and turns them into categorized inventories.
type Scanner struct {
	classifier *inventory.Classifier
	baseDir    string
	workers    int
	log        *slog.Logger
	progress   ProgressCallback
}

// New creates a Scanner from the effective configuration. The
// classifier is built once here; overlapping extension sets surface as
// an error before any filesystem work starts.
func New(cfg *config.Config, log *slog.Logger) (*Scanner, error) {
	classifier, err := inventory.NewClassifier(cfg.CategorySets())
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.Discard()
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Scanner{
		classifier: classifier,
		baseDir:    cfg.BaseDir,
		workers:    workers,
		log:        log,
	}, nil
}

// SetProgressCallback sets a callback invoked for every collected file.
func (s *Scanner) SetProgressCallback(cb ProgressCallback) {
	s.progress = cb
}

// Snapshot captures the named source: walk every root, stat every
// classified file, and return the sorted inventory. Any filesystem
// error aborts the snapshot; a partial inventory is never returned.
func (s *Scanner) Snapshot(name string, roots []string) (*inventory.Inventory, error) {
	classified, err := s.Walk(roots)
	if err != nil {
		return nil, err
	}

	records, err := s.Collect(classified)
	if err != nil {
		return nil, err
	}

	inv := inventory.New(name)
	for category, recs := range records {
		for _, rec := range recs {
			inv.Add(category, rec)
		}
	}
	inv.Sort()

	s.log.Debug("snapshot complete",
		"source", name,
		"files", inv.Count(),
		"bytes", inv.TotalSize())

	return inv, nil
}

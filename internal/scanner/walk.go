package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/picstock/picstock/internal/errs"
	"github.com/picstock/picstock/internal/inventory"
)

// Walk traverses every root and returns the classified file paths per
// category. Traversal is iterative over an explicit directory list, so
// tree depth never translates into call-stack depth.
//
// Roots must exist and be directories; a missing or unreadable root, or
// an unreadable subdirectory, fails the whole walk. Duplicate roots are
// walked twice and yield duplicate paths.
func (s *Scanner) Walk(roots []string) (map[inventory.Category][]string, error) {
	pending, err := s.resolveRoots(roots)
	if err != nil {
		return nil, err
	}

	classified := make(map[inventory.Category][]string)

	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		s.log.Debug("analysing directory", "path", dir)

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, errs.Classify("walk", dir, err)
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())

			if entry.Type()&os.ModeSymlink != 0 {
				// Stat follows the link; broken links are skipped.
				info, err := os.Stat(path)
				if err != nil {
					continue
				}
				if info.IsDir() {
					pending = append(pending, path)
					continue
				}
				if !info.Mode().IsRegular() {
					continue
				}
			} else if entry.IsDir() {
				pending = append(pending, path)
				continue
			} else if !entry.Type().IsRegular() {
				// Sockets, devices, pipes carry no photo data.
				continue
			}

			if category, ok := s.classifier.Classify(entry.Name()); ok {
				classified[category] = append(classified[category], path)
			}
		}
	}

	return classified, nil
}

// resolveRoots makes every root absolute against the configured base
// directory and verifies it is a readable directory up front, so the
// walk itself only ever sees absolute paths.
func (s *Scanner) resolveRoots(roots []string) ([]string, error) {
	if len(roots) == 0 {
		return nil, errs.New("walk", "", errs.KindInvalidArgument, fmt.Errorf("no directories to analyse"))
	}

	resolved := make([]string, 0, len(roots))
	for _, root := range roots {
		path := root
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.baseDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, errs.Classify("walk", path, err)
		}
		if !info.IsDir() {
			return nil, errs.New("walk", path, errs.KindInvalidArgument, fmt.Errorf("not a directory"))
		}

		resolved = append(resolved, path)
	}

	return resolved, nil
}

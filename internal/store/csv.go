package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/picstock/picstock/internal/differ"
	"github.com/picstock/picstock/internal/errs"
	"github.com/picstock/picstock/internal/inventory"
)

var csvHeader = []string{"name", "path", "size"}

// SaveInventory writes one CSV per category into the source directory.
// Records are written in the order the inventory holds them; callers
// sort before saving. The directory is created if absent.
func (s *Store) SaveInventory(inv *inventory.Inventory) error {
	if err := ValidateSourceName(inv.Source); err != nil {
		return err
	}

	dir := s.sourceDir(inv.Source)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errs.Classify("save", dir, err)
	}

	for _, category := range inv.Categories() {
		path := filepath.Join(dir, string(category)+".csv")
		if err := writeRecordsCSV(path, inv.Category(category)); err != nil {
			return err
		}
	}

	s.log.Debug("inventory saved",
		"source", inv.Source,
		"categories", len(inv.Records),
		"files", inv.Count())

	return nil
}

// LoadInventory reads every category CSV of the named source. A source
// that was never analysed is reported as an invalid argument, which
// keeps it apart from an analysed-but-empty source (a directory with
// no category files).
func (s *Store) LoadInventory(name string) (*inventory.Inventory, error) {
	if err := ValidateSourceName(name); err != nil {
		return nil, err
	}

	dir := s.sourceDir(name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New("load", name, errs.KindInvalidArgument,
				fmt.Errorf("source has not been analysed"))
		}
		return nil, errs.Classify("load", dir, err)
	}

	inv := inventory.New(name)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filename := entry.Name()
		if !strings.HasSuffix(filename, ".csv") || strings.HasPrefix(filename, ".") {
			continue
		}

		category := inventory.Category(strings.TrimSuffix(filename, ".csv"))
		records, err := readRecordsCSV(filepath.Join(dir, filename))
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			inv.Add(category, rec)
		}
	}

	inv.Sort()
	return inv, nil
}

// SaveComparison writes the difference set as a single CSV named after
// both sources and returns the written path.
func (s *Store) SaveComparison(set *differ.DifferenceSet) (string, error) {
	if err := ValidateSourceName(set.SourceA); err != nil {
		return "", err
	}
	if err := ValidateSourceName(set.SourceB); err != nil {
		return "", err
	}

	dir := s.comparisonsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errs.Classify("save", dir, err)
	}

	path := filepath.Join(dir, set.SourceA+"_"+set.SourceB+".csv")
	if err := writeRecordsCSV(path, set.Records); err != nil {
		return "", err
	}

	s.log.Debug("comparison saved",
		"sources", set.SourceA+"/"+set.SourceB,
		"differences", set.Count())

	return path, nil
}

func writeRecordsCSV(path string, records []inventory.FileRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return errs.Classify("save", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return errs.Classify("save", path, err)
	}
	for _, rec := range records {
		row := []string{rec.Name, rec.Path, strconv.FormatInt(rec.Size, 10)}
		if err := w.Write(row); err != nil {
			return errs.Classify("save", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errs.Classify("save", path, err)
	}
	if err := file.Close(); err != nil {
		return errs.Classify("save", path, err)
	}
	return nil
}

func readRecordsCSV(path string) ([]inventory.FileRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errs.Classify("load", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)

	header, err := r.Read()
	if err != nil {
		return nil, errs.New("load", path, errs.KindMalformed,
			fmt.Errorf("missing header: %w", err))
	}
	for i, want := range csvHeader {
		if header[i] != want {
			return nil, errs.New("load", path, errs.KindMalformed,
				fmt.Errorf("unexpected header %v", header))
		}
	}

	var records []inventory.FileRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.New("load", path, errs.KindMalformed, err)
		}

		size, err := strconv.ParseInt(row[2], 10, 64)
		if err != nil {
			return nil, errs.New("load", path, errs.KindMalformed,
				fmt.Errorf("row %v: size is not a number", row))
		}
		if size < 0 {
			return nil, errs.New("load", path, errs.KindMalformed,
				fmt.Errorf("row %v: negative size", row))
		}

		records = append(records, inventory.FileRecord{
			Name: row[0],
			Path: row[1],
			Size: size,
		})
	}

	return records, nil
}

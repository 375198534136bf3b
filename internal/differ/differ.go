// Package differ computes which files differ between two captured
// inventories: present on one side only, or present on both under the
// same name with different sizes. Size is the only equality tie-break;
// paths and timestamps never participate.
package differ

import (
	"sort"

	"github.com/picstock/picstock/internal/inventory"
)

// DifferenceSet is the flat, ordered outcome of comparing two sources.
// Records are ordered by category (ascending) and name within it.
type DifferenceSet struct {
	SourceA string
	SourceB string
	Records []inventory.FileRecord
}

// Count returns the number of differing records.
func (d *DifferenceSet) Count() int {
	return len(d.Records)
}

// TotalSize returns the summed byte size of the differing records.
func (d *DifferenceSet) TotalSize() int64 {
	var total int64
	for _, rec := range d.Records {
		total += rec.Size
	}
	return total
}

// Diff compares two inventories category by category. For each name in
// a category, a record is emitted when the other side lacks the name;
// when both sides carry it with different sizes, each pass emits the
// other side's record, so a size mismatch shows up twice, once per
// side. Matching is map-indexed, linear in the number of records.
func Diff(a, b *inventory.Inventory) *DifferenceSet {
	set := &DifferenceSet{SourceA: a.Source, SourceB: b.Source}

	for _, category := range unionCategories(a, b) {
		recordsA := a.Category(category)
		recordsB := b.Category(category)

		indexA := indexByName(recordsA)
		indexB := indexByName(recordsB)

		var diffs []inventory.FileRecord
		for _, rec := range recordsA {
			other, ok := indexB[rec.Name]
			if !ok {
				diffs = append(diffs, rec)
				continue
			}
			if other.Size != rec.Size {
				diffs = append(diffs, other)
			}
		}
		for _, rec := range recordsB {
			other, ok := indexA[rec.Name]
			if !ok {
				diffs = append(diffs, rec)
				continue
			}
			if other.Size != rec.Size {
				diffs = append(diffs, other)
			}
		}

		// Stable keeps the first pass's record ahead on equal names.
		sort.SliceStable(diffs, func(i, j int) bool {
			return diffs[i].Name < diffs[j].Name
		})

		set.Records = append(set.Records, diffs...)
	}

	return set
}

// indexByName maps name to record; a duplicated name keeps its first,
// lowest-path occurrence since category lists arrive sorted.
func indexByName(records []inventory.FileRecord) map[string]inventory.FileRecord {
	index := make(map[string]inventory.FileRecord, len(records))
	for _, rec := range records {
		if _, exists := index[rec.Name]; !exists {
			index[rec.Name] = rec
		}
	}
	return index
}

func unionCategories(a, b *inventory.Inventory) []inventory.Category {
	seen := make(map[inventory.Category]struct{})
	var union []inventory.Category

	for _, inv := range []*inventory.Inventory{a, b} {
		for category := range inv.Records {
			if _, ok := seen[category]; !ok {
				seen[category] = struct{}{}
				union = append(union, category)
			}
		}
	}

	sort.Slice(union, func(i, j int) bool {
		return union[i] < union[j]
	})

	return union
}

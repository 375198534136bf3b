package inventory

import "sort"

// Category is a classification bucket for files, keyed by extension.
type Category string

const (
	CategoryImage    Category = "image"
	CategoryRawImage Category = "raw-image"
)

// FileRecord is a point-in-time observation of one file. Fields are
// captured once during analysis and never updated afterwards.
type FileRecord struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size" yaml:"size"`
}

// Inventory holds the categorized records of one source at capture time.
type Inventory struct {
	Source  string
	Records map[Category][]FileRecord
}

// New creates an empty inventory for the named source.
func New(source string) *Inventory {
	return &Inventory{
		Source:  source,
		Records: make(map[Category][]FileRecord),
	}
}

// Add appends a record to its category list.
func (inv *Inventory) Add(category Category, record FileRecord) {
	inv.Records[category] = append(inv.Records[category], record)
}

// Category returns the records of one category, nil if absent.
func (inv *Inventory) Category(category Category) []FileRecord {
	return inv.Records[category]
}

// Categories returns the categories present, sorted ascending.
func (inv *Inventory) Categories() []Category {
	categories := make([]Category, 0, len(inv.Records))
	for category := range inv.Records {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i] < categories[j]
	})
	return categories
}

// Count returns the total number of records across all categories.
func (inv *Inventory) Count() int {
	count := 0
	for _, records := range inv.Records {
		count += len(records)
	}
	return count
}

// TotalSize returns the summed byte size across all categories.
func (inv *Inventory) TotalSize() int64 {
	var total int64
	for _, records := range inv.Records {
		for _, record := range records {
			total += record.Size
		}
	}
	return total
}

// Sort orders every category list ascending by name. Equal names are
// ordered by path so repeated runs over the same tree persist
// identically.
func (inv *Inventory) Sort() {
	for _, records := range inv.Records {
		sort.Slice(records, func(i, j int) bool {
			if records[i].Name != records[j].Name {
				return records[i].Name < records[j].Name
			}
			return records[i].Path < records[j].Path
		})
	}
}

package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/picstock/picstock/internal/differ"
	"github.com/picstock/picstock/internal/inventory"
	"github.com/picstock/picstock/pkg/utils"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// ParseFormat validates a format flag value.
func ParseFormat(value string) (OutputFormat, error) {
	switch OutputFormat(value) {
	case FormatTable, FormatJSON, FormatYAML, FormatSummary:
		return OutputFormat(value), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use summary, table, json or yaml)", value)
	}
}

// Reporter renders inventories and comparison results
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// categoryReport is one category's slice of an inventory report.
type categoryReport struct {
	Category string                 `json:"category" yaml:"category"`
	Files    int                    `json:"files" yaml:"files"`
	Size     int64                  `json:"size" yaml:"size"`
	Records  []inventory.FileRecord `json:"records" yaml:"records"`
}

// ReportInventory renders one source's inventory
func (r *Reporter) ReportInventory(inv *inventory.Inventory) error {
	switch r.format {
	case FormatTable:
		return r.inventoryTable(inv)
	case FormatJSON:
		return r.inventoryStructured(inv, r.encodeJSON)
	case FormatYAML:
		return r.inventoryStructured(inv, r.encodeYAML)
	case FormatSummary:
		return r.inventorySummary(inv)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// ReportComparison renders the differences between two sources
func (r *Reporter) ReportComparison(set *differ.DifferenceSet) error {
	switch r.format {
	case FormatTable:
		return r.comparisonTable(set)
	case FormatJSON:
		return r.comparisonStructured(set, r.encodeJSON)
	case FormatYAML:
		return r.comparisonStructured(set, r.encodeYAML)
	case FormatSummary:
		return r.comparisonSummary(set)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) inventorySummary(inv *inventory.Inventory) error {
	fmt.Fprintf(r.writer, "=== Inventory: %s ===\n", inv.Source)
	fmt.Fprintf(r.writer, "Total Files: %d\n", inv.Count())
	fmt.Fprintf(r.writer, "Total Size: %s\n", utils.FormatBytes(inv.TotalSize()))

	if inv.Count() == 0 {
		return nil
	}

	fmt.Fprintf(r.writer, "\nBreakdown by Category:\n")
	for _, category := range inv.Categories() {
		records := inv.Category(category)
		var size int64
		for _, rec := range records {
			size += rec.Size
		}
		fmt.Fprintf(r.writer, "  %s: %d files, %s\n",
			category, len(records), utils.FormatBytes(size))
	}

	return nil
}

func (r *Reporter) inventoryTable(inv *inventory.Inventory) error {
	fmt.Fprintf(r.writer, "%-40s | %-12s | %-12s | %s\n", "Name", "Size", "Category", "Path")
	fmt.Fprintln(r.writer, strings.Repeat("-", 110))

	for _, category := range inv.Categories() {
		for _, rec := range inv.Category(category) {
			fmt.Fprintf(r.writer, "%-40s | %-12s | %-12s | %s\n",
				utils.TruncateLeft(rec.Name, 40),
				utils.FormatBytes(rec.Size),
				category,
				rec.Path)
		}
	}

	fmt.Fprintln(r.writer, strings.Repeat("-", 110))
	fmt.Fprintf(r.writer, "Total: %d files, %s\n", inv.Count(), utils.FormatBytes(inv.TotalSize()))

	return nil
}

func (r *Reporter) inventoryStructured(inv *inventory.Inventory, encode func(interface{}) error) error {
	categories := make([]categoryReport, 0, len(inv.Records))
	for _, category := range inv.Categories() {
		records := inv.Category(category)
		var size int64
		for _, rec := range records {
			size += rec.Size
		}
		categories = append(categories, categoryReport{
			Category: string(category),
			Files:    len(records),
			Size:     size,
			Records:  records,
		})
	}

	report := struct {
		Source             string           `json:"source" yaml:"source"`
		GeneratedAt        string           `json:"generated_at" yaml:"generated_at"`
		TotalFiles         int              `json:"total_files" yaml:"total_files"`
		TotalSize          int64            `json:"total_size" yaml:"total_size"`
		TotalSizeFormatted string           `json:"total_size_formatted" yaml:"total_size_formatted"`
		Categories         []categoryReport `json:"categories" yaml:"categories"`
	}{
		Source:             inv.Source,
		GeneratedAt:        time.Now().Format(time.RFC3339),
		TotalFiles:         inv.Count(),
		TotalSize:          inv.TotalSize(),
		TotalSizeFormatted: utils.FormatBytes(inv.TotalSize()),
		Categories:         categories,
	}

	return encode(report)
}

func (r *Reporter) comparisonSummary(set *differ.DifferenceSet) error {
	fmt.Fprintf(r.writer, "=== Comparison: %s vs %s ===\n", set.SourceA, set.SourceB)

	if set.Count() == 0 {
		fmt.Fprintf(r.writer, "No differences found.\n")
		return nil
	}

	fmt.Fprintf(r.writer, "Differences: %d\n", set.Count())
	fmt.Fprintf(r.writer, "Affected Size: %s\n\n", utils.FormatBytes(set.TotalSize()))

	for _, rec := range set.Records {
		fmt.Fprintf(r.writer, "  %s (%s) %s\n", rec.Name, utils.FormatBytes(rec.Size), rec.Path)
	}

	return nil
}

func (r *Reporter) comparisonTable(set *differ.DifferenceSet) error {
	fmt.Fprintf(r.writer, "%-40s | %-12s | %s\n", "Name", "Size", "Path")
	fmt.Fprintln(r.writer, strings.Repeat("-", 96))

	for _, rec := range set.Records {
		fmt.Fprintf(r.writer, "%-40s | %-12s | %s\n",
			utils.TruncateLeft(rec.Name, 40),
			utils.FormatBytes(rec.Size),
			rec.Path)
	}

	fmt.Fprintln(r.writer, strings.Repeat("-", 96))
	fmt.Fprintf(r.writer, "Total: %d differences, %s\n", set.Count(), utils.FormatBytes(set.TotalSize()))

	return nil
}

func (r *Reporter) comparisonStructured(set *differ.DifferenceSet, encode func(interface{}) error) error {
	report := struct {
		SourceA            string                 `json:"source_a" yaml:"source_a"`
		SourceB            string                 `json:"source_b" yaml:"source_b"`
		GeneratedAt        string                 `json:"generated_at" yaml:"generated_at"`
		Differences        int                    `json:"differences" yaml:"differences"`
		TotalSize          int64                  `json:"total_size" yaml:"total_size"`
		TotalSizeFormatted string                 `json:"total_size_formatted" yaml:"total_size_formatted"`
		Records            []inventory.FileRecord `json:"records" yaml:"records"`
	}{
		SourceA:            set.SourceA,
		SourceB:            set.SourceB,
		GeneratedAt:        time.Now().Format(time.RFC3339),
		Differences:        set.Count(),
		TotalSize:          set.TotalSize(),
		TotalSizeFormatted: utils.FormatBytes(set.TotalSize()),
		Records:            set.Records,
	}

	return encode(report)
}

func (r *Reporter) encodeJSON(report interface{}) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (r *Reporter) encodeYAML(report interface{}) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(report)
}

// SaveInventoryToFile writes an inventory report to a file
func SaveInventoryToFile(inv *inventory.Inventory, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return New(file, format).ReportInventory(inv)
}

// SaveComparisonToFile writes a comparison report to a file
func SaveComparisonToFile(set *differ.DifferenceSet, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return New(file, format).ReportComparison(set)
}

package reporter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/picstock/picstock/internal/differ"
	"github.com/picstock/picstock/internal/inventory"
)

func testInventory() *inventory.Inventory {
	inv := inventory.New("library")
	inv.Add(inventory.CategoryImage, inventory.FileRecord{Name: "a.jpg", Path: "/lib/a.jpg", Size: 1024})
	inv.Add(inventory.CategoryImage, inventory.FileRecord{Name: "b.png", Path: "/lib/b.png", Size: 2048})
	inv.Add(inventory.CategoryRawImage, inventory.FileRecord{Name: "c.arw", Path: "/lib/c.arw", Size: 4096})
	inv.Sort()
	return inv
}

func testDifferences() *differ.DifferenceSet {
	a := inventory.New("library")
	a.Add(inventory.CategoryImage, inventory.FileRecord{Name: "only-a.jpg", Path: "/a/only-a.jpg", Size: 512})
	a.Sort()
	b := inventory.New("backup")
	return differ.Diff(a, b)
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"summary", "table", "json", "yaml"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", valid, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(\"xml\") succeeded, want error")
	}
}

func TestReportInventorySummary(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatSummary).ReportInventory(testInventory()); err != nil {
		t.Fatalf("ReportInventory() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Inventory: library",
		"Total Files: 3",
		"image: 2 files",
		"raw-image: 1 files",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestReportInventoryTable(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatTable).ReportInventory(testInventory()); err != nil {
		t.Fatalf("ReportInventory() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Name", "a.jpg", "/lib/c.arw", "Total: 3 files"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestReportInventoryJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatJSON).ReportInventory(testInventory()); err != nil {
		t.Fatalf("ReportInventory() error = %v", err)
	}

	var report struct {
		Source     string `json:"source"`
		TotalFiles int    `json:"total_files"`
		TotalSize  int64  `json:"total_size"`
		Categories []struct {
			Category string `json:"category"`
			Files    int    `json:"files"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if report.Source != "library" || report.TotalFiles != 3 || report.TotalSize != 7168 {
		t.Errorf("report = %+v, want library/3/7168", report)
	}
	if len(report.Categories) != 2 || report.Categories[0].Category != "image" {
		t.Errorf("categories = %+v, want image first", report.Categories)
	}
}

func TestReportInventoryYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatYAML).ReportInventory(testInventory()); err != nil {
		t.Fatalf("ReportInventory() error = %v", err)
	}

	var report struct {
		Source     string `yaml:"source"`
		TotalFiles int    `yaml:"total_files"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if report.Source != "library" || report.TotalFiles != 3 {
		t.Errorf("report = %+v, want library/3", report)
	}
}

func TestReportComparisonSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatSummary).ReportComparison(testDifferences()); err != nil {
		t.Fatalf("ReportComparison() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"library vs backup", "Differences: 1", "only-a.jpg"} {
		if !strings.Contains(out, want) {
			t.Errorf("comparison output missing %q:\n%s", want, out)
		}
	}
}

func TestReportComparisonNoDifferences(t *testing.T) {
	var buf bytes.Buffer
	empty := differ.Diff(inventory.New("a"), inventory.New("b"))
	if err := New(&buf, FormatSummary).ReportComparison(empty); err != nil {
		t.Fatalf("ReportComparison() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No differences found") {
		t.Errorf("output missing no-differences line:\n%s", buf.String())
	}
}

func TestUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, OutputFormat("xml")).ReportInventory(testInventory()); err == nil {
		t.Error("ReportInventory() with bad format succeeded, want error")
	}
}

func TestSaveInventoryToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	if err := SaveInventoryToFile(testInventory(), path, FormatJSON); err != nil {
		t.Fatalf("SaveInventoryToFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !json.Valid(data) {
		t.Error("saved report is not valid JSON")
	}
}

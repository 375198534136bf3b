package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/picstock/picstock/internal/config"
	"github.com/picstock/picstock/internal/differ"
	"github.com/picstock/picstock/internal/errs"
	"github.com/picstock/picstock/internal/inventory"
	"github.com/picstock/picstock/internal/scanner"
	"github.com/picstock/picstock/internal/testutil"
)

func sampleInventory(t *testing.T, source string) *inventory.Inventory {
	t.Helper()

	inv := inventory.New(source)
	inv.Add(inventory.CategoryImage, inventory.FileRecord{Name: "a.jpg", Path: "/lib/a.jpg", Size: 100})
	inv.Add(inventory.CategoryImage, inventory.FileRecord{Name: "b.png", Path: "/lib/b.png", Size: 200})
	inv.Add(inventory.CategoryRawImage, inventory.FileRecord{Name: "c.arw", Path: "/lib/c.arw", Size: 300})
	inv.Sort()
	return inv
}

// =============================================================================
// Source Name Validation
// =============================================================================

func TestValidateSourceName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "library", true},
		{"with dash", "my-backup", true},
		{"with underscore", "usb_drive", true},
		{"with digits", "backup2024", true},
		{"inner dot", "photos.2024", true},
		{"empty", "", false},
		{"slash", "a/b", false},
		{"backslash", `a\b`, false},
		{"dot", ".", false},
		{"dotdot", "..", false},
		{"hidden", ".backup", false},
		{"space", "my backup", false},
		{"non-ascii", "naïve", false},
		{"too long", strings.Repeat("x", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSourceName(tt.input)
			if tt.valid && err != nil {
				t.Errorf("ValidateSourceName(%q) = %v, want nil", tt.input, err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatalf("ValidateSourceName(%q) = nil, want error", tt.input)
				}
				if kind := errs.KindOf(err); kind != errs.KindInvalidArgument {
					t.Errorf("KindOf(err) = %v, want %v", kind, errs.KindInvalidArgument)
				}
			}
		})
	}
}

// =============================================================================
// Inventory Persistence
// =============================================================================

func TestSaveLoadRoundtrip(t *testing.T) {
	st := New(t.TempDir(), nil)
	inv := sampleInventory(t, "library")

	if err := st.SaveInventory(inv); err != nil {
		t.Fatalf("SaveInventory() error = %v", err)
	}

	loaded, err := st.LoadInventory("library")
	if err != nil {
		t.Fatalf("LoadInventory() error = %v", err)
	}

	if loaded.Source != "library" {
		t.Errorf("Source = %q, want %q", loaded.Source, "library")
	}
	if !reflect.DeepEqual(loaded.Records, inv.Records) {
		t.Errorf("loaded records = %v, want %v", loaded.Records, inv.Records)
	}
}

func TestSaveCreatesLayout(t *testing.T) {
	dataDir := t.TempDir()
	st := New(dataDir, nil)

	if err := st.SaveInventory(sampleInventory(t, "library")); err != nil {
		t.Fatalf("SaveInventory() error = %v", err)
	}

	for _, rel := range []string{
		filepath.Join("sources", "library", "image.csv"),
		filepath.Join("sources", "library", "raw-image.csv"),
	} {
		if _, err := os.Stat(filepath.Join(dataDir, rel)); err != nil {
			t.Errorf("expected %s to exist: %v", rel, err)
		}
	}
}

func TestSavedCSVFormat(t *testing.T) {
	dataDir := t.TempDir()
	st := New(dataDir, nil)

	if err := st.SaveInventory(sampleInventory(t, "library")); err != nil {
		t.Fatalf("SaveInventory() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dataDir, "sources", "library", "image.csv"))
	if err != nil {
		t.Fatalf("reading image.csv: %v", err)
	}

	want := "name,path,size\na.jpg,/lib/a.jpg,100\nb.png,/lib/b.png,200\n"
	if string(data) != want {
		t.Errorf("image.csv = %q, want %q", string(data), want)
	}
}

func TestLoadNeverAnalysed(t *testing.T) {
	st := New(t.TempDir(), nil)

	_, err := st.LoadInventory("ghost")
	if err == nil {
		t.Fatal("LoadInventory() succeeded for a never-analysed source")
	}
	if kind := errs.KindOf(err); kind != errs.KindInvalidArgument {
		t.Errorf("KindOf(err) = %v, want %v", kind, errs.KindInvalidArgument)
	}
}

func TestLoadAnalysedButEmpty(t *testing.T) {
	st := New(t.TempDir(), nil)

	// An empty tree persists as a source directory with no CSVs.
	if err := st.SaveInventory(inventory.New("empty")); err != nil {
		t.Fatalf("SaveInventory() error = %v", err)
	}

	loaded, err := st.LoadInventory("empty")
	if err != nil {
		t.Fatalf("LoadInventory() error = %v", err)
	}
	if loaded.Count() != 0 {
		t.Errorf("Count() = %d, want 0", loaded.Count())
	}
}

func TestLoadMalformedCSV(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong header", "file,location,bytes\na.jpg,/lib/a.jpg,100\n"},
		{"missing column", "name,path,size\na.jpg,/lib/a.jpg\n"},
		{"extra column", "name,path,size\na.jpg,/lib/a.jpg,100,extra\n"},
		{"size not a number", "name,path,size\na.jpg,/lib/a.jpg,many\n"},
		{"negative size", "name,path,size\na.jpg,/lib/a.jpg,-5\n"},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataDir := t.TempDir()
			st := New(dataDir, nil)

			dir := filepath.Join(dataDir, "sources", "library")
			if err := os.MkdirAll(dir, 0755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			if err := os.WriteFile(filepath.Join(dir, "image.csv"), []byte(tt.content), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}

			_, err := st.LoadInventory("library")
			if err == nil {
				t.Fatal("LoadInventory() accepted malformed CSV")
			}
			if kind := errs.KindOf(err); kind != errs.KindMalformed {
				t.Errorf("KindOf(err) = %v, want %v", kind, errs.KindMalformed)
			}
		})
	}
}

func TestLoadIgnoresNonCategoryFiles(t *testing.T) {
	dataDir := t.TempDir()
	st := New(dataDir, nil)

	if err := st.SaveInventory(sampleInventory(t, "library")); err != nil {
		t.Fatalf("SaveInventory() error = %v", err)
	}
	if err := st.SaveManifest(&Manifest{Source: "library"}); err != nil {
		t.Fatalf("SaveManifest() error = %v", err)
	}

	dir := filepath.Join(dataDir, "sources", "library")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not csv"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := st.LoadInventory("library")
	if err != nil {
		t.Fatalf("LoadInventory() error = %v", err)
	}
	if loaded.Count() != 3 {
		t.Errorf("Count() = %d, want 3", loaded.Count())
	}
}

// =============================================================================
// Destroy and List
// =============================================================================

func TestDestroySource(t *testing.T) {
	st := New(t.TempDir(), nil)

	if err := st.SaveInventory(sampleInventory(t, "library")); err != nil {
		t.Fatalf("SaveInventory() error = %v", err)
	}

	if err := st.DestroySource("library"); err != nil {
		t.Fatalf("DestroySource() error = %v", err)
	}

	if _, err := st.LoadInventory("library"); errs.KindOf(err) != errs.KindInvalidArgument {
		t.Errorf("after destroy, LoadInventory kind = %v, want %v",
			errs.KindOf(err), errs.KindInvalidArgument)
	}

	// Destroying an absent source is fine.
	if err := st.DestroySource("library"); err != nil {
		t.Errorf("second DestroySource() error = %v", err)
	}
}

func TestListSources(t *testing.T) {
	dataDir := t.TempDir()
	st := New(dataDir, nil)

	names, err := st.ListSources()
	if err != nil {
		t.Fatalf("ListSources() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("ListSources() = %v, want empty", names)
	}

	for _, source := range []string{"zoo", "archive", "library"} {
		if err := st.SaveInventory(sampleInventory(t, source)); err != nil {
			t.Fatalf("SaveInventory(%s) error = %v", source, err)
		}
	}

	// A stray file next to the source directories is not a source.
	if err := os.WriteFile(filepath.Join(dataDir, "sources", "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	names, err = st.ListSources()
	if err != nil {
		t.Fatalf("ListSources() error = %v", err)
	}
	want := []string{"archive", "library", "zoo"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ListSources() = %v, want %v", names, want)
	}
}

// =============================================================================
// Comparison Persistence
// =============================================================================

func TestSaveComparison(t *testing.T) {
	dataDir := t.TempDir()
	st := New(dataDir, nil)

	a := inventory.New("library")
	a.Add(inventory.CategoryImage, inventory.FileRecord{Name: "only-a.jpg", Path: "/a/only-a.jpg", Size: 10})
	a.Sort()
	b := inventory.New("backup")
	b.Add(inventory.CategoryImage, inventory.FileRecord{Name: "only-b.jpg", Path: "/b/only-b.jpg", Size: 20})
	b.Sort()

	path, err := st.SaveComparison(differ.Diff(a, b))
	if err != nil {
		t.Fatalf("SaveComparison() error = %v", err)
	}

	wantPath := filepath.Join(dataDir, "comparisons", "library_backup.csv")
	if path != wantPath {
		t.Errorf("path = %q, want %q", path, wantPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading comparison: %v", err)
	}
	want := "name,path,size\nonly-a.jpg,/a/only-a.jpg,10\nonly-b.jpg,/b/only-b.jpg,20\n"
	if string(data) != want {
		t.Errorf("comparison CSV = %q, want %q", string(data), want)
	}
}

// =============================================================================
// Manifest
// =============================================================================

func TestManifestRoundtrip(t *testing.T) {
	st := New(t.TempDir(), nil)

	m := &Manifest{
		Source:    "library",
		Roots:     []string{"/photos", "/more"},
		Files:     3,
		TotalSize: 600,
	}
	if err := st.SaveManifest(m); err != nil {
		t.Fatalf("SaveManifest() error = %v", err)
	}
	if m.CapturedAt.IsZero() {
		t.Error("SaveManifest left CapturedAt zero")
	}

	loaded, err := st.LoadManifest("library")
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if loaded.Files != 3 || loaded.TotalSize != 600 {
		t.Errorf("loaded = %+v, want files 3, total 600", loaded)
	}
	if !reflect.DeepEqual(loaded.Roots, m.Roots) {
		t.Errorf("Roots = %v, want %v", loaded.Roots, m.Roots)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	st := New(t.TempDir(), nil)

	_, err := st.LoadManifest("library")
	if err == nil {
		t.Fatal("LoadManifest() succeeded with no manifest")
	}
	if kind := errs.KindOf(err); kind != errs.KindNotFound {
		t.Errorf("KindOf(err) = %v, want %v", kind, errs.KindNotFound)
	}
}

// =============================================================================
// Re-analysis Round Trips
// =============================================================================

func TestReanalyseWritesIdenticalCSVs(t *testing.T) {
	f := testutil.NewFixture(t)
	f.PopulatePhotoTree("photos")

	cfg := &config.Config{
		BaseDir: f.RootDir,
		Workers: 4,
		Categories: map[string][]string{
			"image":     {".jpg", ".jpeg", ".png"},
			"raw-image": {".arw"},
		},
	}
	sc, err := scanner.New(cfg, nil)
	if err != nil {
		t.Fatalf("scanner.New() error = %v", err)
	}

	dataDir := t.TempDir()
	st := New(dataDir, nil)

	capture := func() map[string]string {
		t.Helper()

		if err := st.DestroySource("library"); err != nil {
			t.Fatalf("DestroySource() error = %v", err)
		}
		inv, err := sc.Snapshot("library", []string{f.Path("photos")})
		if err != nil {
			t.Fatalf("Snapshot() error = %v", err)
		}
		if err := st.SaveInventory(inv); err != nil {
			t.Fatalf("SaveInventory() error = %v", err)
		}

		dir := filepath.Join(dataDir, "sources", "library")
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("reading source dir: %v", err)
		}
		contents := make(map[string]string)
		for _, entry := range entries {
			if !strings.HasSuffix(entry.Name(), ".csv") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				t.Fatalf("reading %s: %v", entry.Name(), err)
			}
			contents[entry.Name()] = string(data)
		}
		return contents
	}

	first := capture()
	second := capture()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-analysis changed persisted CSVs:\nfirst:  %v\nsecond: %v", first, second)
	}
	if len(first) != 2 {
		t.Errorf("persisted %d category files, want 2", len(first))
	}
}

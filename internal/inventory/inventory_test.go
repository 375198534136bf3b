package inventory

import (
	"reflect"
	"testing"
)

func TestInventoryAddAndTotals(t *testing.T) {
	inv := New("laptop")
	inv.Add(CategoryImage, FileRecord{Name: "a.jpg", Path: "/pics/a.jpg", Size: 100})
	inv.Add(CategoryImage, FileRecord{Name: "b.jpg", Path: "/pics/b.jpg", Size: 50})
	inv.Add(CategoryRawImage, FileRecord{Name: "c.arw", Path: "/pics/c.arw", Size: 2000})

	if got := inv.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	if got := inv.TotalSize(); got != 2150 {
		t.Errorf("TotalSize() = %d, want 2150", got)
	}
	if got := len(inv.Category(CategoryImage)); got != 2 {
		t.Errorf("len(Category(image)) = %d, want 2", got)
	}
	if got := inv.Category(Category("video")); got != nil {
		t.Errorf("Category(video) = %v, want nil", got)
	}
}

func TestInventoryCategoriesSorted(t *testing.T) {
	inv := New("laptop")
	inv.Add(CategoryRawImage, FileRecord{Name: "c.arw"})
	inv.Add(CategoryImage, FileRecord{Name: "a.jpg"})
	inv.Add(Category("video"), FileRecord{Name: "v.mp4"})

	want := []Category{CategoryImage, CategoryRawImage, Category("video")}
	if got := inv.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestInventorySort(t *testing.T) {
	inv := New("laptop")
	inv.Add(CategoryImage, FileRecord{Name: "z.jpg", Path: "/pics/z.jpg", Size: 1})
	inv.Add(CategoryImage, FileRecord{Name: "a.jpg", Path: "/second/a.jpg", Size: 2})
	inv.Add(CategoryImage, FileRecord{Name: "a.jpg", Path: "/first/a.jpg", Size: 3})
	inv.Sort()

	records := inv.Category(CategoryImage)
	wantPaths := []string{"/first/a.jpg", "/second/a.jpg", "/pics/z.jpg"}
	for i, want := range wantPaths {
		if records[i].Path != want {
			t.Errorf("records[%d].Path = %q, want %q", i, records[i].Path, want)
		}
	}
}

func TestInventorySortIsStableAcrossRuns(t *testing.T) {
	build := func() *Inventory {
		inv := New("laptop")
		inv.Add(CategoryImage, FileRecord{Name: "b.jpg", Path: "/p/b.jpg", Size: 10})
		inv.Add(CategoryImage, FileRecord{Name: "a.jpg", Path: "/p/a.jpg", Size: 20})
		inv.Add(CategoryRawImage, FileRecord{Name: "r.arw", Path: "/p/r.arw", Size: 30})
		inv.Sort()
		return inv
	}

	first := build()
	second := build()
	if !reflect.DeepEqual(first.Records, second.Records) {
		t.Error("identical inputs should sort to identical inventories")
	}
}

package inventory

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultSets returns the built-in extension sets.
func DefaultSets() map[Category][]string {
	return map[Category][]string{
		CategoryImage:    {".jpg", ".jpeg", ".png"},
		CategoryRawImage: {".arw"},
	}
}

// Classifier maps a file name to a Category by its extension.
// Classification is case-insensitive and pure; adding a category is a
// configuration change, never a code change.
type Classifier struct {
	extensions map[string]Category
}

// NewClassifier builds a classifier from category extension sets.
// Sets must partition disjointly: the same extension in two categories
// is an error, because every file belongs to at most one category.
func NewClassifier(sets map[Category][]string) (*Classifier, error) {
	extensions := make(map[string]Category)
	for category, exts := range sets {
		for _, ext := range exts {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				return nil, fmt.Errorf("extension %q in category %q must start with a dot", ext, category)
			}
			if owner, ok := extensions[ext]; ok && owner != category {
				return nil, fmt.Errorf("extension %q claimed by both %q and %q", ext, owner, category)
			}
			extensions[ext] = category
		}
	}
	return &Classifier{extensions: extensions}, nil
}

// Classify returns the category for a file name, or false when the
// name matches no configured extension. A name that is nothing but its
// extension (".jpg") has no extension and is never classified.
func (c *Classifier) Classify(name string) (Category, bool) {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return "", false
	}
	category, ok := c.extensions[strings.ToLower(ext)]
	return category, ok
}

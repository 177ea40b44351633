package document

import (
	"fmt"
	"slices"
)

// Collection is the ordered set of files selected for one analysis. It is
// never modified in place: With and Without return new collections.
type Collection struct {
	items []UploadedFile
}

func NewCollection(files ...UploadedFile) Collection {
	return Collection{items: slices.Clone(files)}
}

func (c Collection) With(files ...UploadedFile) Collection {
	items := make([]UploadedFile, 0, len(c.items)+len(files))
	items = append(items, c.items...)
	items = append(items, files...)
	return Collection{items: items}
}

// Without drops the file at idx. Out of range indexes return an unchanged copy.
func (c Collection) Without(idx int) Collection {
	if idx < 0 || idx >= len(c.items) {
		return NewCollection(c.items...)
	}

	items := make([]UploadedFile, 0, len(c.items)-1)
	items = append(items, c.items[:idx]...)
	items = append(items, c.items[idx+1:]...)
	return Collection{items: items}
}

func (c Collection) Files() []UploadedFile {
	return slices.Clone(c.items)
}

func (c Collection) Len() int {
	return len(c.items)
}

func (c Collection) TotalSize() int64 {
	var total int64
	for _, f := range c.items {
		total += f.Size
	}
	return total
}

// Label renders the "file N of M" progress line for the file at idx.
func (c Collection) Label(idx int) string {
	if idx < 0 || idx >= len(c.items) {
		return ""
	}
	return fmt.Sprintf("file %d of %d: %s", idx+1, len(c.items), c.items[idx].Name)
}

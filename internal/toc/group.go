package toc

import (
	"path/filepath"
	"strings"

	"github.com/d-kuro/mdtoc/internal/collections"
)

// GroupKey returns the directory of file relative to root, using forward
// slashes. Files directly inside root map to the empty key.
func GroupKey(root, file string) string {
	dir := filepath.Clean(filepath.Dir(file))
	base := filepath.Clean(root)

	rel, err := filepath.Rel(base, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		// file is not under root; fall back to plain prefix stripping
		rel = strings.TrimPrefix(dir, base)
		rel = strings.TrimLeft(rel, string(filepath.Separator))
	}

	if rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}

// GroupByDirectory buckets files by GroupKey. Keys keep first-occurrence
// order and files keep listing order.
func GroupByDirectory(root string, files []string) *collections.OrderedMap[string, []string] {
	return collections.GroupBy(files, func(file string) string {
		return GroupKey(root, file)
	})
}

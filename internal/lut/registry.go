// Package lut discovers LUT files on well-known search roots and resolves
// the human-addressable display names that rules refer to. The catalog
// always carries one synthetic entry, [RemoveLabel], which resolves to the
// empty path and means "clear the LUT at the target node" rather than
// "apply an empty LUT".
package lut

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// RemoveLabel is the display name of the removal option. It sorts first in
// DisplayNames regardless of the alphabetic position of real LUTs.
const RemoveLabel = "(None - Remove LUT)"

// ErrNotFound is returned by Resolve when no discovered LUT carries the
// requested display name.
var ErrNotFound = errors.New("lut not found")

// lutExtensions is the allow-list of LUT file formats (lowercase).
var lutExtensions = map[string]bool{
	".cube": true,
	".3dl":  true,
	".ilut": true,
	".dat":  true,
}

// Resource is one discovered LUT file.
type Resource struct {
	Path string // full path
	Name string // basename, the display name rules use
	Root string // search root it was found under
}

// Registry holds the discovered LUT catalog. Rescan replaces the catalog
// atomically, so readers always see a complete scan.
type Registry struct {
	mu        sync.RWMutex
	roots     []string
	resources []Resource
}

// NewRegistry creates a registry over the given search roots. Call Rescan
// before first use.
func NewRegistry(roots []string) *Registry {
	return &Registry{roots: roots}
}

// Roots returns the configured search roots.
func (r *Registry) Roots() []string {
	out := make([]string, len(r.roots))
	copy(out, r.roots)
	return out
}

// Rescan walks every search root recursively, collecting files with
// allow-listed extensions. Missing roots are silently skipped and unreadable
// entries never abort the walk. The result is sorted by full path and
// swapped in atomically.
func (r *Registry) Rescan() error {
	var found []Resource
	for _, root := range r.roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		root := root
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if lutExtensions[strings.ToLower(filepath.Ext(path))] {
				found = append(found, Resource{
					Path: path,
					Name: filepath.Base(path),
					Root: root,
				})
			}
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "scan lut root %s", root)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })

	r.mu.Lock()
	r.resources = found
	r.mu.Unlock()
	return nil
}

// Resources returns the current catalog, sorted by path.
func (r *Registry) Resources() []Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Resource, len(r.resources))
	copy(out, r.resources)
	return out
}

// Len returns the number of discovered LUT files (the removal entry does
// not count).
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.resources)
}

// CountByRoot returns the number of discovered files under each search root.
func (r *Registry) CountByRoot() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int, len(r.roots))
	for _, res := range r.resources {
		counts[res.Root]++
	}
	return counts
}

// DisplayNames returns the removal option first, then the discovered LUT
// basenames sorted alphabetically.
func (r *Registry) DisplayNames() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.resources)+1)
	for _, res := range r.resources {
		names = append(names, res.Name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return append([]string{RemoveLabel}, names...)
}

// Resolve maps a display name to a full LUT path. The removal label maps to
// "". An unknown name returns an error wrapping [ErrNotFound].
func (r *Registry) Resolve(displayName string) (string, error) {
	if displayName == RemoveLabel {
		return "", nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, res := range r.resources {
		if res.Name == displayName {
			return res.Path, nil
		}
	}
	return "", errors.Wrapf(ErrNotFound, "%q", displayName)
}

// Validate reports whether path is usable in a rule: the empty path is
// always valid (it denotes removal); anything else must exist, be readable,
// and carry an allow-listed extension.
func Validate(path string) bool {
	if path == "" {
		return true
	}
	if !lutExtensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

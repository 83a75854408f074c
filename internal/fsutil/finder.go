// Package fsutil locates headers below an ordered list of search roots.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// Finder resolves include keys against search roots in order. The first
// root holding a regular file for a key wins.
type Finder struct {
	roots []string
}

// NewFinder returns a Finder over roots.
func NewFinder(roots ...string) *Finder {
	if len(roots) == 0 {
		panic("at least one search root is required")
	}
	return &Finder{roots: slices.Clone(roots)}
}

// Locate returns the path of the file providing key.
func (f *Finder) Locate(key string) (string, bool) {
	for _, root := range f.roots {
		path := filepath.Join(root, filepath.FromSlash(key))
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// Roots returns the search roots in lookup order.
func (f *Finder) Roots() []string {
	return slices.Clone(f.roots)
}

// Dirs recursively lists every directory below the search roots, the roots
// included. Roots that do not exist are skipped.
func (f *Finder) Dirs() ([]string, error) {
	var dirs []string
	for _, root := range f.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root && errors.Is(err, fs.ErrNotExist) {
					return filepath.SkipDir
				}
				return err
			}
			if d.IsDir() {
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

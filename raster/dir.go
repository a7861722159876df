package raster

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// ListImages returns the paths of the decodable images directly inside dir,
// sorted by name. Subdirectories and unknown extensions are skipped.
//
// Arguments:
//   - dir: Directory path containing image files.
//
// Returns:
//   - []string: The image paths.
//   - error: If the directory cannot be read.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "raster: read directory")
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := FormatFromPath(e.Name()); ok {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

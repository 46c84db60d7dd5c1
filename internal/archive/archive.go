package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
)

// File is one archive member read into memory.
type File struct {
	Name string
	Data []byte
}

// IsZip reports whether name looks like a zip archive.
func IsZip(name string) bool {
	return strings.EqualFold(path.Ext(name), ".zip")
}

// ReadFiles returns the regular files of the zip archive in data whose names satisfy keep
// (nil keeps all), sorted by name. Members with absolute or parent-relative paths are
// skipped.
func ReadFiles(data []byte, keep func(name string) bool) ([]File, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	var out []File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := path.Clean(f.Name)
		if path.IsAbs(name) || name == ".." || strings.HasPrefix(name, "../") {
			continue // skip path escape
		}
		if keep != nil && !keep(name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("unzip: %s: %w", name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("unzip: %s: %w", name, err)
		}
		out = append(out, File{Name: name, Data: b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

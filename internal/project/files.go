// Package project locates and reads course files in a project directory.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"coursecheck/internal/validation"
)

// skipDirs are never searched during the project-wide fallback walk.
var skipDirs = map[string]struct{}{
	".git":         {},
	".coursecheck": {},
	"Library":      {},
	"Temp":         {},
	"Logs":         {},
	"obj":          {},
}

var errFound = errors.New("found")

// Files implements validation.FileQuery over a directory tree.
type Files struct {
	root        string
	scriptRoots []string
}

var _ validation.FileQuery = (*Files)(nil)

// NewFiles searches scriptRoots (relative to root) first, then the whole root.
func NewFiles(root string, scriptRoots []string) *Files {
	return &Files{root: root, scriptRoots: scriptRoots}
}

// FindByFilename looks for a file whose base name equals name, ignoring
// case: under the script roots first, in order, then anywhere in the project.
// Handle paths are slash-separated and relative to the project root.
func (f *Files) FindByFilename(name string) (validation.FileHandle, bool) {
	base := filepath.Base(filepath.FromSlash(strings.TrimSpace(name)))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return validation.FileHandle{}, false
	}
	for _, dir := range f.scriptRoots {
		if path, ok := f.search(filepath.Join(f.root, filepath.FromSlash(dir)), base); ok {
			return f.handle(path), true
		}
	}
	if path, ok := f.search(f.root, base); ok {
		return f.handle(path), true
	}
	return validation.FileHandle{}, false
}

// ReadText reads the file as UTF-8, honoring a byte order mark. Content that
// is not valid UTF-8 is decoded as Windows-1251.
func (f *Files) ReadText(h validation.FileHandle) (string, error) {
	full := h.Path
	if !filepath.IsAbs(full) {
		full = filepath.Join(f.root, filepath.FromSlash(h.Path))
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", h.Path, err)
	}
	return decodeText(data)
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

func decodeText(data []byte) (string, error) {
	if bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM) {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", fmt.Errorf("decode text: %w", err)
		}
		return string(decoded), nil
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	legacy, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(legacy), nil
}

func (f *Files) search(dir, base string) (string, bool) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(d.Name(), base) {
			found = path
			return errFound
		}
		return nil
	})
	if errors.Is(err, errFound) {
		return found, true
	}
	return "", false
}

func (f *Files) handle(path string) validation.FileHandle {
	rel, err := filepath.Rel(f.root, path)
	if err != nil {
		return validation.FileHandle{Path: filepath.ToSlash(path)}
	}
	return validation.FileHandle{Path: filepath.ToSlash(rel)}
}

// Package jsonfile stores products and recipes as JSON arrays on disk. It is
// used when no database is configured; inquiries always require a database.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/jsonc"
)

const (
	ProductsFile = "products.json"
	RecipesFile  = "recipes.json"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// document is a mutex-guarded JSON array file. Every read goes to disk so
// edits made outside the process are picked up.
type document[T any] struct {
	mu   sync.Mutex
	path string
}

func newDocument[T any](path string) *document[T] {
	return &document[T]{path: path}
}

// load reads the array. A missing file is an empty list; a leading BOM,
// comments and trailing commas are tolerated.
func (d *document[T]) load() ([]T, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("jsonfile: read %s: %w", d.path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(jsonc.ToJSON(data), &items); err != nil {
		return nil, fmt.Errorf("jsonfile: parse %s: %w", d.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// save replaces the file atomically through a temp file in the same directory.
func (d *document[T]) save(items []T) error {
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode %s: %w", d.path, err)
	}
	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(d.path)+".*")
	if err != nil {
		return fmt.Errorf("jsonfile: temp file for %s: %w", d.path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("jsonfile: write %s: %w", d.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile: close %s: %w", d.path, err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("jsonfile: replace %s: %w", d.path, err)
	}
	return nil
}

// read runs fn over a snapshot under the lock.
func (d *document[T]) read(fn func([]T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	items, err := d.load()
	if err != nil {
		return err
	}
	return fn(items)
}

// update runs a read-modify-write cycle under the lock. fn returns the new
// contents; a nil slice with a nil error skips the write.
func (d *document[T]) update(fn func([]T) ([]T, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	items, err := d.load()
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}
	return d.save(next)
}

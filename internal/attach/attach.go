// Package attach associates bank questions with attachment files and copies
// those files next to exported exams.
package attach

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ImagesDir is the folder, relative to the export directory, that receives
// attachment copies.
const ImagesDir = "images"

// Registry maps question ids to attachment source paths. The zero value is
// not usable; create one with NewRegistry. Not safe for concurrent writes.
type Registry struct {
	byID map[string][]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string][]string)}
}

// Assign associates every path with every id. Blank ids and paths are
// ignored and a path is never listed twice for the same id.
func (r *Registry) Assign(ids []string, paths []string) {
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		for _, p := range paths {
			if p = strings.TrimSpace(p); p == "" || slices.Contains(r.byID[id], p) {
				continue
			}
			r.byID[id] = append(r.byID[id], p)
		}
	}
}

// Remove drops all attachments of id.
func (r *Registry) Remove(id string) {
	delete(r.byID, id)
}

// Paths returns the attachment paths of id in assignment order.
func (r *Registry) Paths(id string) []string {
	return slices.Clone(r.byID[id])
}

// IDs returns the ids that have attachments, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of ids with attachments.
func (r *Registry) Len() int {
	return len(r.byID)
}

// CopyError describes an attachment that could not be copied.
type CopyError struct {
	ID   string
	Path string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy attachment %q for %s: %v", e.Path, e.ID, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// Copier copies attachments into a single images folder. A source copied
// once is reused for every later question that references it.
type Copier struct {
	dir    string
	copied map[string]string // source path -> name in dir
}

// NewCopier creates a Copier writing into exportDir/ImagesDir.
func NewCopier(exportDir string) *Copier {
	return &Copier{
		dir:    filepath.Join(exportDir, ImagesDir),
		copied: make(map[string]string),
	}
}

// Dir returns the folder attachments are copied into.
func (c *Copier) Dir() string {
	return c.dir
}

// Copy copies the attachments of ids and returns, per id, the copied file
// paths relative to the export directory (e.g. "images/graph_1.png").
// Missing sources are skipped silently; other failures are returned as
// *CopyError values while the remaining files are still copied.
func (c *Copier) Copy(reg *Registry, ids []string) (map[string][]string, []error) {
	out := make(map[string][]string)
	var errs []error
	for _, id := range ids {
		for _, src := range reg.Paths(id) {
			name, err := c.copyOne(src)
			if err != nil {
				if !os.IsNotExist(err) {
					errs = append(errs, &CopyError{ID: id, Path: src, Err: err})
				}
				continue
			}
			out[id] = append(out[id], filepath.ToSlash(filepath.Join(ImagesDir, name)))
		}
	}
	return out, errs
}

func (c *Copier) copyOne(src string) (string, error) {
	if name, ok := c.copied[src]; ok {
		return name, nil
	}
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", err
	}
	name, err := freeName(c.dir, filepath.Base(src))
	if err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(c.dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, in); err != nil {
		dst.Close()
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	c.copied[src] = name
	return name, nil
}

// freeName returns name, or name with the smallest "_k" suffix before the
// extension, that does not exist in dir yet.
func freeName(dir, name string) (string, error) {
	candidate := name
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for k := 1; ; k++ {
		_, err := os.Stat(filepath.Join(dir, candidate))
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, k, ext)
	}
}

package semantic

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/lindstrom-oss/puplint/internal/erbscan"
)

// TemplateResolver caches erbscan results per template path so a manifest
// referencing the same `template("module/file.erb")` from several spots
// only scans it once.
type TemplateResolver struct {
	fsys  fs.FS
	cache map[string]*erbscan.ScanResult
}

// NewTemplateResolver builds a resolver reading templates from fsys;
// Resolve looks each path up relative to fsys's root (the lint command
// roots it at the repository directory).
func NewTemplateResolver(fsys fs.FS) *TemplateResolver {
	return &TemplateResolver{fsys: fsys, cache: make(map[string]*erbscan.ScanResult)}
}

// Resolve scans (or returns the cached scan of) the template at path,
// reporting ok=false with a nil error when the file does not exist (a
// missing template is a separate rule's concern, not this resolver's).
func (t *TemplateResolver) Resolve(path string) (*erbscan.ScanResult, bool, error) {
	if cached, hit := t.cache[path]; hit {
		return cached, true, nil
	}
	data, err := fs.ReadFile(t.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("semantic: reading template %s: %w", path, err)
	}
	result := erbscan.Scan(string(data))
	t.cache[path] = result
	return result, true, nil
}

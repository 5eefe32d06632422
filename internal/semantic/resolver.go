package semantic

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/parser"
)

// NamedBlock is whichever top-level declaration a resolved module name
// refers to: a class, a definition, or a plan (the three kinds a manifest
// file's name can be "included"/"required"/referenced by).
type NamedBlock struct {
	Class      *ast.ClassDef
	Definition *ast.DefinitionDef
	Plan       *ast.PlanDef
}

// Resolver resolves `::`-joined class/definition names to their parsed
// declaration, caching both hits and confirmed misses so a name that
// resolves to "no such file" is never re-read from disk.
//
// Grounded on original_source/puppet_pp_lint/src/ctx/mod.rs's
// Ctx::calculate_named_block / Ctx::block_of_name read-through cache.
type Resolver struct {
	fsys  fs.FS
	cache map[string]*NamedBlock // key: Module.Name(); nil value = resolved absent
}

// NewResolver builds a Resolver reading manifests from fsys, rooted the way
// Module.FullFilePath expects ("<repo>/modules/<module>/manifests/...").
func NewResolver(fsys fs.FS) *Resolver {
	return &Resolver{fsys: fsys, cache: make(map[string]*NamedBlock)}
}

// Resolve looks up the named class/definition/plan, parsing its manifest
// file on first request and caching the result (including a confirmed
// absence) for subsequent lookups.
func (r *Resolver) Resolve(identifier []string) (*NamedBlock, error) {
	mod, ok := ModuleOfIdentifier(identifier)
	if !ok {
		return nil, nil
	}
	key := mod.Name()
	if block, hit := r.cache[key]; hit {
		return block, nil
	}
	block, err := r.calculateNamedBlock(mod)
	if err != nil {
		return nil, err
	}
	r.cache[key] = block
	return block, nil
}

func (r *Resolver) calculateNamedBlock(mod Module) (*NamedBlock, error) {
	filePath := mod.FullFilePath("")
	data, err := fs.ReadFile(r.fsys, strings.TrimPrefix(filePath, "/"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("semantic: reading %s: %w", filePath, err)
	}
	manifest, err := parser.ParseManifest(string(data))
	if err != nil {
		return nil, fmt.Errorf("semantic: parsing %s: %w", filePath, err)
	}
	for _, tl := range manifest.Toplevels {
		switch v := tl.(type) {
		case *ast.ClassDef:
			if matchesIdentifier(v.Identifier, mod) {
				return &NamedBlock{Class: v}, nil
			}
		case *ast.DefinitionDef:
			if matchesIdentifier(v.Identifier, mod) {
				return &NamedBlock{Definition: v}, nil
			}
		case *ast.PlanDef:
			if matchesIdentifier(v.Identifier, mod) {
				return &NamedBlock{Plan: v}, nil
			}
		}
	}
	return nil, nil
}

func matchesIdentifier(id *ast.LowerIdentifier, mod Module) bool {
	if id == nil || len(id.Name) != 1+len(mod.Subclasses) {
		return false
	}
	if id.Name[0] != mod.ModuleName {
		return false
	}
	for i, s := range mod.Subclasses {
		if id.Name[i+1] != s {
			return false
		}
	}
	return true
}

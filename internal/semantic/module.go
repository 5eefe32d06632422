// Package semantic implements the semantic context a lint pass runs
// against: module name/file-path resolution, a variable table with
// use-count tracking, a template (ERB) resolver, and the path stack rules
// use to know where in the tree they currently are.
//
// Module resolution is grounded directly on
// original_source/puppet_tool/src/module.rs's Module type.
package semantic

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// invalidSegment matches any string holding a character outside
// `[A-Za-z0-9_]`; a `::`-separated segment of a module or class name is
// valid when it is non-empty and invalidSegment does not match it.
// Compiled once with gobwas/glob rather than a hand-rolled byte scan (the
// original's `chars().all(...)` check), per SPEC_FULL.md's domain-stack
// wiring.
var invalidSegment = glob.MustCompile("*[!ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_]*")

// ErrInvalidCharacters reports a module or class name segment outside
// `[A-Za-z0-9_]+`.
type ErrInvalidCharacters struct {
	Segment string
}

func (e *ErrInvalidCharacters) Error() string {
	return fmt.Sprintf("module or class name %q contains invalid characters", e.Segment)
}

// Module is a resolved module/class reference: a top-level module name
// plus any `::`-joined subclass path beneath it.
type Module struct {
	ModuleName string
	Subclasses []string
}

// ModuleOfIdentifier builds a Module from a parsed `::`-joined identifier,
// e.g. ["norisk", "client", "install"]. Returns false for an empty
// identifier.
func ModuleOfIdentifier(identifier []string) (Module, bool) {
	if len(identifier) == 0 {
		return Module{}, false
	}
	return Module{ModuleName: identifier[0], Subclasses: append([]string(nil), identifier[1:]...)}, true
}

// ModuleOfHiera extracts a Module and trailing parameter name from a Hiera
// key such as "norisk::client::install::version", validating every
// module/subclass segment along the way. A key with zero or one segment
// carries no module (it names a local/global value), reported as ok=false
// with a nil error.
func ModuleOfHiera(hieraKey string) (m Module, param string, ok bool, err error) {
	elts := strings.Split(hieraKey, "::")
	if len(elts) <= 1 {
		return Module{}, "", false, nil
	}
	moduleName := elts[0]
	subclasses := elts[1 : len(elts)-1]
	parameter := elts[len(elts)-1]

	if moduleName == "" || invalidSegment.Match(moduleName) {
		return Module{}, "", false, &ErrInvalidCharacters{Segment: moduleName}
	}
	for _, sub := range subclasses {
		if sub == "" || invalidSegment.Match(sub) {
			return Module{}, "", false, &ErrInvalidCharacters{Segment: sub}
		}
	}
	return Module{ModuleName: moduleName, Subclasses: append([]string(nil), subclasses...)}, parameter, true, nil
}

// FilePath returns the manifest file path this module resolves to, relative
// to a module's own directory root:
//
//	module_name/manifests/init.pp
//	module_name/manifests/subclass.pp
//	module_name/manifests/subclass/subsubclass.pp
func (m Module) FilePath() string {
	if len(m.Subclasses) == 0 {
		return path.Join(m.ModuleName, "manifests", "init.pp")
	}
	mid := m.Subclasses[:len(m.Subclasses)-1]
	last := m.Subclasses[len(m.Subclasses)-1]
	elems := append([]string{m.ModuleName, "manifests"}, mid...)
	return path.Join(path.Join(elems...), last+".pp")
}

// FullFilePath joins FilePath under a repository's "modules" directory.
func (m Module) FullFilePath(repoPath string) string {
	return path.Join(repoPath, "modules", m.FilePath())
}

// Name renders the module back to its `::`-joined class name.
func (m Module) Name() string {
	var sb strings.Builder
	sb.WriteString(m.ModuleName)
	for _, s := range m.Subclasses {
		sb.WriteString("::")
		sb.WriteString(s)
	}
	return sb.String()
}

// Identifier returns the module as a `::`-split segment slice.
func (m Module) Identifier() []string {
	out := make([]string, 0, 1+len(m.Subclasses))
	out = append(out, m.ModuleName)
	out = append(out, m.Subclasses...)
	return out
}

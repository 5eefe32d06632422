package semantic

import "github.com/lindstrom-oss/puplint/internal/srcrange"

// VariableOrigin tags why a variable table entry exists.
type VariableOrigin int

const (
	// VariableBuiltin is a fact or engine-provided variable ($facts,
	// $trusted, $module_name, …) that is always considered used.
	VariableBuiltin VariableOrigin = iota
	// VariableDefined is an ordinary `$x = …` assignment within a body.
	VariableDefined
	// VariableArgument is a class/definition/plan/function/lambda
	// parameter.
	VariableArgument
	// VariablePhantom is a variable referenced but never observed being
	// defined in the current scope (e.g. it comes from a parent class or
	// an external fact) — tracked so ReferenceToUndefinedValue can tell
	// "never seen" from "seen but unused".
	VariablePhantom
)

// VariableEntry records one variable binding's origin and how many times
// it has been read.
type VariableEntry struct {
	Origin   VariableOrigin
	UseCount int
	Range    srcrange.Range // zero for VariableBuiltin/VariablePhantom
}

// UnusedEntry names one never-read variable and where it was defined, for
// UnusedVariables to report a precise location.
type UnusedEntry struct {
	Name   string
	Origin VariableOrigin
	Range  srcrange.Range
}

// VariableTable tracks every variable visible in the scope currently being
// walked, so UnusedVariables and ReferenceToUndefinedValue can be computed
// in one traversal pass without a second lookup structure.
//
// Grounded on original_source/src/puppet_pp_lint/lint_ctx.rs's
// UnusedVariables rule, which walks a scope's defined variables against
// their recorded use sites.
type VariableTable struct {
	entries map[string]*VariableEntry
}

// NewVariableTable returns an empty table seeded with the engine's
// always-available builtins.
func NewVariableTable() *VariableTable {
	t := &VariableTable{entries: make(map[string]*VariableEntry)}
	for _, name := range []string{"facts", "trusted", "module_name", "title", "name"} {
		t.entries[name] = &VariableEntry{Origin: VariableBuiltin}
	}
	return t
}

// Define records a variable's introduction (assignment or parameter) at r.
func (t *VariableTable) Define(name string, origin VariableOrigin, r srcrange.Range) {
	if _, exists := t.entries[name]; exists {
		return
	}
	t.entries[name] = &VariableEntry{Origin: origin, Range: r}
}

// Use records a read of name, creating a VariablePhantom entry if name was
// never defined in this scope.
func (t *VariableTable) Use(name string) {
	e, ok := t.entries[name]
	if !ok {
		e = &VariableEntry{Origin: VariablePhantom}
		t.entries[name] = e
	}
	e.UseCount++
}

// Unused returns every VariableDefined or VariableArgument entry with zero
// recorded uses, in an unspecified order.
func (t *VariableTable) Unused() []UnusedEntry {
	var out []UnusedEntry
	for name, e := range t.entries {
		if (e.Origin == VariableDefined || e.Origin == VariableArgument) && e.UseCount == 0 {
			out = append(out, UnusedEntry{Name: name, Origin: e.Origin, Range: e.Range})
		}
	}
	return out
}

// IsKnown reports whether name has ever been defined or used in this
// scope (including as a builtin or phantom).
func (t *VariableTable) IsKnown(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// PathStack tracks the chain of enclosing AST nodes the traversal is
// currently inside, letting a rule ask "am I inside a class body", "am I
// inside the Nth resource attribute", and so on without parent pointers on
// the AST itself.
type PathStack struct {
	frames []string
}

// Push enters a new named frame (e.g. "if", "resource", "assign-right").
func (p *PathStack) Push(frame string) { p.frames = append(p.frames, frame) }

// Pop leaves the most recently pushed frame.
func (p *PathStack) Pop() { p.frames = p.frames[:len(p.frames)-1] }

// Frames returns the current stack, outermost first. The returned slice
// must not be retained past the next Push/Pop.
func (p *PathStack) Frames() []string { return p.frames }

// Contains reports whether frame appears anywhere in the current stack.
func (p *PathStack) Contains(frame string) bool {
	for _, f := range p.frames {
		if f == frame {
			return true
		}
	}
	return false
}

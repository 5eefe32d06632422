package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lint"
)

var sensitiveArgumentName = regexp.MustCompile(`(?:passw|secret$|token$)`)

// ArgumentLooksSensitive warns when an argument's name suggests it holds a
// secret (password, token, …) but its declared type is not Sensitive.
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_argument.rs's ArgumentLooksSensitive.
type ArgumentLooksSensitive struct{}

func (*ArgumentLooksSensitive) Name() string { return "ArgumentLooksSensitive" }
func (*ArgumentLooksSensitive) Description() string {
	return "Warns if argument name looks like sensitive, but argument is not typed with type Sensitive"
}

func (r *ArgumentLooksSensitive) CheckArgument(arg ast.Argument) []lint.Diagnostic {
	if !sensitiveArgumentName.MatchString(strings.ToLower(arg.Name)) {
		return nil
	}
	if arg.TypeSpec == nil {
		return []lint.Diagnostic{{
			Rule:    r.Name(),
			Message: fmt.Sprintf("Assuming argument %q contains a secret value, it is not typed with 'Sensitive'", arg.Name),
			Range:   arg.Range,
		}}
	}
	simple, ok := arg.TypeSpec.(*ast.SimpleType)
	if ok && simple.Kind == ast.TypeSensitiveType {
		return nil
	}
	return []lint.Diagnostic{{
		Rule:    r.Name(),
		Message: fmt.Sprintf("Assuming argument %q contains a secret value, it is not typed with 'Sensitive' type", arg.Name),
		Range:   arg.Range,
	}}
}

// SensitiveArgumentWithDefault warns when an argument typed Sensitive also
// carries a default value (the default ends up in generated catalogs and
// version control in plain text).
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_argument.rs's SensitiveArgumentWithDefault.
type SensitiveArgumentWithDefault struct{}

func (*SensitiveArgumentWithDefault) Name() string { return "SensitiveArgumentWithDefault" }
func (*SensitiveArgumentWithDefault) Description() string {
	return "Warns if argument typed with Sensitive contains default value"
}

func (r *SensitiveArgumentWithDefault) CheckArgument(arg ast.Argument) []lint.Diagnostic {
	simple, ok := arg.TypeSpec.(*ast.SimpleType)
	if !ok || simple.Kind != ast.TypeSensitiveType || arg.Default == nil {
		return nil
	}
	return []lint.Diagnostic{{
		Rule:    r.Name(),
		Message: "Sensitive argument with default value",
		Range:   arg.Range,
	}}
}

// ArgumentTyped warns when an argument has no declared type at all.
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_argument.rs's ArgumentTyped.
type ArgumentTyped struct{}

func (*ArgumentTyped) Name() string        { return "ArgumentTyped" }
func (*ArgumentTyped) Description() string { return "Warns if argument is not typed" }

func (r *ArgumentTyped) CheckArgument(arg ast.Argument) []lint.Diagnostic {
	if arg.TypeSpec != nil {
		return nil
	}
	return []lint.Diagnostic{{Rule: r.Name(), Message: "Argument is not typed", Range: arg.Range}}
}

var singleCharName = regexp.MustCompile(`^.$`)

// ReadableArgumentsName warns when an argument's name is a single
// character, too short to convey meaning.
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_argument.rs's ReadableArgumentsName.
type ReadableArgumentsName struct{}

func (*ReadableArgumentsName) Name() string { return "ReadableArgumentsName" }
func (*ReadableArgumentsName) Description() string {
	return "Warns if argument name is not readable enough"
}

func (r *ReadableArgumentsName) CheckArgument(arg ast.Argument) []lint.Diagnostic {
	if !singleCharName.MatchString(arg.Name) {
		return nil
	}
	return []lint.Diagnostic{{
		Rule:    r.Name(),
		Message: fmt.Sprintf("Argument '%s' name is too short", arg.Name),
		Range:   arg.Range,
	}}
}

// LowerCaseArgumentName warns when an argument name contains upper-case
// letters, per Puppet's style guide.
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_argument.rs's LowerCaseArgumentName.
type LowerCaseArgumentName struct{}

func (*LowerCaseArgumentName) Name() string { return "LowerCaseArgumentName" }
func (*LowerCaseArgumentName) Description() string {
	return "Warns if argument name is not lowercase, as suggested by Puppet's style guide"
}

func (r *LowerCaseArgumentName) CheckArgument(arg ast.Argument) []lint.Diagnostic {
	if arg.Name == strings.ToLower(arg.Name) {
		return nil
	}
	return []lint.Diagnostic{{
		Rule:    r.Name(),
		Message: "Argument name with upper case letters.",
		Range:   arg.Range,
		URL:     "https://puppet.com/docs/puppet/7/style_guide.html#style_guide_variables-variable-format",
	}}
}

// OptionalArgumentsGoesFirst warns when a required argument (no default)
// follows an optional one (has a default) in the same parameter list.
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_toplevel.rs's OptionalArgumentsGoesFirst.
type OptionalArgumentsGoesFirst struct{}

func (*OptionalArgumentsGoesFirst) Name() string { return "OptionalArgumentsGoesFirst" }
func (*OptionalArgumentsGoesFirst) Description() string {
	return "Warns if a required argument is declared after an optional one"
}

func (r *OptionalArgumentsGoesFirst) CheckArgumentList(args *ast.List[ast.Argument]) []lint.Diagnostic {
	if args == nil {
		return nil
	}
	var diags []lint.Diagnostic
	seenOptional := false
	for _, a := range args.Values {
		if a.Default != nil {
			seenOptional = true
			continue
		}
		if seenOptional {
			diags = append(diags, lint.Diagnostic{
				Rule:    r.Name(),
				Message: "Required argument goes after optional",
				Range:   a.Range,
			})
		}
	}
	return diags
}

// UniqueArgumentsNames warns when a parameter list declares the same
// argument name twice.
//
// Grounded on
// original_source/src/puppet_pp_lint/lint_toplevel.rs's UniqueArgumentsNames.
type UniqueArgumentsNames struct{}

func (*UniqueArgumentsNames) Name() string { return "UniqueArgumentsNames" }
func (*UniqueArgumentsNames) Description() string {
	return "Warns if the same argument name is declared more than once"
}

func (r *UniqueArgumentsNames) CheckArgumentList(args *ast.List[ast.Argument]) []lint.Diagnostic {
	if args == nil {
		return nil
	}
	var diags []lint.Diagnostic
	seen := make(map[string]ast.Argument)
	for _, a := range args.Values {
		if prior, ok := seen[a.Name]; ok {
			diags = append(diags, lint.Diagnostic{
				Rule: r.Name(),
				Message: fmt.Sprintf("Argument '%s' was already defined earlier at line %d",
					a.Name, prior.Range.Start.Line),
				Range: a.Range,
			})
			continue
		}
		seen[a.Name] = a
	}
	return diags
}

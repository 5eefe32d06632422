package rules

import (
	"fmt"
	"strings"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/lint"
)

// resourceTypeName returns the resource set's bare type identifier (e.g.
// "file" in `file { … }`), which the parser always represents as a
// TermIdentifier since a resource set's type position requires a bare
// name (see internal/parser/statement.go's resource-defaults path, which
// asserts the same shape).
func resourceTypeName(e ast.Expr) (*ast.LowerIdentifier, bool) {
	t, ok := e.(*ast.Term)
	if !ok || t.Kind != ast.TermIdentifier || t.Identifier == nil {
		return nil, false
	}
	return t.Identifier, true
}

// attributeKeyName returns the bare name of a `key => value` attribute,
// or false if the key is something other than a single-segment
// identifier (a spread attribute's Key is nil, for instance).
func attributeKeyName(e ast.Expr) (string, bool) {
	if e == nil {
		return "", false
	}
	t, ok := e.(*ast.Term)
	if !ok || t.Kind != ast.TermIdentifier || t.Identifier == nil || len(t.Identifier.Name) != 1 {
		return "", false
	}
	return t.Identifier.Name[0], true
}

// stringLiteralText concatenates a StringExpr's fragments into the text
// they decode to, or reports false if a double-quoted string interpolates
// an expression (so no single literal text exists).
func stringLiteralText(se *ast.StringExpr) (string, bool) {
	if se == nil {
		return "", false
	}
	var sb strings.Builder
	switch se.Kind {
	case ast.StringSingleQuoted:
		for _, f := range se.Single {
			switch f.Kind {
			case ast.FragmentLiteral:
				sb.WriteString(f.Literal)
			case ast.FragmentEscaped, ast.FragmentEscapedUTF:
				sb.WriteRune(f.Char)
			}
		}
	case ast.StringDoubleQuoted:
		for _, frag := range se.Double {
			if frag.Expression != nil {
				return "", false
			}
			if frag.Literal == nil {
				continue
			}
			switch frag.Literal.Kind {
			case ast.FragmentLiteral:
				sb.WriteString(frag.Literal.Literal)
			case ast.FragmentEscaped, ast.FragmentEscapedUTF:
				sb.WriteRune(frag.Literal.Char)
			}
		}
	}
	return sb.String(), true
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// UpperCaseName warns when a resource set's type name contains upper case
// characters.
//
// Grounded on
// original_source/hixplorer/src/check/pp_static/lint_resource_set.rs's
// UpperCaseName.
type UpperCaseName struct{}

func (*UpperCaseName) Name() string { return "UpperCaseName" }
func (*UpperCaseName) Description() string {
	return "Name of resource set contains upper case characters"
}

func (r *UpperCaseName) CheckResourceSet(rs *ast.ResourceSetStatement) []lint.Diagnostic {
	ident, ok := resourceTypeName(rs.Type)
	if !ok || !hasUpper(ident.Name) {
		return nil
	}
	return []lint.Diagnostic{{
		Rule:    r.Name(),
		Message: r.Description(),
		Range:   rs.Type.SrcRange(),
	}}
}

// UniqueAttributeName warns when the same attribute name appears more
// than once in one resource title's body.
//
// Grounded on
// original_source/hixplorer/src/check/pp_static/lint_resource_set.rs's
// UniqueAttributeName.
type UniqueAttributeName struct{}

func (*UniqueAttributeName) Name() string        { return "UniqueAttributeName" }
func (*UniqueAttributeName) Description() string { return "Attribute name is not unique" }

func (r *UniqueAttributeName) CheckResourceSet(rs *ast.ResourceSetStatement) []lint.Diagnostic {
	if rs.Resources == nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, res := range rs.Resources.Values {
		if res.Attributes == nil {
			continue
		}
		seen := make(map[string]bool)
		for _, attr := range res.Attributes.Values {
			name, ok := attributeKeyName(attr.Key)
			if !ok {
				continue
			}
			if seen[name] {
				diags = append(diags, lint.Diagnostic{
					Rule:    r.Name(),
					Message: fmt.Sprintf("Attribute %q is not unique", name),
					Range:   attr.Key.SrcRange(),
				})
			}
			seen[name] = true
		}
	}
	return diags
}

// EnsureAttributeIsNotTheFirst warns when an `ensure` attribute is present
// but is not the first attribute listed in a resource body.
//
// Grounded on
// original_source/hixplorer/src/check/pp_static/lint_resource_set.rs's
// EnsureAttributeIsNotTheFirst.
type EnsureAttributeIsNotTheFirst struct{}

func (*EnsureAttributeIsNotTheFirst) Name() string { return "EnsureAttributeIsNotTheFirst" }
func (*EnsureAttributeIsNotTheFirst) Description() string {
	return "Attribute 'ensure' is not the first"
}

const ensureAttributeOrderingURL = "https://puppet.com/docs/puppet/7/style_guide.html#style_guide_resources-attribute-ordering"

func (r *EnsureAttributeIsNotTheFirst) CheckResourceSet(rs *ast.ResourceSetStatement) []lint.Diagnostic {
	if rs.Resources == nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, res := range rs.Resources.Values {
		if res.Attributes == nil {
			continue
		}
		for pos, attr := range res.Attributes.Values {
			name, ok := attributeKeyName(attr.Key)
			if ok && name == "ensure" && pos > 0 {
				diags = append(diags, lint.Diagnostic{
					Rule:    r.Name(),
					Message: r.Description() + ". See " + ensureAttributeOrderingURL,
					Range:   attr.Key.SrcRange(),
					URL:     ensureAttributeOrderingURL,
				})
			}
		}
	}
	return diags
}

const fileModeStyleURL = "https://puppet.com/docs/puppet/7/style_guide.html#style_guide_resources-file-modes"

// FileModeAttributeIsString warns on a `file` resource's `mode` attribute:
// an integer value always errors; a string value errors if it is not all
// digits, or if its length is not 4.
//
// Grounded on
// original_source/hixplorer/src/check/pp_static/lint_resource_set.rs's
// FileModeAttributeIsString.
type FileModeAttributeIsString struct{}

func (*FileModeAttributeIsString) Name() string { return "FileModeAttributeIsString" }
func (*FileModeAttributeIsString) Description() string {
	return "Checks that a file resource's mode attribute is a 4-digit string"
}

func (r *FileModeAttributeIsString) CheckResourceSet(rs *ast.ResourceSetStatement) []lint.Diagnostic {
	ident, ok := resourceTypeName(rs.Type)
	if !ok || len(ident.Name) != 1 || ident.Name[0] != "file" || rs.Resources == nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, res := range rs.Resources.Values {
		if res.Attributes == nil {
			continue
		}
		for _, attr := range res.Attributes.Values {
			name, ok := attributeKeyName(attr.Key)
			if !ok || name != "mode" {
				continue
			}
			term, ok := attr.Value.(*ast.Term)
			if !ok {
				continue
			}
			switch term.Kind {
			case ast.TermInteger:
				diags = append(diags, lint.Diagnostic{
					Rule:    r.Name(),
					Message: "Integer value of mode attribute. Use string. See " + fileModeStyleURL,
					Range:   term.SrcRange(),
					URL:     fileModeStyleURL,
				})
			case ast.TermString:
				value, ok := stringLiteralText(term.StringValue)
				if !ok {
					continue
				}
				switch {
				case !allDigits(value):
					diags = append(diags, lint.Diagnostic{
						Rule:    r.Name(),
						Message: "Mode attribute is a string which is not all of digits. See " + fileModeStyleURL,
						Range:   term.SrcRange(),
						URL:     fileModeStyleURL,
					})
				case len(value) != 4:
					diags = append(diags, lint.Diagnostic{
						Rule:    r.Name(),
						Message: "Mode attribute is a string which length != 4. See " + fileModeStyleURL,
						Range:   term.SrcRange(),
						URL:     fileModeStyleURL,
					})
				}
			}
		}
	}
	return diags
}

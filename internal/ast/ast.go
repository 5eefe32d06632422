// Package ast defines the manifest language's abstract syntax tree.
//
// The tree follows the shape of Go's own go/ast package (the model the
// matcher in this project's ancestor tool walked): every node kind is a
// concrete struct implementing a small sealed interface (Expr, TypeSpec,
// Statement, TopLevel) via an unexported marker method, and every node
// carries its source Range directly rather than through a generic "extra"
// type parameter. A pretty-printer that needs a second, position-free
// instantiation is out of this project's core (spec Non-goals), so the
// Range field is concrete rather than a generic payload — see DESIGN.md.
package ast

import "github.com/lindstrom-oss/puplint/internal/srcrange"

// Node is implemented by every AST type; it exposes the node's source span.
type Node interface {
	SrcRange() srcrange.Range
}

type base struct {
	Range srcrange.Range
}

func (b base) SrcRange() srcrange.Range { return b.Range }

// SetRange sets a node's source range after construction. Parsers build a
// node's payload first and only know its full span once every sub-parse
// has returned, so this is called as the last step of nearly every
// production in internal/parser and internal/strlit.
func (b *base) SetRange(r srcrange.Range) { b.Range = r }

// Comment is a captured `#…` line, attached to whichever node the parser
// opens next after consuming it (see internal/lexer.SkipSpace).
type Comment struct {
	Text  string
	Range srcrange.Range
}

// List pairs a sequence of values with any comments trailing the last
// element, so a block's final comments survive even with nothing left to
// attach them to.
type List[T any] struct {
	Values      []T
	LastComment []Comment
}

// --- identifiers -------------------------------------------------------

// LowerIdentifier is a `::`-joined lowercase-initial name, e.g. "a::b::c".
type LowerIdentifier struct {
	base
	Name       []string
	IsToplevel bool
}

// CamelIdentifier is a `::`-joined uppercase-initial name, e.g. "A::B".
type CamelIdentifier struct {
	base
	Name []string
}

// --- string & regex literals --------------------------------------------

// StringFragmentKind tags a single-quoted string fragment.
type StringFragmentKind int

const (
	FragmentLiteral StringFragmentKind = iota
	FragmentEscaped
	FragmentEscapedUTF
)

// StringFragment is one piece of a single-quoted string's content.
type StringFragment struct {
	Kind    StringFragmentKind
	Literal string // FragmentLiteral
	Char    rune   // FragmentEscaped / FragmentEscapedUTF
	Range   srcrange.Range
}

// DoubleQuotedFragment is either a StringFragment or an interpolated
// Expression (`${…}` or a bare `$var`).
type DoubleQuotedFragment struct {
	Literal    *StringFragment
	Expression Expr
}

// StringExprKind distinguishes single- from double-quoted strings.
type StringExprKind int

const (
	StringSingleQuoted StringExprKind = iota
	StringDoubleQuoted
)

// StringExpr is a quoted string literal, optionally followed by an
// accessor. Invariant: a SingleQuoted StringExpr never contains an
// interpolation fragment — only DoubleQuoted strings do.
type StringExpr struct {
	base
	Kind       StringExprKind
	Single     []StringFragment       // StringSingleQuoted
	Double     []DoubleQuotedFragment // StringDoubleQuoted
	Accessor   *Accessor
}

// Regexp is a `/…/`-delimited regular expression; Data is the body with
// `\/` decoded to `/` and every other `\<char>` escape left intact.
type Regexp struct {
	base
	Data string
}

// --- accessor ------------------------------------------------------------

// Accessor is a sequence of index lists: `$x[a][b,c]` has two elements,
// `[a]` and `[b,c]`.
type Accessor struct {
	Lists [][]Expr
	Range srcrange.Range
}

// --- terms -----------------------------------------------------------------

// TermKind tags a Term's variant.
type TermKind int

const (
	TermString TermKind = iota
	TermFloat
	TermInteger
	TermBoolean
	TermArray
	TermIdentifier
	TermParens
	TermMap
	TermVariable
	TermRegexpGroupID
	TermSensitive
	TermTypeSpecification
	TermRegexp
)

// Term is a tagged union over the leaf-ish expression forms; exactly the
// field matching Kind is populated.
type Term struct {
	base
	Kind     TermKind
	Accessor *Accessor // trailing `[…]` index chain, any Kind

	StringValue  *StringExpr        // TermString
	FloatValue   float64            // TermFloat
	IntegerValue int64              // TermInteger
	BooleanValue bool               // TermBoolean
	ArrayValue   *List[Expr]        // TermArray
	Identifier   *LowerIdentifier   // TermIdentifier
	ParensValue  Expr               // TermParens
	MapValue     *List[MapEntry]    // TermMap
	Variable     *Variable          // TermVariable
	RegexpGroup  uint64             // TermRegexpGroupID
	Sensitive    *Term              // TermSensitive
	TypeSpec     TypeSpec           // TermTypeSpecification
	Regexp       *Regexp            // TermRegexp
}

// Variable is `$name`; accessors on a variable reference live on the
// enclosing Term, not here.
type Variable struct {
	base
	Identifier *LowerIdentifier
}

// MapEntry is one `key => value` pair inside a `{…}` map literal.
type MapEntry struct {
	Key     Expr
	Value   Expr
	Comment []Comment
}

func (*Term) exprNode() {}

// --- expressions -------------------------------------------------------

// Expr is the sealed interface implemented by every expression variant.
type Expr interface {
	Node
	exprNode()
}

// ExprKind tags a BinaryExpr's operator.
type ExprKind int

const (
	OpAssign ExprKind = iota
	OpAnd
	OpOr
	OpEqual
	OpNotEqual
	OpGt
	OpGtEq
	OpLt
	OpLtEq
	OpShiftLeft
	OpShiftRight
	OpPlus
	OpMinus
	OpMultiply
	OpDivide
	OpModulo
	OpIn
)

// BinaryExpr covers every two-operand operator in §3's Expression variant
// list (Assign, And, Or, the comparisons, the shifts, the arithmetic ops,
// and In).
type BinaryExpr struct {
	base
	Op              ExprKind
	Left, Right     Expr
	Accessor        *Accessor
	LeadingComments []Comment
}

func (*BinaryExpr) exprNode() {}

// NotExpr is the prefix `!` operator.
type NotExpr struct {
	base
	Operand         Expr
	Accessor        *Accessor
	LeadingComments []Comment
}

func (*NotExpr) exprNode() {}

// RegexMatchExpr covers `=~` / `!~`.
type RegexMatchExpr struct {
	base
	Negated         bool
	Left            Expr
	Regexp          *Regexp
	Accessor        *Accessor
	LeadingComments []Comment
}

func (*RegexMatchExpr) exprNode() {}

// TypeMatchExpr covers the type-checking forms of `=~` / `!~` against a
// TypeSpecification rather than a Regexp.
type TypeMatchExpr struct {
	base
	Negated         bool
	Left            Expr
	TypeSpec        TypeSpec
	Accessor        *Accessor
	LeadingComments []Comment
}

func (*TypeMatchExpr) exprNode() {}

// ChainCallExpr is `receiver.method(args) |lambda| { body }`.
type ChainCallExpr struct {
	base
	Left            Expr
	Call            *FunctionCall
	Accessor        *Accessor
	LeadingComments []Comment
}

func (*ChainCallExpr) exprNode() {}

// SelectorCase is one `match => body` arm of a Selector.
type SelectorCase struct {
	Matches CaseVariant
	Body    Expr
	Range   srcrange.Range
	Comment []Comment
}

// SelectorExpr is `cond ? { match => body, … }`.
type SelectorExpr struct {
	base
	Condition       Expr
	Cases           *List[SelectorCase]
	Accessor        *Accessor
	LeadingComments []Comment
}

func (*SelectorExpr) exprNode() {}

// Lambda is the `|args| { body }` block trailing a function call.
type Lambda struct {
	base
	Args *List[Argument]
	Body *List[Statement]
}

// FunctionCall is `name(args) |lambda| { … }`.
type FunctionCall struct {
	base
	Identifier *LowerIdentifier
	Args       []Expr
	Lambda     *Lambda
}

func (*FunctionCall) exprNode() {}

// BuiltinKind tags a BuiltinCall's built-in function.
type BuiltinKind int

const (
	BuiltinUndef BuiltinKind = iota
	BuiltinReturn
	BuiltinTemplate
	BuiltinTag
	BuiltinRequire
	BuiltinInclude
	BuiltinRealize
	BuiltinCreateResources
)

// Many1 is "a nonempty argument list preceded by an optional lambda",
// shared by Template/Tag/Require/Include/Realize/CreateResources.
type Many1 struct {
	Lambda *Lambda
	Args   []Expr
}

// BuiltinCall is one of the enumerated built-in functions (§3). Return
// carries an optional expression; Undef carries nothing; the rest carry a
// Many1.
type BuiltinCall struct {
	base
	Kind         BuiltinKind
	ReturnValue  Expr // BuiltinReturn, may be nil
	Many         *Many1
}

func (*BuiltinCall) exprNode() {}

// --- case variant (shared by Case statements and Selector expressions) ----

// CaseVariantKind tags a CaseVariant.
type CaseVariantKind int

const (
	CaseVariantTerm CaseVariantKind = iota
	CaseVariantDefault
)

// CaseVariant is a single `match` arm: either a Term or the `default`
// keyword.
type CaseVariant struct {
	Kind  CaseVariantKind
	Term  *Term
	Range srcrange.Range
}

// --- argument ----------------------------------------------------------

// Argument is one `$name` (or `Type $name = default`) in a class,
// definition, plan, function, or lambda parameter list.
type Argument struct {
	TypeSpec        TypeSpec
	Name            string
	Default         Expr
	LeadingComments []Comment
	Range           srcrange.Range
}

func (a Argument) SrcRange() srcrange.Range { return a.Range }

// Package jsast models the handful of JavaScript syntax shapes the hook
// resolver inspects, built from tree-sitter parses of original sources.
package jsast

// Expr is an initializer expression. Only the variants the classifier
// understands are materialized; anything else converts to a nil Expr.
type Expr interface {
	exprNode()
}

// Pattern is a binding target on the left of a declarator.
type Pattern interface {
	patternNode()
}

// Identifier is a plain name. It appears both as a binding target and
// as an expression.
type Identifier struct {
	Name string
}

func (*Identifier) exprNode()    {}
func (*Identifier) patternNode() {}

// NumericLiteral is a number token, e.g. the 0 in countState[0].
type NumericLiteral struct {
	Value float64
}

func (*NumericLiteral) exprNode() {}

// MemberExpression is object.property or object[property]. Computed
// distinguishes the bracketed form.
type MemberExpression struct {
	Object   Expr
	Property Expr
	Computed bool
}

func (*MemberExpression) exprNode() {}

// CallExpression records only the callee; arguments never influence
// classification.
type CallExpression struct {
	Callee Expr
}

func (*CallExpression) exprNode() {}

// ArrayPattern is a destructuring target. Elements holds the identifier
// of each slot in order; non-identifier slots and holes are nil.
type ArrayPattern struct {
	Elements []*Identifier
}

func (*ArrayPattern) patternNode() {}

// VariableDeclarator is one `id = init` pair of a declaration
// statement. Line is 1-based in the original source.
type VariableDeclarator struct {
	ID   Pattern
	Init Expr
	Line int
}

// Program is a parsed original source reduced to its declarators, in
// source order.
type Program struct {
	Source      string
	Declarators []*VariableDeclarator
}

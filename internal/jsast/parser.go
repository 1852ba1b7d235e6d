package jsast

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/standardbeagle/hooklens/internal/errors"
)

// Parser parses original sources recovered from source maps. Sources
// are routed to a grammar by extension; unknown extensions try the
// JavaScript grammar first and fall back to TSX, which accepts both
// typed syntax and JSX. Not safe for concurrent use - the pipeline
// parses one file at a time.
type Parser struct {
	javascript *tree_sitter.Parser
	typescript *tree_sitter.Parser
	tsx        *tree_sitter.Parser
}

// NewParser initializes the grammar set.
func NewParser() (*Parser, error) {
	p := &Parser{}

	js := tree_sitter.NewParser()
	if err := js.SetLanguage(tree_sitter.NewLanguage(tree_sitter_javascript.Language())); err != nil {
		return nil, fmt.Errorf("javascript grammar: %w", err)
	}
	p.javascript = js

	ts := tree_sitter.NewParser()
	if err := ts.SetLanguage(tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())); err != nil {
		return nil, fmt.Errorf("typescript grammar: %w", err)
	}
	p.typescript = ts

	tsx := tree_sitter.NewParser()
	if err := tsx.SetLanguage(tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())); err != nil {
		return nil, fmt.Errorf("tsx grammar: %w", err)
	}
	p.tsx = tsx

	return p, nil
}

// Parse converts a source into its declarator list. name is the
// source-map path of the file (used for grammar routing); src is the
// embedded original content. A tree whose root contains syntax errors
// under every grammar tried fails the file.
func (p *Parser) Parse(name, src string) (*Program, error) {
	content := []byte(src)
	for _, parser := range p.route(name) {
		tree := parser.Parse(content, nil)
		if tree == nil {
			continue
		}
		root := tree.RootNode()
		if root.HasError() {
			tree.Close()
			continue
		}
		prog := &Program{Source: name}
		collectDeclarators(root, content, prog)
		tree.Close()
		return prog, nil
	}
	return nil, errors.NewResolveError(errors.ErrorKindParse, "parse",
		fmt.Errorf("syntax errors under every candidate grammar")).WithURL(name)
}

// route orders the grammars to try for a source path.
func (p *Parser) route(name string) []*tree_sitter.Parser {
	switch strings.ToLower(path.Ext(strippedPath(name))) {
	case ".ts":
		return []*tree_sitter.Parser{p.typescript, p.tsx}
	case ".tsx":
		return []*tree_sitter.Parser{p.tsx}
	case ".js", ".jsx", ".mjs", ".cjs":
		return []*tree_sitter.Parser{p.javascript, p.tsx}
	default:
		return []*tree_sitter.Parser{p.javascript, p.tsx}
	}
}

// strippedPath drops webpack:///-style scheme prefixes, the URL host,
// and query strings so path.Ext sees the real file name.
func strippedPath(name string) string {
	if idx := strings.Index(name, "://"); idx >= 0 {
		name = name[idx+3:]
		if slash := strings.Index(name, "/"); slash >= 0 {
			name = name[slash:]
		}
	}
	if idx := strings.IndexAny(name, "?#"); idx >= 0 {
		name = name[:idx]
	}
	return name
}

// collectDeclarators walks the whole tree and materializes every
// variable_declarator in source order.
func collectDeclarators(node *tree_sitter.Node, content []byte, prog *Program) {
	if node.Kind() == "variable_declarator" {
		if decl := convertDeclarator(node, content); decl != nil {
			prog.Declarators = append(prog.Declarators, decl)
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil {
			collectDeclarators(child, content, prog)
		}
	}
}

func convertDeclarator(node *tree_sitter.Node, content []byte) *VariableDeclarator {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	decl := &VariableDeclarator{
		ID:   convertPattern(nameNode, content),
		Line: int(node.StartPosition().Row) + 1,
	}
	if valueNode := node.ChildByFieldName("value"); valueNode != nil {
		decl.Init = convertExpr(valueNode, content)
	}
	return decl
}

func convertPattern(node *tree_sitter.Node, content []byte) Pattern {
	switch node.Kind() {
	case "identifier":
		return &Identifier{Name: nodeText(node, content)}
	case "array_pattern":
		pat := &ArrayPattern{}
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child == nil || !child.IsNamed() || child.Kind() == "comment" {
				continue
			}
			pat.Elements = append(pat.Elements, patternElementIdentifier(child, content))
		}
		return pat
	default:
		// Object patterns and other targets never carry a hook's
		// readable name.
		return nil
	}
}

// patternElementIdentifier reduces one array-pattern slot to its
// identifier, unwrapping default values (`[count = 0] = ...`). Slots
// that bind anything more complex stay nil.
func patternElementIdentifier(node *tree_sitter.Node, content []byte) *Identifier {
	switch node.Kind() {
	case "identifier":
		return &Identifier{Name: nodeText(node, content)}
	case "assignment_pattern":
		if left := node.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
			return &Identifier{Name: nodeText(left, content)}
		}
	}
	return nil
}

func convertExpr(node *tree_sitter.Node, content []byte) Expr {
	node = unwrapExpr(node)
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "identifier":
		return &Identifier{Name: nodeText(node, content)}
	case "number":
		value, err := strconv.ParseFloat(nodeText(node, content), 64)
		if err != nil {
			return nil
		}
		return &NumericLiteral{Value: value}
	case "call_expression":
		callee := node.ChildByFieldName("function")
		if callee == nil {
			return nil
		}
		return &CallExpression{Callee: convertExpr(callee, content)}
	case "member_expression":
		object := node.ChildByFieldName("object")
		property := node.ChildByFieldName("property")
		if object == nil || property == nil {
			return nil
		}
		expr := &MemberExpression{Object: convertExpr(object, content)}
		if property.Kind() == "property_identifier" || property.Kind() == "identifier" {
			expr.Property = &Identifier{Name: nodeText(property, content)}
		}
		return expr
	case "subscript_expression":
		object := node.ChildByFieldName("object")
		index := node.ChildByFieldName("index")
		if object == nil || index == nil {
			return nil
		}
		return &MemberExpression{
			Object:   convertExpr(object, content),
			Property: convertExpr(index, content),
			Computed: true,
		}
	default:
		return nil
	}
}

// unwrapExpr strips the TypeScript and grouping veneer around an
// initializer so the classifier sees the underlying expression.
func unwrapExpr(node *tree_sitter.Node) *tree_sitter.Node {
	for node != nil {
		switch node.Kind() {
		case "parenthesized_expression", "non_null_expression", "as_expression", "satisfies_expression":
			inner := firstNamedChild(node)
			if inner == nil {
				return node
			}
			node = inner
		default:
			return node
		}
	}
	return nil
}

func firstNamedChild(node *tree_sitter.Node) *tree_sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.IsNamed() && child.Kind() != "comment" {
			return child
		}
	}
	return nil
}

func nodeText(node *tree_sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}

// Package hooks decides which declarators are React hook calls and
// which declarator carries the readable name for a given hook.
package hooks

import (
	"regexp"
	"unicode"

	"github.com/standardbeagle/hooklens/internal/jsast"
)

// Hook identifiers: use followed by an uppercase letter or digit.
// Excludes user, used, useful and friends.
var hookNamePattern = regexp.MustCompile(`^use[A-Z0-9].*$`)

// IsHookName reports whether an identifier names a hook.
func IsHookName(name string) bool {
	return hookNamePattern.MatchString(name)
}

// IsHook reports whether a callee expression is a hook reference: a
// hook identifier, or a PascalCase namespace qualifying one
// (React.useState, Namespace.useCustom).
func IsHook(node jsast.Expr) bool {
	switch n := node.(type) {
	case *jsast.Identifier:
		return IsHookName(n.Name)
	case *jsast.MemberExpression:
		if n.Computed {
			return false
		}
		obj, ok := n.Object.(*jsast.Identifier)
		if !ok || obj.Name == "" {
			return false
		}
		if !unicode.IsUpper(rune(obj.Name[0])) {
			return false
		}
		if n.Property == nil {
			return false
		}
		return IsHook(n.Property)
	}
	return false
}

// IsConfirmedHookDeclaration reports whether a declarator's initializer
// is a call with a hook callee.
func IsConfirmedHookDeclaration(decl *jsast.VariableDeclarator) bool {
	call, ok := decl.Init.(*jsast.CallExpression)
	if !ok {
		return false
	}
	return IsHook(call.Callee)
}

// IsStateOrReducerHook reports whether the declarator calls useState or
// useReducer, bare or namespace-qualified.
func IsStateOrReducerHook(decl *jsast.VariableDeclarator) bool {
	call, ok := decl.Init.(*jsast.CallExpression)
	if !ok {
		return false
	}
	return isStateOrReducerCallee(call.Callee)
}

func isStateOrReducerCallee(callee jsast.Expr) bool {
	switch c := callee.(type) {
	case *jsast.Identifier:
		return c.Name == "useState" || c.Name == "useReducer"
	case *jsast.MemberExpression:
		if c.Computed {
			return false
		}
		prop, ok := c.Property.(*jsast.Identifier)
		return ok && (prop.Name == "useState" || prop.Name == "useReducer")
	}
	return false
}

// ContainsReadableBinding reports whether the declarator itself carries
// the name a developer reads. Destructuring always does; a bare
// identifier does unless it binds a state/reducer pair, whose readable
// name lives in a later destructuring or indexed access.
func ContainsReadableBinding(decl *jsast.VariableDeclarator) bool {
	switch decl.ID.(type) {
	case *jsast.ArrayPattern:
		return true
	case *jsast.Identifier:
		return !IsStateOrReducerHook(decl)
	}
	return false
}

// CollectPotentialDeclarations filters a parsed file down to every
// declarator that could take part in a hook binding: a call to a hook,
// a member access (const x = state[0]), or a plain identifier alias
// (const [x, y] = state). Source order is preserved.
func CollectPotentialDeclarations(prog *jsast.Program) []*jsast.VariableDeclarator {
	var out []*jsast.VariableDeclarator
	for _, decl := range prog.Declarators {
		switch init := decl.Init.(type) {
		case *jsast.CallExpression:
			if IsHook(init.Callee) {
				out = append(out, decl)
			}
		case *jsast.MemberExpression, *jsast.Identifier:
			out = append(out, decl)
		}
	}
	return out
}

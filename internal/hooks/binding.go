package hooks

import (
	"fmt"

	"github.com/standardbeagle/hooklens/internal/errors"
	"github.com/standardbeagle/hooklens/internal/jsast"
)

// ResolveBindingName derives the readable variable name for a confirmed
// hook declarator. pool is the file's remaining potential declarators
// with confirmed already removed, in source order. A ("", nil) return
// means the binding is legitimately nameless (custom hook destructured
// into several variables); errors mean the shape could not be resolved.
func ResolveBindingName(confirmed *jsast.VariableDeclarator, pool []*jsast.VariableDeclarator, isCustomHook bool) (string, error) {
	associated, err := associatedDeclarators(confirmed, pool)
	if err != nil {
		return "", err
	}

	switch len(associated) {
	case 1:
		member := associated[0]
		if isCustomHook && member == confirmed {
			return bindingNameOf(confirmed, true)
		}
		return bindingNameOf(member, false)
	case 2:
		// Indexed access pair: the reader of slot 0 carries the name.
		var zeroReaders []*jsast.VariableDeclarator
		for _, member := range associated {
			if readsIndexZero(member) {
				zeroReaders = append(zeroReaders, member)
			}
		}
		if len(zeroReaders) != 1 {
			return "", errors.NewResolveError(errors.ErrorKindAmbiguousBinding, "resolve binding",
				fmt.Errorf("%d declarators read index 0 of the hook result", len(zeroReaders)))
		}
		return bindingNameOf(zeroReaders[0], false)
	default:
		// No reader or too many: fall back to the declarator itself.
		// For state/reducer this yields the alias identifier.
		return bindingNameOf(confirmed, false)
	}
}

// associatedDeclarators builds the set of declarators that carry the
// hook's binding. A declarator with a readable binding stands alone;
// otherwise the hook result flows through an intermediate alias and
// every reader of that alias belongs to the set.
func associatedDeclarators(confirmed *jsast.VariableDeclarator, pool []*jsast.VariableDeclarator) ([]*jsast.VariableDeclarator, error) {
	if ContainsReadableBinding(confirmed) {
		return []*jsast.VariableDeclarator{confirmed}, nil
	}

	alias, ok := confirmed.ID.(*jsast.Identifier)
	if !ok {
		return nil, errors.NewResolveError(errors.ErrorKindUnknownBinding, "resolve binding",
			fmt.Errorf("hook bound to an unsupported pattern"))
	}

	var matches []*jsast.VariableDeclarator
	for _, candidate := range pool {
		if referencesAlias(candidate.Init, alias.Name) {
			matches = append(matches, candidate)
		}
	}
	return matches, nil
}

// referencesAlias reports whether an initializer reads the alias, as
// either a member access (alias[0]) or a direct reference
// (const [a, b] = alias).
func referencesAlias(init jsast.Expr, alias string) bool {
	switch e := init.(type) {
	case *jsast.MemberExpression:
		obj, ok := e.Object.(*jsast.Identifier)
		return ok && obj.Name == alias
	case *jsast.Identifier:
		return e.Name == alias
	}
	return false
}

// readsIndexZero reports whether the declarator's initializer is a
// computed access of literal index 0.
func readsIndexZero(decl *jsast.VariableDeclarator) bool {
	member, ok := decl.Init.(*jsast.MemberExpression)
	if !ok {
		return false
	}
	num, ok := member.Property.(*jsast.NumericLiteral)
	return ok && num.Value == 0
}

// bindingNameOf extracts the name from a declarator's binding target.
// For array destructuring the first element names the value; under a
// custom hook that choice is ambiguous and resolves to no name.
func bindingNameOf(decl *jsast.VariableDeclarator, isCustomHook bool) (string, error) {
	switch id := decl.ID.(type) {
	case *jsast.ArrayPattern:
		if isCustomHook {
			return "", nil
		}
		if len(id.Elements) == 0 || id.Elements[0] == nil {
			return "", errors.NewResolveError(errors.ErrorKindUnknownBinding, "resolve binding",
				fmt.Errorf("destructuring pattern has no leading identifier"))
		}
		return id.Elements[0].Name, nil
	case *jsast.Identifier:
		return id.Name, nil
	default:
		return "", errors.NewResolveError(errors.ErrorKindUnknownBinding, "resolve binding",
			fmt.Errorf("unsupported binding target"))
	}
}

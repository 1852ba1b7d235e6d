package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/hooklens/internal/jsast"
)

func arrayPattern(names ...string) *jsast.ArrayPattern {
	pat := &jsast.ArrayPattern{}
	for _, name := range names {
		pat.Elements = append(pat.Elements, ident(name))
	}
	return pat
}

func indexRead(alias string, index float64, target string) *jsast.VariableDeclarator {
	return &jsast.VariableDeclarator{
		ID:   ident(target),
		Init: member(ident(alias), &jsast.NumericLiteral{Value: index}, true),
	}
}

// TestResolveBindingName_DirectDestructuring covers
// const [count, setCount] = React.useState(1).
func TestResolveBindingName_DirectDestructuring(t *testing.T) {
	confirmed := &jsast.VariableDeclarator{
		ID:   arrayPattern("count", "setCount"),
		Init: hookCall(member(ident("React"), ident("useState"), false)),
	}

	name, err := ResolveBindingName(confirmed, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "count", name)
}

// TestResolveBindingName_IndirectAlias covers
// const countState = React.useState(1); const [count, setCount] = countState.
func TestResolveBindingName_IndirectAlias(t *testing.T) {
	confirmed := &jsast.VariableDeclarator{
		ID:   ident("countState"),
		Init: hookCall(member(ident("React"), ident("useState"), false)),
	}
	reader := &jsast.VariableDeclarator{
		ID:   arrayPattern("count", "setCount"),
		Init: ident("countState"),
	}

	name, err := ResolveBindingName(confirmed, []*jsast.VariableDeclarator{reader}, false)
	require.NoError(t, err)
	assert.Equal(t, "count", name)
}

// TestResolveBindingName_IndexedAccessPair covers
// const count = countState[0]; const setCount = countState[1].
func TestResolveBindingName_IndexedAccessPair(t *testing.T) {
	confirmed := &jsast.VariableDeclarator{
		ID:   ident("countState"),
		Init: hookCall(ident("useState")),
	}
	pool := []*jsast.VariableDeclarator{
		indexRead("countState", 0, "count"),
		indexRead("countState", 1, "setCount"),
	}

	name, err := ResolveBindingName(confirmed, pool, false)
	require.NoError(t, err)
	assert.Equal(t, "count", name)
}

// TestResolveBindingName_IndexedPairWithoutZero covers a two-reader set
// where neither reads slot 0.
func TestResolveBindingName_IndexedPairWithoutZero(t *testing.T) {
	confirmed := &jsast.VariableDeclarator{
		ID:   ident("countState"),
		Init: hookCall(ident("useState")),
	}
	pool := []*jsast.VariableDeclarator{
		indexRead("countState", 1, "setCount"),
		indexRead("countState", 2, "other"),
	}

	_, err := ResolveBindingName(confirmed, pool, false)
	assert.Error(t, err, "two readers with no [0] access is ambiguous")
}

// TestResolveBindingName_AmbiguousAliasFallsBack covers three readers of
// the same alias: the alias identifier itself is the answer.
func TestResolveBindingName_AmbiguousAliasFallsBack(t *testing.T) {
	confirmed := &jsast.VariableDeclarator{
		ID:   ident("countState"),
		Init: hookCall(member(ident("React"), ident("useState"), false)),
	}
	pool := []*jsast.VariableDeclarator{
		indexRead("countState", 0, "count"),
		indexRead("countState", 1, "setCount"),
		{ID: arrayPattern("anotherCount", "setAnotherCount"), Init: ident("countState")},
	}

	name, err := ResolveBindingName(confirmed, pool, false)
	require.NoError(t, err)
	assert.Equal(t, "countState", name)
}

// TestResolveBindingName_NoReaders covers an alias nobody reads.
func TestResolveBindingName_NoReaders(t *testing.T) {
	confirmed := &jsast.VariableDeclarator{
		ID:   ident("countState"),
		Init: hookCall(ident("useState")),
	}

	name, err := ResolveBindingName(confirmed, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "countState", name)
}

// TestResolveBindingName_CustomHookDestructured covers
// const [customFlag, customRef] = useCustomHook(): no single readable name.
func TestResolveBindingName_CustomHookDestructured(t *testing.T) {
	confirmed := &jsast.VariableDeclarator{
		ID:   arrayPattern("customFlag", "customRef"),
		Init: hookCall(ident("useCustomHook")),
	}

	name, err := ResolveBindingName(confirmed, nil, true)
	require.NoError(t, err)
	assert.Empty(t, name, "destructured custom hooks have no unambiguous name")
}

// TestResolveBindingName_CustomHookIdentifier covers
// const data = useCustomHook().
func TestResolveBindingName_CustomHookIdentifier(t *testing.T) {
	confirmed := &jsast.VariableDeclarator{
		ID:   ident("data"),
		Init: hookCall(ident("useCustomHook")),
	}

	name, err := ResolveBindingName(confirmed, nil, true)
	require.NoError(t, err)
	assert.Equal(t, "data", name)
}

// TestResolveBindingName_UnsupportedTarget covers object-pattern bindings.
func TestResolveBindingName_UnsupportedTarget(t *testing.T) {
	confirmed := &jsast.VariableDeclarator{
		ID:   nil, // object patterns and friends do not materialize
		Init: hookCall(ident("useState")),
	}

	_, err := ResolveBindingName(confirmed, nil, false)
	assert.Error(t, err)
}

// TestResolveBindingName_ReaderPoolOrdering ensures the associated set
// keeps source order so the [0] filter sees the right pair.
func TestResolveBindingName_ReaderPoolOrdering(t *testing.T) {
	confirmed := &jsast.VariableDeclarator{
		ID:   ident("state"),
		Init: hookCall(ident("useReducer")),
	}
	unrelated := indexRead("otherState", 0, "other")
	pool := []*jsast.VariableDeclarator{
		unrelated,
		indexRead("state", 1, "dispatch"),
		indexRead("state", 0, "todos"),
	}

	name, err := ResolveBindingName(confirmed, pool, false)
	require.NoError(t, err)
	assert.Equal(t, "todos", name, "only readers of the alias participate")
}

package resolver

import "github.com/standardbeagle/hooklens/internal/types"

// Merge folds resolved variable names from src into dst at parallel
// positions. Only VariableName is written; ids, order, and every other
// field stay untouched. Sub-hooks are merged only when both sides agree
// on their count, so structurally diverged subtrees are left alone.
func Merge(dst, src []*types.HookNode) {
	limit := len(dst)
	if len(src) < limit {
		limit = len(src)
	}
	for i := 0; i < limit; i++ {
		mergeNode(dst[i], src[i])
	}
}

func mergeNode(dst, src *types.HookNode) {
	if dst == nil || src == nil {
		return
	}
	if !idsMatch(dst.ID, src.ID) {
		return
	}
	if src.VariableName != nil {
		name := *src.VariableName
		dst.VariableName = &name
	}
	if len(dst.SubHooks) == len(src.SubHooks) {
		for i := range dst.SubHooks {
			mergeNode(dst.SubHooks[i], src.SubHooks[i])
		}
	}
}

func idsMatch(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

package types

import "encoding/json"

// Primitive hook categories reported by the runtime. Custom hooks carry
// their own name and a nil ID instead.
const (
	HookNameState            = "State"
	HookNameReducer          = "Reducer"
	HookNameEffect           = "Effect"
	HookNameLayoutEffect     = "LayoutEffect"
	HookNameImperativeHandle = "ImperativeHandle"
	HookNameDebugValue       = "DebugValue"
	HookNameRef              = "Ref"
)

// HookSource is the position the runtime recorded for a hook call. The
// file is the bundled script URL; line and column address the minified
// text. Any field may be absent.
type HookSource struct {
	FileName     *string `json:"fileName"`
	LineNumber   *int    `json:"lineNumber"`
	ColumnNumber *int    `json:"columnNumber"`
	FunctionName *string `json:"functionName"`
}

// HookNode is one observed hook invocation. A nil ID marks a custom
// hook. VariableName is nil until the resolver derives a readable
// binding name; it is never the empty string.
type HookNode struct {
	ID           *int            `json:"id"`
	Name         string          `json:"name"`
	Value        json.RawMessage `json:"value,omitempty"`
	SubHooks     []*HookNode     `json:"subHooks"`
	Source       *HookSource     `json:"hookSource,omitempty"`
	VariableName *string         `json:"hookVariableName,omitempty"`
}

// FetchedFile pairs a URL with the body retrieved from it.
type FetchedFile struct {
	URL  string
	Body string
}

// IsCustom reports whether the node records a custom hook.
func (h *HookNode) IsCustom() bool {
	return h.ID == nil
}

// FileName returns the bundled script URL for the hook, or "" when the
// runtime recorded none.
func (h *HookNode) FileName() string {
	if h.Source == nil || h.Source.FileName == nil {
		return ""
	}
	return *h.Source.FileName
}

// Clone deep-copies the node and its sub-hooks. Value is shared; it is
// opaque to the resolver and never written.
func (h *HookNode) Clone() *HookNode {
	if h == nil {
		return nil
	}
	out := &HookNode{Name: h.Name, Value: h.Value}
	if h.ID != nil {
		id := *h.ID
		out.ID = &id
	}
	if h.Source != nil {
		out.Source = &HookSource{
			FileName:     cloneString(h.Source.FileName),
			LineNumber:   cloneInt(h.Source.LineNumber),
			ColumnNumber: cloneInt(h.Source.ColumnNumber),
			FunctionName: cloneString(h.Source.FunctionName),
		}
	}
	if h.VariableName != nil {
		name := *h.VariableName
		out.VariableName = &name
	}
	if h.SubHooks != nil {
		out.SubHooks = make([]*HookNode, len(h.SubHooks))
		for i, sub := range h.SubHooks {
			out.SubHooks[i] = sub.Clone()
		}
	}
	return out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CloneTree deep-copies a forest of hook nodes.
func CloneTree(roots []*HookNode) []*HookNode {
	if roots == nil {
		return nil
	}
	out := make([]*HookNode, len(roots))
	for i, root := range roots {
		out[i] = root.Clone()
	}
	return out
}

// SetVariableName records a resolved binding name. Empty strings are
// normalized to "unresolved" so callers never observe "" as a result.
func (h *HookNode) SetVariableName(name string) {
	if name == "" {
		h.VariableName = nil
		return
	}
	h.VariableName = &name
}

// IsStateOrReducer reports whether a primitive hook name follows the
// state/reducer naming rule (the bare identifier binds the pair).
func IsStateOrReducer(name string) bool {
	return name == HookNameState || name == HookNameReducer
}

// IsNonDeclarative reports whether a primitive hook never produces a
// binding worth naming.
func IsNonDeclarative(name string) bool {
	switch name {
	case HookNameEffect, HookNameLayoutEffect, HookNameImperativeHandle, HookNameDebugValue:
		return true
	}
	return false
}

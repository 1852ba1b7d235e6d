package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/hooklens/internal/config"
	"github.com/standardbeagle/hooklens/internal/resolver"
	"github.com/standardbeagle/hooklens/internal/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	r, err := resolver.New(config.Default(), nil)
	require.NoError(t, err)
	return NewServer(r)
}

func callResolve(t *testing.T, s *Server, params ResolveParams) *mcp.CallToolResult {
	t.Helper()
	paramsBytes, err := json.Marshal(params)
	require.NoError(t, err)

	result, err := s.handleResolveHookNames(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Arguments: paramsBytes,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

// TestHandleResolveHookNames_EmptyLog tests the trivial round trip.
func TestHandleResolveHookNames_EmptyLog(t *testing.T) {
	result := callResolve(t, newTestServer(t), ResolveParams{HookLog: "[]"})

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "[]", text.Text)
}

// TestHandleResolveHookNames_PassthroughWithoutSources tests hooks that
// cannot be resolved coming back structurally intact.
func TestHandleResolveHookNames_PassthroughWithoutSources(t *testing.T) {
	id := 0
	log := []*types.HookNode{{ID: &id, Name: "State", Source: &types.HookSource{}}}
	logBytes, err := json.Marshal(log)
	require.NoError(t, err)

	result := callResolve(t, newTestServer(t), ResolveParams{HookLog: string(logBytes)})

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var roundTripped []*types.HookNode
	require.NoError(t, json.Unmarshal([]byte(text.Text), &roundTripped))
	require.Len(t, roundTripped, 1)
	assert.Equal(t, "State", roundTripped[0].Name)
	assert.Nil(t, roundTripped[0].VariableName)
}

// TestHandleResolveHookNames_InvalidArguments tests parameter errors.
func TestHandleResolveHookNames_InvalidArguments(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleResolveHookNames(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Arguments: []byte(`{"hook_log": 42}`),
		},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

// TestHandleResolveHookNames_InvalidHookLog tests malformed tree JSON.
func TestHandleResolveHookNames_InvalidHookLog(t *testing.T) {
	result := callResolve(t, newTestServer(t), ResolveParams{HookLog: "{not json"})
	assert.True(t, result.IsError)
}

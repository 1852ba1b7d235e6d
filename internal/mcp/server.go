// Package mcp exposes the hook-name resolver as an MCP tool over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/hooklens/internal/debug"
	"github.com/standardbeagle/hooklens/internal/resolver"
	"github.com/standardbeagle/hooklens/internal/types"
	"github.com/standardbeagle/hooklens/internal/version"
)

// DefaultResolveTimeout bounds a single tool invocation.
const DefaultResolveTimeout = 60 * time.Second

// Server hosts the resolve_hook_names tool.
type Server struct {
	server   *mcp.Server
	resolver *resolver.Resolver
	timeout  time.Duration
}

// NewServer wraps a resolver in an MCP stdio server.
func NewServer(r *resolver.Resolver) *Server {
	s := &Server{
		resolver: r,
		timeout:  DefaultResolveTimeout,
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "hooklens-mcp-server",
		Version: version.Version,
	}, nil)
	s.server = server
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "resolve_hook_names",
		Description: "Resolve readable variable names for a React hook observation tree using the bundles' source maps. Takes the hook log JSON as reported by the runtime and returns the same tree with hookVariableName filled in where resolvable.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"hook_log": {
					Type:        "string",
					Description: "Hook observation tree as a JSON array (the devtools hook log)",
				},
				"timeout_ms": {
					Type:        "integer",
					Description: "Optional per-call timeout in milliseconds",
				},
			},
			Required: []string{"hook_log"},
		},
	}, s.handleResolveHookNames)
}

// ResolveParams are the resolve_hook_names arguments.
type ResolveParams struct {
	HookLog   string `json:"hook_log"`
	TimeoutMs int    `json:"timeout_ms"`
}

func (s *Server) handleResolveHookNames(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Manual deserialization to avoid "unknown field" errors
	var params ResolveParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse(fmt.Errorf("invalid parameters: %w", err))
	}

	var roots []*types.HookNode
	if err := json.Unmarshal([]byte(params.HookLog), &roots); err != nil {
		return createErrorResponse(fmt.Errorf("invalid hook_log: %w", err))
	}

	timeout := s.timeout
	if params.TimeoutMs > 0 {
		timeout = time.Duration(params.TimeoutMs) * time.Millisecond
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	enriched, err := s.resolver.Resolve(callCtx, roots)
	if err != nil {
		// Best-effort contract: hand back the unenriched tree rather
		// than failing the tool call.
		debug.Logf("hooklens: resolve failed: %v", err)
		enriched = roots
	}
	return createJSONResponse(enriched)
}

// Run serves the tool over stdio until the context ends.
func (s *Server) Run(ctx context.Context) error {
	debug.SetMCPMode(true)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

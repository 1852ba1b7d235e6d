package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// Load reads configuration from a .hooklens.kdl file, falling back to
// defaults when path is empty or the file does not exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ".hooklens.kdl"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Simple KDL parser for hooklens configuration
func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "fetch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "timeout_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Fetch.TimeoutMs = v
					}
				case "max_body_bytes":
					if v, ok := firstIntArg(cn); ok {
						cfg.Fetch.MaxBodyBytes = int64(v)
					}
				case "max_concurrent":
					if v, ok := firstIntArg(cn); ok {
						cfg.Fetch.MaxConcurrent = v
					}
				case "user_agent":
					if s, ok := firstStringArg(cn); ok {
						cfg.Fetch.UserAgent = s
					}
				}
			}
		case "resolve":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_translated_line":
					if v, ok := firstIntArg(cn); ok {
						cfg.Resolve.MaxTranslatedLine = v
					}
				}
			}
		case "allow":
			cfg.Allow = append(cfg.Allow, collectStringArgs(n)...)
		case "deny":
			cfg.Deny = append(cfg.Deny, collectStringArgs(n)...)
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

// collectStringArgs gathers string arguments from the node itself and
// from single-argument children, so both inline and block forms work:
//
//	allow "https://**" "http://localhost:*/**"
//	allow { pattern "https://**" }
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	for _, cn := range n.Children {
		for _, a := range cn.Arguments {
			if s, ok := a.Value.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

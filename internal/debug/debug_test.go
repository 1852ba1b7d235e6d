package debug

import (
	"bytes"
	"strings"
	"testing"
)

// TestLogf_SilentByDefault tests that release builds write nothing.
func TestLogf_SilentByDefault(t *testing.T) {
	if EnableDebug == "true" {
		t.Skip("debug build")
	}
	SetOutput(nil)
	Logf("should go nowhere %d", 1)
}

// TestLogf_ExplicitWriter tests that an installed writer always
// receives output.
func TestLogf_ExplicitWriter(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Logf("fetch %s failed", "https://example.com/a.js")
	if !strings.Contains(buf.String(), "https://example.com/a.js") {
		t.Errorf("expected diagnostic line, got %q", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("diagnostic lines end with a newline")
	}
}

// TestEnabled_MCPModeSuppresses tests stdio-transport suppression.
func TestEnabled_MCPModeSuppresses(t *testing.T) {
	t.Setenv("HOOKLENS_DEBUG", "true")
	if !Enabled() {
		t.Fatal("env flag should enable diagnostics")
	}

	SetMCPMode(true)
	defer SetMCPMode(false)
	if Enabled() {
		t.Error("MCP mode must suppress diagnostics")
	}
}

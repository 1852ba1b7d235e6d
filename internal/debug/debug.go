package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Build flag for diagnostic output - can be overridden at build time
// go build -ldflags "-X github.com/standardbeagle/hooklens/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// MCPMode tracks if we're running over a stdio transport (set by the MCP
// server's Run). Diagnostic output must never reach stdout in that mode.
var MCPMode = false

var (
	debugMutex  sync.Mutex
	debugOutput io.Writer
)

// SetMCPMode turns off the default stderr diagnostics; a writer installed
// with SetOutput still receives output.
func SetMCPMode(enabled bool) {
	MCPMode = enabled
}

// SetOutput sets a custom writer for diagnostic output.
// Pass nil to remove it; output then goes to stderr only when Enabled().
func SetOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	debugOutput = w
}

// Enabled returns true if diagnostics are on and we're not on a stdio
// transport.
func Enabled() bool {
	if MCPMode {
		return false
	}
	if EnableDebug == "true" {
		return true
	}
	return os.Getenv("HOOKLENS_DEBUG") == "true"
}

// Logf writes a diagnostic line. Release builds are silent unless a
// writer was installed explicitly or HOOKLENS_DEBUG=true is set.
func Logf(format string, args ...interface{}) {
	debugMutex.Lock()
	w := debugOutput
	debugMutex.Unlock()

	if w == nil {
		if !Enabled() {
			return
		}
		w = os.Stderr
	}
	fmt.Fprintf(w, format+"\n", args...)
}

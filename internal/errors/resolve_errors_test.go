package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

// TestResolveError_Format tests message shapes with and without a URL.
func TestResolveError_Format(t *testing.T) {
	base := fmt.Errorf("boom")
	err := NewResolveError(ErrorKindParse, "parse", base)
	if got := err.Error(); got != "parse parse failed: boom" {
		t.Errorf("unexpected message %q", got)
	}

	err = err.WithURL("webpack:///src/App.js")
	if got := err.Error(); got != "parse parse failed for webpack:///src/App.js: boom" {
		t.Errorf("unexpected message %q", got)
	}
}

// TestResolveError_Unwrap tests errors.Is through the chain.
func TestResolveError_Unwrap(t *testing.T) {
	base := stderrors.New("underneath")
	err := NewResolveError(ErrorKindTranslate, "translate", base)
	if !stderrors.Is(err, base) {
		t.Error("Unwrap must expose the underlying error")
	}
}

// TestResolveError_Recoverable tests the default and override.
func TestResolveError_Recoverable(t *testing.T) {
	err := NewResolveError(ErrorKindFetch, "fetch", nil)
	if !err.IsRecoverable() {
		t.Error("pipeline errors default to recoverable")
	}
	if err.WithRecoverable(false).IsRecoverable() {
		t.Error("WithRecoverable(false) must stick")
	}
}

// TestFetchError_Format tests status and transport shapes.
func TestFetchError_Format(t *testing.T) {
	withStatus := NewFetchError("https://example.com/a.js", 404, nil)
	if got := withStatus.Error(); got != "fetch https://example.com/a.js: unexpected status 404" {
		t.Errorf("unexpected message %q", got)
	}

	transport := NewFetchError("https://example.com/a.js", 0, fmt.Errorf("refused"))
	if got := transport.Error(); got != "fetch https://example.com/a.js: refused" {
		t.Errorf("unexpected message %q", got)
	}
}

// TestKindOf tests kind extraction.
func TestKindOf(t *testing.T) {
	if KindOf(NewResolveError(ErrorKindMapDecode, "x", nil)) != ErrorKindMapDecode {
		t.Error("expected map_decode")
	}
	if KindOf(NewFetchError("u", 500, nil)) != ErrorKindFetch {
		t.Error("expected fetch")
	}
	if KindOf(fmt.Errorf("plain")) != ErrorKindInternal {
		t.Error("expected internal for foreign errors")
	}
}

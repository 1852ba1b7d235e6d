package errors

import (
	"fmt"
	"time"
)

// Error kinds for the hook-name resolution pipeline. Every kind scopes
// to a single file or a single hook; none aborts the pipeline.
type ErrorKind string

const (
	// File-scoped errors: all hooks from the file pass through unnamed
	ErrorKindFetch              ErrorKind = "fetch"
	ErrorKindNoSourceMap        ErrorKind = "no_source_map"
	ErrorKindAmbiguousSourceMap ErrorKind = "ambiguous_source_map"
	ErrorKindMapDecode          ErrorKind = "map_decode"
	ErrorKindParse              ErrorKind = "parse"

	// Hook-scoped errors: only the affected hook stays unnamed
	ErrorKindTranslate        ErrorKind = "translate"
	ErrorKindNoDeclaration    ErrorKind = "no_declaration"
	ErrorKindAmbiguousBinding ErrorKind = "ambiguous_binding"
	ErrorKindUnknownBinding   ErrorKind = "unknown_binding"

	ErrorKindInternal ErrorKind = "internal"
)

// ResolveError carries the failure context for one pipeline step.
type ResolveError struct {
	Kind        ErrorKind
	URL         string
	Operation   string
	Underlying  error
	Timestamp   time.Time
	Recoverable bool
}

// NewResolveError creates an error for the named operation.
func NewResolveError(kind ErrorKind, op string, err error) *ResolveError {
	return &ResolveError{
		Kind:        kind,
		Operation:   op,
		Underlying:  err,
		Timestamp:   time.Now(),
		Recoverable: true,
	}
}

// WithURL attaches the bundle, map, or source URL the step was handling.
func (e *ResolveError) WithURL(url string) *ResolveError {
	e.URL = url
	return e
}

// WithRecoverable marks whether the pipeline can continue past the error.
func (e *ResolveError) WithRecoverable(recoverable bool) *ResolveError {
	e.Recoverable = recoverable
	return e
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s %s failed for %s: %v", e.Kind, e.Operation, e.URL, e.Underlying)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Kind, e.Operation, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ResolveError) Unwrap() error {
	return e.Underlying
}

// IsRecoverable reports whether the pipeline continues past the error.
func (e *ResolveError) IsRecoverable() bool {
	return e.Recoverable
}

// FetchError records a failed HTTP retrieval.
type FetchError struct {
	URL        string
	StatusCode int
	Underlying error
}

// NewFetchError creates an error for a failed fetch. StatusCode is zero
// for transport-level failures.
func NewFetchError(url string, status int, err error) *FetchError {
	return &FetchError{URL: url, StatusCode: status, Underlying: err}
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Underlying)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Underlying
}

// KindOf extracts the pipeline error kind, or ErrorKindInternal when the
// error did not originate from a pipeline step.
func KindOf(err error) ErrorKind {
	if re, ok := err.(*ResolveError); ok {
		return re.Kind
	}
	if _, ok := err.(*FetchError); ok {
		return ErrorKindFetch
	}
	return ErrorKindInternal
}

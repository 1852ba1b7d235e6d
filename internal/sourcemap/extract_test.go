package sourcemap

import (
	"errors"
	"testing"

	hlerrors "github.com/standardbeagle/hooklens/internal/errors"
)

const bundleURL = "https://example.com/static/js/main.js"

// TestExtractMappingURL_Relative tests resolution against the bundle directory.
func TestExtractMappingURL_Relative(t *testing.T) {
	body := "console.log(1);\n//# sourceMappingURL=main.js.map"
	got, err := ExtractMappingURL(bundleURL, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://example.com/static/js/main.js.map"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestExtractMappingURL_Absolute tests absolute tokens passing through.
func TestExtractMappingURL_Absolute(t *testing.T) {
	body := "x;\n//# sourceMappingURL=https://cdn.example.com/maps/main.js.map"
	got, err := ExtractMappingURL(bundleURL, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://cdn.example.com/maps/main.js.map" {
		t.Errorf("unexpected URL %q", got)
	}
}

// TestExtractMappingURL_LegacyAtForm tests the //@ spelling.
func TestExtractMappingURL_LegacyAtForm(t *testing.T) {
	body := "x;\n//@ sourceMappingURL=main.js.map"
	if _, err := ExtractMappingURL(bundleURL, body); err != nil {
		t.Fatalf("legacy //@ form should extract, got %v", err)
	}
}

// TestExtractMappingURL_NoSpace tests the comment without a space after the marker.
func TestExtractMappingURL_NoSpace(t *testing.T) {
	body := "x;\n//#sourceMappingURL=main.js.map"
	if _, err := ExtractMappingURL(bundleURL, body); err != nil {
		t.Fatalf("space after marker is optional, got %v", err)
	}
}

// TestExtractMappingURL_ZeroMatches tests that missing comments fail cleanly.
func TestExtractMappingURL_ZeroMatches(t *testing.T) {
	_, err := ExtractMappingURL(bundleURL, "console.log(1);")
	if err == nil {
		t.Fatal("expected error")
	}
	if hlerrors.KindOf(err) != hlerrors.ErrorKindNoSourceMap {
		t.Errorf("expected no_source_map kind, got %v", hlerrors.KindOf(err))
	}
}

// TestExtractMappingURL_MultipleMatches tests the ambiguity rule.
func TestExtractMappingURL_MultipleMatches(t *testing.T) {
	body := "//# sourceMappingURL=a.js.map\n//# sourceMappingURL=b.js.map"
	_, err := ExtractMappingURL(bundleURL, body)
	if err == nil {
		t.Fatal("expected error")
	}
	if hlerrors.KindOf(err) != hlerrors.ErrorKindAmbiguousSourceMap {
		t.Errorf("expected ambiguous_source_map kind, got %v", hlerrors.KindOf(err))
	}
}

// TestExtractMappingURL_MidLineCommentIgnored tests the end-of-line anchor.
func TestExtractMappingURL_MidLineCommentIgnored(t *testing.T) {
	body := "//# sourceMappingURL=a.js.map trailing junk\n"
	if _, err := ExtractMappingURL(bundleURL, body); err == nil {
		t.Fatal("comment not anchored at line end must not match")
	}
}

// TestExtractMappingURL_RelativeAgainstPathlessBase tests the absolute-result requirement.
func TestExtractMappingURL_RelativeAgainstPathlessBase(t *testing.T) {
	body := "//# sourceMappingURL=main.js.map"
	_, err := ExtractMappingURL("not-a-url", body)
	if err == nil {
		t.Fatal("expected failure when the resolved URL is not absolute")
	}
	var re *hlerrors.ResolveError
	if !errors.As(err, &re) {
		t.Fatalf("expected ResolveError, got %T", err)
	}
}

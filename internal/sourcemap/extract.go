// Package sourcemap locates a bundle's companion source map and
// translates bundled positions back to original sources.
package sourcemap

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/standardbeagle/hooklens/internal/errors"
)

// Trailing magic comment: //# sourceMappingURL=<token> (or the legacy
// //@ form), token free of whitespace and quotes, anchored to line end.
var mappingURLPattern = regexp.MustCompile(`(?m)//[#@] ?sourceMappingURL=([^\s'"]+)$`)

// ExtractMappingURL scans a bundle body for the sourceMappingURL comment
// and resolves the token against the bundle URL's directory. Zero
// matches means the bundle ships no map; more than one is ambiguous.
// Both fail the extraction, scoped to this bundle.
func ExtractMappingURL(bundleURL, body string) (string, error) {
	matches := mappingURLPattern.FindAllStringSubmatch(body, -1)
	switch {
	case len(matches) == 0:
		return "", errors.NewResolveError(errors.ErrorKindNoSourceMap, "extract",
			fmt.Errorf("no sourceMappingURL comment")).WithURL(bundleURL)
	case len(matches) > 1:
		return "", errors.NewResolveError(errors.ErrorKindAmbiguousSourceMap, "extract",
			fmt.Errorf("%d sourceMappingURL comments", len(matches))).WithURL(bundleURL)
	}

	token := matches[0][1]
	ref, err := url.Parse(token)
	if err != nil {
		return "", errors.NewResolveError(errors.ErrorKindMapDecode, "extract", err).WithURL(bundleURL)
	}

	base, err := url.Parse(bundleURL)
	if err != nil {
		return "", errors.NewResolveError(errors.ErrorKindMapDecode, "extract", err).WithURL(bundleURL)
	}

	resolved := base.ResolveReference(ref)
	if !resolved.IsAbs() {
		return "", errors.NewResolveError(errors.ErrorKindMapDecode, "extract",
			fmt.Errorf("resolved sourceMappingURL %q is not absolute", resolved)).WithURL(bundleURL)
	}
	return resolved.String(), nil
}

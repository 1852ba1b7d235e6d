package sourcemap

import (
	"fmt"

	sourcemap "github.com/go-sourcemap/sourcemap"

	"github.com/standardbeagle/hooklens/internal/errors"
)

// DefaultMaxTranslatedLine bounds the original line a translation may
// land on. Files beyond this are treated as too large to parse without
// stalling the caller.
const DefaultMaxTranslatedLine = 100_000

// Position is a translated original-source position together with the
// original file content embedded in the map.
type Position struct {
	Source  string
	Line    int
	Content string
}

// Translator wraps a parsed source-map consumer for one map document.
type Translator struct {
	consumer *sourcemap.Consumer
	mapURL   string
	maxLine  int
}

// NewTranslator parses a source-map payload. Decode failures scope to
// the map's bundle.
func NewTranslator(mapURL string, payload []byte) (*Translator, error) {
	consumer, err := sourcemap.Parse(mapURL, payload)
	if err != nil {
		return nil, errors.NewResolveError(errors.ErrorKindMapDecode, "parse map", err).WithURL(mapURL)
	}
	return &Translator{consumer: consumer, mapURL: mapURL, maxLine: DefaultMaxTranslatedLine}, nil
}

// SetMaxTranslatedLine overrides the translation safety bound.
func (t *Translator) SetMaxTranslatedLine(max int) {
	if max > 0 {
		t.maxLine = max
	}
}

// Translate maps a bundled (line, column) to the original source. Both
// coordinates are 1-based as reported by the runtime. Fails when the
// position has no mapping, the translated line exceeds the safety
// bound, or the map embeds no content for the source.
func (t *Translator) Translate(line, column int) (*Position, error) {
	source, _, origLine, _, ok := t.consumer.Source(line, column)
	if !ok || source == "" {
		return nil, errors.NewResolveError(errors.ErrorKindTranslate, "translate",
			fmt.Errorf("no mapping at %d:%d", line, column)).WithURL(t.mapURL)
	}
	if origLine > t.maxLine {
		return nil, errors.NewResolveError(errors.ErrorKindTranslate, "translate",
			fmt.Errorf("original line %d exceeds bound %d", origLine, t.maxLine)).WithURL(source)
	}
	content := t.consumer.SourceContent(source)
	if content == "" {
		return nil, errors.NewResolveError(errors.ErrorKindTranslate, "translate",
			fmt.Errorf("map embeds no content for %s", source)).WithURL(source)
	}
	return &Position{Source: source, Line: origLine, Content: content}, nil
}

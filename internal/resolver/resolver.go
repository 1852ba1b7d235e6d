// Package resolver drives the hook-name resolution pipeline: fetch
// bundles, locate source maps, translate positions, and derive readable
// binding names for each observed hook.
package resolver

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/hooklens/internal/config"
	"github.com/standardbeagle/hooklens/internal/debug"
	"github.com/standardbeagle/hooklens/internal/fetch"
	"github.com/standardbeagle/hooklens/internal/hooks"
	"github.com/standardbeagle/hooklens/internal/jsast"
	"github.com/standardbeagle/hooklens/internal/sourcemap"
	"github.com/standardbeagle/hooklens/internal/types"
)

// Resolver enriches hook trees with original-source variable names. Safe
// to reuse across calls; each call owns its caches. The underlying
// grammar set is not concurrency-safe, so calls are serialized.
type Resolver struct {
	cfg    *config.Config
	client fetch.Client
	parser *jsast.Parser

	mu sync.Mutex

	// Test instrumentation: observe parse and collect cache misses.
	onParse   func(source string)
	onCollect func(source string)
}

// New creates a Resolver. A nil client gets a default HTTP fetcher
// derived from the config.
func New(cfg *config.Config, client fetch.Client) (*Resolver, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		client = fetch.New(fetch.Options{
			Timeout:      time.Duration(cfg.Fetch.TimeoutMs) * time.Millisecond,
			MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
			UserAgent:    cfg.Fetch.UserAgent,
		})
	}
	parser, err := jsast.NewParser()
	if err != nil {
		return nil, err
	}
	return &Resolver{cfg: cfg, client: client, parser: parser}, nil
}

// SetObservers installs cache-miss callbacks for tests.
func (r *Resolver) SetObservers(onParse, onCollect func(source string)) {
	r.onParse = onParse
	r.onCollect = onCollect
}

// Resolve returns a new tree in which every resolvable hook carries its
// readable variable name. The input is never mutated. The feature is
// best-effort cosmetic: on cancellation or catastrophic failure the
// input tree comes back unchanged.
func (r *Resolver) Resolve(ctx context.Context, roots []*types.HookNode) ([]*types.HookNode, error) {
	if len(roots) == 0 {
		return []*types.HookNode{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	working := types.CloneTree(roots)
	sess := newSession(r)

	bundleURLs := collectBundleURLs(working, r.cfg)
	if len(bundleURLs) == 0 {
		return working, nil
	}

	bundles := r.fetchAll(ctx, bundleURLs)
	if ctx.Err() != nil {
		return roots, ctx.Err()
	}

	// Pair each bundle with its map URL; extraction failures drop only
	// the affected bundle.
	mapToBundle := make(map[string]string)
	var mapURLs []string
	for _, bundleURL := range bundleURLs {
		bundle, ok := bundles[bundleURL]
		if !ok {
			continue
		}
		mapURL, err := sourcemap.ExtractMappingURL(bundleURL, bundle.Body)
		if err != nil {
			debug.Logf("hooklens: %v", err)
			continue
		}
		if _, dup := mapToBundle[mapURL]; !dup {
			mapURLs = append(mapURLs, mapURL)
		}
		mapToBundle[mapURL] = bundleURL
	}

	maps := r.fetchAll(ctx, mapURLs)
	if ctx.Err() != nil {
		return roots, ctx.Err()
	}

	// Process map groups in deterministic order; each group's consumer
	// is dropped once its hooks are done.
	sort.Strings(mapURLs)
	for _, mapURL := range mapURLs {
		payload, ok := maps[mapURL]
		if !ok {
			continue
		}
		translator, err := sourcemap.NewTranslator(mapURL, []byte(payload.Body))
		if err != nil {
			debug.Logf("hooklens: %v", err)
			continue
		}
		translator.SetMaxTranslatedLine(r.cfg.Resolve.MaxTranslatedLine)
		r.resolveGroup(sess, translator, mapToBundle[mapURL], working)
	}

	if ctx.Err() != nil {
		return roots, ctx.Err()
	}

	// Fold names into a fresh copy of the caller's tree so the result
	// preserves the input's structure exactly.
	enriched := types.CloneTree(roots)
	Merge(enriched, working)
	return enriched, nil
}

// collectBundleURLs walks the tree and returns the unique set of bundle
// URLs hooks were observed in, filtered by the Allow/Deny globs. Hooks
// without a file name are silently skipped.
func collectBundleURLs(roots []*types.HookNode, cfg *config.Config) []string {
	seen := make(map[string]bool)
	var urls []string
	var walk func(nodes []*types.HookNode)
	walk = func(nodes []*types.HookNode) {
		for _, node := range nodes {
			if node == nil {
				continue
			}
			if fileName := node.FileName(); fileName != "" && !seen[fileName] {
				seen[fileName] = true
				if cfg.AllowsURL(fileName) {
					urls = append(urls, fileName)
				} else {
					debug.Logf("hooklens: bundle %s excluded by URL patterns", fileName)
				}
			}
			walk(node.SubHooks)
		}
	}
	walk(roots)
	sort.Strings(urls)
	return urls
}

// fetchAll retrieves the given URLs with bounded concurrency. Failures
// are logged and leave the URL absent from the result; they never abort
// the pipeline.
func (r *Resolver) fetchAll(ctx context.Context, urls []string) map[string]*types.FetchedFile {
	results := make(map[string]*types.FetchedFile, len(urls))
	if len(urls) == 0 {
		return results
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.cfg.Fetch.MaxConcurrent)
	for _, url := range urls {
		url := url
		group.Go(func() error {
			file, err := r.client.Fetch(groupCtx, url)
			if err != nil {
				debug.Logf("hooklens: %v", err)
				return nil
			}
			mu.Lock()
			results[url] = file
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()
	return results
}

// resolveGroup names every hook observed in one bundle, walking the
// whole tree so primitives nested under custom hooks are reached even
// when the custom hook itself stays unnamed.
func (r *Resolver) resolveGroup(s *session, translator *sourcemap.Translator, bundleURL string, roots []*types.HookNode) {
	var walk func(nodes []*types.HookNode)
	walk = func(nodes []*types.HookNode) {
		for _, node := range nodes {
			if node == nil {
				continue
			}
			if node.FileName() == bundleURL && !s.visited[node] {
				s.visited[node] = true
				r.resolveHook(s, translator, node)
			}
			walk(node.SubHooks)
		}
	}
	walk(roots)
}

// resolveHook names a single hook. Every failure is scoped to this
// hook: it stays unnamed and the walk continues.
func (r *Resolver) resolveHook(s *session, translator *sourcemap.Translator, hook *types.HookNode) {
	if hook.Source == nil || hook.Source.LineNumber == nil || hook.Source.ColumnNumber == nil {
		return
	}

	pos, err := translator.Translate(*hook.Source.LineNumber, *hook.Source.ColumnNumber)
	if err != nil {
		debug.Logf("hooklens: %v", err)
		return
	}

	prog, err := s.program(pos.Source, pos.Content)
	if err != nil {
		debug.Logf("hooklens: %v", err)
		return
	}
	pool := s.pool(pos.Source, prog)

	confirmed := findConfirmedAt(pool, pos.Line)
	if confirmed == nil {
		// Non-declarative primitives and unassigned calls legitimately
		// have nothing to name; nested hooks are still walked.
		if !hook.IsCustom() && !types.IsNonDeclarative(hook.Name) {
			debug.Logf("hooklens: no hook declaration at %s:%d for %s", pos.Source, pos.Line, hook.Name)
		}
		return
	}
	remaining := s.consume(pos.Source, confirmed)

	name, err := hooks.ResolveBindingName(confirmed, remaining, hook.IsCustom())
	if err != nil {
		debug.Logf("hooklens: %v", err)
		return
	}
	hook.SetVariableName(name)
}

// findConfirmedAt returns the first declarator in the pool sitting on
// the translated line whose initializer is a hook call.
func findConfirmedAt(pool []*jsast.VariableDeclarator, line int) *jsast.VariableDeclarator {
	for _, decl := range pool {
		if decl.Line == line && hooks.IsConfirmedHookDeclaration(decl) {
			return decl
		}
	}
	return nil
}

package resolver

import (
	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/hooklens/internal/hooks"
	"github.com/standardbeagle/hooklens/internal/jsast"
	"github.com/standardbeagle/hooklens/internal/types"
)

// session holds the caches for a single Resolve call. Parsed programs
// and candidate pools are computed at most once per file; identical
// embedded content shares one parse across source paths via a content
// hash. Nothing survives the call.
type session struct {
	resolver *Resolver

	programs  map[string]*jsast.Program
	byContent map[uint64]*jsast.Program

	// pools hold each file's remaining potential declarators; confirmed
	// declarators are consumed as hooks claim them.
	pools map[string][]*jsast.VariableDeclarator

	visited map[*types.HookNode]bool
}

func newSession(r *Resolver) *session {
	return &session{
		resolver:  r,
		programs:  make(map[string]*jsast.Program),
		byContent: make(map[uint64]*jsast.Program),
		pools:     make(map[string][]*jsast.VariableDeclarator),
		visited:   make(map[*types.HookNode]bool),
	}
}

// program returns the parsed form of an original source, parsing at
// most once per path and deduplicating identical content.
func (s *session) program(source, content string) (*jsast.Program, error) {
	if prog, ok := s.programs[source]; ok {
		return prog, nil
	}

	sum := xxhash.Sum64String(content)
	if prog, ok := s.byContent[sum]; ok {
		s.programs[source] = prog
		return prog, nil
	}

	if s.resolver.onParse != nil {
		s.resolver.onParse(source)
	}
	prog, err := s.resolver.parser.Parse(source, content)
	if err != nil {
		return nil, err
	}
	s.programs[source] = prog
	s.byContent[sum] = prog
	return prog, nil
}

// pool returns the file's remaining candidate declarators, collecting
// at most once per path.
func (s *session) pool(source string, prog *jsast.Program) []*jsast.VariableDeclarator {
	if pool, ok := s.pools[source]; ok {
		return pool
	}
	if s.resolver.onCollect != nil {
		s.resolver.onCollect(source)
	}
	pool := hooks.CollectPotentialDeclarations(prog)
	s.pools[source] = pool
	return pool
}

// consume removes a confirmed declarator from the file's pool and
// returns the remainder. Later hooks in the same file never rematch a
// claimed declarator.
func (s *session) consume(source string, decl *jsast.VariableDeclarator) []*jsast.VariableDeclarator {
	pool := s.pools[source]
	remaining := make([]*jsast.VariableDeclarator, 0, len(pool)-1)
	for _, candidate := range pool {
		if candidate != decl {
			remaining = append(remaining, candidate)
		}
	}
	s.pools[source] = remaining
	return remaining
}

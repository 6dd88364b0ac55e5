// Package engine orchestrates a search: it compiles the query into a
// matcher, drives traversal, fans matching out across files, and ranks the
// collected results.
package engine

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/notegrep/internal/config"
	"github.com/standardbeagle/notegrep/internal/debug"
	"github.com/standardbeagle/notegrep/internal/errors"
	"github.com/standardbeagle/notegrep/internal/matcher"
	"github.com/standardbeagle/notegrep/internal/pathfilter"
	"github.com/standardbeagle/notegrep/internal/predicate"
	"github.com/standardbeagle/notegrep/internal/timeparse"
	"github.com/standardbeagle/notegrep/internal/traverse"
	"github.com/standardbeagle/notegrep/internal/types"
	"github.com/standardbeagle/notegrep/pkg/pathutil"
)

// Engine executes search queries against a folder root. An Engine holds no
// per-query state and is safe for concurrent use.
type Engine struct {
	cfg *config.Config
}

// New creates a search engine over the given configuration.
func New(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// unitMatcher is the strategy applied to each unit. All three search types
// reduce to counting: zero means no match.
type unitMatcher interface {
	Count(unit string) int
}

// predicateMatcher adapts a compiled predicate to the counting interface;
// predicates are boolean, so a matching unit always counts as 1. The "now"
// instant is fixed once per search so every unit sees the same reference
// time.
type predicateMatcher struct {
	compiled *predicate.Compiled
	now      time.Time
}

func (p predicateMatcher) Count(unit string) int {
	if p.compiled.Eval(unit, p.now) {
		return 1
	}
	return 0
}

// Search runs one query and returns ranked results. Query-level problems
// (bad type/target/block combination, empty or malformed query text) are
// returned as errors before any file is visited; per-file I/O errors are
// swallowed and the affected file is simply absent from results.
func (e *Engine) Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	um, err := e.buildMatcher(q)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(q.RootPath)
	if err != nil {
		return nil, errors.NewQueryError("rootPath", q.RootPath, "cannot resolve to an absolute path")
	}

	filter := pathfilter.New(append(append([]string{}, e.cfg.Ignore...), q.IgnorePatterns...), e.cfg.Exclude, root)
	tr := traverse.New(filter, e.cfg.Search.MaxFileSize)

	debug.LogSearch("query %q type=%s target=%s block=%s root=%s\n",
		q.QueryText, q.SearchType, q.Target, q.Block, root)

	if q.Target == types.TargetFilenames {
		return e.searchNames(ctx, tr, um, root)
	}
	return e.searchContent(ctx, tr, um, q.Block, root)
}

// validateQuery rejects invalid combinations before traversal begins.
func validateQuery(q types.SearchQuery) error {
	if q.RootPath == "" {
		return errors.NewQueryError("rootPath", "", "must not be empty")
	}

	switch q.SearchType {
	case types.SearchLiteral, types.SearchWildcard, types.SearchAdvanced:
	default:
		return errors.NewQueryError("searchType", string(q.SearchType), "must be literal, wildcard, or advanced")
	}

	switch q.Target {
	case types.TargetContent, types.TargetFilenames:
	default:
		return errors.NewQueryError("target", string(q.Target), "must be content or filenames")
	}

	switch q.Block {
	case types.BlockEntireFile, types.BlockFileLines, "":
	default:
		return errors.NewQueryError("block", string(q.Block), "must be entire-file or file-lines")
	}

	if q.Target == types.TargetFilenames {
		if q.SearchType == types.SearchAdvanced {
			return errors.NewQueryError("searchType", string(q.SearchType), "advanced search is not valid for filename targets")
		}
		if q.Block == types.BlockFileLines {
			return errors.NewQueryError("block", string(q.Block), "file-lines granularity is not valid for filename targets")
		}
	}

	return nil
}

// buildMatcher compiles the query text into the selected strategy. Matcher
// construction errors are query-level by definition.
func (e *Engine) buildMatcher(q types.SearchQuery) (unitMatcher, error) {
	switch q.SearchType {
	case types.SearchLiteral:
		return matcher.NewLiteral(q.QueryText)
	case types.SearchWildcard:
		return matcher.NewWildcard(q.QueryText)
	case types.SearchAdvanced:
		compiled, err := predicate.Compile(q.QueryText)
		if err != nil {
			return nil, err
		}
		return predicateMatcher{compiled: compiled, now: time.Now()}, nil
	}
	return nil, errors.NewQueryError("searchType", string(q.SearchType), "unsupported")
}

// searchNames matches the query against bare entry names: every file and
// directory is one unit. No file content is read, so this path stays
// sequential.
func (e *Engine) searchNames(ctx context.Context, tr *traverse.Traverser, um unitMatcher, root string) ([]types.SearchResult, error) {
	entries, err := tr.AllEntries(ctx, root)
	if err != nil {
		return nil, err
	}

	results := make([]types.SearchResult, 0)
	for _, entry := range entries {
		count := um.Count(entry.Name)
		if count == 0 {
			continue
		}
		results = append(results, types.SearchResult{
			AbsolutePath:   entry.Path,
			RelativePath:   pathutil.ToRelative(entry.Path, root),
			MatchCount:     count,
			FoundTimestamp: timeparse.Extract(entry.Name),
		})
	}

	sortByMatchCount(results)
	return e.capResults(results), nil
}

// searchContent reads each candidate file once and applies the matcher to
// the whole file or per line. Files are processed in parallel; each file's
// matching is a pure function of its content plus the query, so the only
// shared state is the indexed result slice, merged in traversal order after
// the fan-in.
func (e *Engine) searchContent(ctx context.Context, tr *traverse.Traverser, um unitMatcher, block types.Block, root string) ([]types.SearchResult, error) {
	files, err := tr.ContentFiles(ctx, root)
	if err != nil {
		return nil, err
	}

	perFile := make([][]types.SearchResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			// Cancellation is honored between file reads, never mid-file
			if err := gctx.Err(); err != nil {
				return err
			}
			perFile[i] = matchFile(path, um, block)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]types.SearchResult, 0)
	for _, fileResults := range perFile {
		results = append(results, fileResults...)
	}
	for i := range results {
		results[i].RelativePath = pathutil.ToRelative(results[i].AbsolutePath, root)
	}

	// Entire-file results rank by match count; file-lines results keep
	// traversal order, then line order (callers re-sort by date if needed)
	if block != types.BlockFileLines {
		sortByMatchCount(results)
	}
	return e.capResults(results), nil
}

// matchFile produces the results for a single file, or nil when the file
// does not match or cannot be read.
func matchFile(path string, um unitMatcher, block types.Block) []types.SearchResult {
	data, err := os.ReadFile(path)
	if err != nil {
		// Permission denied or race-deleted: excluded from results, the
		// search as a whole still succeeds
		debug.LogSearch("skipping unreadable file %s: %v\n", path, err)
		return nil
	}

	content := string(data)
	hash := xxhash.Sum64(data)

	if block == types.BlockFileLines {
		return matchLines(path, content, hash, um)
	}

	count := um.Count(content)
	if count == 0 {
		return nil
	}
	return []types.SearchResult{{
		AbsolutePath:   path,
		MatchCount:     count,
		FoundTimestamp: timeparse.Extract(content),
		ContentHash:    hash,
	}}
}

// sortByMatchCount orders results by descending match count; the stable sort
// keeps traversal order among ties.
func sortByMatchCount(results []types.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchCount > results[j].MatchCount
	})
}

// capResults truncates to the configured maximum, 0 meaning unlimited.
func (e *Engine) capResults(results []types.SearchResult) []types.SearchResult {
	max := e.cfg.Search.MaxResults
	if max > 0 && len(results) > max {
		return results[:max]
	}
	return results
}

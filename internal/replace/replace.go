// Package replace implements batch literal search-and-replace over a note
// folder. It shares traversal and filtering with the search engine but
// matches case-SENSITIVELY: replacing "Cat" must leave "cat" alone, unlike
// search which folds case.
package replace

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/notegrep/internal/config"
	"github.com/standardbeagle/notegrep/internal/debug"
	"github.com/standardbeagle/notegrep/internal/errors"
	"github.com/standardbeagle/notegrep/internal/pathfilter"
	"github.com/standardbeagle/notegrep/internal/traverse"
	"github.com/standardbeagle/notegrep/internal/types"
	"github.com/standardbeagle/notegrep/pkg/pathutil"
)

// Engine performs replace batches. Writes are serialized per file by
// construction (one goroutine owns one file); distinct files proceed
// concurrently, and one file's failure never aborts the batch.
type Engine struct {
	cfg *config.Config
}

// New creates a replace engine over the given configuration.
func New(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// ReplaceAll replaces every case-sensitive occurrence of searchText with
// replaceText in all .md/.txt files under root, writing modified files back
// in place. One ReplaceResult is returned per file with matches (success)
// or per file that failed to read or write; files with zero matches are
// omitted, matching search behavior.
func (e *Engine) ReplaceAll(ctx context.Context, root, searchText, replaceText string, ignorePatterns []string) ([]types.ReplaceResult, error) {
	if searchText == "" {
		return nil, errors.NewQueryError("searchText", "", "must not be empty")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.NewQueryError("rootPath", root, "cannot resolve to an absolute path")
	}

	filter := pathfilter.New(append(append([]string{}, e.cfg.Ignore...), ignorePatterns...), e.cfg.Exclude, absRoot)
	tr := traverse.New(filter, e.cfg.Search.MaxFileSize)

	files, err := tr.ContentFiles(ctx, absRoot)
	if err != nil {
		return nil, err
	}

	perFile := make([]*types.ReplaceResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perFile[i] = replaceInFile(path, searchText, replaceText)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]types.ReplaceResult, 0)
	for _, r := range perFile {
		if r == nil {
			continue
		}
		r.RelativePath = pathutil.ToRelative(r.AbsolutePath, absRoot)
		results = append(results, *r)
	}

	debug.LogReplace("replaced %q in %d of %d files under %s\n", searchText, len(results), len(files), absRoot)
	return results, nil
}

// replaceInFile rewrites one file. Returns nil for files with no matches,
// a success result after a write, and a failure result carrying the error
// when the read or write fails.
func replaceInFile(path, searchText, replaceText string) *types.ReplaceResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return failure(path, "read", err)
	}

	content := string(data)
	count := strings.Count(content, searchText)
	if count == 0 {
		return nil
	}

	replaced := strings.ReplaceAll(content, searchText, replaceText)

	// Degenerate no-op replacement (replaceText == searchText, or the
	// rewrite reproduces the original bytes): skip the write, the matches
	// still count
	if xxhash.Sum64String(replaced) == xxhash.Sum64(data) {
		return &types.ReplaceResult{
			AbsolutePath:     path,
			ReplacementCount: count,
			Success:          true,
		}
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, []byte(replaced), mode); err != nil {
		return failure(path, "write", err)
	}

	return &types.ReplaceResult{
		AbsolutePath:     path,
		ReplacementCount: count,
		Success:          true,
	}
}

func failure(path, op string, err error) *types.ReplaceResult {
	fileErr := errors.NewFileError(op, path, err)
	return &types.ReplaceResult{
		AbsolutePath: path,
		Success:      false,
		Error:        fileErr.Error(),
	}
}

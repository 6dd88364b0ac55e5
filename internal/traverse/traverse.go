// Package traverse enumerates candidate entries under a folder root,
// applying the path filter to prune excluded subtrees. Content searches see
// only .md/.txt files; filename searches see every file and directory.
package traverse

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/standardbeagle/notegrep/internal/debug"
	"github.com/standardbeagle/notegrep/internal/pathfilter"
)

// Entry is one visited file or directory, absolute path plus metadata the
// engines need without re-statting.
type Entry struct {
	Path  string
	Name  string
	IsDir bool
}

// Traverser walks a folder root. It is stateless between calls and safe for
// concurrent use; each walk reads the tree fresh (searches are read-through,
// never indexed).
type Traverser struct {
	filter      *pathfilter.Filter
	maxFileSize int64 // 0 = no limit
}

// New creates a Traverser with the given filter and size ceiling for content
// files.
func New(filter *pathfilter.Filter, maxFileSize int64) *Traverser {
	return &Traverser{filter: filter, maxFileSize: maxFileSize}
}

// ContentFiles returns the absolute paths of all .md/.txt files under root,
// in directory traversal order. Unreadable subdirectories are skipped
// silently; an unreadable root is an error.
func (tr *Traverser) ContentFiles(ctx context.Context, root string) ([]string, error) {
	var files []string
	err := tr.walk(ctx, root, true, func(e Entry) {
		if !e.IsDir && isNoteFile(e.Name) {
			files = append(files, e.Path)
		}
	})
	if err != nil {
		return nil, err
	}
	debug.LogTraverse("content walk of %s yielded %d files\n", root, len(files))
	return files, nil
}

// AllEntries returns every file and directory entry under root (any
// extension) not excluded by the filter, in traversal order. The root itself
// is not included.
func (tr *Traverser) AllEntries(ctx context.Context, root string) ([]Entry, error) {
	var entries []Entry
	err := tr.walk(ctx, root, false, func(e Entry) {
		entries = append(entries, e)
	})
	if err != nil {
		return nil, err
	}
	debug.LogTraverse("name walk of %s yielded %d entries\n", root, len(entries))
	return entries, nil
}

// walk recurses depth-first from root. contentMode applies the file size
// guard; the filter applies in both modes, pruning whole subtrees when a
// directory is excluded.
func (tr *Traverser) walk(ctx context.Context, root string, contentMode bool, visit func(Entry)) error {
	dirents, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	return tr.walkDir(ctx, root, dirents, contentMode, visit)
}

func (tr *Traverser) walkDir(ctx context.Context, dir string, dirents []os.DirEntry, contentMode bool, visit func(Entry)) error {
	for _, de := range dirents {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := de.Name()
		full := filepath.Join(dir, name)
		if tr.filter.ShouldExclude(name, full) {
			continue
		}

		if de.IsDir() {
			if !contentMode {
				visit(Entry{Path: full, Name: name, IsDir: true})
			}
			children, err := os.ReadDir(full)
			if err != nil {
				// Race-deleted or permission-denied subtree: skip it, the
				// walk as a whole still succeeds
				continue
			}
			if err := tr.walkDir(ctx, full, children, contentMode, visit); err != nil {
				return err
			}
			continue
		}

		if contentMode && tr.maxFileSize > 0 {
			info, err := de.Info()
			if err != nil {
				continue
			}
			if info.Size() > tr.maxFileSize {
				debug.LogTraverse("skipping oversized file %s (%d bytes)\n", full, info.Size())
				continue
			}
		}

		visit(Entry{Path: full, Name: name, IsDir: false})
	}
	return nil
}

// isNoteFile reports whether the name carries a case-insensitive .md or .txt
// extension. No other extensions are ever read as content.
func isNoteFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".txt":
		return true
	}
	return false
}

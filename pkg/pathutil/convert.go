// Package pathutil provides utilities for converting between absolute and relative paths.
//
// Architecture Pattern:
// notegrep uses absolute paths internally for consistency and to avoid ambiguity.
// However, user-facing output should use relative paths for readability and portability.
// This package provides the conversion layer between internal (absolute) and external (relative) representations.
package pathutil

import (
	"path/filepath"
	"strings"

	"github.com/standardbeagle/notegrep/internal/types"
)

// ToRelative converts an absolute path to relative based on a root directory.
// Falls back to the original path if conversion fails or path is already relative.
//
// Examples:
//   - ToRelative("/home/user/notes/work/todo.md", "/home/user/notes") → "work/todo.md"
//   - ToRelative("/other/location/file.md", "/home/user/notes") → "/other/location/file.md" (outside root)
//   - ToRelative("work/todo.md", "/home/user/notes") → "work/todo.md" (already relative)
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}

	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		// Conversion failed (e.g., different drives on Windows) - return absolute
		return absPath
	}

	// A ".." prefix means the file is outside the root; the absolute path is
	// clearer in that case
	if strings.HasPrefix(relPath, "..") {
		return absPath
	}

	return relPath
}

// ToRelativeSearchResults converts paths in a SearchResult slice from absolute to relative.
// Creates a new slice without modifying the original results.
//
// This function is designed for use at output boundaries where results are displayed to users:
//   - CLI search output
//   - JSON serialization
func ToRelativeSearchResults(results []types.SearchResult, rootDir string) []types.SearchResult {
	if len(results) == 0 {
		return results
	}

	converted := make([]types.SearchResult, len(results))
	copy(converted, results)

	for i := range converted {
		converted[i].RelativePath = ToRelative(converted[i].AbsolutePath, rootDir)
	}

	return converted
}

// ToRelativeReplaceResults converts paths in a ReplaceResult slice from absolute to relative.
// Creates a new slice without modifying the original results.
func ToRelativeReplaceResults(results []types.ReplaceResult, rootDir string) []types.ReplaceResult {
	if len(results) == 0 {
		return results
	}

	converted := make([]types.ReplaceResult, len(results))
	copy(converted, results)

	for i := range converted {
		converted[i].RelativePath = ToRelative(converted[i].AbsolutePath, rootDir)
	}

	return converted
}

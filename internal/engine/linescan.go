package engine

import (
	"strings"

	"github.com/standardbeagle/notegrep/internal/timeparse"
	"github.com/standardbeagle/notegrep/internal/types"
)

// matchLines applies the matcher to each line of a file independently.
// Every matching line becomes its own result carrying a 1-based line number
// and the raw, untrimmed line text. In predicate mode the timestamp
// reference is recomputed per line because each line is its own unit.
func matchLines(path, content string, hash uint64, um unitMatcher) []types.SearchResult {
	var results []types.SearchResult
	for i, line := range strings.Split(content, "\n") {
		count := um.Count(line)
		if count == 0 {
			continue
		}
		results = append(results, types.SearchResult{
			AbsolutePath:   path,
			MatchCount:     count,
			LineNumber:     i + 1,
			LineText:       line,
			FoundTimestamp: timeparse.Extract(line),
			ContentHash:    hash,
		})
	}
	return results
}

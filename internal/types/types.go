// Package types defines the query and result types shared by the search and
// replace engines. All paths stored here are absolute; conversion to relative
// paths happens at output boundaries via pkg/pathutil.
package types

// SearchType selects the matching strategy applied to each unit.
type SearchType string

const (
	SearchLiteral  SearchType = "literal"
	SearchWildcard SearchType = "wildcard"
	SearchAdvanced SearchType = "advanced"
)

// Target selects what the query is matched against.
type Target string

const (
	TargetContent   Target = "content"
	TargetFilenames Target = "filenames"
)

// Block selects match granularity for content searches.
type Block string

const (
	BlockEntireFile Block = "entire-file"
	BlockFileLines  Block = "file-lines"
)

// MaxWildcardGap is the maximum number of characters allowed between the end
// of one wildcard segment match and the start of the next. Chains that would
// span a wider gap fail rather than silently matching across unrelated text.
const MaxWildcardGap = 25

// DayMillis is one calendar day in milliseconds, used by the bounded
// past()/future() predicate builtins.
const DayMillis int64 = 86400000

// DefaultMaxFileSize is the size ceiling above which content traversal skips
// a file without reading it. Note corpora are small; anything bigger is a
// stray binary or export dump.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// SearchQuery describes one search invocation.
type SearchQuery struct {
	RootPath       string     `json:"root_path"`
	QueryText      string     `json:"query_text"`
	SearchType     SearchType `json:"search_type"`
	Target         Target     `json:"target"`
	Block          Block      `json:"block"`
	IgnorePatterns []string   `json:"ignore_patterns,omitempty"`
}

// SearchResult represents one matching unit. Entire-file mode produces one
// result per file; file-lines mode produces one result per matching line.
type SearchResult struct {
	AbsolutePath string `json:"absolute_path"`
	RelativePath string `json:"relative_path"`
	MatchCount   int    `json:"match_count"`
	LineNumber   int    `json:"line_number,omitempty"` // 1-based, file-lines mode only
	LineText     string `json:"line_text,omitempty"`   // raw matched line, untrimmed

	// FoundTimestamp is the first timestamp token extracted from the unit
	// that produced this result (epoch millis, 0 = none). Populated for every
	// search mode so callers can re-sort result lists chronologically.
	FoundTimestamp int64 `json:"found_timestamp,omitempty"`

	// ContentHash is the xxhash of the file content the result came from
	// (content searches only). External callers use it to invalidate cached
	// file content.
	ContentHash uint64 `json:"content_hash,omitempty"`
}

// ReplaceResult represents the outcome for one file touched by a replace
// batch. Files with zero matches are omitted entirely.
type ReplaceResult struct {
	AbsolutePath     string `json:"absolute_path"`
	RelativePath     string `json:"relative_path"`
	ReplacementCount int    `json:"replacement_count"`
	Success          bool   `json:"success"`
	Error            string `json:"error,omitempty"`
}

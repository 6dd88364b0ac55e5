package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/standardbeagle/notegrep/internal/types"
)

type Config struct {
	Version     int
	Project     Project
	Search      Search
	Performance Performance

	// Ignore patterns in the query dialect: case-insensitive, `*` only,
	// anchored against name or full path. Unioned with each query's own
	// ignorePatterns.
	Ignore []string

	// Exclude globs in doublestar syntax, matched against root-relative
	// paths during traversal.
	Exclude []string
}

type Project struct {
	Root string
	Name string
}

type Search struct {
	MaxResults  int   // 0 = unlimited
	MaxFileSize int64 // content files larger than this are skipped
}

type Performance struct {
	MaxGoroutines int // parallel file workers, 0 = auto-detect (NumCPU)
}

// Load reads configuration for a project directory.
func Load(path string) (*Config, error) {
	return LoadWithRoot(path, "")
}

// LoadWithRoot loads and merges configuration: a global base from
// ~/.notegrep.kdl (if present) under a project-specific .notegrep.kdl
// (project wins, exclusions union), falling back to defaults when neither
// exists.
func LoadWithRoot(path string, rootDir string) (*Config, error) {
	searchDir := path
	if searchDir == "" {
		searchDir = "."
	}
	if rootDir != "" {
		searchDir = rootDir
	}

	var baseConfig *Config
	if homeDir, err := os.UserHomeDir(); err == nil {
		if globalCfg, err := LoadKDL(homeDir); err == nil && globalCfg != nil {
			baseConfig = globalCfg
		}
	}

	var projectConfig *Config
	if kdlCfg, err := LoadKDL(searchDir); err == nil && kdlCfg != nil {
		projectConfig = kdlCfg
	} else if err != nil {
		return nil, err
	}

	var cfg *Config
	switch {
	case baseConfig != nil && projectConfig != nil:
		cfg = mergeConfigs(baseConfig, projectConfig)
	case projectConfig != nil:
		cfg = projectConfig
	case baseConfig != nil:
		cfg = baseConfig
	default:
		cfg = Default()
	}

	if cfg.Project.Root == "" {
		cfg.Project.Root = searchDir
	}
	if abs, err := filepath.Abs(cfg.Project.Root); err == nil {
		cfg.Project.Root = abs
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	return &Config{
		Version: 1,
		Project: Project{
			Root: cwd,
		},
		Search: Search{
			MaxResults:  0, // return everything; callers paginate
			MaxFileSize: types.DefaultMaxFileSize,
		},
		Performance: Performance{
			MaxGoroutines: runtime.NumCPU(),
		},
		Ignore: []string{},
		Exclude: []string{
			// Version control metadata is never note content
			"**/.git/**",
			"**/.hg/**",
			"**/.svn/**",

			// Sync/trash directories common in note folders
			"**/.trash/**",
			"**/.Trash-*/**",
			"**/.stversions/**",
			"**/.obsidian/**",

			// OS files
			"**/.DS_Store",
			"**/Thumbs.db",
			"**/desktop.ini",

			// Editor temp files
			"**/*.swp",
			"**/*.swo",
			"**/*~",
		},
	}
}

// mergeConfigs merges a base config with a project config.
// Project config takes precedence, but base exclusions are preserved.
func mergeConfigs(base, project *Config) *Config {
	merged := *project

	if len(base.Exclude) > 0 {
		merged.Exclude = dedupeUnion(base.Exclude, project.Exclude)
	}
	if len(base.Ignore) > 0 {
		merged.Ignore = dedupeUnion(base.Ignore, project.Ignore)
	}

	return &merged
}

func dedupeUnion(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Workers resolves the effective worker count for parallel file scans.
func (c *Config) Workers() int {
	if c.Performance.MaxGoroutines > 0 {
		return c.Performance.MaxGoroutines
	}
	return runtime.NumCPU()
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/notegrep/internal/config"
	"github.com/standardbeagle/notegrep/internal/debug"
	"github.com/standardbeagle/notegrep/internal/engine"
	"github.com/standardbeagle/notegrep/internal/replace"
	"github.com/standardbeagle/notegrep/internal/types"
	"github.com/standardbeagle/notegrep/internal/version"
)

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	rootFlag := c.String("root")

	cfg, err := config.LoadWithRoot(".", rootFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if ignoreFlags := c.StringSlice("ignore"); len(ignoreFlags) > 0 {
		cfg.Ignore = append(cfg.Ignore, ignoreFlags...)
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludeFlags...)
	}
	if rootFlag != "" {
		absRoot, err := filepath.Abs(rootFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path %q: %w", rootFlag, err)
		}
		cfg.Project.Root = absRoot
	}
	if maxResults := c.Int("max-results"); maxResults > 0 {
		cfg.Search.MaxResults = maxResults
	}

	return cfg, nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM so a large
// tree walk can be interrupted cleanly between file reads.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func main() {
	app := &cli.App{
		Name:                   "notegrep",
		Usage:                  "Search and replace across a folder of notes",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Note folder root (overrides config)",
			},
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "Ignore pattern, '*' wildcard, matched against names and paths (e.g. --ignore 'skip*')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclude glob in doublestar syntax (e.g. --exclude '**/attic/**')",
			},
			&cli.IntFlag{
				Name:  "max-results",
				Usage: "Cap the number of results (0 = unlimited)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit results as JSON",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write debug output to a log file",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				logPath, err := debug.InitDebugLogFile()
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "debug log: %s\n", logPath)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			return debug.CloseDebugLog()
		},
		Commands: []*cli.Command{
			searchCommand(),
			replaceCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "notegrep: %v\n", err)
		os.Exit(1)
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search note content or filenames",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Match strategy: literal, wildcard, or advanced",
				Value:   string(types.SearchLiteral),
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "What to match: content or filenames",
				Value: string(types.TargetContent),
			},
			&cli.BoolFlag{
				Name:    "lines",
				Aliases: []string{"l"},
				Usage:   "Match per line instead of per file",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one query argument")
			}

			cfg, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}

			block := types.BlockEntireFile
			if c.Bool("lines") {
				block = types.BlockFileLines
			}

			query := types.SearchQuery{
				RootPath:   cfg.Project.Root,
				QueryText:  c.Args().First(),
				SearchType: types.SearchType(c.String("type")),
				Target:     types.Target(c.String("target")),
				Block:      block,
			}

			ctx, stop := signalContext()
			defer stop()

			results, err := engine.New(cfg).Search(ctx, query)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				return printJSON(results)
			}
			printSearchResults(results, block)
			return nil
		},
	}
}

func replaceCommand() *cli.Command {
	return &cli.Command{
		Name:      "replace",
		Usage:     "Replace literal text (case-sensitive) across all notes",
		ArgsUsage: "<search-text> <replace-text>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("expected search and replace arguments")
			}

			cfg, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			results, err := replace.New(cfg).ReplaceAll(ctx, cfg.Project.Root, c.Args().Get(0), c.Args().Get(1), nil)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				return printJSON(results)
			}
			printReplaceResults(results)
			return nil
		},
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSearchResults(results []types.SearchResult, block types.Block) {
	for _, r := range results {
		if block == types.BlockFileLines {
			fmt.Printf("%s:%d: %s\n", r.RelativePath, r.LineNumber, r.LineText)
		} else {
			fmt.Printf("%s (%d)\n", r.RelativePath, r.MatchCount)
		}
	}
	if len(results) == 0 {
		fmt.Println("no matches")
	}
}

func printReplaceResults(results []types.ReplaceResult) {
	replaced := 0
	for _, r := range results {
		if r.Success {
			fmt.Printf("%s: %d replaced\n", r.RelativePath, r.ReplacementCount)
			replaced += r.ReplacementCount
		} else {
			fmt.Printf("%s: FAILED: %s\n", r.RelativePath, r.Error)
		}
	}
	fmt.Printf("%d replacements in %d files\n", replaced, len(results))
}

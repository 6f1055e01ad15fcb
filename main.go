package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func newApp() *cli.App {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "Print version",
	}
	app := &cli.App{
		Name:        "uncovered",
		Usage:       "Extract uncovered code snippets from LCOV coverage data",
		UsageText:   "uncovered [options] <lcov-file> <output-file> [src-root]",
		Version:     version,
		Description: "Parses LCOV coverage data and writes a markdown document of all uncovered code snippets with surrounding context.",
		Flags:       reportFlags(),
		Action:      runReport,
		Commands: []*cli.Command{
			{
				Name:      "report",
				Aliases:   []string{"r"},
				Usage:     "Write the uncovered-snippet report (same as the default action)",
				UsageText: "uncovered report [options] <lcov-file> <output-file> [src-root]",
				Flags:     reportFlags(),
				Action:    runReport,
			},
			{
				Name:        "untested",
				Aliases:     []string{"u"},
				Usage:       "List source files with no coverage records at all",
				UsageText:   "uncovered untested <lcov-file> [src-root]",
				Description: "Walks the source root and prints files that appear nowhere in the coverage data, not even fully covered.",
				Action:      runUntested,
			},
			{
				Name:        "comment",
				Aliases:     []string{"c"},
				Usage:       "Post the coverage summary as a GitHub PR comment",
				UsageText:   "uncovered comment [options] <lcov-file> [src-root]",
				Description: "Builds the uncovered-lines summary and posts it to a pull request, updating the existing comment when one is found.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "token",
						Usage:   "GitHub authentication token",
						EnvVars: []string{"GITHUB_TOKEN"},
					},
					&cli.StringFlag{
						Name:  "repo",
						Usage: "GitHub repository in owner/name form",
					},
					&cli.IntFlag{
						Name:  "pr",
						Usage: "Pull request number",
					},
				},
				Action: runComment,
			},
		},
	}
	return app
}

func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "context",
			Aliases: []string{"C"},
			Usage:   "Lines of context around each uncovered line (overrides uncovered.toml)",
		},
		&cli.StringFlag{
			Name:  "base",
			Usage: "Git ref: only report uncovered lines changed since this ref",
		},
		&cli.StringFlag{
			Name:  "diff-file",
			Usage: "Unified diff file: only report uncovered lines inside its hunks",
		},
	}
}

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/multimediallc/uncovered/internal/config"
	"github.com/multimediallc/uncovered/internal/git"
	"github.com/multimediallc/uncovered/internal/lcov"
	"github.com/multimediallc/uncovered/internal/report"
	"github.com/multimediallc/uncovered/pkg/coverage"
	"github.com/urfave/cli/v2"
)

// sourceRoot resolves the optional third positional argument, defaulting to
// the current working directory.
func sourceRoot(cCtx *cli.Context, index int) (string, error) {
	if cCtx.Args().Len() > index {
		return cCtx.Args().Get(index), nil
	}
	return os.Getwd()
}

// readConfig loads uncovered.toml from the source root, warning instead of
// failing when the file is malformed.
func readConfig(cCtx *cli.Context, root string) *config.Config {
	conf, err := config.Read(root)
	if err != nil {
		_, _ = fmt.Fprintf(cCtx.App.ErrWriter, "WARNING: error reading uncovered.toml - using default config: %v\n", err)
	}
	return conf
}

func runReport(cCtx *cli.Context) error {
	args := cCtx.Args()
	if args.Len() < 2 {
		return fmt.Errorf("usage: %s", cCtx.App.UsageText)
	}
	lcovPath := args.Get(0)
	outputPath := args.Get(1)
	root, err := sourceRoot(cCtx, 2)
	if err != nil {
		return err
	}

	out := cCtx.App.Writer
	conf := readConfig(cCtx, root)
	contextSize := conf.Context
	if cCtx.Int("context") > 0 {
		contextSize = cCtx.Int("context")
	}

	_, _ = fmt.Fprintf(out, "Parsing LCOV file: %s\n", lcovPath)
	profile, err := lcov.ParseFile(lcovPath, conf.ExcludeMarkers)
	if err != nil {
		return err
	}

	profile, err = restrictToDiff(cCtx, profile, root)
	if err != nil {
		return err
	}

	options := report.Options{
		Root:     root,
		Context:  contextSize,
		Ignore:   conf.Ignore,
		Warnings: cCtx.App.ErrWriter,
	}

	_, _ = fmt.Fprintf(out, "Found %d files with uncovered lines\n", len(report.Files(profile, options)))
	_, _ = fmt.Fprintln(out, "Generating report...")
	text := report.Generate(profile, options)

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Report written to: %s\n", outputPath)
	return nil
}

// restrictToDiff applies the --base or --diff-file restriction when either is
// set, keeping only uncovered lines inside changed hunks.
func restrictToDiff(cCtx *cli.Context, profile coverage.Profile, root string) (coverage.Profile, error) {
	if base := cCtx.String("base"); base != "" {
		diffFiles, err := git.NewGitDiff(git.DiffContext{Base: base, Dir: root})
		if err != nil {
			return nil, err
		}
		return profile.FilterLines(diffFiles), nil
	}
	if diffPath := cCtx.String("diff-file"); diffPath != "" {
		diffFiles, err := git.NewFileDiff(diffPath)
		if err != nil {
			return nil, err
		}
		return profile.FilterLines(diffFiles), nil
	}
	return profile, nil
}

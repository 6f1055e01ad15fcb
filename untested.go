package main

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/boyter/gocodewalker"
	"github.com/multimediallc/uncovered/internal/lcov"
	"github.com/urfave/cli/v2"
)

func stripRoot(root string, path string) string {
	if root == "." {
		return path
	}
	return strings.TrimPrefix(path, root+"/")
}

func matchesAny(globs []string, path string) bool {
	for _, glob := range globs {
		if match, err := doublestar.Match(glob, filepath.ToSlash(path)); err == nil && match {
			return true
		}
	}
	return false
}

// hasSourceExtension filters walked files by the configured extensions. An
// empty configuration keeps every file.
func hasSourceExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	return slices.Contains(extensions, strings.ToLower(filepath.Ext(path)))
}

// runUntested walks the source root and prints files that have no coverage
// records at all. Identifiers in the coverage data are matched as
// root-relative paths, the way LCOV produced from the root records them.
func runUntested(cCtx *cli.Context) error {
	args := cCtx.Args()
	if args.Len() < 1 {
		return fmt.Errorf("usage: %s", cCtx.Command.UsageText)
	}
	lcovPath := args.Get(0)
	root, err := sourceRoot(cCtx, 1)
	if err != nil {
		return err
	}

	conf := readConfig(cCtx, root)
	profile, err := lcov.ParseFile(lcovPath, conf.ExcludeMarkers)
	if err != nil {
		return err
	}
	measured := profile.Measured()

	fileListQueue := make(chan *gocodewalker.File, 100)
	walker := gocodewalker.NewFileWalker(root, fileListQueue)
	walker.ExcludeDirectory = []string{".git"}

	errChan := make(chan error)
	go func() {
		err := walker.Start()
		errChan <- err
		close(errChan)
	}()

	untested := make([]string, 0)
	for file := range fileListQueue {
		rel := stripRoot(root, filepath.ToSlash(file.Location))
		if !hasSourceExtension(rel, conf.SourceExtensions) {
			continue
		}
		if matchesAny(conf.Ignore, rel) {
			continue
		}
		if measured.Contains(rel) {
			continue
		}
		untested = append(untested, rel)
	}

	if err := <-errChan; err != nil {
		return fmt.Errorf("error walking source root: %w", err)
	}

	slices.Sort(untested)
	out := cCtx.App.Writer
	for _, file := range untested {
		_, _ = fmt.Fprintln(out, file)
	}
	_, _ = fmt.Fprintf(out, "%d files with no coverage records\n", len(untested))
	return nil
}

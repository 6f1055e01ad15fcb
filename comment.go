package main

import (
	"fmt"
	"strings"

	gh "github.com/multimediallc/uncovered/internal/github"
	"github.com/multimediallc/uncovered/internal/lcov"
	"github.com/multimediallc/uncovered/internal/report"
	"github.com/multimediallc/uncovered/pkg/coverage"
	"github.com/urfave/cli/v2"
)

// commentPrefix identifies the tool's sticky comment so reruns update it
// instead of posting duplicates.
const commentPrefix = "## Uncovered code report"

func commentBody(profile coverage.Profile, options report.Options) string {
	files := report.Files(profile, options)
	totalUncovered := 0
	for _, file := range files {
		totalUncovered += len(profile.UncoveredLines(file))
	}

	var b strings.Builder
	b.WriteString(commentPrefix + "\n\n")
	fmt.Fprintf(&b, "- **Total Files**: %d\n", len(files))
	fmt.Fprintf(&b, "- **Total Uncovered Lines**: %d\n", totalUncovered)
	if len(files) > 0 {
		b.WriteString("\n")
	}
	for _, file := range files {
		fmt.Fprintf(&b, "- `%s`: %s\n", file, coverage.CompactRanges(profile.UncoveredLines(file)))
	}
	return b.String()
}

func runComment(cCtx *cli.Context) error {
	args := cCtx.Args()
	if args.Len() < 1 {
		return fmt.Errorf("usage: %s", cCtx.Command.UsageText)
	}
	token := cCtx.String("token")
	repo := cCtx.String("repo")
	prID := cCtx.Int("pr")
	if token == "" || repo == "" || prID == 0 {
		return fmt.Errorf("token, repo, and pr are required")
	}
	repoSplit := strings.Split(repo, "/")
	if len(repoSplit) != 2 {
		return fmt.Errorf("invalid repo name: %s", repo)
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
	body := commentBody(profile, report.Options{
		Root:     root,
		Context:  conf.Context,
		Ignore:   conf.Ignore,
		Warnings: cCtx.App.ErrWriter,
	})

	client := gh.NewClient(repoSplit[0], repoSplit[1], token)
	if err := client.InitPR(prID); err != nil {
		return fmt.Errorf("InitPR error: %w", err)
	}

	commentID, found, err := client.FindExistingComment(commentPrefix, nil)
	if err != nil {
		return fmt.Errorf("FindExistingComment error: %w", err)
	}
	if found {
		if err := client.UpdateComment(commentID, body); err != nil {
			return fmt.Errorf("UpdateComment error: %w", err)
		}
		_, _ = fmt.Fprintf(cCtx.App.Writer, "Updated coverage comment on PR #%d\n", prID)
		return nil
	}
	if err := client.AddComment(body); err != nil {
		return fmt.Errorf("AddComment error: %w", err)
	}
	_, _ = fmt.Fprintf(cCtx.App.Writer, "Posted coverage comment on PR #%d\n", prID)
	return nil
}

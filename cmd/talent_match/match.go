package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/schemas"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score one candidate against one job",
	Long:  "Scores a resume (or candidate profile JSON) against a job across the semantic, skills, experience and education factors and explains the result.",
	RunE:  runMatch,
}

var (
	matchResume string
	matchJob    string
	matchTitle  string
	matchOutput string
)

func init() {
	matchCmd.Flags().StringVarP(&matchResume, "resume", "r", "", "Path to resume file or candidate profile JSON")
	matchCmd.Flags().StringVarP(&matchJob, "job", "J", "", "Path to job record JSON or posting text/HTML")
	matchCmd.Flags().StringVarP(&matchTitle, "title", "t", "", "Job title override")
	matchCmd.Flags().StringVarP(&matchOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := matchCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := matchCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	p, res, err := newPipeline(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = res.Close() }()

	cand, err := readCandidate(ctx, cmd, p, matchResume)
	if err != nil {
		return err
	}
	rec, err := readJobRecord(cmd, matchJob, matchTitle)
	if err != nil {
		return err
	}
	job, err := p.BuildJob(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to parse job: %w", err)
	}

	out, err := p.Match(ctx, cand, job)
	if err != nil {
		return err
	}
	if err := schemas.Validate(schemas.MatchResult, out.Result); err != nil {
		return err
	}
	if err := schemas.Validate(schemas.Explanation, out.Explanation); err != nil {
		return err
	}
	if pr := printer(cmd); pr != nil {
		pr.PrintMatch(out.Result, out.Explanation)
	}
	return writeJSON(cmd, matchOutput, "", out)
}


package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/pipeline"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run the full evaluation of a resume against a job",
	Long: `Parses the resume and the job, scores and explains the match, persists it when a
database is configured, and grades the resume.

Progress is reported on stderr as each step completes.`,
	RunE: runEvaluate,
}

var (
	evaluateResume string
	evaluateJob    string
	evaluateTitle  string
	evaluateOutput string
)

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateResume, "resume", "r", "", "Path to resume file")
	evaluateCmd.Flags().StringVarP(&evaluateJob, "job", "J", "", "Path to job record JSON or posting text/HTML")
	evaluateCmd.Flags().StringVarP(&evaluateTitle, "title", "t", "", "Job title override")
	evaluateCmd.Flags().StringVarP(&evaluateOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := evaluateCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := evaluateCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	text, err := readText(cmd, evaluateResume)
	if err != nil {
		return err
	}
	rec, err := readJobRecord(cmd, evaluateJob, evaluateTitle)
	if err != nil {
		return err
	}

	deps, res, err := pipeline.FromConfig(ctx, appConfig, appTaxonomy, appLogger)
	if err != nil {
		return err
	}
	defer func() { _ = res.Close() }()

	pr := printer(cmd)
	deps.OnProgress = func(ev pipeline.ProgressEvent) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", ev.Step, ev.Message)
	}
	p, err := pipeline.New(deps)
	if err != nil {
		return err
	}

	ev, err := p.Evaluate(ctx, text, rec)
	if err != nil {
		return err
	}
	if pr != nil {
		pr.PrintCandidateProfile(ev.Candidate)
		pr.PrintJobProfile(ev.Job)
		pr.PrintMatch(ev.Result, ev.Explanation)
		pr.PrintQuality(ev.Quality)
	}
	return writeJSON(cmd, evaluateOutput, "", ev)
}

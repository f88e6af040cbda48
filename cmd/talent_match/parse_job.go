package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/fetch"
	"github.com/jonathan/talent-match/internal/schemas"
	"github.com/jonathan/talent-match/internal/types"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Parse a job posting into a job profile",
	Long:  "Parses a job record (JSON), a text/HTML posting, or a posting downloaded by URL into a validated job profile with required, preferred and critical skills, experience, level and education requirements.",
	RunE:  runParseJob,
}

var (
	parseJobInput  string
	parseJobOutput string
	parseJobTitle  string
	parseJobURL    string
)

func init() {
	parseJobCmd.Flags().StringVarP(&parseJobInput, "in", "i", "", "Path to job record JSON or posting text/HTML (- for stdin)")
	parseJobCmd.Flags().StringVarP(&parseJobOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	parseJobCmd.Flags().StringVarP(&parseJobTitle, "title", "t", "", "Job title (defaults to the record title or the first line of the posting)")
	parseJobCmd.Flags().StringVarP(&parseJobURL, "url", "u", "", "URL of a job posting to download instead of --in")

	parseJobCmd.MarkFlagsOneRequired("in", "url")
	parseJobCmd.MarkFlagsMutuallyExclusive("in", "url")

	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(cmd *cobra.Command, _ []string) error {
	var (
		rec types.JobRecord
		err error
	)
	if parseJobURL != "" {
		rec, err = fetchJobRecord(cmd, parseJobURL, parseJobTitle)
	} else {
		rec, err = readJobRecord(cmd, parseJobInput, parseJobTitle)
	}
	if err != nil {
		return err
	}

	p, res, err := newPipeline(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = res.Close() }()

	job, err := p.BuildJob(cmd.Context(), rec)
	if err != nil {
		return fmt.Errorf("failed to parse job: %w", err)
	}
	if pr := printer(cmd); pr != nil {
		pr.PrintJobProfile(job)
	}
	return writeJSON(cmd, parseJobOutput, schemas.JobProfile, job)
}

// fetchJobRecord downloads a posting and wraps its text with the given title
func fetchJobRecord(cmd *cobra.Command, url, title string) (types.JobRecord, error) {
	posting, err := fetch.JobPosting(cmd.Context(), url, &fetch.Options{
		Timeout:   appConfig.Fetch.Timeout,
		UserAgent: fetch.DefaultUserAgent,
		Browser:   appConfig.Fetch.Browser,
		Logger:    appLogger,
	})
	if err != nil {
		return types.JobRecord{}, fmt.Errorf("failed to fetch job posting: %w", err)
	}
	rec := types.JobRecord{Title: title, Description: posting.Text}
	if rec.Title == "" {
		rec.Title = firstLine(posting.Text)
	}
	return rec, nil
}

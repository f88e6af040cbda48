package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/schemas"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Parse a resume into a candidate profile",
	Long:  "Parses a plain-text, markdown or HTML resume into a structured candidate profile with contact details, skills, experience, education and an employment timeline.",
	RunE:  runParseResume,
}

var (
	parseResumeInput  string
	parseResumeOutput string
)

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeInput, "in", "i", "", "Path to resume file (- for stdin)")
	parseResumeCmd.Flags().StringVarP(&parseResumeOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := parseResumeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(cmd *cobra.Command, _ []string) error {
	text, err := readText(cmd, parseResumeInput)
	if err != nil {
		return err
	}

	p, res, err := newPipeline(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = res.Close() }()

	profile, err := p.BuildCandidate(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	if pr := printer(cmd); pr != nil {
		pr.PrintCandidateProfile(profile)
	}
	return writeJSON(cmd, parseResumeOutput, schemas.CandidateProfile, profile)
}

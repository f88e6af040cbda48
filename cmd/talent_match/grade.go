package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/schemas"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade resume quality",
	Long:  "Scores a resume's completeness, quantification, length and progression on a 0-100 scale with a letter grade and improvement feedback.",
	RunE:  runGrade,
}

var (
	gradeInput  string
	gradeOutput string
)

func init() {
	gradeCmd.Flags().StringVarP(&gradeInput, "in", "i", "", "Path to resume file or candidate profile JSON")
	gradeCmd.Flags().StringVarP(&gradeOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := gradeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(gradeCmd)
}

func runGrade(cmd *cobra.Command, _ []string) error {
	p, res, err := newPipeline(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = res.Close() }()

	profile, err := readCandidate(cmd.Context(), cmd, p, gradeInput)
	if err != nil {
		return err
	}
	report := p.Grade(profile)
	if pr := printer(cmd); pr != nil {
		pr.PrintQuality(report)
	}
	return writeJSON(cmd, gradeOutput, schemas.QualityReport, report)
}

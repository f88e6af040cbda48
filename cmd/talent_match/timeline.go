package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Build the employment timeline of a resume",
	Long:  "Parses a resume's experience and prints its chronological timeline: merged years, gaps, average tenure, progression and job hopping score.",
	RunE:  runTimeline,
}

var (
	timelineInput  string
	timelineOutput string
)

func init() {
	timelineCmd.Flags().StringVarP(&timelineInput, "in", "i", "", "Path to resume file or candidate profile JSON")
	timelineCmd.Flags().StringVarP(&timelineOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := timelineCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, _ []string) error {
	p, res, err := newPipeline(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = res.Close() }()

	profile, err := readCandidate(cmd.Context(), cmd, p, timelineInput)
	if err != nil {
		return err
	}
	if profile.Timeline == nil {
		return fmt.Errorf("no dated experience found in %s", timelineInput)
	}
	if pr := printer(cmd); pr != nil {
		pr.PrintTimeline(profile.Timeline)
	}
	return writeJSON(cmd, timelineOutput, "", profile.Timeline)
}

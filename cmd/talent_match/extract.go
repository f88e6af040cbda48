package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/extraction"
	"github.com/jonathan/talent-match/internal/parsing"
	"github.com/jonathan/talent-match/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract skills and entities from a document",
	Long:  "Extracts canonical skills with proficiency and years, plus tagged entities, from a resume or job posting.",
	RunE:  runExtract,
}

var (
	extractInput  string
	extractOutput string
)

func init() {
	extractCmd.Flags().StringVarP(&extractInput, "in", "i", "", "Path to input document (text, markdown or HTML; - for stdin)")
	extractCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := extractCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	text, err := readText(cmd, extractInput)
	if err != nil {
		return err
	}

	deps, res, err := pipeline.FromConfig(cmd.Context(), appConfig, appTaxonomy, appLogger)
	if err != nil {
		return err
	}
	defer func() { _ = res.Close() }()

	extractor := extraction.New(appTaxonomy, deps.Tagger,
		extraction.WithWindow(appConfig.Extraction.ProficiencyWindow),
		extraction.WithFuzzy(appConfig.Extraction.Fuzzy),
		extraction.WithLogger(appLogger),
	)
	sections := parsing.SectionMap(parsing.NewSegmenter(appTaxonomy, appConfig.Extraction.SectionThreshold).Segment(text))
	result := extractor.ExtractContext(cmd.Context(), text, sections)

	if verbose {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Found %d skills and %d entities\n", len(result.Skills), len(result.Entities))
	}
	return writeJSON(cmd, extractOutput, "", result)
}

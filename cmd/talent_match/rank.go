package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidates for a job",
	Long:  "Scores every resume against one job concurrently and prints the results best first with an explanation for each.",
	RunE:  runRank,
}

var (
	rankResumes []string
	rankDir     string
	rankJob     string
	rankTitle   string
	rankOutput  string
)

func init() {
	rankCmd.Flags().StringSliceVarP(&rankResumes, "resume", "r", nil, "Resume file or candidate profile JSON (repeatable)")
	rankCmd.Flags().StringVar(&rankDir, "dir", "", "Directory of resume files to rank")
	rankCmd.Flags().StringVarP(&rankJob, "job", "J", "", "Path to job record JSON or posting text/HTML")
	rankCmd.Flags().StringVarP(&rankTitle, "title", "t", "", "Job title override")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := rankCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	paths, err := rankInputs(rankResumes, rankDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("at least one --resume or a non-empty --dir is required")
	}

	ctx := cmd.Context()
	p, res, err := newPipeline(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = res.Close() }()

	rec, err := readJobRecord(cmd, rankJob, rankTitle)
	if err != nil {
		return err
	}
	job, err := p.BuildJob(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to parse job: %w", err)
	}

	candidates := make([]*types.CandidateProfile, 0, len(paths))
	for _, path := range paths {
		cand, err := readCandidate(ctx, cmd, p, path)
		if err != nil {
			return fmt.Errorf("failed to load candidate %s: %w", path, err)
		}
		candidates = append(candidates, cand)
	}

	outcomes, err := p.Rank(ctx, candidates, job)
	if err != nil {
		return err
	}
	if pr := printer(cmd); pr != nil {
		results := make([]types.MatchResult, 0, len(outcomes))
		for _, o := range outcomes {
			results = append(results, *o.Result)
		}
		pr.PrintRanking(results)
	}
	return writeJSON(cmd, rankOutput, "", outcomes)
}

// rankInputs merges explicit paths with the regular files of dir, sorted for stable input order
func rankInputs(explicit []string, dir string) ([]string, error) {
	paths := append([]string(nil), explicit...)
	if dir == "" {
		return paths, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume directory: %w", err)
	}
	var found []string
	for _, e := range entries {
		if e.IsDir() || e.Name()[0] == '.' {
			continue
		}
		found = append(found, filepath.Join(dir, e.Name()))
	}
	sort.Strings(found)
	return append(paths, found...), nil
}

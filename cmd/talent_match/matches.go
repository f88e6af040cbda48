package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/types"
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Inspect persisted match results",
	Long:  "Reads match results and job snapshots saved by match, rank and evaluate. Requires database_url to be configured.",
}

var matchesListCmd = &cobra.Command{
	Use:   "list <job-id>",
	Short: "List a job's stored matches, best first",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatchesList,
}

var matchesShowCmd = &cobra.Command{
	Use:   "show <match-id>",
	Short: "Print one stored match with its explanation",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatchesShow,
}

var matchesJobCmd = &cobra.Command{
	Use:   "job <job-id>",
	Short: "Print the job profile snapshot a match was scored against",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatchesJob,
}

var matchesClearCmd = &cobra.Command{
	Use:   "clear <job-id>",
	Short: "Delete every stored match for a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatchesClear,
}

var (
	matchesLimit  int
	matchesOutput string
)

func init() {
	matchesListCmd.Flags().IntVarP(&matchesLimit, "limit", "n", db.DefaultListLimit, "Maximum number of matches to list")
	matchesCmd.PersistentFlags().StringVarP(&matchesOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	matchesCmd.AddCommand(matchesListCmd, matchesShowCmd, matchesJobCmd, matchesClearCmd)
	rootCmd.AddCommand(matchesCmd)
}

// openDB connects to the configured database; the caller closes it
func openDB(cmd *cobra.Command) (*db.DB, error) {
	if appConfig.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url is not configured (set TALENT_MATCH_DATABASE_URL)")
	}
	return db.Connect(cmd.Context(), appConfig.DatabaseURL)
}

func runMatchesList(cmd *cobra.Command, args []string) error {
	database, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	records, err := database.ListMatchesForJob(cmd.Context(), args[0], matchesLimit)
	if err != nil {
		return err
	}
	if p := printer(cmd); p != nil {
		results := make([]types.MatchResult, 0, len(records))
		for _, r := range records {
			results = append(results, r.Result)
		}
		p.PrintRanking(results)
	}
	return writeJSON(cmd, matchesOutput, "", records)
}

func runMatchesShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid match ID %q: %w", args[0], err)
	}
	database, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	record, err := database.GetMatch(cmd.Context(), id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("match %s not found", id)
	}
	if p := printer(cmd); p != nil {
		p.PrintMatch(&record.Result, record.Explanation)
	}
	return writeJSON(cmd, matchesOutput, "", record)
}

func runMatchesJob(cmd *cobra.Command, args []string) error {
	database, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	job, err := database.GetJob(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("job %s not found", args[0])
	}
	if p := printer(cmd); p != nil {
		p.PrintJobProfile(job)
	}
	return writeJSON(cmd, matchesOutput, "", job)
}

func runMatchesClear(cmd *cobra.Command, args []string) error {
	database, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	n, err := database.DeleteMatchesForJob(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Deleted %d matches for %s\n", n, args[0])
	return nil
}

// Package main provides the talent-match CLI for parsing resumes and job postings
// and scoring, explaining and grading candidate matches.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/logger"
	"github.com/jonathan/talent-match/internal/taxonomy"
)

var rootCmd = &cobra.Command{
	Use:               "talent_match",
	Short:             "Resume and job matching toolkit",
	Long:              "talent_match parses resumes and job postings into structured profiles, scores candidates against jobs, explains each match and grades resume quality.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile     string
	taxonomyDir string
	logJSON     bool
	logDebug    bool
	verbose     bool
)

// Shared state built once per invocation by setup
var (
	appConfig   *config.Config
	appLogger   = zap.NewNop()
	appTaxonomy *taxonomy.Taxonomy
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is talent-match.yaml in the current directory)")
	rootCmd.PersistentFlags().StringVar(&taxonomyDir, "taxonomy", "", "directory with taxonomy resource files overriding the embedded ones")
	rootCmd.PersistentFlags().BoolVarP(&logDebug, "debug", "d", false, "debug logging")
	rootCmd.PersistentFlags().BoolVarP(&logJSON, "json", "j", false, "JSON log format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print human-readable summaries to stderr")
}

func setup(cmd *cobra.Command, _ []string) error {
	loader := config.NewLoader()
	if err := loader.BindFlag("log.debug", cmd.Flags().Lookup("debug")); err != nil {
		return err
	}
	if err := loader.BindFlag("log.json", cmd.Flags().Lookup("json")); err != nil {
		return err
	}
	cfg, err := loader.Load(cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg

	l, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	appLogger = l

	if taxonomyDir != "" {
		appTaxonomy, err = taxonomy.LoadFS(os.DirFS(taxonomyDir))
	} else {
		appTaxonomy, err = taxonomy.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load taxonomy: %w", err)
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = appLogger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

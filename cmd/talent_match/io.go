package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/ingestion"
	"github.com/jonathan/talent-match/internal/observability"
	"github.com/jonathan/talent-match/internal/pipeline"
	"github.com/jonathan/talent-match/internal/schemas"
	"github.com/jonathan/talent-match/internal/types"
)

// readText reads a text or HTML document; "-" reads stdin
func readText(cmd *cobra.Command, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("input path is required")
	}
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		doc, err := ingestion.FromString(string(data), "stdin")
		if err != nil {
			return "", err
		}
		return doc.Text, nil
	}
	doc, err := ingestion.FromFile(path)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

// readJobRecord loads a job record from JSON, or wraps a text/HTML posting with the given title
func readJobRecord(cmd *cobra.Command, path, title string) (types.JobRecord, error) {
	var rec types.JobRecord
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return rec, fmt.Errorf("failed to read job file: %w", err)
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return rec, fmt.Errorf("failed to parse job JSON: %w", err)
		}
		if title != "" {
			rec.Title = title
		}
		return rec, nil
	}

	raw, err := readRaw(cmd, path)
	if err != nil {
		return rec, err
	}
	rec.Description = raw
	rec.Title = title
	if rec.Title == "" {
		rec.Title = firstLine(ingestion.CleanText(raw))
	}
	return rec, nil
}

// readCandidate parses a resume or loads a saved candidate profile JSON
func readCandidate(ctx context.Context, cmd *cobra.Command, p *pipeline.Pipeline, path string) (*types.CandidateProfile, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read candidate file: %w", err)
		}
		var profile types.CandidateProfile
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse candidate JSON: %w", err)
		}
		return &profile, nil
	}
	text, err := readText(cmd, path)
	if err != nil {
		return nil, err
	}
	return p.BuildCandidate(ctx, text)
}

// readRaw returns file content untouched so HTML reaches the job parser intact
func readRaw(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// writeJSON validates v against schema (when named) and writes it to out or stdout
func writeJSON(cmd *cobra.Command, out, schema string, v any) error {
	if schema != "" {
		if err := schemas.Validate(schema, v); err != nil {
			return fmt.Errorf("output does not validate against %s schema: %w", schema, err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if out == "" || out == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", out)
	return nil
}

// newPipeline builds a pipeline from the loaded configuration; the caller closes the resources
func newPipeline(ctx context.Context) (*pipeline.Pipeline, *pipeline.Resources, error) {
	deps, res, err := pipeline.FromConfig(ctx, appConfig, appTaxonomy, appLogger)
	if err != nil {
		return nil, nil, err
	}
	p, err := pipeline.New(deps)
	if err != nil {
		_ = res.Close()
		return nil, nil, err
	}
	return p, res, nil
}

// printer returns a stderr printer in verbose mode, nil otherwise
func printer(cmd *cobra.Command) *observability.Printer {
	if !verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

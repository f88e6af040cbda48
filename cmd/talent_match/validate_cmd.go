package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON document against a schema",
	Long:  "Validates a candidate profile, job profile, match result, explanation or quality report JSON file against its schema.",
	RunE:  runValidate,
}

var (
	validateInput  string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to JSON file")
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Schema name: "+strings.Join(schemas.Names(), ", "))

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("schema"); err != nil {
		panic(fmt.Sprintf("failed to mark schema flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	err := schemas.ValidateFile(validateSchema, validateInput)
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("%s is not a valid %s document", validateInput, validateSchema)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid %s document\n", validateInput, validateSchema)
	return nil
}

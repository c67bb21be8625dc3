package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/campaign-compliance/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a submission file against the submission schema",
	Long: `Checks a submission JSON file against the built-in submission schema
without evaluating it. A custom schema file can be supplied with --schema,
which is useful for validating carrier-specific submission variants.`,
	RunE: runValidate,
}

var (
	validateSubmission string
	validateSchema     string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSubmission, "submission", "s", "", "Path to submission JSON file (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a custom JSON Schema file (defaults to the built-in submission schema)")
	_ = validateCmd.MarkFlagRequired("submission")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	if err := validateSubmissionFile(validateSubmission, validateSchema); err != nil {
		return err
	}
	fmt.Printf("%s is valid\n", validateSubmission)
	return nil
}

// validateSubmissionFile checks a submission file against the built-in
// schema, or against a caller-supplied schema file when schemaPath is set.
func validateSubmissionFile(submissionPath, schemaPath string) error {
	data, err := os.ReadFile(submissionPath)
	if err != nil {
		return fmt.Errorf("failed to read submission file: %w", err)
	}

	if schemaPath == "" {
		return schemas.ValidateSubmission(data)
	}

	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	return schemas.ValidateJSONString(string(schema), string(data))
}

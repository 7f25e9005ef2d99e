package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/scenecore/internal/harness"
)

// FileValidation is the validation outcome of one scenario file.
type FileValidation struct {
	File   string                `json:"file"`
	Name   string                `json:"name,omitempty"`
	Valid  bool                  `json:"valid"`
	Issues []harness.SchemaIssue `json:"issues,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario-file-or-dir>",
		Short: "Validate scenario files without running them",
		Long: `Validate scenario YAML files against the scenario schema.

Checks field names and types, allowed ops and element types, id
uniqueness and the arguments each op needs. Nothing is executed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, target string, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.Format)

	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			formatter.Error(ErrCodeNotFound, fmt.Sprintf("path not found: %s", target), nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("path not found: %s", target))
		}
		return WrapExitError(ExitCommandError, "failed to stat path", err)
	}

	files := []string{target}
	if info.IsDir() {
		files, err = findScenarioFiles(target, "")
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to find scenarios", err)
		}
	}
	opts.logger().Debug("validating scenarios", "path", target, "files", len(files))

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(files))}
	for _, f := range files {
		v := validateFile(f)
		if !v.Valid {
			result.Valid = false
		}
		result.Files = append(result.Files, v)
	}

	if opts.Format == "json" {
		if result.Valid {
			return formatter.Success(result)
		}
		if err := formatter.Error(ErrCodeSchema, "invalid scenario file(s)", result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "validation failed")
	}

	w := cmd.OutOrStdout()
	invalid := 0
	for _, v := range result.Files {
		if v.Valid {
			fmt.Fprintf(w, "✓ %s\n", v.File)
			continue
		}
		invalid++
		fmt.Fprintf(w, "✗ %s\n", v.File)
		for _, issue := range v.Issues {
			if issue.Path != "" {
				fmt.Fprintf(w, "  %s: %s\n", issue.Path, issue.Message)
			} else {
				fmt.Fprintf(w, "  %s\n", issue.Message)
			}
		}
	}

	if invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenario file(s) invalid", invalid, len(result.Files)))
	}
	fmt.Fprintf(w, "All %d scenario file(s) valid\n", len(result.Files))
	return nil
}

// validateFile loads one file and converts any failure into issues.
func validateFile(path string) FileValidation {
	v := FileValidation{File: filepath.ToSlash(path)}

	scenario, err := harness.LoadScenario(path)
	if err == nil {
		v.Name = scenario.Name
		v.Valid = true
		return v
	}

	var schemaErr *harness.SchemaError
	if errors.As(err, &schemaErr) {
		v.Issues = schemaErr.Issues
		return v
	}
	v.Issues = []harness.SchemaIssue{{Message: unwrapScenarioError(err).Error()}}
	return v
}

// unwrapScenarioError drops the file path prefix that the listing already
// shows.
func unwrapScenarioError(err error) error {
	var scenarioErr *harness.ScenarioError
	if errors.As(err, &scenarioErr) {
		return scenarioErr.Err
	}
	return err
}

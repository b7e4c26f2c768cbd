package main

import (
	"fmt"

	"github.com/gubarz/snipmd/internal/ui"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "List directives and report missing or malformed ones",
	Long: `Parses each document and prints a table of its directives without
reading any referenced file. Exits non-zero when a directive is malformed,
or with --strict when a referenced file is missing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("strict", false, "Treat missing files as errors")
}

func runCheck(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	ui.RefreshStyles()

	conv := newConverter()
	var result *multierror.Error

	for _, path := range args {
		doc, err := loadDocument(conv, path)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		report, err := conv.Inspect(doc)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", doc.Path, err))
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderReport(report))

		for _, fault := range report.Faults {
			result = multierror.Append(result, fmt.Errorf("%s: %w", doc.Path, fault))
		}
		if n := report.Missing(); strict && n > 0 {
			result = multierror.Append(result, fmt.Errorf("%s: %d missing snippet files", doc.Path, n))
		}
	}

	return result.ErrorOrNil()
}

package main

import (
	"github.com/gubarz/snipmd/internal/ui"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view FILE",
	Short: "Browse a document's directives interactively",
	Long: `Opens a terminal browser listing every directive of the document.
The content of the selected directive is loaded and shown below the list.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	conv := newConverter()
	doc, err := loadDocument(conv, args[0])
	if err != nil {
		return err
	}

	report, err := conv.Inspect(doc)
	if err != nil {
		return err
	}
	for _, fault := range report.Faults {
		warn("%s: %v", doc.Path, fault)
	}
	return ui.Browse(report)
}

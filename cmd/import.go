package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rooftally/rooftally/internal/importer"
	"github.com/rooftally/rooftally/internal/model"
	"github.com/rooftally/rooftally/internal/project"
	"github.com/spf13/cobra"
)

var (
	importFile   string
	importPrefix string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a measurement report and create quotes",
	Long: `Import roof measurements from a CSV or Excel report, one roof per
row. Each valid row becomes a saved quote with office defaults applied
and its geometry consistency checked.

Examples:
  # Import a provider report
  rooftally import --file roofs.csv

  # Preview without saving
  rooftally import --file roofs.xlsx --dry-run`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Measurement report (.csv or .xlsx) [required]")
	importCmd.Flags().StringVar(&importPrefix, "name-prefix", "", "Quote name prefix (defaults to the file name)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and validate without saving quotes")

	importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) error {
	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(importFile)) {
	case ".xlsx":
		result = importer.ImportExcel(importFile)
	default:
		result = importer.ImportCSV(importFile)
	}

	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Printf("error: %s\n", e)
	}
	if len(result.Summaries) == 0 {
		return fmt.Errorf("no usable rows in %s", importFile)
	}

	prefs, err := project.LoadPreferences(project.DefaultPreferencesPath())
	if err != nil {
		return err
	}

	prefix := importPrefix
	if prefix == "" {
		prefix = strings.TrimSuffix(filepath.Base(importFile), filepath.Ext(importFile))
	}

	dir := resolveQuotesDir()
	for i, summary := range result.Summaries {
		prefs.ApplyDefaults(&summary)

		name := prefix
		if len(result.Summaries) > 1 {
			name = fmt.Sprintf("%s %d", prefix, i+1)
		}

		quote := model.NewQuote(name, summary)
		validation := runConsistency(summary)
		quote.Validation = &validation

		status := "ok"
		if !validation.Valid {
			status = "needs review"
		}
		fmt.Printf("%s: %.2f squares, %s\n", name, summary.TotalSquares(), status)
		for _, w := range validation.Warnings {
			fmt.Printf("  - %s\n", w)
		}

		if importDryRun {
			continue
		}
		if err := project.SaveQuote(dir, &quote); err != nil {
			return fmt.Errorf("failed to save quote %s: %w", name, err)
		}
		prefs.AddRecentQuote(quote.ID)
		fmt.Printf("  saved as quote %s\n", quote.ID)
	}

	if importDryRun {
		return nil
	}
	return project.SavePreferences(project.DefaultPreferencesPath(), prefs)
}

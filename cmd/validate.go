package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rooftally/rooftally/internal/model"
	"github.com/rooftally/rooftally/internal/project"
	"github.com/spf13/cobra"
)

var validateSave bool

var validateCmd = &cobra.Command{
	Use:   "validate <quote-id>",
	Short: "Re-run the geometry consistency check on a quote",
	Long: `Check a quote's reported linear measurements against its digitized
footprint: eave plus rake coverage of the perimeter, reported area
against footprint area, and advisory completeness warnings.

A failed check marks the quote for review; it never blocks a takeoff.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateSave, "save", true, "Store the verdict on the quote")
}

func runValidate(cmd *cobra.Command, args []string) error {
	quote, err := loadQuoteByID(args[0])
	if err != nil {
		return err
	}

	validation := runConsistency(quote.Summary)

	fmt.Println()
	fmt.Printf("Quote %s: %s\n", quote.ID, quote.Name)
	fmt.Println("───────────────────────────────────────────────")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if quote.Summary.FootprintWKT == "" {
		fmt.Fprintln(w, "  Footprint:\tnone on file")
	} else if ring, ok := model.ParseFootprint(quote.Summary.FootprintWKT); ok {
		shape := "irregular"
		if ring.IsRectangular() {
			shape = "rectangular"
		}
		fmt.Fprintf(w, "  Footprint area:\t%.0f sq ft (%s)\n", ring.AreaSqFt(), shape)
		fmt.Fprintf(w, "  Footprint perimeter:\t%.0f ft\n", ring.PerimeterFt())
		fmt.Fprintf(w, "  Edge coverage:\t%.1f%%\n", validation.EdgeCoveragePercent)
		fmt.Fprintf(w, "  Area variance:\t%.1f%%\n", validation.AreaVariancePercent)
	} else {
		fmt.Fprintln(w, "  Footprint:\tunparseable, treated as unavailable")
	}
	verdict := "VALID"
	if !validation.Valid {
		verdict = "NEEDS REVIEW"
	}
	fmt.Fprintf(w, "  Verdict:\t%s\n", verdict)
	w.Flush()

	for _, warning := range validation.Warnings {
		fmt.Printf("  - %s\n", warning)
	}
	fmt.Println()

	if !validateSave {
		return nil
	}
	quote.Validation = &validation
	return project.SaveQuote(resolveQuotesDir(), &quote)
}

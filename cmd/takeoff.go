package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rooftally/rooftally/internal/catalog"
	"github.com/rooftally/rooftally/internal/engine"
	"github.com/rooftally/rooftally/internal/model"
	"github.com/rooftally/rooftally/internal/project"
	"github.com/spf13/cobra"
)

var (
	takeoffWaste float64
	takeoffSave  bool
)

var takeoffCmd = &cobra.Command{
	Use:   "takeoff <quote-id>",
	Short: "Derive the priced material list for a quote",
	Long: `Run the quantity derivation for a saved quote: convert the roof
measurements into packaged material quantities using the brand catalog,
apply the waste percentage, and price every line.

Examples:
  # Derive with the waste stored on the quote
  rooftally takeoff 1a2b3c4d

  # Override the waste percentage for this run
  rooftally takeoff 1a2b3c4d --waste 15`,
	Args: cobra.ExactArgs(1),
	RunE: runTakeoff,
}

func init() {
	rootCmd.AddCommand(takeoffCmd)

	takeoffCmd.Flags().Float64VarP(&takeoffWaste, "waste", "w", -1, "Waste percentage override (0, 8, 10, 12, 15, 17, 20)")
	takeoffCmd.Flags().BoolVar(&takeoffSave, "save", true, "Store the result on the quote")
}

func runTakeoff(cmd *cobra.Command, args []string) error {
	quote, err := loadQuoteByID(args[0])
	if err != nil {
		return err
	}

	if takeoffWaste >= 0 {
		if !model.IsAllowedWaste(takeoffWaste) {
			return fmt.Errorf("unsupported waste percentage %.0f: allowed values are 0, 8, 10, 12, 15, 17, 20", takeoffWaste)
		}
		quote.Summary.WastePercent = takeoffWaste
	}

	cat, _, err := catalog.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("cannot load catalog: %w", err)
	}

	result, err := engine.New(cat).Run(quote.Summary)
	if err != nil {
		return err
	}

	printTakeoff(quote, result)

	if !takeoffSave {
		return nil
	}
	quote.Takeoff = &result
	return project.SaveQuote(resolveQuotesDir(), &quote)
}

func printTakeoff(quote model.Quote, result model.TakeoffResult) {
	fmt.Println()
	fmt.Printf("Quote %s: %s\n", quote.ID, quote.Name)
	fmt.Printf("%.2f squares at %.0f%% waste\n", quote.Summary.TotalSquares(), result.WastePercent)
	fmt.Println("───────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tBRAND\tPRODUCT\tQTY\tUOM\tUNIT $\tTOTAL $")
	for _, line := range result.Lines {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%s\t%.2f\t%.2f\n",
			line.Category, line.Brand, line.ProductName,
			line.Quantity, line.UnitOfMeasure, line.UnitCost, line.TotalCost)
	}
	w.Flush()

	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("Material total: $%.2f\n", result.TotalCost())
	fmt.Println()
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rooftally/rooftally/internal/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and maintain the brand packaging catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, path, err := catalog.LoadOrCreate()
		if err != nil {
			return err
		}

		fmt.Printf("Catalog: %s (%d entries)\n\n", path, len(cat.Entries))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tBRAND\tPRODUCT\tITEM\tFACTOR\tUOM\tCOST")
		for _, e := range cat.Entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%s\t%.2f\n",
				e.Category, e.Brand, e.ProductName, e.ItemCode,
				e.PackagingFactor, e.UnitOfMeasure, e.UnitCost)
		}
		return w.Flush()
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Merge catalog entries from an Excel workbook",
	Long: `Read brand packaging entries from an Excel workbook and merge them
into the stored catalog. Existing (category, brand) pairs are kept;
only new pairs are added.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := catalog.ImportExcel(args[0])
		for _, w := range result.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
		for _, e := range result.Errors {
			fmt.Printf("error: %s\n", e)
		}
		if len(result.Catalog.Entries) == 0 {
			return fmt.Errorf("no usable entries in %s", args[0])
		}

		cat, path, err := catalog.LoadOrCreate()
		if err != nil {
			return err
		}
		before := len(cat.Entries)
		cat.Merge(result.Catalog)
		if err := catalog.Save(path, cat); err != nil {
			return err
		}

		fmt.Printf("Merged %d new entries into %s\n", len(cat.Entries)-before, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogImportCmd)
}

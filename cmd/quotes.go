package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rooftally/rooftally/internal/project"
	"github.com/spf13/cobra"
)

var quotesCmd = &cobra.Command{
	Use:   "quotes",
	Short: "List saved quotes",
	RunE: func(cmd *cobra.Command, args []string) error {
		quotes, err := project.ListQuotes(resolveQuotesDir())
		if err != nil {
			return err
		}
		if len(quotes) == 0 {
			fmt.Println("No saved quotes.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSQUARES\tWASTE\tTOTAL\tUPDATED")
		for _, q := range quotes {
			total := "-"
			waste := fmt.Sprintf("%.0f%%", q.Summary.WastePercent)
			if q.Takeoff != nil {
				total = fmt.Sprintf("$%.2f", q.Takeoff.TotalCost())
				waste = fmt.Sprintf("%.0f%%", q.Takeoff.WastePercent)
			}
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\t%s\n",
				q.ID, q.Name, q.Summary.TotalSquares(), waste, total, q.UpdatedAt)
		}
		return w.Flush()
	},
}

var quotesDeleteCmd = &cobra.Command{
	Use:   "delete <quote-id>",
	Short: "Delete a saved quote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := project.DeleteQuote(resolveQuotesDir(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted quote %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quotesCmd)
	quotesCmd.AddCommand(quotesDeleteCmd)
}

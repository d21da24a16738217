package cmd

import (
	"fmt"

	"github.com/rooftally/rooftally/internal/export"
	"github.com/rooftally/rooftally/internal/model"
	"github.com/rooftally/rooftally/internal/project"
	"github.com/spf13/cobra"
)

var (
	exportPDFPath  string
	exportXLSXPath string
	exportDXFPath  string
)

var exportCmd = &cobra.Command{
	Use:   "export <quote-id>",
	Short: "Export a quote as PDF, Excel order, or DXF drawing",
	Long: `Write a quote to one or more output files:

  --pdf   customer estimate with measurements, materials, and a QR stamp
  --xlsx  supplier order workbook
  --dxf   footprint drawing in planar feet (requires a stored footprint)

Examples:
  rooftally export 1a2b3c4d --pdf estimate.pdf --xlsx order.xlsx
  rooftally export 1a2b3c4d --dxf footprint.dxf`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportPDFPath, "pdf", "", "Write the estimate PDF to this path")
	exportCmd.Flags().StringVar(&exportXLSXPath, "xlsx", "", "Write the order workbook to this path")
	exportCmd.Flags().StringVar(&exportDXFPath, "dxf", "", "Write the footprint DXF to this path")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportPDFPath == "" && exportXLSXPath == "" && exportDXFPath == "" {
		return fmt.Errorf("nothing to do: pass at least one of --pdf, --xlsx, --dxf")
	}

	quote, err := loadQuoteByID(args[0])
	if err != nil {
		return err
	}

	if exportPDFPath != "" {
		prefs, err := project.LoadPreferences(project.DefaultPreferencesPath())
		if err != nil {
			return err
		}
		if err := export.ExportEstimatePDF(exportPDFPath, quote, prefs.CompanyName); err != nil {
			return fmt.Errorf("pdf export failed: %w", err)
		}
		fmt.Printf("Wrote %s\n", exportPDFPath)
	}

	if exportXLSXPath != "" {
		if err := export.ExportOrderExcel(exportXLSXPath, quote); err != nil {
			return fmt.Errorf("excel export failed: %w", err)
		}
		fmt.Printf("Wrote %s\n", exportXLSXPath)
	}

	if exportDXFPath != "" {
		if quote.Summary.FootprintWKT == "" {
			return fmt.Errorf("quote %s has no footprint to draw", quote.ID)
		}
		ring, ok := model.ParseFootprint(quote.Summary.FootprintWKT)
		if !ok {
			return fmt.Errorf("quote %s has an unparseable footprint", quote.ID)
		}
		if err := export.ExportFootprintDXF(exportDXFPath, ring); err != nil {
			return fmt.Errorf("dxf export failed: %w", err)
		}
		fmt.Printf("Wrote %s\n", exportDXFPath)
	}

	return nil
}

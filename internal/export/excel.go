package export

import (
	"fmt"

	"github.com/rooftally/rooftally/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportOrderExcel writes the derived material list as a supplier order
// workbook with one row per material line plus a totals row.
func ExportOrderExcel(path string, quote model.Quote) error {
	if quote.Takeoff == nil || len(quote.Takeoff.Lines) == 0 {
		return fmt.Errorf("no material lines to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Materials"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Category", "Brand", "Product", "Item Code", "Base Qty", "Order Qty", "UOM", "Unit Cost", "Total Cost"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	row := 2
	for _, line := range quote.Takeoff.Lines {
		values := []interface{}{
			categoryLabel(line.Category),
			line.Brand,
			line.ProductName,
			line.ItemCode,
			line.QuantityBase,
			line.Quantity,
			line.UnitOfMeasure,
			line.UnitCost,
			line.TotalCost,
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		row++
	}

	// Totals row
	totalLabelCell, _ := excelize.CoordinatesToCellName(8, row+1)
	totalValueCell, _ := excelize.CoordinatesToCellName(9, row+1)
	if err := f.SetCellValue(sheet, totalLabelCell, "Total"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, totalValueCell, quote.Takeoff.TotalCost()); err != nil {
		return err
	}

	// Metadata sheet for traceability.
	metaSheet := "Quote"
	if _, err := f.NewSheet(metaSheet); err != nil {
		return err
	}
	meta := [][]interface{}{
		{"Quote ID", quote.ID},
		{"Name", quote.Name},
		{"Squares", quote.Summary.TotalSquares()},
		{"Waste %", quote.Takeoff.WastePercent},
		{"Updated", quote.UpdatedAt},
	}
	for i, pair := range meta {
		for j, v := range pair {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(metaSheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

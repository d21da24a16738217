// Package export renders quotes to the file formats the office hands out:
// estimate PDFs, supplier order workbooks, and footprint drawings.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rooftally/rooftally/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
	qrSize       = 24.0
)

// QuoteStamp is the metadata encoded into the estimate's QR code so a
// supplier or crew lead can pull up the quote from a printed page.
type QuoteStamp struct {
	QuoteID      string  `json:"quote_id"`
	Name         string  `json:"name"`
	Squares      float64 `json:"squares"`
	WastePercent float64 `json:"waste_percent"`
	TotalCost    float64 `json:"total_cost"`
	GeneratedAt  string  `json:"generated_at"`
}

// ExportEstimatePDF renders a quote as a customer-facing estimate: the
// measurement summary, any validation warnings, the priced material table,
// and a QR code identifying the quote.
func ExportEstimatePDF(path string, quote model.Quote, companyName string) error {
	if quote.Takeoff == nil || len(quote.Takeoff.Lines) == 0 {
		return fmt.Errorf("no material lines to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	y := renderEstimateHeader(pdf, quote, companyName)
	y = renderMeasurementSection(pdf, quote.Summary, y+4)
	if quote.Validation != nil && len(quote.Validation.Warnings) > 0 {
		y = renderValidationSection(pdf, *quote.Validation, y+4)
	}
	y = renderMaterialTable(pdf, *quote.Takeoff, y+4)
	renderTotals(pdf, *quote.Takeoff, y+2)

	if err := renderQuoteStamp(pdf, quote); err != nil {
		return err
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by RoofTally", "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

// renderEstimateHeader draws the company name, quote title, and metadata
// line, returning the next free Y position.
func renderEstimateHeader(pdf *fpdf.Fpdf, quote model.Quote, companyName string) float64 {
	if companyName == "" {
		companyName = "RoofTally"
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth-qrSize-4, 8, companyName, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, marginTop+9)
	title := "Roofing Material Estimate"
	if quote.Name != "" {
		title = fmt.Sprintf("Roofing Material Estimate: %s", quote.Name)
	}
	pdf.CellFormat(contentWidth-qrSize-4, 6, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(marginLeft, marginTop+16)
	meta := fmt.Sprintf("Quote %s  |  %s", quote.ID, quote.UpdatedAt)
	pdf.CellFormat(contentWidth-qrSize-4, 5, meta, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+qrSize+2, pageWidth-marginRight, marginTop+qrSize+2)

	return marginTop + qrSize + 4
}

// renderMeasurementSection draws the roof measurement summary block.
func renderMeasurementSection(pdf *fpdf.Fpdf, s model.MeasurementSummary, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 6, "Roof Measurements", "", 0, "L", false, 0, "")
	y += 8

	items := []struct {
		label string
		value string
	}{
		{"Total Area", fmt.Sprintf("%.0f sq ft (%.2f squares)", s.AreaSqFt, s.TotalSquares())},
		{"Ridge / Hip", fmt.Sprintf("%.0f / %.0f LF", s.LFRidge, s.LFHip)},
		{"Valley", fmt.Sprintf("%.0f LF", s.LFValley)},
		{"Eave / Rake", fmt.Sprintf("%.0f / %.0f LF", s.LFEave, s.LFRake)},
		{"Pitch", fmt.Sprintf("%.0f/12", s.Pitch)},
		{"Stories", fmt.Sprintf("%d", s.Stories)},
		{"Waste", fmt.Sprintf("%.0f%%", s.WastePercent)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range items {
		pdf.SetXY(marginLeft+4, y)
		pdf.CellFormat(40, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(60, 5, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		y += 5
	}

	for _, cat := range model.PenetrationCategories {
		count, ok := s.Penetrations[cat]
		if !ok {
			continue
		}
		pdf.SetXY(marginLeft+4, y)
		pdf.CellFormat(40, 5, categoryLabel(cat)+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(60, 5, fmt.Sprintf("%d", count), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		y += 5
	}

	return y
}

// renderValidationSection lists geometry consistency warnings in red so a
// reviewer sees them before the material table.
func renderValidationSection(pdf *fpdf.Fpdf, v model.ValidationResult, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(200, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 6, "Measurement Review Notes", "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, w := range v.Warnings {
		pdf.SetXY(marginLeft+4, y)
		pdf.CellFormat(contentWidth-8, 5, "- "+w, "", 0, "L", false, 0, "")
		y += 5
	}
	return y
}

// renderMaterialTable draws the priced bill of materials.
func renderMaterialTable(pdf *fpdf.Fpdf, takeoff model.TakeoffResult, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 6, "Materials", "", 0, "L", false, 0, "")
	y += 8

	colWidths := []float64{38, 28, 48, 18, 16, 16, 16}
	headers := []string{"Category", "Brand", "Product", "Qty", "UOM", "Unit $", "Total $"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	for i, line := range takeoff.Lines {
		rowData := []string{
			categoryLabel(line.Category),
			line.Brand,
			line.ProductName,
			fmt.Sprintf("%.0f", line.Quantity),
			line.UnitOfMeasure,
			fmt.Sprintf("%.2f", line.UnitCost),
			fmt.Sprintf("%.2f", line.TotalCost),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			align := "L"
			if j >= 3 {
				align = "R"
			}
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, align, true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	return y
}

// renderTotals draws the cost total line under the material table.
func renderTotals(pdf *fpdf.Fpdf, takeoff model.TakeoffResult, y float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	label := fmt.Sprintf("Material Total (waste %.0f%%):", takeoff.WastePercent)
	pdf.CellFormat(contentWidth-20, 7, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, fmt.Sprintf("$%.2f", takeoff.TotalCost()), "", 0, "R", false, 0, "")
}

// renderQuoteStamp places the QR code in the top-right corner of the first
// page, encoding quote metadata as JSON.
func renderQuoteStamp(pdf *fpdf.Fpdf, quote model.Quote) error {
	stamp := QuoteStamp{
		QuoteID:      quote.ID,
		Name:         quote.Name,
		Squares:      quote.Summary.TotalSquares(),
		WastePercent: quote.Takeoff.WastePercent,
		TotalCost:    quote.Takeoff.TotalCost(),
		GeneratedAt:  quote.UpdatedAt,
	}

	data, err := json.Marshal(stamp)
	if err != nil {
		return fmt.Errorf("failed to marshal quote stamp: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", quote.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, pageWidth-marginRight-qrSize, marginTop, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// categoryLabel turns a material category into a human-readable heading.
func categoryLabel(cat model.MaterialCategory) string {
	words := strings.Split(string(cat), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

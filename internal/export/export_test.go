package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rooftally/rooftally/internal/catalog"
	"github.com/rooftally/rooftally/internal/engine"
	"github.com/rooftally/rooftally/internal/model"
	"github.com/xuri/excelize/v2"
)

// buildTestQuote creates a realistic priced quote for export testing.
func buildTestQuote(t *testing.T) model.Quote {
	t.Helper()

	summary := model.MeasurementSummary{
		AreaSqFt:     4345,
		LFRidge:      60,
		LFHip:        40,
		LFValley:     30,
		LFEave:       120,
		LFRake:       80,
		Pitch:        6,
		Stories:      2,
		WastePercent: 10,
		Penetrations: map[model.MaterialCategory]int{
			model.CategoryPipeVent: 2,
		},
	}

	takeoff, err := engine.New(catalog.Default()).Run(summary)
	if err != nil {
		t.Fatalf("takeoff failed: %v", err)
	}

	quote := model.NewQuote("Maple St Reroof", summary)
	quote.Takeoff = &takeoff
	quote.Validation = &model.ValidationResult{
		Valid:               true,
		EdgeCoveragePercent: 98.5,
		Warnings:            []string{"No ridge or hip length reported"},
	}
	return quote
}

func testFootprint(t *testing.T) model.Ring {
	t.Helper()
	ring, err := model.NewRing([]model.Vertex{
		{Lat: 40.0000, Lng: -75.0001},
		{Lat: 40.0000, Lng: -75.0000},
		{Lat: 40.0001, Lng: -75.0000},
		{Lat: 40.0001, Lng: -75.0001},
	})
	if err != nil {
		t.Fatalf("NewRing failed: %v", err)
	}
	return ring
}

func TestExportEstimatePDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "estimate.pdf")

	err := ExportEstimatePDF(path, buildTestQuote(t), "Acme Roofing")
	if err != nil {
		t.Fatalf("ExportEstimatePDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportEstimatePDF_NoTakeoff(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	quote := model.NewQuote("Empty", model.MeasurementSummary{})
	err := ExportEstimatePDF(path, quote, "")
	if err == nil {
		t.Fatal("expected error for quote without a takeoff, got nil")
	}
}

func TestExportEstimatePDF_NoValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "no_validation.pdf")

	quote := buildTestQuote(t)
	quote.Validation = nil

	if err := ExportEstimatePDF(path, quote, "Acme Roofing"); err != nil {
		t.Fatalf("ExportEstimatePDF returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
}

func TestExportOrderExcel_CreatesWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.xlsx")

	quote := buildTestQuote(t)
	if err := ExportOrderExcel(path, quote); err != nil {
		t.Fatalf("ExportOrderExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Materials")
	if err != nil {
		t.Fatalf("cannot read Materials sheet: %v", err)
	}
	// Header plus one row per material line.
	if len(rows) < len(quote.Takeoff.Lines)+1 {
		t.Errorf("expected at least %d rows, got %d", len(quote.Takeoff.Lines)+1, len(rows))
	}
	if rows[0][0] != "Category" {
		t.Errorf("expected Category header, got %q", rows[0][0])
	}

	id, err := f.GetCellValue("Quote", "B1")
	if err != nil {
		t.Fatalf("cannot read Quote sheet: %v", err)
	}
	if id != quote.ID {
		t.Errorf("expected quote ID %q in metadata sheet, got %q", quote.ID, id)
	}
}

func TestExportOrderExcel_NoTakeoff(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.xlsx")

	quote := model.NewQuote("Empty", model.MeasurementSummary{})
	if err := ExportOrderExcel(path, quote); err == nil {
		t.Fatal("expected error for quote without a takeoff, got nil")
	}
}

func TestExportFootprintDXF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "footprint.dxf")

	err := ExportFootprintDXF(path, testFootprint(t))
	if err != nil {
		t.Fatalf("ExportFootprintDXF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("DXF file is empty")
	}
}

func TestExportFootprintDXF_EmptyRing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.dxf")

	if err := ExportFootprintDXF(path, model.Ring{}); err == nil {
		t.Fatal("expected error for empty ring, got nil")
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		cat  model.MaterialCategory
		want string
	}{
		{model.CategoryShingles, "Shingles"},
		{model.CategoryRidgeCap, "Ridge Cap"},
		{model.CategoryIceWater, "Ice Water"},
		{model.CategoryPipeVent, "Pipe Vent"},
	}
	for _, tt := range tests {
		got := categoryLabel(tt.cat)
		if got != tt.want {
			t.Errorf("categoryLabel(%q) = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

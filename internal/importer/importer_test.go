package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rooftally/rooftally/internal/model"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Area,Ridge,Eave\n4345,60,120\n2100,30,80\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Area;Ridge;Eave\n4345;60;120\n2100;30;80\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Area\tRidge\tEave\n4345\t60\t120\n2100\t30\t80\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Area|Ridge|Eave\n4345|60|120\n2100|30|80\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Area", "Ridge", "Valley", "Eave", "Rake", "Waste"}
	mapping, ok := DetectColumns(row)

	if !ok {
		t.Fatal("expected header to be detected")
	}
	if mapping.Area != 0 {
		t.Errorf("expected Area at 0, got %d", mapping.Area)
	}
	if mapping.Ridge != 1 {
		t.Errorf("expected Ridge at 1, got %d", mapping.Ridge)
	}
	if mapping.Valley != 2 {
		t.Errorf("expected Valley at 2, got %d", mapping.Valley)
	}
	if mapping.Waste != 5 {
		t.Errorf("expected Waste at 5, got %d", mapping.Waste)
	}
}

func TestDetectColumns_CaseInsensitiveAliases(t *testing.T) {
	row := []string{"TOTAL AREA", "LF_RIDGE", "Valleys", "Eaves", "Pipe Boots"}
	mapping, ok := DetectColumns(row)

	if !ok {
		t.Fatal("expected header to be detected")
	}
	if mapping.Area != 0 {
		t.Errorf("expected Area at 0, got %d", mapping.Area)
	}
	if mapping.Ridge != 1 {
		t.Errorf("expected Ridge at 1, got %d", mapping.Ridge)
	}
	if mapping.Valley != 2 {
		t.Errorf("expected Valley at 2, got %d", mapping.Valley)
	}
	if mapping.PipeVents != 4 {
		t.Errorf("expected PipeVents at 4, got %d", mapping.PipeVents)
	}
}

func TestDetectColumns_SquaresOnly(t *testing.T) {
	row := []string{"Squares", "Ridge"}
	_, ok := DetectColumns(row)
	if !ok {
		t.Error("expected a squares column to satisfy the minimum header")
	}
}

func TestDetectColumns_NoUsableHeader(t *testing.T) {
	row := []string{"Ridge", "Eave"}
	_, ok := DetectColumns(row)
	if ok {
		t.Error("expected detection to fail without an area or squares column")
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_FullRow(t *testing.T) {
	data := "Area,Ridge,Hip,Valley,Eave,Rake,Pitch,Stories,Waste,Pipe Vents,Chimneys\n" +
		"4345,60,40,30,120,80,6,2,10,2,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(result.Summaries))
	}

	s := result.Summaries[0]
	if s.AreaSqFt != 4345 {
		t.Errorf("expected area 4345, got %f", s.AreaSqFt)
	}
	if s.LFRidge != 60 {
		t.Errorf("expected ridge 60, got %f", s.LFRidge)
	}
	if s.LFHip != 40 {
		t.Errorf("expected hip 40, got %f", s.LFHip)
	}
	if s.Pitch != 6 {
		t.Errorf("expected pitch 6, got %f", s.Pitch)
	}
	if s.Stories != 2 {
		t.Errorf("expected 2 stories, got %d", s.Stories)
	}
	if s.WastePercent != 10 {
		t.Errorf("expected waste 10, got %f", s.WastePercent)
	}
	if s.Penetrations[model.CategoryPipeVent] != 2 {
		t.Errorf("expected 2 pipe vents, got %d", s.Penetrations[model.CategoryPipeVent])
	}
	if s.Penetrations[model.CategoryChimney] != 1 {
		t.Errorf("expected 1 chimney, got %d", s.Penetrations[model.CategoryChimney])
	}
}

func TestImportCSVFromReader_MultipleRoofs(t *testing.T) {
	data := "Area,Ridge\n4345,60\n2100,30\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d (errors: %v)", len(result.Summaries), result.Errors)
	}
	if result.Summaries[1].AreaSqFt != 2100 {
		t.Errorf("expected second area 2100, got %f", result.Summaries[1].AreaSqFt)
	}
}

func TestImportCSVFromReader_InvalidNumber(t *testing.T) {
	data := "Area,Ridge\nabc,60\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for non-numeric area")
	}
	if len(result.Summaries) != 0 {
		t.Errorf("expected 0 summaries, got %d", len(result.Summaries))
	}
}

func TestImportCSVFromReader_NegativeLength(t *testing.T) {
	data := "Area,Ridge\n4345,-60\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for negative ridge length")
	}
}

func TestImportCSVFromReader_MissingAreaAndSquares(t *testing.T) {
	data := "Area,Squares,Ridge\n,,60\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error when both area and squares are empty")
	}
}

func TestImportCSVFromReader_UnsupportedWasteResets(t *testing.T) {
	data := "Area,Waste\n4345,11\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d (errors: %v)", len(result.Summaries), result.Errors)
	}
	if result.Summaries[0].WastePercent != 0 {
		t.Errorf("expected waste reset to 0, got %f", result.Summaries[0].WastePercent)
	}
	hasWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Unsupported waste") {
			hasWarning = true
		}
	}
	if !hasWarning {
		t.Error("expected warning about unsupported waste")
	}
}

func TestImportCSVFromReader_FootprintParsed(t *testing.T) {
	wkt := "POLYGON((-75.0001 40, -75 40, -75 40.0001, -75.0001 40.0001, -75.0001 40))"
	data := "Area,Footprint\n4345,\"" + wkt + "\"\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d (errors: %v)", len(result.Summaries), result.Errors)
	}
	if result.Summaries[0].FootprintWKT != wkt {
		t.Errorf("expected footprint to be kept, got %q", result.Summaries[0].FootprintWKT)
	}
}

func TestImportCSVFromReader_BadFootprintWarns(t *testing.T) {
	data := "Area,Footprint\n4345,POLYGON((garbage))\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d (errors: %v)", len(result.Summaries), result.Errors)
	}
	if result.Summaries[0].FootprintWKT != "" {
		t.Errorf("expected footprint dropped, got %q", result.Summaries[0].FootprintWKT)
	}
	hasWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Unparseable footprint") {
			hasWarning = true
		}
	}
	if !hasWarning {
		t.Error("expected warning about unparseable footprint")
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Area,Ridge\n4345,60\nbad,30\n2100,20\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Summaries) != 2 {
		t.Errorf("expected 2 valid summaries, got %d", len(result.Summaries))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(result.Errors))
	}
}

func TestImportCSVFromReader_EmptyRowsSkipped(t *testing.T) {
	data := "Area,Ridge\n4345,60\n\n\n2100,30\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Summaries) != 2 {
		t.Errorf("expected 2 summaries (skipping empty rows), got %d (errors: %v)", len(result.Summaries), result.Errors)
	}
}

func TestImportCSVFromReader_HeaderOnly(t *testing.T) {
	data := "Area,Ridge\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Summaries) != 0 {
		t.Errorf("expected 0 summaries, got %d", len(result.Summaries))
	}
	if len(result.Errors) == 0 {
		t.Error("expected error for a file with no data rows")
	}
}

func TestImportCSVFromReader_EmptyInput(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

// ─── CSV File Import Tests ──────────────────────────────────

func TestImportCSV_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roofs.csv")
	content := "Area,Ridge,Eave\n4345,60,120\n2100,30,80\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(result.Summaries))
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roofs.csv")
	content := "Area;Ridge;Eave\n4345;60;120\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Summaries) != 1 {
		t.Errorf("expected 1 summary, got %d (errors: %v)", len(result.Summaries), result.Errors)
	}

	hasSemicolonWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			hasSemicolonWarning = true
		}
	}
	if !hasSemicolonWarning {
		t.Error("expected warning about semicolon delimiter detection")
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "roofs.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Area", "Ridge", "Eave", "Waste"},
		{4345, 60, 120, 10},
		{2100, 30, 80, 0},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(result.Summaries))
	}
	if result.Summaries[0].AreaSqFt != 4345 {
		t.Errorf("expected area 4345, got %f", result.Summaries[0].AreaSqFt)
	}
	if result.Summaries[0].WastePercent != 10 {
		t.Errorf("expected waste 10, got %f", result.Summaries[0].WastePercent)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/file.xlsx")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Area", "Ridge"},
		{"abc", 60},
	})

	result := ImportExcel(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for non-numeric area")
	}
}

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rooftally/rooftally/internal/model"
	"github.com/xuri/excelize/v2"
)

// ─── Resolve Tests ─────────────────────────────────────────

func TestResolve_ExactBrandMatch(t *testing.T) {
	c := Default()
	entry, ok := c.Resolve(model.CategoryRidgeCap, "CertainTeed")
	if !ok {
		t.Fatal("expected ridge cap entry")
	}
	if entry.Brand != "CertainTeed" {
		t.Errorf("expected CertainTeed, got %q", entry.Brand)
	}
	if entry.PackagingFactor != 20 {
		t.Errorf("expected 20 LF per bundle, got %f", entry.PackagingFactor)
	}
}

func TestResolve_UnknownBrandFallsBack(t *testing.T) {
	c := Default()
	entry, ok := c.Resolve(model.CategoryShingles, "No Such Brand")
	if !ok {
		t.Fatal("expected fallback entry")
	}
	if entry.Brand != "GAF" {
		t.Errorf("expected first-entry fallback GAF, got %q", entry.Brand)
	}
}

func TestResolve_EmptyBrandUsesDefault(t *testing.T) {
	c := Default()
	entry, ok := c.Resolve(model.CategoryIceWater, "")
	if !ok {
		t.Fatal("expected ice & water entry")
	}
	if entry.Brand != "GAF" {
		t.Errorf("expected GAF default, got %q", entry.Brand)
	}
}

func TestResolve_MissingCategory(t *testing.T) {
	c := Catalog{}
	if _, ok := c.Resolve(model.CategoryShingles, "GAF"); ok {
		t.Error("expected false for empty catalog")
	}
}

func TestDefault_CoversEveryCategory(t *testing.T) {
	c := Default()
	all := []model.MaterialCategory{
		model.CategoryShingles, model.CategoryRidgeCap, model.CategoryStarter,
		model.CategoryUnderlayment, model.CategoryIceWater, model.CategoryValley,
		model.CategoryDripEdge, model.CategoryPipeVent, model.CategorySkylight,
		model.CategoryChimney,
	}
	for _, cat := range all {
		if _, ok := c.Resolve(cat, ""); !ok {
			t.Errorf("default catalog missing category %s", cat)
		}
	}
	for _, e := range c.Entries {
		if e.PackagingFactor <= 0 {
			t.Errorf("entry %s/%s has non-positive packaging factor", e.Category, e.Brand)
		}
		if e.UnitCost <= 0 {
			t.Errorf("entry %s/%s has non-positive cost", e.Category, e.Brand)
		}
	}
}

func TestBrands(t *testing.T) {
	c := Default()
	brands := c.Brands(model.CategoryShingles)
	if len(brands) != 3 {
		t.Fatalf("expected 3 shingle brands, got %d", len(brands))
	}
	if brands[0] != "GAF" {
		t.Errorf("expected GAF first, got %q", brands[0])
	}
}

func TestMerge_SkipsDuplicates(t *testing.T) {
	c := Default()
	before := len(c.Entries)

	other := Catalog{Entries: []Entry{
		{Category: model.CategoryShingles, Brand: "GAF", PackagingFactor: 3, UnitCost: 99},
		{Category: model.CategoryShingles, Brand: "Malarkey", PackagingFactor: 3, UnitCost: 47},
	}}
	c.Merge(other)

	if len(c.Entries) != before+1 {
		t.Fatalf("expected only the new brand appended, got %d entries", len(c.Entries))
	}
	// The existing GAF entry keeps its original cost.
	entry, _ := c.Resolve(model.CategoryShingles, "GAF")
	if entry.UnitCost == 99 {
		t.Error("expected existing entry to win over the merged duplicate")
	}
}

// ─── Store Tests ───────────────────────────────────────────

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.json")

	c := Default()
	if err := Save(path, c); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded.Entries) != len(c.Entries) {
		t.Fatalf("expected %d entries, got %d", len(c.Entries), len(loaded.Entries))
	}
	entry, ok := loaded.Resolve(model.CategoryValley, "")
	if !ok || entry.PackagingFactor != 50 {
		t.Errorf("expected valley factor 50 after round trip, got %+v", entry)
	}
}

func TestLoad_MissingFileCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(c.Entries) == 0 {
		t.Fatal("expected default catalog")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected catalog file to be created: %v", err)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for corrupt catalog file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.xlsx")

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
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

func TestImportExcel_ValidEntries(t *testing.T) {
	path := createTestWorkbook(t, [][]interface{}{
		{"Category", "Brand", "Product Name", "UOM", "Factor", "Cost"},
		{"Shingles", "Malarkey", "Malarkey Vista", "BD", 3, 46.25},
		{"Ridge Cap", "Malarkey", "Malarkey EZ-Ridge", "BD", 25, "$61.00"},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Catalog.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Catalog.Entries))
	}

	e := result.Catalog.Entries[0]
	if e.Category != model.CategoryShingles {
		t.Errorf("expected shingles category, got %s", e.Category)
	}
	if e.Brand != "Malarkey" {
		t.Errorf("expected Malarkey, got %q", e.Brand)
	}
	if result.Catalog.Entries[1].UnitCost != 61 {
		t.Errorf("expected dollar prefix stripped, got %f", result.Catalog.Entries[1].UnitCost)
	}
}

func TestImportExcel_UnknownCategory(t *testing.T) {
	path := createTestWorkbook(t, [][]interface{}{
		{"Category", "Brand", "Factor", "Cost"},
		{"Gutters", "Acme", 10, 5},
	})

	result := ImportExcel(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for unknown category")
	}
	if len(result.Catalog.Entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(result.Catalog.Entries))
	}
}

func TestImportExcel_MissingRequiredColumns(t *testing.T) {
	path := createTestWorkbook(t, [][]interface{}{
		{"Category", "Brand"},
		{"Shingles", "GAF"},
	})

	result := ImportExcel(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for missing factor and cost columns")
	}
}

func TestImportExcel_InvalidFactor(t *testing.T) {
	path := createTestWorkbook(t, [][]interface{}{
		{"Category", "Brand", "Factor", "Cost"},
		{"Shingles", "GAF", 0, 42.50},
	})

	result := ImportExcel(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for zero packaging factor")
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/catalog.xlsx")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportExcel_MergeIntoDefault(t *testing.T) {
	path := createTestWorkbook(t, [][]interface{}{
		{"Category", "Brand", "Factor", "Cost"},
		{"Valley", "Malarkey", 40, 92},
	})

	result := ImportExcel(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	c := Default()
	c.Merge(result.Catalog)

	entry, ok := c.Resolve(model.CategoryValley, "Malarkey")
	if !ok || entry.PackagingFactor != 40 {
		t.Errorf("expected imported valley entry resolvable, got %+v", entry)
	}
	// Default valley brand is still first.
	def, _ := c.Resolve(model.CategoryValley, "")
	if def.Brand != "Generic" {
		t.Errorf("expected Generic to stay the default valley brand, got %q", def.Brand)
	}
}

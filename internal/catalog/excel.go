package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rooftally/rooftally/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the outcome of a catalog import.
type ImportResult struct {
	Catalog  Catalog
	Errors   []string
	Warnings []string
}

// columnMapping maps semantic column roles to their indices.
type columnMapping struct {
	Category  int
	Brand     int
	ProductID int
	Name      int
	ItemCode  int
	UOM       int
	Factor    int
	Cost      int
}

// headerAliases maps canonical column names to accepted aliases (lowercase).
var headerAliases = map[string][]string{
	"category":   {"category", "material", "material category", "type"},
	"brand":      {"brand", "manufacturer", "mfr", "maker"},
	"product_id": {"product id", "product_id", "id", "sku"},
	"name":       {"name", "product", "product name", "description", "desc"},
	"item_code":  {"item code", "item_code", "code", "item"},
	"uom":        {"uom", "unit", "unit of measure", "units"},
	"factor":     {"factor", "packaging factor", "packaging", "coverage", "lf per bundle", "sq per roll"},
	"cost":       {"cost", "unit cost", "price", "unit price"},
}

// categoryAliases maps loose spreadsheet category names onto the typed set.
var categoryAliases = map[string]model.MaterialCategory{
	"shingles":      model.CategoryShingles,
	"shingle":       model.CategoryShingles,
	"ridge cap":     model.CategoryRidgeCap,
	"ridge_cap":     model.CategoryRidgeCap,
	"ridge/hip cap": model.CategoryRidgeCap,
	"hip and ridge": model.CategoryRidgeCap,
	"starter":       model.CategoryStarter,
	"starter strip": model.CategoryStarter,
	"underlayment":  model.CategoryUnderlayment,
	"ice and water": model.CategoryIceWater,
	"ice & water":   model.CategoryIceWater,
	"ice_water":     model.CategoryIceWater,
	"valley":        model.CategoryValley,
	"drip edge":     model.CategoryDripEdge,
	"drip_edge":     model.CategoryDripEdge,
	"pipe vent":     model.CategoryPipeVent,
	"pipe_vent":     model.CategoryPipeVent,
	"skylight":      model.CategorySkylight,
	"chimney":       model.CategoryChimney,
}

// ImportExcel reads brand packaging entries from the first sheet of an
// Excel workbook. The header row is matched case-insensitively against
// known aliases.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(rows) < 2 {
		result.Errors = append(result.Errors, "Sheet has no data rows")
		return result
	}

	mapping, ok := detectColumns(rows[0])
	if !ok {
		result.Errors = append(result.Errors, "Required columns not found in header: Category, Brand, Factor, Cost")
		return result
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		entry, errMsg := parseRow(row, mapping, fmt.Sprintf("Row %d", i+1))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Catalog.Entries = append(result.Catalog.Entries, entry)
	}

	return result
}

// detectColumns matches the header row against known aliases. Category,
// brand, factor, and cost are required; the rest default to blank.
func detectColumns(row []string) (columnMapping, bool) {
	mapping := columnMapping{
		Category: -1, Brand: -1, ProductID: -1, Name: -1,
		ItemCode: -1, UOM: -1, Factor: -1, Cost: -1,
	}

	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				switch role {
				case "category":
					if mapping.Category == -1 {
						mapping.Category = i
					}
				case "brand":
					if mapping.Brand == -1 {
						mapping.Brand = i
					}
				case "product_id":
					if mapping.ProductID == -1 {
						mapping.ProductID = i
					}
				case "name":
					if mapping.Name == -1 {
						mapping.Name = i
					}
				case "item_code":
					if mapping.ItemCode == -1 {
						mapping.ItemCode = i
					}
				case "uom":
					if mapping.UOM == -1 {
						mapping.UOM = i
					}
				case "factor":
					if mapping.Factor == -1 {
						mapping.Factor = i
					}
				case "cost":
					if mapping.Cost == -1 {
						mapping.Cost = i
					}
				}
			}
		}
	}

	ok := mapping.Category != -1 && mapping.Brand != -1 && mapping.Factor != -1 && mapping.Cost != -1
	return mapping, ok
}

func parseRow(row []string, mapping columnMapping, rowLabel string) (Entry, string) {
	catStr := strings.ToLower(getCell(row, mapping.Category))
	cat, ok := categoryAliases[catStr]
	if !ok {
		return Entry{}, fmt.Sprintf("%s: Unknown material category '%s'", rowLabel, catStr)
	}

	brand := getCell(row, mapping.Brand)
	if brand == "" {
		return Entry{}, fmt.Sprintf("%s: Missing brand", rowLabel)
	}

	factorStr := getCell(row, mapping.Factor)
	factor, err := strconv.ParseFloat(factorStr, 64)
	if err != nil || factor <= 0 {
		return Entry{}, fmt.Sprintf("%s: Invalid packaging factor '%s'", rowLabel, factorStr)
	}

	costStr := strings.TrimPrefix(getCell(row, mapping.Cost), "$")
	cost, err := strconv.ParseFloat(costStr, 64)
	if err != nil || cost < 0 {
		return Entry{}, fmt.Sprintf("%s: Invalid unit cost '%s'", rowLabel, costStr)
	}

	return Entry{
		Category:        cat,
		Brand:           brand,
		ProductID:       getCell(row, mapping.ProductID),
		ProductName:     getCell(row, mapping.Name),
		ItemCode:        getCell(row, mapping.ItemCode),
		UnitOfMeasure:   getCell(row, mapping.UOM),
		PackagingFactor: factor,
		UnitCost:        cost,
	}, ""
}

// getCell safely retrieves a cell value by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Package importer reads roof measurement reports exported by measurement
// providers as CSV or Excel, one roof per row. It supports automatic
// delimiter detection and case-insensitive header aliases, since every
// provider names its columns differently.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rooftally/rooftally/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Summaries []model.MeasurementSummary
	Errors    []string
	Warnings  []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Area      int
	Squares   int
	Ridge     int
	Hip       int
	Valley    int
	Eave      int
	Rake      int
	Step      int
	Pitch     int
	Stories   int
	Waste     int
	PipeVents int
	Skylights int
	Chimneys  int
	Footprint int
}

// headerAliases maps canonical column names to their accepted aliases
// (all lowercase).
var headerAliases = map[string][]string{
	"area":       {"area", "total area", "total_area_sqft", "area sqft", "roof area", "sq ft", "sqft"},
	"squares":    {"squares", "total squares", "total_squares", "sq"},
	"ridge":      {"ridge", "lf_ridge", "ridge lf", "ridge length"},
	"hip":        {"hip", "lf_hip", "hip lf", "hips"},
	"valley":     {"valley", "lf_valley", "valley lf", "valleys"},
	"eave":       {"eave", "lf_eave", "eave lf", "eaves"},
	"rake":       {"rake", "lf_rake", "rake lf", "rakes"},
	"step":       {"step", "lf_step", "step flashing", "step lf"},
	"pitch":      {"pitch", "slope", "predominant pitch"},
	"stories":    {"stories", "storeys", "levels"},
	"waste":      {"waste", "waste %", "waste percent", "waste_percentage"},
	"pipe_vents": {"pipe vents", "pipe_vent", "vents", "pipes", "pipe boots"},
	"skylights":  {"skylights", "skylight"},
	"chimneys":   {"chimneys", "chimney"},
	"footprint":  {"footprint", "footprint wkt", "polygon", "outline"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter
// producing the most consistent multi-column split wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping plus
// whether a recognizable header was found. At minimum an area or squares
// column must be present.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Area: -1, Squares: -1, Ridge: -1, Hip: -1, Valley: -1,
		Eave: -1, Rake: -1, Step: -1, Pitch: -1, Stories: -1,
		Waste: -1, PipeVents: -1, Skylights: -1, Chimneys: -1, Footprint: -1,
	}

	assign := map[string]*int{
		"area": &mapping.Area, "squares": &mapping.Squares,
		"ridge": &mapping.Ridge, "hip": &mapping.Hip, "valley": &mapping.Valley,
		"eave": &mapping.Eave, "rake": &mapping.Rake, "step": &mapping.Step,
		"pitch": &mapping.Pitch, "stories": &mapping.Stories, "waste": &mapping.Waste,
		"pipe_vents": &mapping.PipeVents, "skylights": &mapping.Skylights,
		"chimneys": &mapping.Chimneys, "footprint": &mapping.Footprint,
	}

	found := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					found = true
					if target := assign[role]; *target == -1 {
						*target = i
					}
				}
			}
		}
	}

	ok := found && (mapping.Area != -1 || mapping.Squares != -1)
	return mapping, ok
}

// ImportCSV imports measurement summaries from a CSV file with automatic
// delimiter detection.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	return importCSVData(bytes.NewReader(data), delimiter, result.Warnings)
}

// ImportCSVFromReader imports from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	return importCSVData(reader, delimiter, nil)
}

func importCSVData(reader io.Reader, delimiter rune, warnings []string) ImportResult {
	result := ImportResult{Warnings: warnings}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportExcel imports measurement summaries from the first sheet of an
// Excel (.xlsx) file.
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
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	mapping, ok := DetectColumns(rows[0])
	if !ok {
		result.Errors = append(result.Errors, "No recognizable header row: need at least an Area or Squares column")
		return result
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		summary, errMsg, rowWarnings := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, rowWarnings...)
		result.Summaries = append(result.Summaries, summary)
	}

	if len(result.Summaries) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}

	return result
}

// parseRow extracts a MeasurementSummary from a row using the column
// mapping. Missing optional cells default to zero; a negative length or
// an unsupported waste percentage is an error for that row.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.MeasurementSummary, string, []string) {
	var warnings []string

	num := func(idx int, name string) (float64, string) {
		cell := getCell(row, idx)
		if cell == "" {
			return 0, ""
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return 0, fmt.Sprintf("%s: Invalid %s value '%s'", rowLabel, name, cell)
		}
		if v < 0 {
			return 0, fmt.Sprintf("%s: Negative %s value '%s'", rowLabel, name, cell)
		}
		return v, ""
	}

	s := model.MeasurementSummary{
		Penetrations: map[model.MaterialCategory]int{},
	}

	fields := []struct {
		idx  int
		name string
		dst  *float64
	}{
		{mapping.Area, "area", &s.AreaSqFt},
		{mapping.Squares, "squares", &s.Squares},
		{mapping.Ridge, "ridge", &s.LFRidge},
		{mapping.Hip, "hip", &s.LFHip},
		{mapping.Valley, "valley", &s.LFValley},
		{mapping.Eave, "eave", &s.LFEave},
		{mapping.Rake, "rake", &s.LFRake},
		{mapping.Step, "step", &s.LFStep},
		{mapping.Pitch, "pitch", &s.Pitch},
		{mapping.Waste, "waste", &s.WastePercent},
	}
	for _, f := range fields {
		v, errMsg := num(f.idx, f.name)
		if errMsg != "" {
			return model.MeasurementSummary{}, errMsg, nil
		}
		*f.dst = v
	}

	if s.AreaSqFt == 0 && s.Squares == 0 {
		return model.MeasurementSummary{}, fmt.Sprintf("%s: Missing area and squares", rowLabel), nil
	}

	if s.WastePercent != 0 && !model.IsAllowedWaste(s.WastePercent) {
		warnings = append(warnings, fmt.Sprintf("%s: Unsupported waste %.0f%%, resetting to 0", rowLabel, s.WastePercent))
		s.WastePercent = 0
	}

	stories, errMsg := num(mapping.Stories, "stories")
	if errMsg != "" {
		return model.MeasurementSummary{}, errMsg, nil
	}
	s.Stories = int(stories)

	counts := []struct {
		idx  int
		name string
		cat  model.MaterialCategory
	}{
		{mapping.PipeVents, "pipe vents", model.CategoryPipeVent},
		{mapping.Skylights, "skylights", model.CategorySkylight},
		{mapping.Chimneys, "chimneys", model.CategoryChimney},
	}
	for _, c := range counts {
		v, errMsg := num(c.idx, c.name)
		if errMsg != "" {
			return model.MeasurementSummary{}, errMsg, nil
		}
		if v > 0 {
			s.Penetrations[c.cat] = int(v)
		}
	}

	if wkt := getCell(row, mapping.Footprint); wkt != "" {
		if _, ok := model.ParseFootprint(wkt); ok {
			s.FootprintWKT = wkt
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unparseable footprint, treating geometry as unavailable", rowLabel))
		}
	}

	return s, "", warnings
}

// getCell safely retrieves a cell value by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

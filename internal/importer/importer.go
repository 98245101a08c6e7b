// Package importer provides CSV and Excel import of calculation entries.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition. Every imported row goes through the
// same validation as an entry typed into the form.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Fields   []model.Fields
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A value of -1 means the column is absent.
type ColumnMapping struct {
	Description int
	Length      int
	Width       int
	Thickness   int
	Girth       int
	Size        int
	Grade       int
	Quantity    int
	Bundle      int
	Rate        int
}

func emptyMapping() ColumnMapping {
	return ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1}
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"description": {"description", "desc", "item", "name", "product", "remarks"},
	"length":      {"length", "len", "l", "length (ft)", "l (ft)", "ft"},
	"width":       {"width", "w", "width (in)", "w (in)", "breadth"},
	"thickness":   {"thickness", "thick", "t", "thickness (in)", "t (in)", "height", "h"},
	"girth":       {"girth", "g", "girth (in)", "circumference", "gola"},
	"size":        {"size", "size label", "section", "profile"},
	"grade":       {"grade", "quality", "class"},
	"quantity":    {"quantity", "qty", "count", "nos", "pcs", "pieces"},
	"bundle":      {"bundle", "bundle size", "per bundle", "pcs/bundle"},
	"rate":        {"rate", "price", "unit price", "rate/cft", "rate/rft"},
}

func (m *ColumnMapping) slot(role string) *int {
	switch role {
	case "description":
		return &m.Description
	case "length":
		return &m.Length
	case "width":
		return &m.Width
	case "thickness":
		return &m.Thickness
	case "girth":
		return &m.Girth
	case "size":
		return &m.Size
	case "grade":
		return &m.Grade
	case "quantity":
		return &m.Quantity
	case "bundle":
		return &m.Bundle
	case "rate":
		return &m.Rate
	}
	return nil
}

// positional returns the column order assumed for headerless data.
func positional(module model.Module) ColumnMapping {
	m := emptyMapping()
	switch module {
	case model.ModuleRoundLog:
		m.Description, m.Length, m.Girth, m.Quantity, m.Rate = 0, 1, 2, 3, 4
	case model.ModuleBeading:
		m.Size, m.Grade, m.Length, m.Quantity, m.Bundle, m.Rate = 0, 1, 2, 3, 4, 5
	default:
		m.Description, m.Length, m.Width, m.Thickness, m.Quantity, m.Rate = 0, 1, 2, 3, 4, 5
	}
	return m
}

// requiredColumns lists the header columns a module cannot do without.
func requiredColumns(module model.Module) []string {
	switch module {
	case model.ModuleRoundLog:
		return []string{"length", "girth", "quantity"}
	case model.ModuleBeading:
		return []string{"length", "quantity"}
	default:
		return []string{"length", "width", "thickness", "quantity"}
	}
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
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

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive against the known aliases of each role; the
// first matching column wins. Returns the positional mapping of module and
// false when the row is not a header.
func DetectColumns(row []string, module model.Module) (ColumnMapping, bool) {
	mapping := emptyMapping()

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if p := mapping.slot(role); *p == -1 {
					*p = i
				}
			}
		}
	}

	if !isHeader {
		return positional(module), false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDecimal(row []string, idx int, name, rowLabel string) (decimal.Decimal, string) {
	s := getCell(row, idx)
	if s == "" {
		return decimal.Zero, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return d, ""
}

// parseRow extracts entry fields from a row using the given column mapping.
// Returns the fields, any error message, and any warning message.
func parseRow(module model.Module, row []string, mapping ColumnMapping, rowLabel string) (model.Fields, string, string) {
	var f model.Fields
	var msg string

	f.Description = getCell(row, mapping.Description)
	if f.LengthFt, msg = parseDecimal(row, mapping.Length, "length", rowLabel); msg != "" {
		return model.Fields{}, msg, ""
	}

	switch module {
	case model.ModuleSawnWood:
		if f.WidthIn, msg = parseDecimal(row, mapping.Width, "width", rowLabel); msg != "" {
			return model.Fields{}, msg, ""
		}
		if f.ThicknessIn, msg = parseDecimal(row, mapping.Thickness, "thickness", rowLabel); msg != "" {
			return model.Fields{}, msg, ""
		}
	case model.ModuleRoundLog:
		if f.GirthIn, msg = parseDecimal(row, mapping.Girth, "girth", rowLabel); msg != "" {
			return model.Fields{}, msg, ""
		}
	case model.ModuleBeading:
		f.SizeLabel = getCell(row, mapping.Size)
		f.Grade = getCell(row, mapping.Grade)
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return model.Fields{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), ""
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.Fields{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
	}
	f.Quantity = qty

	var warning string
	if bundleStr := getCell(row, mapping.Bundle); bundleStr != "" {
		if module != model.ModuleBeading {
			warning = fmt.Sprintf("%s: Bundle ignored for %s", rowLabel, module)
		} else {
			bundle, err := strconv.Atoi(bundleStr)
			if err != nil {
				return model.Fields{}, fmt.Sprintf("%s: Invalid bundle '%s'", rowLabel, bundleStr), ""
			}
			f.Bundle = bundle
		}
	}

	if getCell(row, mapping.Rate) != "" {
		rate, msg := parseDecimal(row, mapping.Rate, "rate", rowLabel)
		if msg != "" {
			return model.Fields{}, msg, ""
		}
		f.Rate = decimal.NewNullDecimal(rate)
	}

	if err := model.Validate(module, f); err != nil {
		return model.Fields{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}
	return f, "", warning
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

// ImportFile imports entries from a .csv, .txt, .xlsx or .xls file, picking
// the reader by extension.
func ImportFile(path string, module model.Module) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls", ".xlsm":
		return ImportExcel(path, module)
	default:
		return ImportCSV(path, module)
	}
}

// ImportCSV imports entries from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, module model.Module) ImportResult {
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

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(module, records, "Line", result.Warnings)
}

// ImportCSVFromReader imports entries from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, module model.Module) ImportResult {
	result := ImportResult{}

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

	return importFromRows(module, records, "Line", nil)
}

// ImportExcel imports entries from the first sheet of an Excel file.
func ImportExcel(path string, module model.Module) ImportResult {
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

	return importFromRows(module, rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(module model.Module, rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if !module.Valid() {
		result.Errors = append(result.Errors, fmt.Sprintf("Unknown module %q", module))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0], module)
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		for _, role := range requiredColumns(module) {
			if *mapping.slot(role) == -1 {
				missing = append(missing, strings.ToUpper(role[:1])+role[1:])
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if lengthCol := mapping.Length; lengthCol < len(rows[0]) {
		// An unrecognized header still has a non-numeric length cell
		if _, err := decimal.NewFromString(strings.TrimSpace(rows[0][lengthCol])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		fields, errMsg, warning := parseRow(module, row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Fields = append(result.Fields, fields)
	}

	return result
}

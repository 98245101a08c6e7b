package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/xuri/excelize/v2"
)

func hasMessage(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Desc,Length,Width,Thickness,Qty\nPlank,10,12,2,5\n", ','},
		{"semicolon", "Desc;Length;Width;Thickness;Qty\nPlank;10;12;2;5\n", ';'},
		{"tab", "Desc\tLength\tWidth\tThickness\tQty\nPlank\t10\t12\t2\t5\n", '\t'},
		{"pipe", "Desc|Length|Width|Thickness|Qty\nPlank|10|12|2|5\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_SawnWoodHeaders(t *testing.T) {
	row := []string{"Description", "Length", "Width", "Thickness", "Qty", "Rate"}
	mapping, isHeader := DetectColumns(row, model.ModuleSawnWood)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Description != 0 || mapping.Length != 1 || mapping.Width != 2 ||
		mapping.Thickness != 3 || mapping.Quantity != 4 || mapping.Rate != 5 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
	if mapping.Girth != -1 || mapping.Bundle != -1 {
		t.Errorf("expected absent columns to be -1, got %+v", mapping)
	}
}

func TestDetectColumns_CaseInsensitiveAliases(t *testing.T) {
	row := []string{"SIZE", "Quality", "LEN", "PCS", "Per Bundle", "Price"}
	mapping, isHeader := DetectColumns(row, model.ModuleBeading)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Size != 0 || mapping.Grade != 1 || mapping.Length != 2 ||
		mapping.Quantity != 3 || mapping.Bundle != 4 || mapping.Rate != 5 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_PositionalFallback(t *testing.T) {
	row := []string{"Log A", "10", "40", "2"}
	mapping, isHeader := DetectColumns(row, model.ModuleRoundLog)

	if isHeader {
		t.Error("expected no header")
	}
	if mapping != positional(model.ModuleRoundLog) {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
	if mapping.Girth != 2 {
		t.Errorf("expected Girth at 2, got %d", mapping.Girth)
	}
}

// ─── CSV Reader Import Tests ───────────────────────────────

func TestImportCSVFromReader_SawnWood(t *testing.T) {
	data := "Description,Length,Width,Thickness,Qty,Rate\nTeak,10,12,2,5,100\nSal,8,6,1.5,2,\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', model.ModuleSawnWood)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Fields) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Fields))
	}
	first := result.Fields[0]
	if first.Description != "Teak" || first.Quantity != 5 || first.LengthFt.String() != "10" {
		t.Errorf("unexpected first entry %+v", first)
	}
	if !first.Rate.Valid || first.Rate.Decimal.String() != "100" {
		t.Errorf("expected rate 100, got %+v", first.Rate)
	}
	if result.Fields[1].Rate.Valid {
		t.Error("expected empty rate to leave the entry unpriced")
	}
	if result.Fields[1].ThicknessIn.String() != "1.5" {
		t.Errorf("expected thickness 1.5, got %s", result.Fields[1].ThicknessIn)
	}
}

func TestImportCSVFromReader_RoundLogWithoutHeader(t *testing.T) {
	data := "Log A,10,40,2,250\nLog B,12,36,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', model.ModuleRoundLog)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Fields) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Fields))
	}
	if result.Fields[0].GirthIn.String() != "40" {
		t.Errorf("expected girth 40, got %s", result.Fields[0].GirthIn)
	}
}

func TestImportCSVFromReader_BeadingWithBundle(t *testing.T) {
	data := "Size,Grade,Length,Qty,Bundle,Rate\n2x1,1st Grade,12,3,2,5\n1x1,,10,4,,\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', model.ModuleBeading)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Fields) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Fields))
	}
	if f := result.Fields[0]; f.SizeLabel != "2x1" || f.Grade != "1st Grade" || f.Bundle != 2 {
		t.Errorf("unexpected first entry %+v", f)
	}
	if f := result.Fields[1]; f.Grade != "" || f.Bundle != 0 {
		t.Errorf("expected empty grade and bundle, got %+v", f)
	}
}

func TestImportCSVFromReader_BundleIgnoredOutsideBeading(t *testing.T) {
	data := "Length,Girth,Qty,Bundle\n10,40,1,3\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', model.ModuleRoundLog)

	if len(result.Fields) != 1 {
		t.Fatalf("expected 1 entry, got %d (errors: %v)", len(result.Fields), result.Errors)
	}
	if !hasMessage(result.Warnings, "Bundle ignored") {
		t.Errorf("expected bundle warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"zero length", "0,12,2,1", "Length must be greater than 0"},
		{"negative width", "10,-1,2,1", "Width must be greater than 0"},
		{"zero quantity", "10,12,2,0", "Quantity must be a whole number greater than 0"},
		{"fractional quantity", "10,12,2,1.5", "Invalid quantity '1.5'"},
		{"negative rate", "10,12,2,1,-5", "Rate cannot be negative"},
		{"bad number", "ten,12,2,1", "Invalid length 'ten'"},
		{"missing thickness", "10,12,,1", "Missing thickness value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "Length,Width,Thickness,Qty,Rate\n" + tt.row + "\n"
			result := ImportCSVFromReader(strings.NewReader(data), ',', model.ModuleSawnWood)

			if len(result.Fields) != 0 {
				t.Errorf("expected no entries, got %d", len(result.Fields))
			}
			if !hasMessage(result.Errors, "Line 2: "+tt.want) {
				t.Errorf("expected error %q, got %v", tt.want, result.Errors)
			}
		})
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Length,Girth,Qty\n10,40,1\n10,0,1\n\n12,36,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', model.ModuleRoundLog)

	if len(result.Fields) != 2 {
		t.Errorf("expected 2 entries, got %d", len(result.Fields))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Description,Length,Qty\nLog,10,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', model.ModuleRoundLog)

	if !hasMessage(result.Errors, "Required columns not found in header: Girth") {
		t.Errorf("expected missing Girth error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_UnknownHeaderSkipped(t *testing.T) {
	data := "Code,Len Ft,Girth In,Number\nA,10,40,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', model.ModuleRoundLog)

	if len(result.Fields) != 1 {
		t.Fatalf("expected 1 entry, got %d (errors: %v)", len(result.Fields), result.Errors)
	}
	if !hasMessage(result.Warnings, "Detected header row") {
		t.Errorf("expected header warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_ThousandsSeparator(t *testing.T) {
	data := "Length\tWidth\tThickness\tQty\tRate\n10\t12\t2\t1\t1,250.50\n"
	result := ImportCSVFromReader(strings.NewReader(data), '\t', model.ModuleSawnWood)

	if len(result.Fields) != 1 {
		t.Fatalf("expected 1 entry, got %d (errors: %v)", len(result.Fields), result.Errors)
	}
	if got := result.Fields[0].Rate.Decimal.String(); got != "1250.5" {
		t.Errorf("expected rate 1250.5, got %s", got)
	}
}

// ─── CSV File Import Tests ──────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.csv")
	content := "Length;Girth;Qty\n10;40;2\n12;36;1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportFile(path, model.ModuleRoundLog)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Fields) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Fields))
	}
	if !hasMessage(result.Warnings, "semicolon") {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/entries.csv", model.ModuleSawnWood)
	if !hasMessage(result.Errors, "Cannot open file") {
		t.Errorf("expected open error, got %v", result.Errors)
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path, model.ModuleSawnWood)
	if !hasMessage(result.Errors, "File is empty") {
		t.Errorf("expected empty file error, got %v", result.Errors)
	}
}

func TestImportFromRows_UnknownModule(t *testing.T) {
	result := importFromRows(model.Module("plywood"), [][]string{{"1"}}, "Line", nil)
	if !hasMessage(result.Errors, "Unknown module") {
		t.Errorf("expected unknown module error, got %v", result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entries.xlsx")

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
		{"Grade", "Size", "Length", "Qty", "Rate"},
		{"1st Grade", "2x1", 12, 3, 5.5},
		{"2nd Grade", "1x1", 10, 4, ""},
	})

	result := ImportFile(path, model.ModuleBeading)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Fields) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Fields))
	}
	if f := result.Fields[0]; f.Grade != "1st Grade" || f.SizeLabel != "2x1" || f.Rate.Decimal.String() != "5.5" {
		t.Errorf("unexpected first entry %+v", f)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Plank", 10, 12, 2, 5, 100},
	})

	result := ImportExcel(path, model.ModuleSawnWood)

	if len(result.Fields) != 1 {
		t.Fatalf("expected 1 entry, got %d (errors: %v)", len(result.Fields), result.Errors)
	}
	if result.Fields[0].Description != "Plank" {
		t.Errorf("expected description 'Plank', got %q", result.Fields[0].Description)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/path/entries.xlsx", model.ModuleSawnWood)
	if !hasMessage(result.Errors, "Cannot open Excel file") {
		t.Errorf("expected open error, got %v", result.Errors)
	}
}

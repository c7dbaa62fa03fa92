package services

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"boqworks/boq"
)

func exportDataFixture(t *testing.T, kind boq.ViewKind) ExportData {
	t.Helper()

	var view boq.View
	var err error
	if kind == boq.ViewClient {
		view, err = boq.ComposeClient(testEstimation())
	} else {
		view, err = boq.ComposeInternal(testEstimation())
	}
	if err != nil {
		t.Fatalf("compose error: %v", err)
	}
	return BuildExportData(view, testMeta())
}

func TestGenerateExcel_InternalView(t *testing.T) {
	data := exportDataFixture(t, boq.ViewInternal)

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Civil Works Phase 1" {
		t.Errorf("expected sheet name 'Civil Works Phase 1', got %v", sheets)
	}

	title, _ := f.GetCellValue(sheets[0], "A1")
	if title != "Civil Works Phase 1" {
		t.Errorf("expected title 'Civil Works Phase 1', got %q", title)
	}

	subtitle, _ := f.GetCellValue(sheets[0], "A2")
	if subtitle != "Internal Copy — Ref: EST-RW-25-001" {
		t.Errorf("unexpected subtitle %q", subtitle)
	}
}

func TestGenerateExcel_ClientView(t *testing.T) {
	data := exportDataFixture(t, boq.ViewClient)

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	// No cell anywhere should mention overhead or profit.
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	for _, row := range rows {
		for _, cell := range row {
			if cell == "    Overhead" || cell == "    Profit Margin" {
				t.Errorf("client workbook leaked markup row %q", cell)
			}
		}
	}
}

func TestGenerateExcel_EmptyRows(t *testing.T) {
	data := ExportData{
		Title:       "Empty BOQ",
		CreatedDate: "2025-01-15",
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}
}

func TestGenerateExcel_LongTitle(t *testing.T) {
	data := ExportData{
		Title:       "This is a very long title that exceeds thirty one characters",
		CreatedDate: "2025-01-15",
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets[0]) > 31 {
		t.Errorf("sheet name exceeds 31 chars: %d", len(sheets[0]))
	}
}

func TestGenerateExcel_EmptyTitle(t *testing.T) {
	data := ExportData{
		Title:       "",
		CreatedDate: "2025-01-15",
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheets[0] != "BOQ" {
		t.Errorf("expected default sheet name 'BOQ', got %q", sheets[0])
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"formula equals", "=SUM(A1)", "'=SUM(A1)"},
		{"plus", "+1", "'+1"},
		{"minus", "-1", "'-1"},
		{"at", "@cmd", "'@cmd"},
		{"pipe", "|cmd", "'|cmd"},
		{"normal", "Cement", "Cement"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeExcelCell(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

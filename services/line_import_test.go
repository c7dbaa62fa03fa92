package services

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// uploadFile adapts a byte slice to the multipart.File interface.
type uploadFile struct {
	*bytes.Reader
}

func (uploadFile) Close() error { return nil }

func newUpload(content []byte) multipart.File {
	return uploadFile{bytes.NewReader(content)}
}

func TestValidateLineImport_CSV(t *testing.T) {
	csvContent := strings.Join([]string{
		"Name,Qty,UOM,Rate,Amount",
		"Cement,10,Bag,60,600",
		"Sand,4,Cum,100,",
	}, "\n")

	result, err := ValidateLineImport(newUpload([]byte(csvContent)), "materials.csv")
	if err != nil {
		t.Fatalf("ValidateLineImport() error = %v", err)
	}

	if result.TotalRows != 2 {
		t.Errorf("TotalRows = %d, want 2", result.TotalRows)
	}
	if result.ValidRows != 2 {
		t.Errorf("ValidRows = %d, want 2; errors: %v", result.ValidRows, result.Errors)
	}
	if result.Lines[0].Name != "Cement" || result.Lines[0].Amount != 600 {
		t.Errorf("first line = %+v", result.Lines[0])
	}
	// Missing amount is derived from qty x rate.
	if result.Lines[1].Amount != 400 {
		t.Errorf("derived amount = %v, want 400", result.Lines[1].Amount)
	}
}

func TestValidateLineImport_AlternateHeaders(t *testing.T) {
	// Uploads from other estimating tools use different column names.
	csvContent := strings.Join([]string{
		"Description,Quantity,Unit,Unit Price,Total Cost",
		"Steel,5,Kg,80,400",
	}, "\n")

	result, err := ValidateLineImport(newUpload([]byte(csvContent)), "lines.csv")
	if err != nil {
		t.Fatalf("ValidateLineImport() error = %v", err)
	}

	if result.ValidRows != 1 {
		t.Fatalf("ValidRows = %d, want 1; errors: %v", result.ValidRows, result.Errors)
	}
	line := result.Lines[0]
	if line.Name != "Steel" || line.Quantity != 5 || line.Unit != "Kg" || line.Rate != 80 || line.Amount != 400 {
		t.Errorf("normalized line = %+v", line)
	}
}

func TestValidateLineImport_RowErrors(t *testing.T) {
	csvContent := strings.Join([]string{
		"Name,Qty,Rate",
		",10,60",          // missing name
		"Bricks,ten,4",    // non-numeric qty
		"Gravel,5,-2",     // negative rate
		"Cement,10,62.50", // valid
	}, "\n")

	result, err := ValidateLineImport(newUpload([]byte(csvContent)), "materials.csv")
	if err != nil {
		t.Fatalf("ValidateLineImport() error = %v", err)
	}

	if result.TotalRows != 4 {
		t.Errorf("TotalRows = %d, want 4", result.TotalRows)
	}
	if result.ErrorRows != 3 {
		t.Errorf("ErrorRows = %d, want 3; errors: %v", result.ErrorRows, result.Errors)
	}
	if result.ValidRows != 1 {
		t.Errorf("ValidRows = %d, want 1", result.ValidRows)
	}

	// Row numbers are 1-indexed including the header.
	if result.Errors[0].Row != 2 || result.Errors[0].Field != "Name" {
		t.Errorf("first error = %+v", result.Errors[0])
	}
}

func TestValidateLineImport_Excel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "Name")
	f.SetCellValue(sheet, "B1", "Qty")
	f.SetCellValue(sheet, "C1", "Rate")
	f.SetCellValue(sheet, "A2", "Cement")
	f.SetCellValue(sheet, "B2", 10)
	f.SetCellValue(sheet, "C2", 60)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write xlsx fixture: %v", err)
	}
	f.Close()

	result, err := ValidateLineImport(newUpload(buf.Bytes()), "materials.xlsx")
	if err != nil {
		t.Fatalf("ValidateLineImport() error = %v", err)
	}

	if result.ValidRows != 1 {
		t.Fatalf("ValidRows = %d, want 1; errors: %v", result.ValidRows, result.Errors)
	}
	if result.Lines[0].Amount != 600 {
		t.Errorf("derived amount = %v, want 600", result.Lines[0].Amount)
	}
}

func TestValidateLineImport_UnsupportedFormat(t *testing.T) {
	_, err := ValidateLineImport(newUpload([]byte("x")), "materials.pdf")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestValidateLineImport_HeaderOnly(t *testing.T) {
	_, err := ValidateLineImport(newUpload([]byte("Name,Qty,Rate")), "materials.csv")
	if err == nil {
		t.Fatal("expected error for file without data rows")
	}
}

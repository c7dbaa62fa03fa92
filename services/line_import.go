package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an
// uploaded material-line file.
type ValidationResult struct {
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Errors    []ValidationError `json:"errors"`
	Lines     []ImportedLine    `json:"-"`
	FileName  string            `json:"-"`
}

// ImportedLine is one normalized material line parsed from an upload.
type ImportedLine struct {
	Name     string
	Quantity float64
	Unit     string
	Rate     float64
	Amount   float64
}

// Accepted column headers, normalized to lowercase. Uploaded sheets
// come from several estimating tools that name the same columns
// differently; the alternates are folded here, at the boundary, so
// the engine never deals with loose field names.
var lineImportColumns = map[string]string{
	"name":        "name",
	"material":    "name",
	"description": "name",
	"qty":         "quantity",
	"quantity":    "quantity",
	"uom":         "unit",
	"unit":        "unit",
	"rate":        "rate",
	"unit price":  "rate",
	"unit_price":  "rate",
	"amount":      "amount",
	"total":       "amount",
	"total cost":  "amount",
	"total_cost":  "amount",
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file multipart.File) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapHeaders maps uploaded column headers to canonical field names.
// Unrecognized columns map to "" and are skipped during parsing.
func mapHeaders(headers []string) []string {
	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSuffix(norm, " *")
		norm = strings.TrimSpace(norm)
		mapped[i] = lineImportColumns[norm]
	}
	return mapped
}

// ValidateLineImport parses and validates an uploaded material-line
// file (.csv or .xlsx). Rows with errors are reported but do not stop
// the rest of the file from being parsed.
func ValidateLineImport(file multipart.File, fileName string) (*ValidationResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	if strings.HasSuffix(lowerName, ".csv") {
		headers, dataRows, err = parseCSV(file)
	} else if strings.HasSuffix(lowerName, ".xlsx") {
		headers, dataRows, err = parseExcel(file)
	} else {
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapHeaders(headers)

	result := &ValidationResult{
		TotalRows: len(dataRows),
		FileName:  fileName,
		Lines:     make([]ImportedLine, 0, len(dataRows)),
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		values := make(map[string]string)

		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			values[key] = value
		}

		line, rowErrors := parseImportedLine(rowNum, values)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
		}
		result.Lines = append(result.Lines, line)
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// parseImportedLine validates one mapped row. Name is required;
// numeric fields must parse and be non-negative; an empty amount is
// derived from quantity x rate.
func parseImportedLine(rowNum int, values map[string]string) (ImportedLine, []ValidationError) {
	var errs []ValidationError
	line := ImportedLine{
		Name: values["name"],
		Unit: values["unit"],
	}

	if line.Name == "" {
		errs = append(errs, ValidationError{Row: rowNum, Field: "Name", Message: "Name is required"})
	}

	parseNumber := func(field, label string) float64 {
		v := values[field]
		if v == "" {
			return 0
		}
		n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
		if err != nil {
			errs = append(errs, ValidationError{Row: rowNum, Field: label, Message: fmt.Sprintf("%s must be a number", label)})
			return 0
		}
		if n < 0 {
			errs = append(errs, ValidationError{Row: rowNum, Field: label, Message: fmt.Sprintf("%s must not be negative", label)})
			return 0
		}
		return n
	}

	line.Quantity = parseNumber("quantity", "Qty")
	line.Rate = parseNumber("rate", "Rate")
	line.Amount = parseNumber("amount", "Amount")

	if line.Amount == 0 {
		line.Amount = line.Quantity * line.Rate
	}

	return line, errs
}

package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates an Excel workbook from the given ExportData
// and returns the file contents as a byte slice. The same data drives
// both the internal and client presentations; ShowMarkup controls
// whether the markup rows and summary lines are rendered.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars).
	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "BOQ"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through G).
	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	lastCol := columns[len(columns)-1] // "G"

	widths := []float64{8, 44, 10, 10, 16, 18, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	lineStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}

	markupStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size:   10,
			Italic: true,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create markup style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-4) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	subtitle := data.ViewLabel
	if data.ReferenceNumber != "" {
		subtitle = fmt.Sprintf("%s — Ref: %s", subtitle, data.ReferenceNumber)
	}
	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge subtitle: %w", err)
	}
	f.SetCellValue(sheetName, "A2", sanitizeExcelCell(subtitle))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	if data.ProjectName != "" || data.ClientName != "" {
		if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
			return nil, fmt.Errorf("merge project: %w", err)
		}
		projectLine := data.ProjectName
		if data.ClientName != "" {
			projectLine = fmt.Sprintf("%s — %s", projectLine, data.ClientName)
		}
		f.SetCellValue(sheetName, "A3", sanitizeExcelCell(projectLine))
		f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A4", lastCol+"4"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A4", "Date: "+data.CreatedDate)
	f.SetCellStyle(sheetName, "A4", lastCol+"4", subtitleStyle)

	// ── Row 6: Column Headers ───────────────────────────────────────────

	headers := []string{"#", "Description", "Qty", "UOM", "Rate", "Amount", ""}
	for i, h := range headers {
		cell := fmt.Sprintf("%s6", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A6", lastCol+"6", headerStyle)

	// ── Data Rows (starting row 7) ──────────────────────────────────────

	row := 7
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, r.Index)

		desc := r.Description
		switch r.Level {
		case LevelLine:
			desc = "  " + desc
		case LevelMarkup:
			desc = "    " + desc
		}
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(desc))

		// Markup rows carry only an amount.
		if r.Level != LevelMarkup {
			f.SetCellValue(sheetName, "C"+rowStr, r.Qty)
			f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.UOM))
			f.SetCellValue(sheetName, "E"+rowStr, FormatAmount(r.Rate))
		}
		f.SetCellValue(sheetName, "F"+rowStr, FormatAmount(r.Amount))

		style := lineStyle
		switch r.Level {
		case LevelItem:
			style = itemStyle
		case LevelMarkup:
			style = markupStyle
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, style)

		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	row++

	writeSummary := func(label, value string) {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "D"+rowStr, label)
		f.SetCellStyle(sheetName, "D"+rowStr, "E"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "F"+rowStr, value)
		f.SetCellStyle(sheetName, "F"+rowStr, "F"+rowStr, summaryValueStyle)
		row++
	}

	if data.ShowMarkup {
		writeSummary("Material Cost:", FormatAmount(data.MaterialCost))
		writeSummary("Labour Cost:", FormatAmount(data.LabourCost))
		writeSummary(fmt.Sprintf("Overhead (%s):", FormatPercent(data.AvgOverheadPct)), FormatAmount(data.Overhead))
		writeSummary(fmt.Sprintf("Profit Margin (%s):", FormatPercent(data.AvgProfitPct)), FormatAmount(data.Profit))
	} else {
		writeSummary("Subtotal:", FormatAmount(data.BaseCost+data.Overhead+data.Profit))
	}
	writeSummary(fmt.Sprintf("Less: Discount (%s):", FormatPercent(data.AvgDiscountPct)), FormatAmount(data.Discount))
	writeSummary(fmt.Sprintf("VAT (%s):", FormatPercent(data.AvgVATPct)), FormatAmount(data.VAT))
	writeSummary("Grand Total:", FormatAmount(data.GrandTotal))

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}

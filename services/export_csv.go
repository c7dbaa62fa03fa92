package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// GenerateCSV creates a CSV rendering of the export data. It carries
// the same rows and totals as the Excel and PDF documents, just flat:
// a metadata preamble, the row table, and the summary block.
func GenerateCSV(data ExportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	preamble := [][]string{
		{"Title", data.Title},
		{"View", data.ViewLabel},
		{"Reference", data.ReferenceNumber},
		{"Project", data.ProjectName},
		{"Client", data.ClientName},
		{"Date", data.CreatedDate},
		{},
	}
	for _, rec := range preamble {
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write csv preamble: %w", err)
		}
	}

	if err := w.Write([]string{"#", "Description", "Qty", "UOM", "Rate", "Amount"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range data.Rows {
		rec := []string{r.Index, r.Description, "", "", "", FormatAmount(r.Amount)}
		if r.Level != LevelMarkup {
			rec[2] = FormatQty(r.Qty)
			rec[3] = r.UOM
			rec[4] = FormatAmount(r.Rate)
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	summary := [][]string{
		{},
	}
	if data.ShowMarkup {
		summary = append(summary,
			[]string{"", "Material Cost", "", "", "", FormatAmount(data.MaterialCost)},
			[]string{"", "Labour Cost", "", "", "", FormatAmount(data.LabourCost)},
			[]string{"", fmt.Sprintf("Overhead (%s)", FormatPercent(data.AvgOverheadPct)), "", "", "", FormatAmount(data.Overhead)},
			[]string{"", fmt.Sprintf("Profit Margin (%s)", FormatPercent(data.AvgProfitPct)), "", "", "", FormatAmount(data.Profit)},
		)
	} else {
		summary = append(summary,
			[]string{"", "Subtotal", "", "", "", FormatAmount(data.BaseCost + data.Overhead + data.Profit)},
		)
	}
	summary = append(summary,
		[]string{"", fmt.Sprintf("Less: Discount (%s)", FormatPercent(data.AvgDiscountPct)), "", "", "", FormatAmount(data.Discount)},
		[]string{"", fmt.Sprintf("VAT (%s)", FormatPercent(data.AvgVATPct)), "", "", "", FormatAmount(data.VAT)},
		[]string{"", "Grand Total", "", "", "", FormatAmount(data.GrandTotal)},
	)
	for _, rec := range summary {
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write csv summary: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

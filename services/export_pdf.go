package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates a PDF document from BOQ export data using
// maroto/v2. It returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addTableHeader(m)
	for _, r := range data.Rows {
		addTableRow(m, r)
	}
	addSummary(m, data)
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the title, view label, project line and date.
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(data.ViewLabel, props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Center,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
	)

	projectLine := data.ProjectName
	if data.ClientName != "" {
		projectLine = fmt.Sprintf("%s — %s", projectLine, data.ClientName)
	}
	if data.Location != "" {
		projectLine = fmt.Sprintf("%s (%s)", projectLine, data.Location)
	}

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(projectLine, props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Ref: %s    Date: %s", data.ReferenceNumber, data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addTableHeader adds the column header row for the BOQ table.
func addTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(5).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("UOM", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Rate", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Amount", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addTableRow adds a single data row, styled by row level.
func addTableRow(m core.Maroto, r ExportRow) {
	var cellStyle *props.Cell
	var textSize float64 = 7
	var textStyle fontstyle.Type = fontstyle.Normal
	descPrefix := ""

	switch r.Level {
	case LevelItem:
		// Line item: bold, white background.
		textStyle = fontstyle.Bold
		textSize = 8
	case LevelLine:
		// Material/labour line: indented, light gray background.
		descPrefix = "  "
		bg := &props.Color{Red: 245, Green: 245, Blue: 245}
		cellStyle = &props.Cell{BackgroundColor: bg}
	case LevelMarkup:
		// Markup component: double-indented, italic, darker gray.
		descPrefix = "    "
		textStyle = fontstyle.Italic
		bg := &props.Color{Red: 235, Green: 235, Blue: 235}
		cellStyle = &props.Cell{BackgroundColor: bg}
	}

	baseText := props.Text{
		Size:  textSize,
		Style: textStyle,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	qtyStr := ""
	uomStr := ""
	rateStr := ""
	if r.Level != LevelMarkup {
		qtyStr = FormatQty(r.Qty)
		uomStr = r.UOM
		rateStr = FormatAmount(r.Rate)
	}

	colIndex := col.New(1).Add(text.New(r.Index, baseText))
	colDesc := col.New(5).Add(text.New(descPrefix+r.Description, leftText))
	colQty := col.New(1).Add(text.New(qtyStr, rightText))
	colUOM := col.New(1).Add(text.New(uomStr, baseText))
	colRate := col.New(2).Add(text.New(rateStr, rightText))
	colAmount := col.New(2).Add(text.New(FormatAmount(r.Amount), rightText))

	if cellStyle != nil {
		colIndex = colIndex.WithStyle(cellStyle)
		colDesc = colDesc.WithStyle(cellStyle)
		colQty = colQty.WithStyle(cellStyle)
		colUOM = colUOM.WithStyle(cellStyle)
		colRate = colRate.WithStyle(cellStyle)
		colAmount = colAmount.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colIndex,
			colDesc,
			colQty,
			colUOM,
			colRate,
			colAmount,
		),
	)
}

// addSummary adds the totals block at the bottom of the PDF. The
// internal copy itemizes every component; the client copy shows only
// subtotal, discount, VAT and grand total.
func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	addLine := func(label string, amount float64) {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(FormatAmount(amount), valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}

	if data.ShowMarkup {
		addLine("Material Cost", data.MaterialCost)
		addLine("Labour Cost", data.LabourCost)
		addLine(fmt.Sprintf("Overhead (%s)", FormatPercent(data.AvgOverheadPct)), data.Overhead)
		addLine(fmt.Sprintf("Profit Margin (%s)", FormatPercent(data.AvgProfitPct)), data.Profit)
	} else {
		addLine("Subtotal", data.BaseCost+data.Overhead+data.Profit)
	}
	addLine(fmt.Sprintf("Less: Discount (%s)", FormatPercent(data.AvgDiscountPct)), data.Discount)
	addLine(fmt.Sprintf("VAT (%s)", FormatPercent(data.AvgVATPct)), data.VAT)
	addLine("Grand Total", data.GrandTotal)

	// Grand total in words.
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New(AmountToWords(data.GrandTotal), props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Right,
				}),
			),
		),
	)
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}

// Package pdf renders the VAT201 return as a printable summary.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Company + VAT number  │  Period + Status            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OUTPUT TAX: fields 1..13                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INPUT TAX: fields 14..19                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL VAT PAYABLE / REFUNDABLE                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appvatreturn "github.com/csf-za/tax-compliance-api/internal/application/vatreturn"
	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appvatreturn.PDFGenerator = (*VAT201Generator)(nil)

// VAT201Generator implements vatreturn.PDFGenerator using Maroto v2.
type VAT201Generator struct{}

// NewVAT201Generator builds the generator.
func NewVAT201Generator() *VAT201Generator { return &VAT201Generator{} }

// GenerateVAT201 renders the return summary and returns the PDF bytes.
func (g *VAT201Generator) GenerateVAT201(
	_ context.Context,
	ret *entity.VATReturn,
	company *entity.Company,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("VAT201 Return", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(ret, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("CALCULATION OF OUTPUT TAX"))
	for _, r := range outputTaxRows(ret) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionRow("CALCULATION OF INPUT TAX"))
	for _, r := range inputTaxRows(ret) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(grandTotalRow(ret))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: company and VAT number left, tax period and status right.
func headerRow(ret *entity.VATReturn, company *entity.Company) core.Row {
	period := ret.DateFrom.Format("2006-01-02") + "  to  " + ret.DateTo.Format("2006-01-02")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("VAT Registration No: "+company.VATNumber, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("VAT201 RETURN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Status: "+ret.Status, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

// fieldLine describes one statutory line: field code, label, amount.
type fieldLine struct {
	code   string
	label  string
	amount decimal.Decimal
	bold   bool
}

func outputTaxRows(ret *entity.VATReturn) []core.Row {
	return fieldRows([]fieldLine{
		{"1", "Standard rate supplies (excl capital goods), excl VAT", ret.StandardRateMainExcl, false},
		{"1A", "Standard rate supplies (only capital goods), excl VAT", ret.StandardRateCapitalExcl, false},
		{"2", "Zero rated supplies (excl goods exported)", ret.ZeroRateMainExcl, false},
		{"2A", "Zero rated supplies (only goods exported)", ret.ZeroRateExportedExcl, false},
		{"3", "Exempt and non-supplies", ret.ExemptExcl, false},
		{"4", "Output tax on standard rate supplies", ret.StandardRateMainIncl, false},
		{"4A", "Output tax on capital goods supplies", ret.StandardRateCapitalIncl, false},
		{"5", "Accommodation exceeding 28 days, gross", ret.AccExceed28Days, false},
		{"6", "Accommodation exceeding 28 days, adjusted", ret.AccExceed28DaysTotal, false},
		{"7", "Accommodation not exceeding 28 days", ret.AccNotExceed28Days, false},
		{"8", "Total accommodation, excl VAT", ret.AccTotalExcl, false},
		{"9", "Tax on total accommodation", ret.AccTotalIncl, false},
		{"10", "Change in use adjustment, excl VAT", ret.AdjChangeInUseExcl, false},
		{"11", "Tax on change in use adjustment", ret.AdjChangeInUseIncl, false},
		{"12", "Other adjustments, incl VAT", ret.AdjOtherIncl, false},
		{"13", "TOTAL OUTPUT TAX", ret.TotalOutputTax, true},
	})
}

func inputTaxRows(ret *entity.VATReturn) []core.Row {
	return fieldRows([]fieldLine{
		{"14", "Capital goods and/or services supplied to you (local)", ret.CapitalGoodsSupplied, false},
		{"14A", "Capital goods imported", ret.CapitalGoodsImported, false},
		{"15", "Other goods supplied to you (excl capital goods)", ret.OtherGoodsSupplied, false},
		{"15A", "Other goods imported (excl capital goods)", ret.OtherGoodsImported, false},
		{"16", "Change in use", ret.ChangeInUse, false},
		{"17", "Bad debts", ret.BadDebts, false},
		{"18", "Other", ret.Other, false},
		{"19", "TOTAL INPUT TAX", ret.TotalInputTax, true},
	})
}

func fieldRows(fields []fieldLine) []core.Row {
	rows := make([]core.Row, 0, len(fields))
	for _, f := range fields {
		style := fontstyle.Normal
		color := colorGray
		if f.bold {
			style = fontstyle.Bold
			color = colorPrimary
		}
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(f.code, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(8).Add(text.New(f.label, props.Text{
				Style: style, Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(3).Add(text.New("R "+f.amount.StringFixed(2), props.Text{
				Style: style, Size: 8, Align: align.Right, Top: 1, Right: 1, Color: color,
			})),
		))
	}
	return rows
}

// grandTotalRow: payable when positive, refundable when negative.
func grandTotalRow(ret *entity.VATReturn) core.Row {
	label := "TOTAL VAT PAYABLE"
	if ret.TotalVATPayableRefundable.IsNegative() {
		label = "TOTAL VAT REFUNDABLE"
	}
	return row.New(12).Add(
		col.New(9).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New("R "+ret.TotalVATPayableRefundable.Abs().StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

// Package xlsx serializes rendered reports as Excel workbooks.
package xlsx

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	"github.com/csf-za/tax-compliance-api/internal/application/report"
)

var _ report.Exporter = (*ReportExporter)(nil)

const sheetName = "Linked Transactions"

// ReportExporter implements report.Exporter using excelize.
type ReportExporter struct{}

// NewReportExporter builds the exporter.
func NewReportExporter() *ReportExporter { return &ReportExporter{} }

// Export writes the report into a single-sheet workbook: a bold header
// row from the column schema, then one row per report row. Grouped
// reports keep their header, subtotal and blank separator rows.
func (e *ReportExporter) Export(resp *dto.ReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: header style: %w", err)
	}

	for i, c := range resp.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx: header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, c.Label); err != nil {
			return nil, fmt.Errorf("xlsx: write header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("xlsx: style header: %w", err)
		}
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx: column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, colName, colName, float64(c.Width)/7); err != nil {
			return nil, fmt.Errorf("xlsx: column width: %w", err)
		}
	}

	for i, r := range resp.Rows {
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", i+2), &[]any{
			r.Name,
			r.GLEntry,
			r.VoucherType,
			r.VoucherNo,
			r.PostingDate,
			r.TaxesAndCharges,
			decimalCell(r.TaxDebit),
			decimalCell(r.TaxCredit),
			decimalCell(r.TaxAmount),
			decimalCell(r.InclTaxAmount),
		}); err != nil {
			return nil, fmt.Errorf("xlsx: write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// decimalCell yields a numeric cell value, or an empty cell for nulls.
func decimalCell(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	v, _ := d.Float64()
	return v
}

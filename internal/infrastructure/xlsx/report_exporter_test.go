package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	"github.com/csf-za/tax-compliance-api/internal/infrastructure/xlsx"
)

func d(v int64) *decimal.Decimal {
	dec := decimal.NewFromInt(v)
	return &dec
}

func sampleResponse() *dto.ReportResponse {
	return &dto.ReportResponse{
		Columns: []dto.ReportColumn{
			{FieldName: "name", Label: "VAT Return", Width: 300},
			{FieldName: "gl_entry", Label: "GL Entry", Width: 200},
			{FieldName: "voucher_type", Label: "Voucher Type", Width: 150},
			{FieldName: "voucher_no", Label: "Voucher No", Width: 200},
			{FieldName: "posting_date", Label: "Posting Date", Width: 200},
			{FieldName: "taxes_and_charges", Label: "Taxes and Charges Template", Width: 200},
			{FieldName: "tax_account_debit", Label: "Tax Account Debit", Width: 100},
			{FieldName: "tax_account_credit", Label: "Tax Account Credit", Width: 100},
			{FieldName: "tax_amount", Label: "Tax Amount", Width: 100},
			{FieldName: "incl_tax_amount", Label: "Incl. Tax Amount", Width: 100},
		},
		Rows: []dto.ReportRow{
			{
				Name:          "ACC-VTR-2024-00007",
				GLEntry:       "ACC-GLE-2024-11691",
				VoucherType:   "Sales Invoice",
				VoucherNo:     "SINV-0001",
				PostingDate:   "2024-02-05",
				TaxDebit:      d(0),
				TaxCredit:     d(150),
				TaxAmount:     d(150),
				InclTaxAmount: d(1150),
			},
		},
	}
}

// The return id and GL entry id land in separate cells under their own
// headers.
func TestExport_ReturnAndGLEntryInOwnColumns(t *testing.T) {
	out, err := xlsx.NewReportExporter().Export(sampleResponse())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	a1, err := f.GetCellValue("Linked Transactions", "A1")
	require.NoError(t, err)
	assert.Equal(t, "VAT Return", a1)
	b1, err := f.GetCellValue("Linked Transactions", "B1")
	require.NoError(t, err)
	assert.Equal(t, "GL Entry", b1)

	a2, err := f.GetCellValue("Linked Transactions", "A2")
	require.NoError(t, err)
	assert.Equal(t, "ACC-VTR-2024-00007", a2)
	b2, err := f.GetCellValue("Linked Transactions", "B2")
	require.NoError(t, err)
	assert.Equal(t, "ACC-GLE-2024-11691", b2)
}

func TestExport_NullAmountsLeaveCellsEmpty(t *testing.T) {
	resp := sampleResponse()
	resp.Rows[0].TaxAmount = nil

	out, err := xlsx.NewReportExporter().Export(resp)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	i2, err := f.GetCellValue("Linked Transactions", "I2")
	require.NoError(t, err)
	assert.Empty(t, i2)
	j2, err := f.GetCellValue("Linked Transactions", "J2")
	require.NoError(t, err)
	assert.Equal(t, "1150", j2)
}

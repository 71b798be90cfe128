package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	"github.com/csf-za/tax-compliance-api/internal/application/report"
	"github.com/csf-za/tax-compliance-api/internal/domain"
	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
	"github.com/csf-za/tax-compliance-api/internal/domain/vat"
)

const (
	testCompanyID = "co-1"
	testReturnID  = "ret-1"
)

type fakeReturnRepo struct {
	ret *entity.VATReturn
}

func (f *fakeReturnRepo) Create(*entity.VATReturn) error { return nil }
func (f *fakeReturnRepo) GetByID(id string) (*entity.VATReturn, error) {
	if f.ret != nil && f.ret.ID == id {
		return f.ret, nil
	}
	return nil, nil
}
func (f *fakeReturnRepo) Update(*entity.VATReturn) error                   { return nil }
func (f *fakeReturnRepo) ReplaceLines(string, []entity.VATReturnLine) error { return nil }
func (f *fakeReturnRepo) SetLineClassification(string, string, string) error {
	return nil
}

type fakeExporter struct {
	exported *dto.ReportResponse
}

func (f *fakeExporter) Export(resp *dto.ReportResponse) ([]byte, error) {
	f.exported = resp
	return []byte("xlsx"), nil
}

func line(id, voucherNo string, day int, classification string, tax, incl int64) entity.VATReturnLine {
	return entity.VATReturnLine{
		ID:             id,
		ReturnID:       testReturnID,
		GLEntry:        "GL-" + id,
		VoucherType:    entity.VoucherTypeSalesInvoice,
		VoucherNo:      voucherNo,
		PostingDate:    time.Date(2024, 2, day, 0, 0, 0, 0, time.UTC),
		TaxDebit:       decimal.Zero,
		TaxCredit:      decimal.NewFromInt(tax),
		TaxAmount:      decimal.NullDecimal{Decimal: decimal.NewFromInt(tax), Valid: true},
		InclTaxAmount:  decimal.NullDecimal{Decimal: decimal.NewFromInt(incl), Valid: true},
		Classification: classification,
	}
}

func newUseCase(lines []entity.VATReturnLine) (*report.UseCase, *fakeExporter) {
	repo := &fakeReturnRepo{ret: &entity.VATReturn{
		ID:        testReturnID,
		CompanyID: testCompanyID,
		Lines:     lines,
	}}
	exporter := &fakeExporter{}
	return report.NewUseCase(repo, exporter), exporter
}

func TestRun_RequiresReturnFilter(t *testing.T) {
	uc, _ := newUseCase(nil)

	_, err := uc.Run(context.Background(), testCompanyID, dto.ReportFilters{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRun_OtherCompanyIsForbidden(t *testing.T) {
	uc, _ := newUseCase(nil)

	_, err := uc.Run(context.Background(), "co-2", dto.ReportFilters{VATReturn: testReturnID})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRun_FlatRowsSortedByDateThenVoucher(t *testing.T) {
	uc, _ := newUseCase([]entity.VATReturnLine{
		line("l1", "SINV-0002", 10, string(vat.OutputStandardRate), 150, 1150),
		line("l2", "SINV-0001", 10, string(vat.OutputStandardRate), 300, 2300),
		line("l3", "SINV-0003", 5, string(vat.OutputStandardRate), 75, 575),
	})

	resp, err := uc.Run(context.Background(), testCompanyID, dto.ReportFilters{VATReturn: testReturnID})

	require.NoError(t, err)
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, "SINV-0003", resp.Rows[0].VoucherNo, "earlier posting date first")
	assert.Equal(t, "SINV-0001", resp.Rows[1].VoucherNo, "same day ordered by voucher number")
	assert.Equal(t, "SINV-0002", resp.Rows[2].VoucherNo)
	assert.Equal(t, testReturnID, resp.Rows[0].Name, "first column links back to the return")
	assert.Equal(t, "GL-l3", resp.Rows[0].GLEntry)
}

// The first column is the return link. It doubles as the label cell on
// the grouped variant's header and subtotal rows, so the GL entry id
// gets its own column.
func TestColumns_ReturnLinkFirst(t *testing.T) {
	uc, _ := newUseCase(nil)

	cols := uc.Columns()

	require.Len(t, cols, 10)
	assert.Equal(t, "name", cols[0].FieldName)
	assert.Equal(t, "VAT Return", cols[0].Label)
	assert.Equal(t, "gl_entry", cols[1].FieldName)
	assert.Equal(t, "incl_tax_amount", cols[9].FieldName)
}

func TestRun_ClassificationFilter(t *testing.T) {
	uc, _ := newUseCase([]entity.VATReturnLine{
		line("l1", "SINV-0001", 5, string(vat.OutputStandardRate), 150, 1150),
		line("l2", "PINV-0001", 6, string(vat.InputOtherLocal), 75, 575),
	})

	resp, err := uc.Run(context.Background(), testCompanyID, dto.ReportFilters{
		VATReturn:      testReturnID,
		Classification: string(vat.InputOtherLocal),
	})

	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "PINV-0001", resp.Rows[0].VoucherNo)
}

// The grouped variant renders one section per classification label in
// display order: a header row carrying the label, the lines, a "Total"
// subtotal and a blank separator. Labels without lines still emit a
// zero-valued subtotal.
func TestRun_GroupedRowsWithSubtotals(t *testing.T) {
	uc, _ := newUseCase([]entity.VATReturnLine{
		line("l1", "SINV-0001", 5, string(vat.OutputStandardRate), 150, 1150),
		line("l2", "SINV-0002", 6, string(vat.OutputStandardRate), 300, 2300),
		line("l3", "SINV-0003", 7, "", 0, 0),
	})

	resp, err := uc.Run(context.Background(), testCompanyID, dto.ReportFilters{
		VATReturn:              testReturnID,
		ShowAllClassifications: true,
	})

	require.NoError(t, err)
	// Eleven sections of (header + lines + subtotal + separator): one
	// per label, three lines spread over the first two sections.
	labels := vat.All()
	require.Len(t, resp.Rows, len(labels)*3+3)

	assert.Equal(t, report.UnclassifiedLabel, resp.Rows[0].Name)
	assert.Equal(t, "SINV-0003", resp.Rows[1].VoucherNo)
	assert.Equal(t, testReturnID, resp.Rows[1].Name, "data rows keep the return link")
	assert.Equal(t, "Total", resp.Rows[2].Name)
	assert.Equal(t, dto.ReportRow{}, resp.Rows[3], "sections are separated by a blank row")

	assert.Equal(t, string(vat.OutputStandardRate), resp.Rows[4].Name)
	subtotal := resp.Rows[7]
	assert.Equal(t, "Total", subtotal.Name)
	require.NotNil(t, subtotal.TaxAmount)
	assert.True(t, subtotal.TaxAmount.Equal(decimal.NewFromInt(450)))
	require.NotNil(t, subtotal.InclTaxAmount)
	assert.True(t, subtotal.InclTaxAmount.Equal(decimal.NewFromInt(3450)))
	assert.Equal(t, dto.ReportRow{}, resp.Rows[8])

	// First empty section still carries a zero subtotal.
	assert.Equal(t, string(labels[2]), resp.Rows[9].Name)
	emptySubtotal := resp.Rows[10]
	assert.Equal(t, "Total", emptySubtotal.Name)
	require.NotNil(t, emptySubtotal.TaxAmount)
	assert.True(t, emptySubtotal.TaxAmount.IsZero())
	assert.Equal(t, dto.ReportRow{}, resp.Rows[11])
}

func TestExportXLSX_FeedsRunResultToExporter(t *testing.T) {
	uc, exporter := newUseCase([]entity.VATReturnLine{
		line("l1", "SINV-0001", 5, string(vat.OutputStandardRate), 150, 1150),
	})

	out, err := uc.ExportXLSX(context.Background(), testCompanyID, dto.ReportFilters{VATReturn: testReturnID})

	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), out)
	require.NotNil(t, exporter.exported)
	assert.Len(t, exporter.exported.Columns, 10)
	assert.Len(t, exporter.exported.Rows, 1)
}

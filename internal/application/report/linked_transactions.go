package report

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	"github.com/csf-za/tax-compliance-api/internal/domain"
	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
	"github.com/csf-za/tax-compliance-api/internal/domain/repository"
	"github.com/csf-za/tax-compliance-api/internal/domain/vat"
)

// UnclassifiedLabel is the display name used for lines without a
// classification in the grouped report.
const UnclassifiedLabel = "Unclassified"

// Exporter serializes a rendered report into a downloadable workbook.
type Exporter interface {
	Export(resp *dto.ReportResponse) ([]byte, error)
}

// UseCase renders the VAT return linked-transactions report: the
// return's GL lines either flat (optionally filtered to one
// classification) or grouped per classification with subtotal rows.
type UseCase struct {
	returns  repository.VATReturnRepository
	exporter Exporter
}

// NewUseCase builds the use case.
func NewUseCase(returns repository.VATReturnRepository, exporter Exporter) *UseCase {
	return &UseCase{returns: returns, exporter: exporter}
}

// Columns returns the report's fixed column schema. The first column
// carries the return id on data rows and the group-header and "Total"
// labels on the grouped variant's synthetic rows.
func (uc *UseCase) Columns() []dto.ReportColumn {
	return []dto.ReportColumn{
		{FieldName: "name", Label: "VAT Return", FieldType: "Link", Width: 300},
		{FieldName: "gl_entry", Label: "GL Entry", FieldType: "Link", Width: 200},
		{FieldName: "voucher_type", Label: "Voucher Type", FieldType: "Data", Width: 150},
		{FieldName: "voucher_no", Label: "Voucher No", FieldType: "Dynamic Link", Width: 200},
		{FieldName: "posting_date", Label: "Posting Date", FieldType: "Date", Width: 200},
		{FieldName: "taxes_and_charges", Label: "Taxes and Charges Template", FieldType: "Data", Width: 200},
		{FieldName: "tax_account_debit", Label: "Tax Account Debit", FieldType: "Currency", Width: 100},
		{FieldName: "tax_account_credit", Label: "Tax Account Credit", FieldType: "Currency", Width: 100},
		{FieldName: "tax_amount", Label: "Tax Amount", FieldType: "Currency", Width: 100},
		{FieldName: "incl_tax_amount", Label: "Incl. Tax Amount", FieldType: "Currency", Width: 100},
	}
}

// Run executes the report for the filtered return. With
// ShowAllClassifications set, rows come grouped per classification label
// in display order, each group followed by a "Total" subtotal row and a
// blank separator; otherwise rows come flat, optionally restricted to one
// classification.
func (uc *UseCase) Run(_ context.Context, companyID string, filters dto.ReportFilters) (*dto.ReportResponse, error) {
	if filters.VATReturn == "" {
		return nil, domain.ErrInvalidInput
	}
	ret, err := uc.returns.GetByID(filters.VATReturn)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	if ret.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	resp := &dto.ReportResponse{Columns: uc.Columns(), Rows: []dto.ReportRow{}}
	if filters.ShowAllClassifications {
		resp.Rows = groupedRows(ret.ID, ret.Lines)
		return resp, nil
	}

	lines := ret.Lines
	if filters.Classification != "" {
		lines = filterByClassification(lines, filters.Classification)
	}
	sortLines(lines)
	for _, l := range lines {
		resp.Rows = append(resp.Rows, toRow(ret.ID, l))
	}
	return resp, nil
}

// ExportXLSX runs the report and serializes it as an Excel workbook.
func (uc *UseCase) ExportXLSX(ctx context.Context, companyID string, filters dto.ReportFilters) ([]byte, error) {
	resp, err := uc.Run(ctx, companyID, filters)
	if err != nil {
		return nil, err
	}
	return uc.exporter.Export(resp)
}

// groupedRows renders one section per classification label, empty ones
// included: a header row carrying the label, the sorted lines, a
// subtotal row (zero-valued for empty groups) and a blank separator.
func groupedRows(returnID string, all []entity.VATReturnLine) []dto.ReportRow {
	rows := []dto.ReportRow{}
	for _, c := range vat.All() {
		lines := filterByClassification(all, string(c))
		sortLines(lines)

		label := string(c)
		if c == vat.Unclassified {
			label = UnclassifiedLabel
		}
		rows = append(rows, dto.ReportRow{Name: label})
		for _, l := range lines {
			rows = append(rows, toRow(returnID, l))
		}
		rows = append(rows, subtotalRow(lines))
		rows = append(rows, dto.ReportRow{})
	}
	return rows
}

func subtotalRow(lines []entity.VATReturnLine) dto.ReportRow {
	debit, credit := decimal.Zero, decimal.Zero
	tax, incl := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.TaxDebit)
		credit = credit.Add(l.TaxCredit)
		if l.TaxAmount.Valid {
			tax = tax.Add(l.TaxAmount.Decimal)
		}
		if l.InclTaxAmount.Valid {
			incl = incl.Add(l.InclTaxAmount.Decimal)
		}
	}
	return dto.ReportRow{
		Name:          "Total",
		TaxDebit:      &debit,
		TaxCredit:     &credit,
		TaxAmount:     &tax,
		InclTaxAmount: &incl,
	}
}

func filterByClassification(lines []entity.VATReturnLine, classification string) []entity.VATReturnLine {
	var out []entity.VATReturnLine
	for _, l := range lines {
		if l.Classification == classification {
			out = append(out, l)
		}
	}
	return out
}

// sortLines orders by posting date, then voucher number for a stable
// reading order within one day.
func sortLines(lines []entity.VATReturnLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].PostingDate.Equal(lines[j].PostingDate) {
			return lines[i].PostingDate.Before(lines[j].PostingDate)
		}
		return lines[i].VoucherNo < lines[j].VoucherNo
	})
}

func toRow(returnID string, l entity.VATReturnLine) dto.ReportRow {
	debit, credit := l.TaxDebit, l.TaxCredit
	row := dto.ReportRow{
		Name:            returnID,
		GLEntry:         l.GLEntry,
		VoucherType:     l.VoucherType,
		VoucherNo:       l.VoucherNo,
		PostingDate:     l.PostingDate.Format("2006-01-02"),
		TaxesAndCharges: l.TaxesAndCharges,
		TaxDebit:        &debit,
		TaxCredit:       &credit,
		Classification:  l.Classification,
	}
	if l.TaxAmount.Valid {
		d := l.TaxAmount.Decimal
		row.TaxAmount = &d
	}
	if l.InclTaxAmount.Valid {
		d := l.InclTaxAmount.Decimal
		row.InclTaxAmount = &d
	}
	return row
}

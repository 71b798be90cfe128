package dto

import "github.com/shopspring/decimal"

// ReportFilters query parameters for the linked-transactions report.
type ReportFilters struct {
	VATReturn              string `query:"vat_return" validate:"required"`
	Classification         string `query:"classification"`
	ShowAllClassifications bool   `query:"show_all_classifications"`
}

// ReportColumn describes one column of the report's fixed schema.
type ReportColumn struct {
	FieldName string `json:"fieldname"`
	Label     string `json:"label"`
	FieldType string `json:"fieldtype"`
	Width     int    `json:"width"`
}

// ReportRow one report row. In the grouped variant the same shape also
// carries group headers (only Name set), subtotal rows (Name "Total" plus
// the four sums) and blank separator rows (nothing set).
type ReportRow struct {
	Name            string           `json:"name,omitempty"`
	GLEntry         string           `json:"gl_entry,omitempty"`
	VoucherType     string           `json:"voucher_type,omitempty"`
	VoucherNo       string           `json:"voucher_no,omitempty"`
	PostingDate     string           `json:"posting_date,omitempty"`
	TaxesAndCharges string           `json:"taxes_and_charges,omitempty"`
	TaxDebit        *decimal.Decimal `json:"tax_account_debit,omitempty"`
	TaxCredit       *decimal.Decimal `json:"tax_account_credit,omitempty"`
	TaxAmount       *decimal.Decimal `json:"tax_amount,omitempty"`
	InclTaxAmount   *decimal.Decimal `json:"incl_tax_amount,omitempty"`
	Classification  string           `json:"classification,omitempty"`
}

// ReportResponse the report's columns and rows.
type ReportResponse struct {
	Columns []ReportColumn `json:"columns"`
	Rows    []ReportRow    `json:"rows"`
}

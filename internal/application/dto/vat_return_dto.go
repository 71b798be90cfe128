package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateVATReturnRequest input to open a return for a tax period.
type CreateVATReturnRequest struct {
	DateFrom string `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo   string `json:"date_to" validate:"required,datetime=2006-01-02"`
}

// SaveVATReturnRequest manual-entry fields applied on save; every save
// recomputes the calculated fields from these and the lines.
type SaveVATReturnRequest struct {
	AccExceed28Days        decimal.Decimal `json:"acc_exceed_28_days"`
	AccExceed28DaysPercent decimal.Decimal `json:"acc_exceed_28_days_percent"`
	AccNotExceed28Days     decimal.Decimal `json:"acc_not_exceed_28_days"`
	AdjChangeInUseExcl     decimal.Decimal `json:"adj_change_in_use_excl"`
	AdjOtherIncl           decimal.Decimal `json:"adj_other_incl"`
	ChangeInUse            decimal.Decimal `json:"change_in_use"`
	BadDebts               decimal.Decimal `json:"bad_debts"`
	Other                  decimal.Decimal `json:"other"`
}

// ManualClassifyRequest sets the classification of chosen lines on a
// draft return.
type ManualClassifyRequest struct {
	LineIDs        []string `json:"line_ids" validate:"required,min=1"`
	Classification string   `json:"classification" validate:"required"`
}

// VATReturnLineResponse one classified GL line.
type VATReturnLineResponse struct {
	ID              string           `json:"id"`
	GLEntry         string           `json:"gl_entry"`
	VoucherType     string           `json:"voucher_type"`
	VoucherNo       string           `json:"voucher_no"`
	PostingDate     string           `json:"posting_date"`
	TaxesAndCharges string           `json:"taxes_and_charges,omitempty"`
	TaxDebit        decimal.Decimal  `json:"tax_debit"`
	TaxCredit       decimal.Decimal  `json:"tax_credit"`
	TaxAmount       *decimal.Decimal `json:"tax_amount,omitempty"`
	InclTaxAmount   *decimal.Decimal `json:"incl_tax_amount,omitempty"`
	Classification  string           `json:"classification,omitempty"`
	IsCancelled     bool             `json:"is_cancelled"`
}

// VATReturnResponse the full return document.
type VATReturnResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	DateFrom  string `json:"date_from"`
	DateTo    string `json:"date_to"`
	Status    string `json:"status"`

	AccExceed28Days        decimal.Decimal `json:"acc_exceed_28_days"`
	AccExceed28DaysPercent decimal.Decimal `json:"acc_exceed_28_days_percent"`
	AccNotExceed28Days     decimal.Decimal `json:"acc_not_exceed_28_days"`
	AdjChangeInUseExcl     decimal.Decimal `json:"adj_change_in_use_excl"`
	AdjOtherIncl           decimal.Decimal `json:"adj_other_incl"`
	ChangeInUse            decimal.Decimal `json:"change_in_use"`
	BadDebts               decimal.Decimal `json:"bad_debts"`
	Other                  decimal.Decimal `json:"other"`

	StandardRateMainExcl    decimal.Decimal `json:"standard_rate_main_excl"`
	StandardRateMainIncl    decimal.Decimal `json:"standard_rate_main_incl"`
	StandardRateCapitalExcl decimal.Decimal `json:"standard_rate_capital_excl"`
	StandardRateCapitalIncl decimal.Decimal `json:"standard_rate_capital_incl"`
	ZeroRateMainExcl        decimal.Decimal `json:"zero_rate_main_excl"`
	ZeroRateExportedExcl    decimal.Decimal `json:"zero_rate_exported_excl"`
	ExemptExcl              decimal.Decimal `json:"exempt_excl"`
	AccExceed28DaysTotal    decimal.Decimal `json:"acc_exceed_28_days_total"`
	AccTotalExcl            decimal.Decimal `json:"acc_total_excl"`
	AccTotalIncl            decimal.Decimal `json:"acc_total_incl"`
	AdjChangeInUseIncl      decimal.Decimal `json:"adj_change_in_use_incl"`
	TotalOutputTax          decimal.Decimal `json:"total_output_tax"`

	CapitalGoodsSupplied decimal.Decimal `json:"capital_goods_supplied"`
	CapitalGoodsImported decimal.Decimal `json:"capital_goods_imported"`
	OtherGoodsSupplied   decimal.Decimal `json:"other_goods_supplied"`
	OtherGoodsImported   decimal.Decimal `json:"other_goods_imported"`
	TotalInputTax        decimal.Decimal `json:"total_input_tax"`

	TotalVATPayableRefundable decimal.Decimal `json:"total_vat_payable_refundable"`

	UnclassifiedCount int                     `json:"unclassified_count"`
	Lines             []VATReturnLineResponse `json:"gl_entries"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

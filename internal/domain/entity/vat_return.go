package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VAT return lifecycle states. A return is editable while Draft; Submitted
// locks it against further classification-driving edits.
const (
	VATReturnStatusDraft     = "Draft"
	VATReturnStatusSubmitted = "Submitted"
)

// VATReturnLine is one classified GL row attached to a VAT return.
// TaxAmount and InclTaxAmount stay null for cancelled vouchers and, for
// InclTaxAmount, for journal vouchers whose legs could not be resolved.
type VATReturnLine struct {
	ID              string
	ReturnID        string
	GLEntry         string
	VoucherType     string
	VoucherNo       string
	PostingDate     time.Time
	TaxesAndCharges string
	TaxDebit        decimal.Decimal
	TaxCredit       decimal.Decimal
	TaxAmount       decimal.NullDecimal
	InclTaxAmount   decimal.NullDecimal
	Classification  string // empty = unclassified
	IsCancelled     bool
}

// VATReturn is the VAT201 return document: a date range, the classified GL
// rows for that range, manual adjustment fields and the statutory summary
// fields recomputed on every save.
type VATReturn struct {
	ID        string
	CompanyID string
	DateFrom  time.Time
	DateTo    time.Time
	Status    string
	Lines     []VATReturnLine

	// Manual entry fields.
	AccExceed28Days        decimal.Decimal // field 5: accommodation exceeding 28 days, gross
	AccExceed28DaysPercent decimal.Decimal // statutory percentage applied to field 5
	AccNotExceed28Days     decimal.Decimal // field 7
	AdjChangeInUseExcl     decimal.Decimal // field 10
	AdjOtherIncl           decimal.Decimal // field 12
	ChangeInUse            decimal.Decimal // field 16
	BadDebts               decimal.Decimal // field 17
	Other                  decimal.Decimal // field 18

	// Calculated output tax fields.
	StandardRateMainExcl    decimal.Decimal // field 1
	StandardRateMainIncl    decimal.Decimal // field 4
	StandardRateCapitalExcl decimal.Decimal // field 1a
	StandardRateCapitalIncl decimal.Decimal // field 4a
	ZeroRateMainExcl        decimal.Decimal // field 2
	ZeroRateExportedExcl    decimal.Decimal // field 2a
	ExemptExcl              decimal.Decimal // field 3
	AccExceed28DaysTotal    decimal.Decimal // field 6
	AccTotalExcl            decimal.Decimal // field 8
	AccTotalIncl            decimal.Decimal // field 9
	AdjChangeInUseIncl      decimal.Decimal // field 11
	TotalOutputTax          decimal.Decimal // field 13

	// Calculated input tax fields.
	CapitalGoodsSupplied decimal.Decimal // field 14
	CapitalGoodsImported decimal.Decimal // field 14a
	OtherGoodsSupplied   decimal.Decimal // field 15
	OtherGoodsImported   decimal.Decimal // field 15a
	TotalInputTax        decimal.Decimal // field 19

	TotalVATPayableRefundable decimal.Decimal

	CreatedAt   time.Time
	UpdatedAt   time.Time
	SubmittedAt *time.Time
}

// IsDraft reports whether the return still accepts edits.
func (r *VATReturn) IsDraft() bool { return r.Status == VATReturnStatusDraft }

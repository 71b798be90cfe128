// Package vat holds the pure VAT201 classification core: grouping GL rows
// into vouchers, assigning statutory classifications and recomputing the
// return's summary fields. No I/O, no persistence; the caller feeds it
// already-materialized ledger rows and settings.
package vat

import "github.com/csf-za/tax-compliance-api/internal/domain/entity"

// Classification is one of the fixed statutory VAT201 categories.
// The empty string means unclassified.
type Classification string

const (
	Unclassified Classification = ""

	OutputStandardRate        Classification = "Output - A Standard rate (excl capital goods)"
	OutputStandardRateCapital Classification = "Output - B Standard rate (only capital goods)"
	OutputZeroRated           Classification = "Output - C Zero Rated (excl goods exported)"
	OutputZeroRatedExported   Classification = "Output - D Zero Rated (only goods exported)"
	OutputExempt              Classification = "Output - E Exempt"

	InputCapitalLocal    Classification = "Input - A Capital goods and/or services supplied to you (local)"
	InputCapitalImported Classification = "Input - B Capital goods imported"
	InputOtherLocal      Classification = "Input - C Other goods supplied to you (excl capital goods)"
	InputOtherImported   Classification = "Input - D Other goods imported (excl capital goods)"

	// SARSPaymentReceipt marks transactions with no tax component, e.g. a
	// direct settlement to or from the tax authority.
	SARSPaymentReceipt Classification = "SARS Payment/Receipt"
)

// All returns every classification label in display order, the empty
// (unclassified) label first. The grouped report iterates this set.
func All() []Classification {
	return []Classification{
		Unclassified,
		OutputStandardRate,
		OutputStandardRateCapital,
		OutputZeroRated,
		OutputZeroRatedExported,
		OutputExempt,
		InputCapitalLocal,
		InputCapitalImported,
		InputOtherLocal,
		InputOtherImported,
		SARSPaymentReceipt,
	}
}

// Valid reports whether label is one of the enumerated classifications
// (the empty label is not a valid assignment target).
func Valid(label Classification) bool {
	for _, c := range All() {
		if c != Unclassified && c == label {
			return true
		}
	}
	return false
}

// SettingsField binds one configured taxes-and-charges template to the
// classification it stands for and the voucher type it applies to.
type SettingsField struct {
	Classification Classification
	VoucherType    string
	Template       string
}

// SettingsFields flattens the typed settings into the template lookup
// table the classifier consumes. Unconfigured (empty) fields are omitted,
// mirroring the lookup-gaps-are-not-errors policy.
func SettingsFields(s *entity.VATReturnSettings) []SettingsField {
	all := []SettingsField{
		{OutputStandardRate, entity.VoucherTypeSalesInvoice, s.StandardRateNonCapital},
		{OutputStandardRateCapital, entity.VoucherTypeSalesInvoice, s.StandardRateCapital},
		{OutputZeroRated, entity.VoucherTypeSalesInvoice, s.ZeroRateNonExported},
		{OutputZeroRatedExported, entity.VoucherTypeSalesInvoice, s.ZeroRateExported},
		{OutputExempt, entity.VoucherTypeSalesInvoice, s.Exempt},
		{InputCapitalLocal, entity.VoucherTypePurchaseInvoice, s.InputCapitalLocal},
		{InputCapitalImported, entity.VoucherTypePurchaseInvoice, s.InputCapitalImport},
		{InputOtherLocal, entity.VoucherTypePurchaseInvoice, s.InputGoodsLocal},
		{InputOtherImported, entity.VoucherTypePurchaseInvoice, s.InputGoodsImport},
	}
	fields := all[:0]
	for _, f := range all {
		if f.Template != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

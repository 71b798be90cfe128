package vat

import (
	"github.com/shopspring/decimal"

	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
)

// Result is the classifier output for one voucher group. The input rows
// are never mutated. Null amounts mean "not determined": all three fields
// stay null for cancelled vouchers; InclTaxAmount additionally stays null
// for journal vouchers whose legs could not be resolved.
type Result struct {
	Classification Classification
	TaxAmount      decimal.NullDecimal
	InclTaxAmount  decimal.NullDecimal
}

// Classify assigns a statutory classification to one voucher group.
//
// Invoices are matched through the settings' taxes-and-charges template
// map. Journal entries are decomposed into legs: exactly offsetting
// debit/credit pairs are treated as pass-through and removed; if the pairs
// consume everything the voucher is a SARS payment/receipt; otherwise the
// tax, tax-inclusive and tax-exclusive legs are identified and the
// exclusive leg's account settings decide the label. Every lookup gap
// falls through to unclassified rather than erroring; submission catches
// those later.
func Classify(g VoucherGroup, settings *entity.VATReturnSettings) Result {
	var res Result

	voucher := g.Voucher
	if voucher.IsCancelled {
		return res
	}

	res.TaxAmount = validDecimal(nonZero(voucher.GeneralLedgerDebit, voucher.GeneralLedgerCredit))

	switch voucher.VoucherType {
	case entity.VoucherTypeSalesInvoice, entity.VoucherTypePurchaseInvoice:
		incl := nonZero(voucher.SalesTaxesTotal, voucher.PurchaseTaxesTotal)
		res.InclTaxAmount = validDecimal(incl)

		// Reversals (credit/debit notes) post a negative taxes total while
		// the ledger amount stays positive; flip the tax amount to match.
		if incl.IsNegative() && res.TaxAmount.Decimal.IsPositive() {
			res.TaxAmount.Decimal = res.TaxAmount.Decimal.Neg()
		}

		if voucher.TaxesAndChargesTemplate == "" {
			return res
		}
		for _, field := range SettingsFields(settings) {
			if field.VoucherType == voucher.VoucherType && field.Template == voucher.TaxesAndChargesTemplate {
				res.Classification = field.Classification
				return res
			}
		}
		return res

	case entity.VoucherTypeJournalEntry:
		return classifyJournalEntry(g, settings, res)
	}

	return res
}

// classifyJournalEntry resolves a journal voucher from its account legs.
//
// Example:
//
//	|   | account          | debit | credit |
//	|---|------------------|-------|--------|
//	| 1 | interest         | 1000  | 0      |
//	| 2 | bank             | 0     | 1000   |
//	| 3 | fees and charges | 100   | 0      |
//	| 4 | vat              | 15    | 0      |
//	| 5 | bank             | 0     | 115    |
//
// Rows 1 and 2 offset exactly and carry no VAT effect, so they are paired
// off before identifying the tax/inclusive/exclusive triple.
func classifyJournalEntry(g VoucherGroup, settings *entity.VATReturnSettings, res Result) Result {
	legs := g.Legs
	removed := make([]bool, len(legs))
	paired := false

	// Pair off exactly offsetting legs. Ties resolve by order of
	// appearance, and a leg consumed by an earlier pair is not considered
	// again; this keeps the pass deterministic.
	for i := range legs {
		if removed[i] {
			continue
		}
		j := findContra(legs, removed, i)
		if j >= 0 {
			removed[i], removed[j] = true, true
			paired = true
		}
	}

	var remaining []int
	for i := range legs {
		if !removed[i] {
			remaining = append(remaining, i)
		}
	}

	// Everything paired off: a transaction with no tax component, e.g. a
	// direct SARS settlement from the bank account.
	if len(remaining) == 0 && paired {
		res.Classification = SARSPaymentReceipt
		return res
	}

	taxIdx := -1
	for _, i := range remaining {
		if settings.IsTaxAccount(legs[i].JournalEntryAccount) {
			taxIdx = i
			break
		}
	}
	if taxIdx < 0 {
		return res
	}

	inclIdx, exclIdx := -1, -1
	for _, i := range remaining {
		if i == taxIdx {
			continue
		}
		amt := legAmount(legs[i]).Abs()
		if inclIdx < 0 || amt.GreaterThan(legAmount(legs[inclIdx]).Abs()) {
			inclIdx = i
		}
		if exclIdx < 0 || amt.LessThan(legAmount(legs[exclIdx]).Abs()) {
			exclIdx = i
		}
	}
	if inclIdx < 0 || exclIdx < 0 {
		return res
	}

	excl := legs[exclIdx]
	switch {
	case !excl.JournalEntryDebit.IsZero():
		res.Classification = debitClassification(settings, excl.JournalEntryAccount)
		res.InclTaxAmount = validDecimal(legAmount(legs[inclIdx]))
	case !excl.JournalEntryCredit.IsZero():
		res.Classification = creditClassification(settings, excl.JournalEntryAccount)
		res.InclTaxAmount = validDecimal(legAmount(legs[inclIdx]))
	}
	return res
}

// findContra returns the first not-yet-removed leg whose credit exactly
// matches leg i's debit (or vice versa), or -1.
func findContra(legs []entity.GLRow, removed []bool, i int) int {
	var match func(entity.GLRow) bool
	switch {
	case !legs[i].JournalEntryDebit.IsZero():
		amount := legs[i].JournalEntryDebit
		match = func(l entity.GLRow) bool { return l.JournalEntryCredit.Equal(amount) }
	case !legs[i].JournalEntryCredit.IsZero():
		amount := legs[i].JournalEntryCredit
		match = func(l entity.GLRow) bool { return l.JournalEntryDebit.Equal(amount) }
	default:
		return -1
	}
	for j := range legs {
		if j == i || removed[j] {
			continue
		}
		if match(legs[j]) {
			return j
		}
	}
	return -1
}

// legAmount is the leg's credit when non-zero, otherwise its debit.
func legAmount(l entity.GLRow) decimal.Decimal {
	return nonZero(l.JournalEntryCredit, l.JournalEntryDebit)
}

func debitClassification(s *entity.VATReturnSettings, account string) Classification {
	if a, ok := s.ClassificationFor(account); ok {
		return Classification(a.DebitClassification)
	}
	return Unclassified
}

func creditClassification(s *entity.VATReturnSettings, account string) Classification {
	if a, ok := s.ClassificationFor(account); ok {
		return Classification(a.CreditClassification)
	}
	return Unclassified
}

// nonZero returns a when non-zero, otherwise b.
func nonZero(a, b decimal.Decimal) decimal.Decimal {
	if !a.IsZero() {
		return a
	}
	return b
}

func validDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

package vat_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
	"github.com/csf-za/tax-compliance-api/internal/domain/vat"
)

func testSettings() *entity.VATReturnSettings {
	return &entity.VATReturnSettings{
		CompanyID:              "co-1",
		StandardRateNonCapital: "Standard Sales - CSF",
		ZeroRateExported:       "Export Sales - CSF",
		InputGoodsLocal:        "Standard Purchases - CSF",
		TaxAccounts:            []string{"VAT - CSF"},
		AccountClassifications: []entity.AccountClassification{
			{
				Account:              "Bank Charges - CSF",
				DebitClassification:  string(vat.InputOtherLocal),
				CreditClassification: string(vat.OutputStandardRate),
			},
		},
	}
}

func d(v string) decimal.Decimal {
	dec, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return dec
}

func journalLeg(voucherNo, account string, debit, credit decimal.Decimal) entity.GLRow {
	return entity.GLRow{
		Name:                "GL-" + voucherNo + "-" + account,
		VoucherType:         entity.VoucherTypeJournalEntry,
		VoucherNo:           voucherNo,
		GeneralLedgerDebit:  d("15"),
		JournalEntryAccount: account,
		JournalEntryDebit:   debit,
		JournalEntryCredit:  credit,
	}
}

// A sales invoice whose taxes-and-charges template is configured maps
// straight onto its output classification.
func TestClassify_SalesInvoiceTemplateMatch(t *testing.T) {
	row := entity.GLRow{
		Name:                    "GL-0001",
		VoucherType:             entity.VoucherTypeSalesInvoice,
		VoucherNo:               "SINV-0001",
		GeneralLedgerCredit:     d("150"),
		SalesTaxesTotal:         d("1150"),
		TaxesAndChargesTemplate: "Standard Sales - CSF",
	}
	g := vat.VoucherGroup{VoucherNo: row.VoucherNo, Voucher: row, Legs: []entity.GLRow{row}}

	res := vat.Classify(g, testSettings())

	assert.Equal(t, vat.OutputStandardRate, res.Classification)
	require.True(t, res.TaxAmount.Valid)
	assert.True(t, res.TaxAmount.Decimal.Equal(d("150")), "tax amount should come from the GL row")
	require.True(t, res.InclTaxAmount.Valid)
	assert.True(t, res.InclTaxAmount.Decimal.Equal(d("1150")), "inclusive amount should come from the taxes total")
}

// A credit note posts a negative taxes total while the ledger amount is
// positive; the tax amount must flip sign to match.
func TestClassify_SalesInvoiceReversalFlipsTaxSign(t *testing.T) {
	row := entity.GLRow{
		Name:                    "GL-0002",
		VoucherType:             entity.VoucherTypeSalesInvoice,
		VoucherNo:               "SINV-0002",
		GeneralLedgerDebit:      d("150"),
		SalesTaxesTotal:         d("-1150"),
		TaxesAndChargesTemplate: "Standard Sales - CSF",
	}
	g := vat.VoucherGroup{VoucherNo: row.VoucherNo, Voucher: row, Legs: []entity.GLRow{row}}

	res := vat.Classify(g, testSettings())

	require.True(t, res.TaxAmount.Valid)
	assert.True(t, res.TaxAmount.Decimal.Equal(d("-150")), "tax amount should be negated for reversals")
	require.True(t, res.InclTaxAmount.Valid)
	assert.True(t, res.InclTaxAmount.Decimal.Equal(d("-1150")))
}

// A purchase invoice resolves through the purchase-side template table.
func TestClassify_PurchaseInvoiceTemplateMatch(t *testing.T) {
	row := entity.GLRow{
		Name:                    "GL-0003",
		VoucherType:             entity.VoucherTypePurchaseInvoice,
		VoucherNo:               "PINV-0001",
		GeneralLedgerDebit:      d("75"),
		PurchaseTaxesTotal:      d("575"),
		TaxesAndChargesTemplate: "Standard Purchases - CSF",
	}
	g := vat.VoucherGroup{VoucherNo: row.VoucherNo, Voucher: row, Legs: []entity.GLRow{row}}

	res := vat.Classify(g, testSettings())

	assert.Equal(t, vat.InputOtherLocal, res.Classification)
}

// An invoice with an unconfigured template keeps its amounts but stays
// unclassified.
func TestClassify_InvoiceUnknownTemplateStaysUnclassified(t *testing.T) {
	row := entity.GLRow{
		Name:                    "GL-0004",
		VoucherType:             entity.VoucherTypeSalesInvoice,
		VoucherNo:               "SINV-0003",
		GeneralLedgerCredit:     d("30"),
		SalesTaxesTotal:         d("230"),
		TaxesAndChargesTemplate: "Some Other Template",
	}
	g := vat.VoucherGroup{VoucherNo: row.VoucherNo, Voucher: row, Legs: []entity.GLRow{row}}

	res := vat.Classify(g, testSettings())

	assert.Equal(t, vat.Unclassified, res.Classification)
	assert.True(t, res.TaxAmount.Valid)
	assert.True(t, res.InclTaxAmount.Valid)
}

// Cancelled vouchers produce a fully null result.
func TestClassify_CancelledVoucherAllNull(t *testing.T) {
	row := entity.GLRow{
		Name:               "GL-0005",
		VoucherType:        entity.VoucherTypeSalesInvoice,
		VoucherNo:          "SINV-0004",
		IsCancelled:        true,
		GeneralLedgerDebit: d("10"),
	}
	g := vat.VoucherGroup{VoucherNo: row.VoucherNo, Voucher: row, Legs: []entity.GLRow{row}}

	res := vat.Classify(g, testSettings())

	assert.Equal(t, vat.Unclassified, res.Classification)
	assert.False(t, res.TaxAmount.Valid)
	assert.False(t, res.InclTaxAmount.Valid)
}

// The canonical mixed journal voucher:
//
//	interest         1000 D
//	bank                    1000 C
//	fees and charges  100 D
//	vat                15 D
//	bank                     115 C
//
// The interest/bank pair offsets exactly and is removed. Of the rest the
// vat leg is the tax account, the 115 bank leg is the largest (inclusive)
// and the 100 fees leg the smallest (exclusive). Fees is a debit, so the
// debit label of its account settings wins.
func TestClassify_JournalEntryMixedLegs(t *testing.T) {
	legs := []entity.GLRow{
		journalLeg("JV-0001", "Interest Income - CSF", d("1000"), decimal.Zero),
		journalLeg("JV-0001", "FNB Cheque - CSF", decimal.Zero, d("1000")),
		journalLeg("JV-0001", "Bank Charges - CSF", d("100"), decimal.Zero),
		journalLeg("JV-0001", "VAT - CSF", d("15"), decimal.Zero),
		journalLeg("JV-0001", "FNB Cheque - CSF", decimal.Zero, d("115")),
	}
	g := vat.VoucherGroup{VoucherNo: "JV-0001", Voucher: legs[0], Legs: legs}

	res := vat.Classify(g, testSettings())

	assert.Equal(t, vat.InputOtherLocal, res.Classification,
		"debit on the exclusive fees leg should select its debit label")
	require.True(t, res.InclTaxAmount.Valid)
	assert.True(t, res.InclTaxAmount.Decimal.Equal(d("115")),
		"inclusive amount should be the largest remaining leg")
	require.True(t, res.TaxAmount.Valid)
	assert.True(t, res.TaxAmount.Decimal.Equal(d("15")))
}

// A journal voucher whose legs all pair off exactly carries no tax
// component; it is a settlement with the tax authority.
func TestClassify_JournalEntryFullyPairedIsSARSPayment(t *testing.T) {
	legs := []entity.GLRow{
		journalLeg("JV-0002", "VAT - CSF", d("5000"), decimal.Zero),
		journalLeg("JV-0002", "FNB Cheque - CSF", decimal.Zero, d("5000")),
	}
	g := vat.VoucherGroup{VoucherNo: "JV-0002", Voucher: legs[0], Legs: legs}

	res := vat.Classify(g, testSettings())

	assert.Equal(t, vat.SARSPaymentReceipt, res.Classification)
	assert.False(t, res.InclTaxAmount.Valid)
}

// Without a tax-account leg among the survivors the voucher stays
// unclassified; submission will flag it for a human.
func TestClassify_JournalEntryWithoutTaxLegStaysUnclassified(t *testing.T) {
	legs := []entity.GLRow{
		journalLeg("JV-0003", "Bank Charges - CSF", d("100"), decimal.Zero),
		journalLeg("JV-0003", "FNB Cheque - CSF", decimal.Zero, d("115")),
	}
	g := vat.VoucherGroup{VoucherNo: "JV-0003", Voucher: legs[0], Legs: legs}

	res := vat.Classify(g, testSettings())

	assert.Equal(t, vat.Unclassified, res.Classification)
	assert.False(t, res.InclTaxAmount.Valid)
}

// An exclusive leg on the credit side selects the credit label instead.
func TestClassify_JournalEntryCreditLegUsesCreditLabel(t *testing.T) {
	legs := []entity.GLRow{
		journalLeg("JV-0004", "Bank Charges - CSF", decimal.Zero, d("100")),
		journalLeg("JV-0004", "VAT - CSF", decimal.Zero, d("15")),
		journalLeg("JV-0004", "FNB Cheque - CSF", d("115"), decimal.Zero),
	}
	g := vat.VoucherGroup{VoucherNo: "JV-0004", Voucher: legs[0], Legs: legs}

	res := vat.Classify(g, testSettings())

	assert.Equal(t, vat.OutputStandardRate, res.Classification)
}

// An exclusive leg against an account with no configured labels keeps the
// voucher unclassified.
func TestClassify_JournalEntryUnknownAccountStaysUnclassified(t *testing.T) {
	legs := []entity.GLRow{
		journalLeg("JV-0005", "Sundry Expenses - CSF", d("100"), decimal.Zero),
		journalLeg("JV-0005", "VAT - CSF", d("15"), decimal.Zero),
		journalLeg("JV-0005", "FNB Cheque - CSF", decimal.Zero, d("115")),
	}
	g := vat.VoucherGroup{VoucherNo: "JV-0005", Voucher: legs[0], Legs: legs}

	res := vat.Classify(g, testSettings())

	assert.Equal(t, vat.Unclassified, res.Classification)
	require.True(t, res.InclTaxAmount.Valid, "amounts are still resolved even without a label")
	assert.True(t, res.InclTaxAmount.Decimal.Equal(d("115")))
}

func TestValid_RejectsEmptyAndUnknownLabels(t *testing.T) {
	assert.True(t, vat.Valid(vat.OutputStandardRate))
	assert.True(t, vat.Valid(vat.SARSPaymentReceipt))
	assert.False(t, vat.Valid(vat.Unclassified), "the empty label is not an assignment target")
	assert.False(t, vat.Valid(vat.Classification("Output - Z Made Up")))
}

func TestSettingsFields_OmitsUnconfiguredTemplates(t *testing.T) {
	fields := vat.SettingsFields(testSettings())

	require.Len(t, fields, 3)
	for _, f := range fields {
		assert.NotEmpty(t, f.Template)
	}
}

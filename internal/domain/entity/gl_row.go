package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher types carried on general ledger rows.
const (
	VoucherTypeSalesInvoice    = "Sales Invoice"
	VoucherTypePurchaseInvoice = "Purchase Invoice"
	VoucherTypeJournalEntry    = "Journal Entry"
)

// GLRow is one general-ledger posting against a tax account, pre-joined
// with its voucher context: journal-entry account legs for journal
// vouchers, taxes-and-charges totals and template for invoice vouchers.
// The ledger owns these rows; they are immutable once fetched.
type GLRow struct {
	Name        string // GL entry identifier
	VoucherType string
	VoucherNo   string
	PostingDate time.Time
	IsCancelled bool

	GeneralLedgerDebit  decimal.Decimal
	GeneralLedgerCredit decimal.Decimal

	// Journal Entry context (zero values unless the voucher is a journal entry).
	JournalEntryAccount string
	JournalEntryDebit   decimal.Decimal
	JournalEntryCredit  decimal.Decimal
	JournalEntryIdx     int

	// Invoice taxes context (zero values unless the voucher is an invoice).
	SalesTaxesAmount    decimal.Decimal
	SalesTaxesTotal     decimal.Decimal
	PurchaseTaxesAmount decimal.Decimal
	PurchaseTaxesTotal  decimal.Decimal

	TaxesAndChargesTemplate string
}

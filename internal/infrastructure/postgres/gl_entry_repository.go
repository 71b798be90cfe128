package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
	"github.com/csf-za/tax-compliance-api/internal/domain/repository"
)

var _ repository.GLEntryRepository = (*GLEntryRepo)(nil)

// GLEntryRepo implements the read-only GLEntryRepository port over the
// accounting ledger tables.
type GLEntryRepo struct {
	pool *pgxpool.Pool
}

// NewGLEntryRepository builds the ledger read adapter.
func NewGLEntryRepository(pool *pgxpool.Pool) *GLEntryRepo {
	return &GLEntryRepo{pool: pool}
}

// FetchReturnRows returns the GL postings against the given tax accounts
// in the date range, pre-joined with their voucher context. Journal
// vouchers come back once per account leg (ordered by leg index); invoice
// vouchers carry their taxes row and template. Classification happens
// in-process, so the query only materializes.
func (r *GLEntryRepo) FetchReturnRows(dateFrom, dateTo time.Time, taxAccounts []string) ([]entity.GLRow, error) {
	query := `
		SELECT ge.name, ge.voucher_type, ge.voucher_no, ge.posting_date, ge.is_cancelled,
		       ge.debit, ge.credit,
		       COALESCE(jea.account, ''), COALESCE(jea.debit, 0), COALESCE(jea.credit, 0), COALESCE(jea.idx, 0),
		       COALESCE(sit.tax_amount, 0), COALESCE(sit.total, 0),
		       COALESCE(pit.tax_amount, 0), COALESCE(pit.total, 0),
		       COALESCE(si.taxes_and_charges, pi.taxes_and_charges, '')
		FROM gl_entries ge
		LEFT JOIN journal_entry_accounts jea
		       ON ge.voucher_type = 'Journal Entry' AND jea.voucher_no = ge.voucher_no
		LEFT JOIN sales_invoices si
		       ON ge.voucher_type = 'Sales Invoice' AND si.name = ge.voucher_no
		LEFT JOIN sales_invoice_taxes sit
		       ON si.name = sit.voucher_no AND sit.account_head = ge.account
		LEFT JOIN purchase_invoices pi
		       ON ge.voucher_type = 'Purchase Invoice' AND pi.name = ge.voucher_no
		LEFT JOIN purchase_invoice_taxes pit
		       ON pi.name = pit.voucher_no AND pit.account_head = ge.account
		WHERE ge.account = ANY($1)
		  AND ge.posting_date >= $2 AND ge.posting_date <= $3
		ORDER BY ge.posting_date, ge.voucher_no, jea.idx`
	rows, err := r.pool.Query(context.Background(), query, taxAccounts, dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("fetch gl rows: %w", err)
	}
	defer rows.Close()

	var list []entity.GLRow
	for rows.Next() {
		var g entity.GLRow
		err := rows.Scan(
			&g.Name, &g.VoucherType, &g.VoucherNo, &g.PostingDate, &g.IsCancelled,
			&g.GeneralLedgerDebit, &g.GeneralLedgerCredit,
			&g.JournalEntryAccount, &g.JournalEntryDebit, &g.JournalEntryCredit, &g.JournalEntryIdx,
			&g.SalesTaxesAmount, &g.SalesTaxesTotal,
			&g.PurchaseTaxesAmount, &g.PurchaseTaxesTotal,
			&g.TaxesAndChargesTemplate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan gl row: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

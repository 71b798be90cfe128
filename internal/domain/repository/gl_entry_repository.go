package repository

import (
	"time"

	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
)

// GLEntryRepository is the read-only port onto the accounting system's
// general ledger. FetchReturnRows returns the GL postings against the
// given tax accounts within the date range, pre-joined with their voucher
// context (journal-entry account legs, invoice taxes-and-charges totals
// and template). The classification core never constructs queries itself.
type GLEntryRepository interface {
	FetchReturnRows(dateFrom, dateTo time.Time, taxAccounts []string) ([]entity.GLRow, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/csf-za/tax-compliance-api/internal/application/statement"
	"github.com/csf-za/tax-compliance-api/internal/application/vatreturn"
	"github.com/csf-za/tax-compliance-api/internal/domain/repository"
)

// Ensure TxRunner implements the application-layer transaction ports.
var _ statement.TxRunner = (*TxRunner)(nil)
var _ vatreturn.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunStatement begins a transaction, runs fn with statement repositories
// bound to it and commits, rolling back on any error.
func (r *TxRunner) RunStatement(ctx context.Context, fn func(
	importRepo repository.StatementImportRepository,
	fileRepo repository.StatementFileRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStatementImportRepository(tx), NewStatementFileRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunVATReturn begins a transaction, runs fn with the VAT return
// repository bound to it and commits, rolling back on any error.
func (r *TxRunner) RunVATReturn(ctx context.Context, fn func(
	returns repository.VATReturnRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewVATReturnRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

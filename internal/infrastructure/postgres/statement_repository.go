package postgres

import (
	"context"
	"fmt"

	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
	"github.com/csf-za/tax-compliance-api/internal/domain/repository"
)

var _ repository.StatementImportRepository = (*StatementImportRepo)(nil)
var _ repository.StatementFileRepository = (*StatementFileRepo)(nil)

// StatementImportRepo implements the StatementImportRepository port on
// PostgreSQL (usable with pool or tx).
type StatementImportRepo struct {
	q Querier
}

// NewStatementImportRepository builds the import adapter. Pass pool or tx.
func NewStatementImportRepository(q Querier) *StatementImportRepo {
	return &StatementImportRepo{q: q}
}

// Create persists a new statement import.
func (r *StatementImportRepo) Create(imp *entity.StatementImport) error {
	query := `
		INSERT INTO statement_imports (id, company_id, bank, bank_account, file_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		imp.ID, imp.CompanyID, imp.Bank, imp.BankAccount, imp.FileID, imp.Status,
		imp.CreatedAt, imp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert statement import: %w", err)
	}
	return nil
}

// GetByID fetches a statement import, or nil when absent.
func (r *StatementImportRepo) GetByID(id string) (*entity.StatementImport, error) {
	query := `
		SELECT id, company_id, bank, bank_account, file_id, status, created_at, updated_at
		FROM statement_imports WHERE id = $1`
	var imp entity.StatementImport
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&imp.ID, &imp.CompanyID, &imp.Bank, &imp.BankAccount, &imp.FileID, &imp.Status,
		&imp.CreatedAt, &imp.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get statement import: %w", err)
	}
	return &imp, nil
}

// Update persists the current file pointer and status.
func (r *StatementImportRepo) Update(imp *entity.StatementImport) error {
	query := `
		UPDATE statement_imports SET file_id = $2, status = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		imp.ID, imp.FileID, imp.Status, imp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update statement import: %w", err)
	}
	return nil
}

// StatementFileRepo implements the StatementFileRepository port on
// PostgreSQL (usable with pool or tx). Files are write-once.
type StatementFileRepo struct {
	q Querier
}

// NewStatementFileRepository builds the file adapter. Pass pool or tx.
func NewStatementFileRepository(q Querier) *StatementFileRepo {
	return &StatementFileRepo{q: q}
}

// Save persists a new statement file.
func (r *StatementFileRepo) Save(f *entity.StatementFile) error {
	query := `
		INSERT INTO statement_files (id, import_id, file_name, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.ImportID, f.FileName, f.Content, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert statement file: %w", err)
	}
	return nil
}

// GetByID fetches a statement file with its content, or nil when absent.
func (r *StatementFileRepo) GetByID(id string) (*entity.StatementFile, error) {
	query := `
		SELECT id, import_id, file_name, content, created_at
		FROM statement_files WHERE id = $1`
	var f entity.StatementFile
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.ImportID, &f.FileName, &f.Content, &f.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get statement file: %w", err)
	}
	return &f, nil
}

package repository

import "github.com/csf-za/tax-compliance-api/internal/domain/entity"

// StatementImportRepository defines the persistence port for bank
// statement import documents.
type StatementImportRepository interface {
	Create(imp *entity.StatementImport) error
	GetByID(id string) (*entity.StatementImport, error)
	// Update persists the current file pointer and status.
	Update(imp *entity.StatementImport) error
}

// StatementFileRepository defines the persistence port for statement file
// artifacts. Files are write-once; transforms save new files rather than
// mutating existing ones.
type StatementFileRepository interface {
	Save(f *entity.StatementFile) error
	GetByID(id string) (*entity.StatementFile, error)
}

package entity

import "time"

// Statement import states. Uploaded imports stay Draft until the uploaded
// file has been prepared (sanitized/reshaped as needed); Ready means the
// current file is in the canonical 6-column import format.
const (
	StatementImportStatusDraft = "Draft"
	StatementImportStatusReady = "Ready"
)

// StatementImport models one bank statement upload: which bank produced
// the export, which ledger bank account it belongs to, and the current
// import file. Each transform persists a new file and repoints FileID.
type StatementImport struct {
	ID          string
	CompanyID   string
	Bank        string
	BankAccount string
	FileID      string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StatementFile is one persisted statement artifact: the original upload
// or a derived file (null-byte cleaned, reshaped). Files are immutable
// once written.
type StatementFile struct {
	ID        string
	ImportID  string
	FileName  string
	Content   []byte
	CreatedAt time.Time
}

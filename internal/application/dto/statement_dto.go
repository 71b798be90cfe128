package dto

import "time"

// CreateStatementImportRequest input for a statement upload. Content is
// the raw file bytes (multipart file in the handler).
type CreateStatementImportRequest struct {
	Bank        string `json:"bank" validate:"required"`
	BankAccount string `json:"bank_account" validate:"required"`
	FileName    string `json:"file_name" validate:"required"`
	Content     []byte `json:"content" validate:"required"`
}

// StatementImportResponse statement import output.
type StatementImportResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Bank        string    `json:"bank"`
	BankAccount string    `json:"bank_account"`
	FileID      string    `json:"file_id"`
	FileName    string    `json:"file_name"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PrepareStatementResponse result of preparing an uploaded statement:
// the current file after sanitize/reshape plus user-facing notices about
// the transformations applied.
type PrepareStatementResponse struct {
	Import  StatementImportResponse `json:"import"`
	Notices []string                `json:"notices"`
}

// StatementPreviewResponse tabular preview of the current import file.
// All three fields come back empty while the file cannot be previewed
// safely.
type StatementPreviewResponse struct {
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	Warnings []string   `json:"warnings"`
}

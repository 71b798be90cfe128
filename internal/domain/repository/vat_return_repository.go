package repository

import "github.com/csf-za/tax-compliance-api/internal/domain/entity"

// VATReturnRepository defines the persistence port for VAT returns and
// their classified GL lines.
type VATReturnRepository interface {
	Create(r *entity.VATReturn) error
	// GetByID loads the return with its lines, or nil when absent.
	GetByID(id string) (*entity.VATReturn, error)
	// Update persists the header: status, manual fields and every
	// calculated summary field. Lines are managed separately.
	Update(r *entity.VATReturn) error
	// ReplaceLines swaps the return's lines for the given set, preserving
	// slice order as display order.
	ReplaceLines(returnID string, lines []entity.VATReturnLine) error
	// SetLineClassification updates one line's classification label.
	SetLineClassification(returnID, lineID, classification string) error
}

package repository

import "github.com/csf-za/tax-compliance-api/internal/domain/entity"

// SettingsRepository defines the persistence port for per-company VAT
// return settings.
type SettingsRepository interface {
	// GetByCompany returns the company's settings with tax accounts and
	// account classifications loaded, or nil when not configured.
	GetByCompany(companyID string) (*entity.VATReturnSettings, error)
	Upsert(s *entity.VATReturnSettings) error
}

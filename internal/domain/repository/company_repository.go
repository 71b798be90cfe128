package repository

import "github.com/csf-za/tax-compliance-api/internal/domain/entity"

// CompanyRepository defines the persistence port for Company.
// Implementations live in infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByVATNumber(vatNumber string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
}

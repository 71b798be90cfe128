package company

import (
	"time"

	"github.com/google/uuid"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	"github.com/csf-za/tax-compliance-api/internal/domain"
	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
	"github.com/csf-za/tax-compliance-api/internal/domain/repository"
)

// UseCase company business rules.
type UseCase struct {
	repo repository.CompanyRepository
}

// NewUseCase builds the use case with its persistence port.
func NewUseCase(repo repository.CompanyRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create creates a company. Returns domain.ErrDuplicate when the VAT
// number is already registered.
func (uc *UseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	existing, _ := uc.repo.GetByVATNumber(in.VATNumber)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	c := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		VATNumber: in.VATNumber,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// GetByID returns a company by ID, or nil when absent.
func (uc *UseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return toResponse(c), nil
}

// List lists companies with pagination.
func (uc *UseCase) List(limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		VATNumber: c.VATNumber,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

package settings

import (
	"context"
	"time"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	"github.com/csf-za/tax-compliance-api/internal/domain"
	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
	"github.com/csf-za/tax-compliance-api/internal/domain/repository"
	"github.com/csf-za/tax-compliance-api/internal/domain/vat"
)

// UseCase manages the per-company VAT return settings.
type UseCase struct {
	settings repository.SettingsRepository
}

// NewUseCase builds the use case.
func NewUseCase(settings repository.SettingsRepository) *UseCase {
	return &UseCase{settings: settings}
}

// Get returns the company's settings.
func (uc *UseCase) Get(_ context.Context, companyID string) (*dto.SettingsResponse, error) {
	s, err := uc.settings.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSettingsMissing
	}
	return toResponse(s), nil
}

// Upsert creates or replaces the company's settings. Classification
// labels on account rows must be drawn from the statutory set.
func (uc *UseCase) Upsert(_ context.Context, companyID string, in dto.UpsertSettingsRequest) (*dto.SettingsResponse, error) {
	for _, ac := range in.AccountClassifications {
		if ac.Account == "" {
			return nil, domain.ErrInvalidInput
		}
		if ac.DebitClassification != "" && !vat.Valid(vat.Classification(ac.DebitClassification)) {
			return nil, domain.ErrInvalidInput
		}
		if ac.CreditClassification != "" && !vat.Valid(vat.Classification(ac.CreditClassification)) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	s := &entity.VATReturnSettings{
		CompanyID: companyID,

		StandardRateNonCapital: in.StandardRateNonCapital,
		StandardRateCapital:    in.StandardRateCapital,
		ZeroRateNonExported:    in.ZeroRateNonExported,
		ZeroRateExported:       in.ZeroRateExported,
		Exempt:                 in.Exempt,

		InputCapitalLocal:  in.InputCapitalLocal,
		InputCapitalImport: in.InputCapitalImport,
		InputGoodsLocal:    in.InputGoodsLocal,
		InputGoodsImport:   in.InputGoodsImport,

		TaxAccounts: in.TaxAccounts,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, ac := range in.AccountClassifications {
		s.AccountClassifications = append(s.AccountClassifications, entity.AccountClassification{
			Account:              ac.Account,
			DebitClassification:  ac.DebitClassification,
			CreditClassification: ac.CreditClassification,
		})
	}

	if err := uc.settings.Upsert(s); err != nil {
		return nil, err
	}
	return toResponse(s), nil
}

func toResponse(s *entity.VATReturnSettings) *dto.SettingsResponse {
	resp := &dto.SettingsResponse{
		CompanyID: s.CompanyID,

		StandardRateNonCapital: s.StandardRateNonCapital,
		StandardRateCapital:    s.StandardRateCapital,
		ZeroRateNonExported:    s.ZeroRateNonExported,
		ZeroRateExported:       s.ZeroRateExported,
		Exempt:                 s.Exempt,

		InputCapitalLocal:  s.InputCapitalLocal,
		InputCapitalImport: s.InputCapitalImport,
		InputGoodsLocal:    s.InputGoodsLocal,
		InputGoodsImport:   s.InputGoodsImport,

		TaxAccounts: s.TaxAccounts,

		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	for _, ac := range s.AccountClassifications {
		resp.AccountClassifications = append(resp.AccountClassifications, dto.AccountClassificationDTO{
			Account:              ac.Account,
			DebitClassification:  ac.DebitClassification,
			CreditClassification: ac.CreditClassification,
		})
	}
	return resp
}

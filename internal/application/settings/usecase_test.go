package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	"github.com/csf-za/tax-compliance-api/internal/application/settings"
	"github.com/csf-za/tax-compliance-api/internal/domain"
	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
	"github.com/csf-za/tax-compliance-api/internal/domain/vat"
)

const testCompanyID = "co-1"

type fakeSettingsRepo struct {
	byCompany map[string]*entity.VATReturnSettings
}

func (f *fakeSettingsRepo) GetByCompany(companyID string) (*entity.VATReturnSettings, error) {
	return f.byCompany[companyID], nil
}

func (f *fakeSettingsRepo) Upsert(s *entity.VATReturnSettings) error {
	f.byCompany[s.CompanyID] = s
	return nil
}

func newUseCase() (*settings.UseCase, *fakeSettingsRepo) {
	repo := &fakeSettingsRepo{byCompany: map[string]*entity.VATReturnSettings{}}
	return settings.NewUseCase(repo), repo
}

func TestGet_UnconfiguredCompany(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Get(context.Background(), testCompanyID)

	assert.ErrorIs(t, err, domain.ErrSettingsMissing)
}

func TestUpsert_PersistsAndReplaces(t *testing.T) {
	uc, repo := newUseCase()

	resp, err := uc.Upsert(context.Background(), testCompanyID, dto.UpsertSettingsRequest{
		StandardRateNonCapital: "Standard Sales - CSF",
		TaxAccounts:            []string{"VAT - CSF"},
		AccountClassifications: []dto.AccountClassificationDTO{
			{
				Account:             "Bank Charges - CSF",
				DebitClassification: string(vat.InputOtherLocal),
			},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, testCompanyID, resp.CompanyID)
	assert.Equal(t, []string{"VAT - CSF"}, resp.TaxAccounts)

	// A second upsert replaces, not merges.
	resp, err = uc.Upsert(context.Background(), testCompanyID, dto.UpsertSettingsRequest{
		TaxAccounts: []string{"VAT Control - CSF"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.AccountClassifications)
	assert.Equal(t, []string{"VAT Control - CSF"}, repo.byCompany[testCompanyID].TaxAccounts)

	got, err := uc.Get(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Empty(t, got.StandardRateNonCapital)
}

func TestUpsert_RejectsAccountRowWithoutAccount(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Upsert(context.Background(), testCompanyID, dto.UpsertSettingsRequest{
		AccountClassifications: []dto.AccountClassificationDTO{
			{DebitClassification: string(vat.InputOtherLocal)},
		},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpsert_RejectsUnknownClassificationLabel(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Upsert(context.Background(), testCompanyID, dto.UpsertSettingsRequest{
		AccountClassifications: []dto.AccountClassificationDTO{
			{Account: "Bank Charges - CSF", CreditClassification: "Output - Z Made Up"},
		},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpsert_AllowsEmptyLabels(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Upsert(context.Background(), testCompanyID, dto.UpsertSettingsRequest{
		AccountClassifications: []dto.AccountClassificationDTO{
			{Account: "Bank Charges - CSF"},
		},
	})

	assert.NoError(t, err)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
	"github.com/csf-za/tax-compliance-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implements the SettingsRepository port on PostgreSQL. The
// settings span three tables: the template header, the tax account list
// and the per-account classification labels.
type SettingsRepo struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository builds the settings persistence adapter.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// GetByCompany loads the company's settings with tax accounts and account
// classifications, or nil when not configured.
func (r *SettingsRepo) GetByCompany(companyID string) (*entity.VATReturnSettings, error) {
	ctx := context.Background()
	query := `
		SELECT company_id,
		       standard_rate_non_capital, standard_rate_capital,
		       zero_rate_non_exported, zero_rate_exported, exempt,
		       input_capital_local, input_capital_import,
		       input_goods_local, input_goods_import,
		       created_at, updated_at
		FROM vat_return_settings WHERE company_id = $1`
	var s entity.VATReturnSettings
	err := r.pool.QueryRow(ctx, query, companyID).Scan(
		&s.CompanyID,
		&s.StandardRateNonCapital, &s.StandardRateCapital,
		&s.ZeroRateNonExported, &s.ZeroRateExported, &s.Exempt,
		&s.InputCapitalLocal, &s.InputCapitalImport,
		&s.InputGoodsLocal, &s.InputGoodsImport,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT account FROM vat_return_tax_accounts
		WHERE company_id = $1 ORDER BY idx`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list tax accounts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var account string
		if err := rows.Scan(&account); err != nil {
			return nil, fmt.Errorf("scan tax account: %w", err)
		}
		s.TaxAccounts = append(s.TaxAccounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	acRows, err := r.pool.Query(ctx, `
		SELECT account, debit_classification, credit_classification
		FROM vat_return_account_classifications
		WHERE company_id = $1 ORDER BY idx`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list account classifications: %w", err)
	}
	defer acRows.Close()
	for acRows.Next() {
		var ac entity.AccountClassification
		if err := acRows.Scan(&ac.Account, &ac.DebitClassification, &ac.CreditClassification); err != nil {
			return nil, fmt.Errorf("scan account classification: %w", err)
		}
		s.AccountClassifications = append(s.AccountClassifications, ac)
	}
	return &s, acRows.Err()
}

// Upsert replaces the company's settings atomically: the header row is
// upserted and both child lists rewritten.
func (r *SettingsRepo) Upsert(s *entity.VATReturnSettings) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO vat_return_settings (
			company_id,
			standard_rate_non_capital, standard_rate_capital,
			zero_rate_non_exported, zero_rate_exported, exempt,
			input_capital_local, input_capital_import,
			input_goods_local, input_goods_import,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (company_id) DO UPDATE SET
			standard_rate_non_capital = EXCLUDED.standard_rate_non_capital,
			standard_rate_capital     = EXCLUDED.standard_rate_capital,
			zero_rate_non_exported    = EXCLUDED.zero_rate_non_exported,
			zero_rate_exported        = EXCLUDED.zero_rate_exported,
			exempt                    = EXCLUDED.exempt,
			input_capital_local       = EXCLUDED.input_capital_local,
			input_capital_import      = EXCLUDED.input_capital_import,
			input_goods_local         = EXCLUDED.input_goods_local,
			input_goods_import        = EXCLUDED.input_goods_import,
			updated_at                = EXCLUDED.updated_at`,
		s.CompanyID,
		s.StandardRateNonCapital, s.StandardRateCapital,
		s.ZeroRateNonExported, s.ZeroRateExported, s.Exempt,
		s.InputCapitalLocal, s.InputCapitalImport,
		s.InputGoodsLocal, s.InputGoodsImport,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM vat_return_tax_accounts WHERE company_id = $1`, s.CompanyID); err != nil {
		return fmt.Errorf("clear tax accounts: %w", err)
	}
	for i, account := range s.TaxAccounts {
		_, err := tx.Exec(ctx, `
			INSERT INTO vat_return_tax_accounts (company_id, account, idx)
			VALUES ($1, $2, $3)`, s.CompanyID, account, i)
		if err != nil {
			return fmt.Errorf("insert tax account: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM vat_return_account_classifications WHERE company_id = $1`, s.CompanyID); err != nil {
		return fmt.Errorf("clear account classifications: %w", err)
	}
	for i, ac := range s.AccountClassifications {
		_, err := tx.Exec(ctx, `
			INSERT INTO vat_return_account_classifications
				(company_id, account, debit_classification, credit_classification, idx)
			VALUES ($1, $2, $3, $4, $5)`,
			s.CompanyID, ac.Account, ac.DebitClassification, ac.CreditClassification, i)
		if err != nil {
			return fmt.Errorf("insert account classification: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
	"github.com/csf-za/tax-compliance-api/internal/domain/repository"
)

var _ repository.VATReturnRepository = (*VATReturnRepo)(nil)

// VATReturnRepo implements the VATReturnRepository port on PostgreSQL
// (usable with pool or tx).
type VATReturnRepo struct {
	q Querier
}

// NewVATReturnRepository builds the VAT return adapter. Pass pool or tx.
func NewVATReturnRepository(q Querier) *VATReturnRepo {
	return &VATReturnRepo{q: q}
}

const vatReturnColumns = `
	id, company_id, date_from, date_to, status,
	acc_exceed_28_days, acc_exceed_28_days_percent, acc_not_exceed_28_days,
	adj_change_in_use_excl, adj_other_incl, change_in_use, bad_debts, other,
	standard_rate_main_excl, standard_rate_main_incl,
	standard_rate_capital_excl, standard_rate_capital_incl,
	zero_rate_main_excl, zero_rate_exported_excl, exempt_excl,
	acc_exceed_28_days_total, acc_total_excl, acc_total_incl,
	adj_change_in_use_incl, total_output_tax,
	capital_goods_supplied, capital_goods_imported,
	other_goods_supplied, other_goods_imported, total_input_tax,
	total_vat_payable_refundable,
	created_at, updated_at, submitted_at`

// Create persists a new return header.
func (r *VATReturnRepo) Create(ret *entity.VATReturn) error {
	query := `
		INSERT INTO vat_returns (` + vatReturnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25,
		        $26, $27, $28, $29, $30, $31, $32, $33, $34)`
	_, err := r.q.Exec(context.Background(), query, vatReturnArgs(ret)...)
	if err != nil {
		return fmt.Errorf("insert vat return: %w", err)
	}
	return nil
}

// GetByID loads the return with its lines, or nil when absent.
func (r *VATReturnRepo) GetByID(id string) (*entity.VATReturn, error) {
	ctx := context.Background()
	query := `SELECT ` + vatReturnColumns + ` FROM vat_returns WHERE id = $1`
	var ret entity.VATReturn
	err := r.q.QueryRow(ctx, query, id).Scan(
		&ret.ID, &ret.CompanyID, &ret.DateFrom, &ret.DateTo, &ret.Status,
		&ret.AccExceed28Days, &ret.AccExceed28DaysPercent, &ret.AccNotExceed28Days,
		&ret.AdjChangeInUseExcl, &ret.AdjOtherIncl, &ret.ChangeInUse, &ret.BadDebts, &ret.Other,
		&ret.StandardRateMainExcl, &ret.StandardRateMainIncl,
		&ret.StandardRateCapitalExcl, &ret.StandardRateCapitalIncl,
		&ret.ZeroRateMainExcl, &ret.ZeroRateExportedExcl, &ret.ExemptExcl,
		&ret.AccExceed28DaysTotal, &ret.AccTotalExcl, &ret.AccTotalIncl,
		&ret.AdjChangeInUseIncl, &ret.TotalOutputTax,
		&ret.CapitalGoodsSupplied, &ret.CapitalGoodsImported,
		&ret.OtherGoodsSupplied, &ret.OtherGoodsImported, &ret.TotalInputTax,
		&ret.TotalVATPayableRefundable,
		&ret.CreatedAt, &ret.UpdatedAt, &ret.SubmittedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vat return: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, return_id, gl_entry, voucher_type, voucher_no, posting_date,
		       taxes_and_charges, tax_debit, tax_credit,
		       tax_amount, incl_tax_amount, classification, is_cancelled
		FROM vat_return_lines WHERE return_id = $1 ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("list vat return lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.VATReturnLine
		err := rows.Scan(
			&l.ID, &l.ReturnID, &l.GLEntry, &l.VoucherType, &l.VoucherNo, &l.PostingDate,
			&l.TaxesAndCharges, &l.TaxDebit, &l.TaxCredit,
			&l.TaxAmount, &l.InclTaxAmount, &l.Classification, &l.IsCancelled,
		)
		if err != nil {
			return nil, fmt.Errorf("scan vat return line: %w", err)
		}
		ret.Lines = append(ret.Lines, l)
	}
	return &ret, rows.Err()
}

// Update persists the header: status, manual fields and every calculated
// summary field.
func (r *VATReturnRepo) Update(ret *entity.VATReturn) error {
	query := `
		UPDATE vat_returns SET
			status = $2,
			acc_exceed_28_days = $3, acc_exceed_28_days_percent = $4, acc_not_exceed_28_days = $5,
			adj_change_in_use_excl = $6, adj_other_incl = $7, change_in_use = $8, bad_debts = $9, other = $10,
			standard_rate_main_excl = $11, standard_rate_main_incl = $12,
			standard_rate_capital_excl = $13, standard_rate_capital_incl = $14,
			zero_rate_main_excl = $15, zero_rate_exported_excl = $16, exempt_excl = $17,
			acc_exceed_28_days_total = $18, acc_total_excl = $19, acc_total_incl = $20,
			adj_change_in_use_incl = $21, total_output_tax = $22,
			capital_goods_supplied = $23, capital_goods_imported = $24,
			other_goods_supplied = $25, other_goods_imported = $26, total_input_tax = $27,
			total_vat_payable_refundable = $28,
			updated_at = $29, submitted_at = $30
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.Status,
		ret.AccExceed28Days, ret.AccExceed28DaysPercent, ret.AccNotExceed28Days,
		ret.AdjChangeInUseExcl, ret.AdjOtherIncl, ret.ChangeInUse, ret.BadDebts, ret.Other,
		ret.StandardRateMainExcl, ret.StandardRateMainIncl,
		ret.StandardRateCapitalExcl, ret.StandardRateCapitalIncl,
		ret.ZeroRateMainExcl, ret.ZeroRateExportedExcl, ret.ExemptExcl,
		ret.AccExceed28DaysTotal, ret.AccTotalExcl, ret.AccTotalIncl,
		ret.AdjChangeInUseIncl, ret.TotalOutputTax,
		ret.CapitalGoodsSupplied, ret.CapitalGoodsImported,
		ret.OtherGoodsSupplied, ret.OtherGoodsImported, ret.TotalInputTax,
		ret.TotalVATPayableRefundable,
		ret.UpdatedAt, ret.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("update vat return: %w", err)
	}
	return nil
}

// ReplaceLines swaps the return's lines for the given set, keeping slice
// order as display order.
func (r *VATReturnRepo) ReplaceLines(returnID string, lines []entity.VATReturnLine) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM vat_return_lines WHERE return_id = $1`, returnID); err != nil {
		return fmt.Errorf("clear vat return lines: %w", err)
	}
	for i, l := range lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO vat_return_lines (
				id, return_id, gl_entry, voucher_type, voucher_no, posting_date,
				taxes_and_charges, tax_debit, tax_credit,
				tax_amount, incl_tax_amount, classification, is_cancelled, idx)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			l.ID, returnID, l.GLEntry, l.VoucherType, l.VoucherNo, l.PostingDate,
			l.TaxesAndCharges, l.TaxDebit, l.TaxCredit,
			l.TaxAmount, l.InclTaxAmount, l.Classification, l.IsCancelled, i,
		)
		if err != nil {
			return fmt.Errorf("insert vat return line: %w", err)
		}
	}
	return nil
}

// SetLineClassification updates one line's classification label.
func (r *VATReturnRepo) SetLineClassification(returnID, lineID, classification string) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE vat_return_lines SET classification = $3
		WHERE return_id = $1 AND id = $2`, returnID, lineID, classification)
	if err != nil {
		return fmt.Errorf("classify vat return line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("classify vat return line: line %s not found", lineID)
	}
	return nil
}

func vatReturnArgs(ret *entity.VATReturn) []any {
	return []any{
		ret.ID, ret.CompanyID, ret.DateFrom, ret.DateTo, ret.Status,
		ret.AccExceed28Days, ret.AccExceed28DaysPercent, ret.AccNotExceed28Days,
		ret.AdjChangeInUseExcl, ret.AdjOtherIncl, ret.ChangeInUse, ret.BadDebts, ret.Other,
		ret.StandardRateMainExcl, ret.StandardRateMainIncl,
		ret.StandardRateCapitalExcl, ret.StandardRateCapitalIncl,
		ret.ZeroRateMainExcl, ret.ZeroRateExportedExcl, ret.ExemptExcl,
		ret.AccExceed28DaysTotal, ret.AccTotalExcl, ret.AccTotalIncl,
		ret.AdjChangeInUseIncl, ret.TotalOutputTax,
		ret.CapitalGoodsSupplied, ret.CapitalGoodsImported,
		ret.OtherGoodsSupplied, ret.OtherGoodsImported, ret.TotalInputTax,
		ret.TotalVATPayableRefundable,
		ret.CreatedAt, ret.UpdatedAt, ret.SubmittedAt,
	}
}

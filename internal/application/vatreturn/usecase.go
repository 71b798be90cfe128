package vatreturn

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	"github.com/csf-za/tax-compliance-api/internal/domain"
	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
	"github.com/csf-za/tax-compliance-api/internal/domain/repository"
	"github.com/csf-za/tax-compliance-api/internal/domain/vat"
	"github.com/csf-za/tax-compliance-api/pkg/logger"
)

// SubmitBlockedError reports how many lines still need a classification
// before the return may be submitted.
type SubmitBlockedError struct {
	Unclassified int
}

func (e *SubmitBlockedError) Error() string {
	return fmt.Sprintf("Please classify the %d remaining unclassified transactions before submitting", e.Unclassified)
}

func (e *SubmitBlockedError) Unwrap() error { return domain.ErrConflict }

// TxRunner runs fn with VAT return repositories bound to one transaction.
type TxRunner interface {
	RunVATReturn(ctx context.Context, fn func(returns repository.VATReturnRepository) error) error
}

// PDFGenerator renders a return as a printable VAT201 document.
type PDFGenerator interface {
	GenerateVAT201(ctx context.Context, ret *entity.VATReturn, company *entity.Company) ([]byte, error)
}

// UseCase drives the VAT return lifecycle: open a return for a period,
// pull and classify the period's GL rows, save manual adjustments with
// recalculated totals, manually reclassify lines and finally submit.
type UseCase struct {
	returns   repository.VATReturnRepository
	glRows    repository.GLEntryRepository
	settings  repository.SettingsRepository
	companies repository.CompanyRepository
	tx        TxRunner
	pdf       PDFGenerator
	log       *logger.Logger
}

// NewUseCase builds the use case.
func NewUseCase(
	returns repository.VATReturnRepository,
	glRows repository.GLEntryRepository,
	settings repository.SettingsRepository,
	companies repository.CompanyRepository,
	tx TxRunner,
	pdf PDFGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		returns:   returns,
		glRows:    glRows,
		settings:  settings,
		companies: companies,
		tx:        tx,
		pdf:       pdf,
		log:       log,
	}
}

// Create opens a Draft return for the given period.
func (uc *UseCase) Create(_ context.Context, companyID string, in dto.CreateVATReturnRequest) (*dto.VATReturnResponse, error) {
	dateFrom, err := time.Parse("2006-01-02", in.DateFrom)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	dateTo, err := time.Parse("2006-01-02", in.DateTo)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if dateTo.Before(dateFrom) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	ret := &entity.VATReturn{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		Status:    entity.VATReturnStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.returns.Create(ret); err != nil {
		return nil, err
	}
	return toResponse(ret), nil
}

// Get returns the document with its lines.
func (uc *UseCase) Get(_ context.Context, companyID, returnID string) (*dto.VATReturnResponse, error) {
	ret, err := uc.load(companyID, returnID)
	if err != nil {
		return nil, err
	}
	return toResponse(ret), nil
}

// PullGLEntries replaces the return's lines with the GL rows posted in
// its period and classifies each voucher group from the company
// settings. Existing lines, including manual classifications, are
// discarded; pulling is a full refresh.
func (uc *UseCase) PullGLEntries(ctx context.Context, companyID, returnID string) (*dto.VATReturnResponse, error) {
	ret, err := uc.load(companyID, returnID)
	if err != nil {
		return nil, err
	}
	if !ret.IsDraft() {
		return nil, domain.ErrDocumentLocked
	}

	settings, err := uc.settings.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, domain.ErrSettingsMissing
	}

	rows, err := uc.glRows.FetchReturnRows(ret.DateFrom, ret.DateTo, settings.TaxAccounts)
	if err != nil {
		return nil, err
	}

	var lines []entity.VATReturnLine
	for _, group := range vat.GroupByVoucher(rows) {
		res := vat.Classify(group, settings)
		voucher := group.Voucher
		lines = append(lines, entity.VATReturnLine{
			ID:              uuid.New().String(),
			ReturnID:        ret.ID,
			GLEntry:         voucher.Name,
			VoucherType:     voucher.VoucherType,
			VoucherNo:       voucher.VoucherNo,
			PostingDate:     voucher.PostingDate,
			TaxesAndCharges: voucher.TaxesAndChargesTemplate,
			TaxDebit:        voucher.GeneralLedgerDebit,
			TaxCredit:       voucher.GeneralLedgerCredit,
			TaxAmount:       res.TaxAmount,
			InclTaxAmount:   res.InclTaxAmount,
			Classification:  string(res.Classification),
			IsCancelled:     voucher.IsCancelled,
		})
	}

	ret.Lines = lines
	vat.Recalculate(ret)
	ret.UpdatedAt = time.Now()

	err = uc.tx.RunVATReturn(ctx, func(returns repository.VATReturnRepository) error {
		if err := returns.ReplaceLines(ret.ID, ret.Lines); err != nil {
			return err
		}
		return returns.Update(ret)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("return_id", ret.ID).
		Int("lines", len(ret.Lines)).
		Int("unclassified", vat.UnclassifiedCount(ret.Lines)).
		Msg("gl entries pulled")

	return toResponse(ret), nil
}

// Save applies the manual-entry fields and recomputes every calculated
// field from them and the current lines.
func (uc *UseCase) Save(_ context.Context, companyID, returnID string, in dto.SaveVATReturnRequest) (*dto.VATReturnResponse, error) {
	ret, err := uc.load(companyID, returnID)
	if err != nil {
		return nil, err
	}
	if !ret.IsDraft() {
		return nil, domain.ErrDocumentLocked
	}

	ret.AccExceed28Days = in.AccExceed28Days
	ret.AccExceed28DaysPercent = in.AccExceed28DaysPercent
	ret.AccNotExceed28Days = in.AccNotExceed28Days
	ret.AdjChangeInUseExcl = in.AdjChangeInUseExcl
	ret.AdjOtherIncl = in.AdjOtherIncl
	ret.ChangeInUse = in.ChangeInUse
	ret.BadDebts = in.BadDebts
	ret.Other = in.Other

	vat.Recalculate(ret)
	ret.UpdatedAt = time.Now()

	if err := uc.returns.Update(ret); err != nil {
		return nil, err
	}
	return toResponse(ret), nil
}

// Classify sets the classification of the chosen lines by hand. The
// summary fields are recomputed afterwards so the document is never
// stale.
func (uc *UseCase) Classify(ctx context.Context, companyID, returnID string, in dto.ManualClassifyRequest) (*dto.VATReturnResponse, error) {
	ret, err := uc.load(companyID, returnID)
	if err != nil {
		return nil, err
	}
	if !ret.IsDraft() {
		return nil, domain.ErrDocumentLocked
	}
	if !vat.Valid(vat.Classification(in.Classification)) {
		return nil, domain.ErrInvalidInput
	}
	if len(in.LineIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	byID := make(map[string]*entity.VATReturnLine, len(ret.Lines))
	for i := range ret.Lines {
		byID[ret.Lines[i].ID] = &ret.Lines[i]
	}
	for _, id := range in.LineIDs {
		if _, ok := byID[id]; !ok {
			return nil, domain.ErrNotFound
		}
	}
	for _, id := range in.LineIDs {
		byID[id].Classification = in.Classification
	}

	vat.Recalculate(ret)
	ret.UpdatedAt = time.Now()

	err = uc.tx.RunVATReturn(ctx, func(returns repository.VATReturnRepository) error {
		for _, id := range in.LineIDs {
			if err := returns.SetLineClassification(ret.ID, id, in.Classification); err != nil {
				return err
			}
		}
		return returns.Update(ret)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(ret), nil
}

// Submit finalizes the return. Every non-cancelled line must carry a
// classification; otherwise submission is refused with the remaining
// count.
func (uc *UseCase) Submit(_ context.Context, companyID, returnID string) (*dto.VATReturnResponse, error) {
	ret, err := uc.load(companyID, returnID)
	if err != nil {
		return nil, err
	}
	if !ret.IsDraft() {
		return nil, domain.ErrDocumentLocked
	}

	if n := vat.UnclassifiedCount(ret.Lines); n > 0 {
		return nil, &SubmitBlockedError{Unclassified: n}
	}

	vat.Recalculate(ret)
	now := time.Now()
	ret.Status = entity.VATReturnStatusSubmitted
	ret.SubmittedAt = &now
	ret.UpdatedAt = now

	if err := uc.returns.Update(ret); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("return_id", ret.ID).
		Str("payable", ret.TotalVATPayableRefundable.String()).
		Msg("vat return submitted")

	return toResponse(ret), nil
}

// DownloadVAT201 renders the return as a PDF document.
func (uc *UseCase) DownloadVAT201(ctx context.Context, companyID, returnID string) ([]byte, error) {
	ret, err := uc.load(companyID, returnID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.GenerateVAT201(ctx, ret, company)
}

func (uc *UseCase) load(companyID, returnID string) (*entity.VATReturn, error) {
	ret, err := uc.returns.GetByID(returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	if ret.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return ret, nil
}

func toResponse(r *entity.VATReturn) *dto.VATReturnResponse {
	resp := &dto.VATReturnResponse{
		ID:        r.ID,
		CompanyID: r.CompanyID,
		DateFrom:  r.DateFrom.Format("2006-01-02"),
		DateTo:    r.DateTo.Format("2006-01-02"),
		Status:    r.Status,

		AccExceed28Days:        r.AccExceed28Days,
		AccExceed28DaysPercent: r.AccExceed28DaysPercent,
		AccNotExceed28Days:     r.AccNotExceed28Days,
		AdjChangeInUseExcl:     r.AdjChangeInUseExcl,
		AdjOtherIncl:           r.AdjOtherIncl,
		ChangeInUse:            r.ChangeInUse,
		BadDebts:               r.BadDebts,
		Other:                  r.Other,

		StandardRateMainExcl:    r.StandardRateMainExcl,
		StandardRateMainIncl:    r.StandardRateMainIncl,
		StandardRateCapitalExcl: r.StandardRateCapitalExcl,
		StandardRateCapitalIncl: r.StandardRateCapitalIncl,
		ZeroRateMainExcl:        r.ZeroRateMainExcl,
		ZeroRateExportedExcl:    r.ZeroRateExportedExcl,
		ExemptExcl:              r.ExemptExcl,
		AccExceed28DaysTotal:    r.AccExceed28DaysTotal,
		AccTotalExcl:            r.AccTotalExcl,
		AccTotalIncl:            r.AccTotalIncl,
		AdjChangeInUseIncl:      r.AdjChangeInUseIncl,
		TotalOutputTax:          r.TotalOutputTax,

		CapitalGoodsSupplied: r.CapitalGoodsSupplied,
		CapitalGoodsImported: r.CapitalGoodsImported,
		OtherGoodsSupplied:   r.OtherGoodsSupplied,
		OtherGoodsImported:   r.OtherGoodsImported,
		TotalInputTax:        r.TotalInputTax,

		TotalVATPayableRefundable: r.TotalVATPayableRefundable,

		UnclassifiedCount: vat.UnclassifiedCount(r.Lines),
		Lines:             make([]dto.VATReturnLineResponse, 0, len(r.Lines)),

		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		SubmittedAt: r.SubmittedAt,
	}
	for _, l := range r.Lines {
		resp.Lines = append(resp.Lines, toLineResponse(l))
	}
	return resp
}

func toLineResponse(l entity.VATReturnLine) dto.VATReturnLineResponse {
	out := dto.VATReturnLineResponse{
		ID:              l.ID,
		GLEntry:         l.GLEntry,
		VoucherType:     l.VoucherType,
		VoucherNo:       l.VoucherNo,
		PostingDate:     l.PostingDate.Format("2006-01-02"),
		TaxesAndCharges: l.TaxesAndCharges,
		TaxDebit:        l.TaxDebit,
		TaxCredit:       l.TaxCredit,
		Classification:  l.Classification,
		IsCancelled:     l.IsCancelled,
	}
	if l.TaxAmount.Valid {
		d := l.TaxAmount.Decimal
		out.TaxAmount = &d
	}
	if l.InclTaxAmount.Valid {
		d := l.InclTaxAmount.Decimal
		out.InclTaxAmount = &d
	}
	return out
}

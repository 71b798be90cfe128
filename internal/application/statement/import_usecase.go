package statement

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	"github.com/csf-za/tax-compliance-api/internal/domain"
	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
	"github.com/csf-za/tax-compliance-api/internal/domain/repository"
	stmt "github.com/csf-za/tax-compliance-api/internal/domain/statement"
	"github.com/csf-za/tax-compliance-api/pkg/logger"
)

// ErrWrongFileType rejects statement uploads that are not CSV files.
var ErrWrongFileType = errors.New("import file should be of type .csv")

// TxRunner runs fn with statement repositories bound to one transaction.
type TxRunner interface {
	RunStatement(ctx context.Context, fn func(
		importRepo repository.StatementImportRepository,
		fileRepo repository.StatementFileRepository,
	) error) error
}

// Notices shown when a transform is applied to an uploaded statement.
const (
	noticeReshaped  = "The uploaded file will be modified: the Amount column will be split in two"
	noticeSanitized = "Null bytes were removed from the uploaded file"
)

// ImportUseCase bank statement import: upload, prepare (sanitize +
// reshape) and preview.
type ImportUseCase struct {
	imports repository.StatementImportRepository
	files   repository.StatementFileRepository
	tx      TxRunner
	log     *logger.Logger
}

// NewImportUseCase builds the use case.
func NewImportUseCase(
	imports repository.StatementImportRepository,
	files repository.StatementFileRepository,
	tx TxRunner,
	log *logger.Logger,
) *ImportUseCase {
	return &ImportUseCase{imports: imports, files: files, tx: tx, log: log}
}

// Create stores the uploaded file and opens a Draft import document
// pointing at it.
func (uc *ImportUseCase) Create(ctx context.Context, companyID string, in dto.CreateStatementImportRequest) (*dto.StatementImportResponse, error) {
	if in.Bank == "" || in.BankAccount == "" || in.FileName == "" || len(in.Content) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	file := &entity.StatementFile{
		ID:        uuid.New().String(),
		FileName:  in.FileName,
		Content:   in.Content,
		CreatedAt: now,
	}
	imp := &entity.StatementImport{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Bank:        in.Bank,
		BankAccount: in.BankAccount,
		FileID:      file.ID,
		Status:      entity.StatementImportStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	file.ImportID = imp.ID

	err := uc.tx.RunStatement(ctx, func(
		importRepo repository.StatementImportRepository,
		fileRepo repository.StatementFileRepository,
	) error {
		if err := importRepo.Create(imp); err != nil {
			return err
		}
		return fileRepo.Save(file)
	})
	if err != nil {
		return nil, err
	}
	return toImportResponse(imp, file.FileName), nil
}

// Prepare transforms the uploaded file into the canonical import format
// when needed: for First National Bank the file is first null-byte
// sanitized, then for both supported banks the Amount column is split
// into Deposit/Withdrawal. Each transform persists a new file and
// repoints the import; unsupported banks and already-modified files pass
// through untouched. Either everything persists or nothing does.
func (uc *ImportUseCase) Prepare(ctx context.Context, companyID, importID string) (*dto.PrepareStatementResponse, error) {
	imp, file, err := uc.load(companyID, importID)
	if err != nil {
		return nil, err
	}

	bank := stmt.Bank(imp.Bank)
	if stmt.IsModified(file.FileName) || !stmt.Supported(bank) {
		return &dto.PrepareStatementResponse{Import: *toImportResponse(imp, file.FileName)}, nil
	}
	if strings.ToLower(filepath.Ext(file.FileName)) != ".csv" {
		return nil, ErrWrongFileType
	}

	now := time.Now()
	var notices []string
	var derived []*entity.StatementFile
	current := file

	if bank == stmt.BankFNB && !stmt.IsCleaned(current.FileName) {
		hadNullBytes := stmt.ContainsNullBytes(current.Content)
		cleaned := &entity.StatementFile{
			ID:        uuid.New().String(),
			ImportID:  imp.ID,
			FileName:  derivedName(current.FileName, stmt.CleanedSuffix),
			Content:   stmt.StripNullBytes(current.Content),
			CreatedAt: now,
		}
		derived = append(derived, cleaned)
		if hadNullBytes {
			notices = append(notices, noticeSanitized)
		}
		current = cleaned
	}

	reshaped, err := stmt.Reshape(bank, current.Content, imp.BankAccount)
	if err != nil {
		return nil, err
	}
	modified := &entity.StatementFile{
		ID:        uuid.New().String(),
		ImportID:  imp.ID,
		FileName:  derivedName(current.FileName, stmt.ModifiedSuffix),
		Content:   reshaped,
		CreatedAt: now,
	}
	derived = append(derived, modified)
	notices = append(notices, noticeReshaped)

	imp.FileID = modified.ID
	imp.Status = entity.StatementImportStatusReady
	imp.UpdatedAt = now

	err = uc.tx.RunStatement(ctx, func(
		importRepo repository.StatementImportRepository,
		fileRepo repository.StatementFileRepository,
	) error {
		for _, f := range derived {
			if err := fileRepo.Save(f); err != nil {
				return err
			}
		}
		return importRepo.Update(imp)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("import_id", imp.ID).
		Str("bank", imp.Bank).
		Str("file", modified.FileName).
		Msg("statement prepared")

	return &dto.PrepareStatementResponse{
		Import:  *toImportResponse(imp, modified.FileName),
		Notices: notices,
	}, nil
}

// Preview renders the current file as columns and rows. Files still
// containing null bytes are refused: the preview comes back entirely
// empty rather than attempting to parse them.
func (uc *ImportUseCase) Preview(_ context.Context, companyID, importID string) (*dto.StatementPreviewResponse, error) {
	_, file, err := uc.load(companyID, importID)
	if err != nil {
		return nil, err
	}

	if stmt.ContainsNullBytes(file.Content) {
		return &dto.StatementPreviewResponse{Columns: []string{}, Rows: [][]string{}, Warnings: []string{}}, nil
	}

	records, err := stmt.ReadRecords(file.Content)
	if err != nil {
		return nil, err
	}
	resp := &dto.StatementPreviewResponse{Columns: []string{}, Rows: [][]string{}, Warnings: []string{}}
	if len(records) > 0 {
		resp.Columns = records[0]
		resp.Rows = records[1:]
	}
	return resp, nil
}

// Download returns the current file's name and raw content.
func (uc *ImportUseCase) Download(_ context.Context, companyID, importID string) (string, []byte, error) {
	_, file, err := uc.load(companyID, importID)
	if err != nil {
		return "", nil, err
	}
	return file.FileName, file.Content, nil
}

// Get returns the import document with its current file name.
func (uc *ImportUseCase) Get(_ context.Context, companyID, importID string) (*dto.StatementImportResponse, error) {
	imp, file, err := uc.load(companyID, importID)
	if err != nil {
		return nil, err
	}
	return toImportResponse(imp, file.FileName), nil
}

func (uc *ImportUseCase) load(companyID, importID string) (*entity.StatementImport, *entity.StatementFile, error) {
	imp, err := uc.imports.GetByID(importID)
	if err != nil {
		return nil, nil, err
	}
	if imp == nil {
		return nil, nil, domain.ErrNotFound
	}
	if imp.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	file, err := uc.files.GetByID(imp.FileID)
	if err != nil {
		return nil, nil, err
	}
	if file == nil {
		return nil, nil, domain.ErrNotFound
	}
	return imp, file, nil
}

// derivedName appends a marker before the .csv extension:
// "stmt.csv" + "_cleaned.csv" -> "stmt_cleaned.csv".
func derivedName(fileName, suffix string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName)) + suffix
}

func toImportResponse(imp *entity.StatementImport, fileName string) *dto.StatementImportResponse {
	return &dto.StatementImportResponse{
		ID:          imp.ID,
		CompanyID:   imp.CompanyID,
		Bank:        imp.Bank,
		BankAccount: imp.BankAccount,
		FileID:      imp.FileID,
		FileName:    fileName,
		Status:      imp.Status,
		CreatedAt:   imp.CreatedAt,
		UpdatedAt:   imp.UpdatedAt,
	}
}

package statement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csf-za/tax-compliance-api/internal/application/dto"
	appstatement "github.com/csf-za/tax-compliance-api/internal/application/statement"
	"github.com/csf-za/tax-compliance-api/internal/domain"
	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
	"github.com/csf-za/tax-compliance-api/internal/domain/repository"
	stmt "github.com/csf-za/tax-compliance-api/internal/domain/statement"
	"github.com/csf-za/tax-compliance-api/pkg/logger"
)

const (
	testCompanyID = "co-1"
	otherCompany  = "co-2"
)

// ── in-memory fakes ───────────────────────────────────────────────────────────

type fakeImportRepo struct {
	imports map[string]*entity.StatementImport
}

func (f *fakeImportRepo) Create(imp *entity.StatementImport) error {
	f.imports[imp.ID] = imp
	return nil
}

func (f *fakeImportRepo) GetByID(id string) (*entity.StatementImport, error) {
	return f.imports[id], nil
}

func (f *fakeImportRepo) Update(imp *entity.StatementImport) error {
	f.imports[imp.ID] = imp
	return nil
}

type fakeFileRepo struct {
	files map[string]*entity.StatementFile
}

func (f *fakeFileRepo) Save(file *entity.StatementFile) error {
	f.files[file.ID] = file
	return nil
}

func (f *fakeFileRepo) GetByID(id string) (*entity.StatementFile, error) {
	return f.files[id], nil
}

type fakeTxRunner struct {
	imports *fakeImportRepo
	files   *fakeFileRepo
}

func (f *fakeTxRunner) RunStatement(_ context.Context, fn func(
	repository.StatementImportRepository,
	repository.StatementFileRepository,
) error) error {
	return fn(f.imports, f.files)
}

type fixture struct {
	uc    *appstatement.ImportUseCase
	files *fakeFileRepo
}

func newFixture() *fixture {
	imports := &fakeImportRepo{imports: map[string]*entity.StatementImport{}}
	files := &fakeFileRepo{files: map[string]*entity.StatementFile{}}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := appstatement.NewImportUseCase(imports, files, &fakeTxRunner{imports: imports, files: files}, log)
	return &fixture{uc: uc, files: files}
}

func (f *fixture) upload(t *testing.T, bank, fileName string, content []byte) *dto.StatementImportResponse {
	t.Helper()
	resp, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateStatementImportRequest{
		Bank:        bank,
		BankAccount: "FNB Cheque - CSF",
		FileName:    fileName,
		Content:     content,
	})
	require.NoError(t, err)
	return resp
}

const fnbCSV = "Date,Amount,Description\n2024-02-05,100,Client payment\n2024-02-07,-50,Bank fees\n"

// ── Create ────────────────────────────────────────────────────────────────────

func TestCreate_StoresFileAndOpensDraft(t *testing.T) {
	f := newFixture()

	resp := f.upload(t, string(stmt.BankFNB), "statement.csv", []byte(fnbCSV))

	assert.Equal(t, entity.StatementImportStatusDraft, resp.Status)
	assert.Equal(t, "statement.csv", resp.FileName)
	stored, err := f.files.GetByID(resp.FileID)
	require.NoError(t, err)
	assert.Equal(t, []byte(fnbCSV), stored.Content)
}

func TestCreate_RejectsEmptyUpload(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateStatementImportRequest{
		Bank:        string(stmt.BankFNB),
		BankAccount: "FNB Cheque - CSF",
		FileName:    "statement.csv",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Prepare ───────────────────────────────────────────────────────────────────

func TestPrepare_FNBSanitizesThenReshapes(t *testing.T) {
	f := newFixture()
	tainted := []byte("D\x00ate,Amount,Description\n2024-02-05,100,Client payment\n")
	imp := f.upload(t, string(stmt.BankFNB), "statement.csv", tainted)

	resp, err := f.uc.Prepare(context.Background(), testCompanyID, imp.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.StatementImportStatusReady, resp.Import.Status)
	assert.Equal(t, "statement_cleaned_modified.csv", resp.Import.FileName)
	assert.Equal(t, []string{
		"Null bytes were removed from the uploaded file",
		"The uploaded file will be modified: the Amount column will be split in two",
	}, resp.Notices)

	current, err := f.files.GetByID(resp.Import.FileID)
	require.NoError(t, err)
	assert.False(t, stmt.ContainsNullBytes(current.Content))
	assert.Contains(t, string(current.Content), "Deposit,Withdrawal")
}

func TestPrepare_FNBWithoutNullBytesOmitsSanitizeNotice(t *testing.T) {
	f := newFixture()
	imp := f.upload(t, string(stmt.BankFNB), "statement.csv", []byte(fnbCSV))

	resp, err := f.uc.Prepare(context.Background(), testCompanyID, imp.ID)

	require.NoError(t, err)
	assert.Equal(t, "statement_cleaned_modified.csv", resp.Import.FileName,
		"the cleaned artifact is still written")
	assert.Equal(t, []string{
		"The uploaded file will be modified: the Amount column will be split in two",
	}, resp.Notices, "nothing was removed, so no removal notice")
}

func TestPrepare_BankZeroSkipsSanitizing(t *testing.T) {
	f := newFixture()
	raw := []byte("Date,Day,Time,Type,Description 1,Description 2,Fee,Amount,Balance,Has Attachments\n" +
		"2024-02-05,Mon,09:12,EFT,Client payment,REF-1,0.00,100.00,500.00,No\n")
	imp := f.upload(t, string(stmt.BankZero), "statement.csv", raw)

	resp, err := f.uc.Prepare(context.Background(), testCompanyID, imp.ID)

	require.NoError(t, err)
	assert.Equal(t, "statement_modified.csv", resp.Import.FileName)
	assert.Equal(t, []string{
		"The uploaded file will be modified: the Amount column will be split in two",
	}, resp.Notices)
}

func TestPrepare_AlreadyModifiedPassesThrough(t *testing.T) {
	f := newFixture()
	imp := f.upload(t, string(stmt.BankFNB), "statement_modified.csv", []byte(fnbCSV))

	resp, err := f.uc.Prepare(context.Background(), testCompanyID, imp.ID)

	require.NoError(t, err)
	assert.Empty(t, resp.Notices)
	assert.Equal(t, "statement_modified.csv", resp.Import.FileName)
	assert.Equal(t, entity.StatementImportStatusDraft, resp.Import.Status,
		"a pass-through must not mark the import Ready")
}

func TestPrepare_UnsupportedBankPassesThrough(t *testing.T) {
	f := newFixture()
	imp := f.upload(t, "Capitec", "statement.csv", []byte(fnbCSV))

	resp, err := f.uc.Prepare(context.Background(), testCompanyID, imp.ID)

	require.NoError(t, err)
	assert.Empty(t, resp.Notices)
}

func TestPrepare_RejectsNonCSV(t *testing.T) {
	f := newFixture()
	imp := f.upload(t, string(stmt.BankFNB), "statement.xlsx", []byte("binary"))

	_, err := f.uc.Prepare(context.Background(), testCompanyID, imp.ID)

	assert.ErrorIs(t, err, appstatement.ErrWrongFileType)
}

func TestPrepare_BadFileIsFormatError(t *testing.T) {
	f := newFixture()
	imp := f.upload(t, string(stmt.BankFNB), "statement.csv", []byte("no,header,here\n1,2,3\n"))

	_, err := f.uc.Prepare(context.Background(), testCompanyID, imp.ID)

	var fe *stmt.FormatError
	assert.ErrorAs(t, err, &fe)
}

// ── Preview / Download ────────────────────────────────────────────────────────

func TestPreview_SplitsHeaderAndRows(t *testing.T) {
	f := newFixture()
	imp := f.upload(t, string(stmt.BankFNB), "statement.csv", []byte(fnbCSV))

	resp, err := f.uc.Preview(context.Background(), testCompanyID, imp.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Amount", "Description"}, resp.Columns)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, []string{"2024-02-05", "100", "Client payment"}, resp.Rows[0])
}

func TestPreview_RefusesNullByteContent(t *testing.T) {
	f := newFixture()
	imp := f.upload(t, string(stmt.BankFNB), "statement.csv", []byte("Date\x00,Amount\n"))

	resp, err := f.uc.Preview(context.Background(), testCompanyID, imp.ID)

	require.NoError(t, err)
	assert.Empty(t, resp.Columns)
	assert.Empty(t, resp.Rows)
}

func TestDownload_ReturnsCurrentFile(t *testing.T) {
	f := newFixture()
	imp := f.upload(t, string(stmt.BankFNB), "statement.csv", []byte(fnbCSV))

	name, content, err := f.uc.Download(context.Background(), testCompanyID, imp.ID)

	require.NoError(t, err)
	assert.Equal(t, "statement.csv", name)
	assert.Equal(t, []byte(fnbCSV), content)
}

func TestLoad_OtherCompanyIsForbidden(t *testing.T) {
	f := newFixture()
	imp := f.upload(t, string(stmt.BankFNB), "statement.csv", []byte(fnbCSV))

	_, err := f.uc.Get(context.Background(), otherCompany, imp.ID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

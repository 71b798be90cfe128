package statement_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csf-za/tax-compliance-api/internal/domain/statement"
)

const testBankAccount = "FNB Cheque - CSF"

func parseCSV(t *testing.T, raw []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

// FNB exports carry free-form preamble rows before the real header; the
// reshaper must find the header by its column names and split the signed
// Amount into Deposit/Withdrawal.
func TestReshapeFNB_SplitsAmountBySign(t *testing.T) {
	records := [][]string{
		{"Account History for 62001234567"},
		{"Statement Period", "2024-02-01 to 2024-02-29"},
		{"Date", "Amount", "Balance", "Description", "Reference Number"},
		{"2024-02-05", "1500.00", "9000.00", "Client payment", "REF-1"},
		{"2024-02-07", "-350.50", "8649.50", "Office supplies", "REF-2"},
		{"2024-02-09", "0", "8649.50", "Zero adjustment", ""},
	}

	out, err := statement.ReshapeFNB(records, testBankAccount)
	require.NoError(t, err)

	require.Len(t, out, 4)
	assert.Equal(t, statement.OutputHeader, out[0])
	assert.Equal(t, []string{"2024-02-05", "Client payment", "REF-1", "1500.00", "0", testBankAccount}, out[1])
	assert.Equal(t, []string{"2024-02-07", "Office supplies", "REF-2", "0", "350.50", testBankAccount}, out[2])
	assert.Equal(t, []string{"2024-02-09", "Zero adjustment", "", "0", "0", testBankAccount}, out[3])
}

func TestReshapeFNB_AcceptsReferenceColumnVariant(t *testing.T) {
	records := [][]string{
		{"Date", "Description", "Reference", "Amount"},
		{"2024-02-05", "Client payment", "REF-9", "100"},
	}

	out, err := statement.ReshapeFNB(records, testBankAccount)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "REF-9", out[1][2])
}

func TestReshapeFNB_NoHeaderRow(t *testing.T) {
	records := [][]string{
		{"Account History"},
		{"2024-02-05", "1500.00"},
	}

	_, err := statement.ReshapeFNB(records, testBankAccount)
	assert.ErrorIs(t, err, statement.ErrNoHeaderRow)
}

func TestReshapeFNB_InvalidAmountIsFormatError(t *testing.T) {
	records := [][]string{
		{"Date", "Amount", "Description"},
		{"2024-02-05", "not-a-number", "Client payment"},
	}

	_, err := statement.ReshapeFNB(records, testBankAccount)
	var fe *statement.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Error(), "invalid Amount value")
}

func TestReshapeFNB_InvalidDateIsFormatError(t *testing.T) {
	records := [][]string{
		{"Date", "Amount", "Description"},
		{"05/02/2024", "100", "Client payment"},
	}

	_, err := statement.ReshapeFNB(records, testBankAccount)
	var fe *statement.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Error(), "invalid date value")
}

func bankZeroHeader() []string {
	return []string{
		"Date", "Day", "Time", "Type", "Description 1",
		"Description 2", "Fee", "Amount", "Balance", "Has Attachments",
	}
}

// Bank Zero amounts embed thousands spaces and dates come in either
// dashed or slashed form.
func TestReshapeBankZero_ParsesSpacedAmountsAndBothDateForms(t *testing.T) {
	records := [][]string{
		bankZeroHeader(),
		{"2024-02-05", "Mon", "09:12", "EFT", "Client payment", "REF-1", "0.00", "12 500.00", "20 000.00", "No"},
		{"2024/02/07", "Wed", "14:30", "Card", "Office supplies", "REF-2", "1.50", "-350.50", "19 649.50", "No"},
	}

	out, err := statement.ReshapeBankZero(records, testBankAccount)
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, statement.OutputHeader, out[0])
	assert.Equal(t, []string{"2024-02-05", "Client payment", "REF-1", "12500.00", "0", testBankAccount}, out[1])
	assert.Equal(t, []string{"2024-02-07", "Office supplies", "REF-2", "0", "350.50", testBankAccount}, out[2])
}

func TestReshapeBankZero_RejectsWrongHeader(t *testing.T) {
	records := [][]string{
		{"Datum", "Day", "Time", "Type", "Description 1", "Description 2", "Fee", "Amount", "Balance", "Has Attachments"},
	}

	_, err := statement.ReshapeBankZero(records, testBankAccount)
	var fe *statement.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Error(), "unexpected headers")
}

func TestReshapeBankZero_ShortRowIsFormatError(t *testing.T) {
	records := [][]string{
		bankZeroHeader(),
		{"2024-02-05", "Mon", "09:12"},
	}

	_, err := statement.ReshapeBankZero(records, testBankAccount)
	var fe *statement.FormatError
	require.ErrorAs(t, err, &fe)
}

// End-to-end: raw CSV bytes in, canonical CSV bytes out.
func TestReshape_FNBRoundTrip(t *testing.T) {
	raw := []byte("Date,Amount,Description\n2024-02-05,100,Client payment\n")

	out, err := statement.Reshape(statement.BankFNB, raw, testBankAccount)
	require.NoError(t, err)

	records := parseCSV(t, out)
	require.Len(t, records, 2)
	assert.Equal(t, statement.OutputHeader, records[0])
	assert.Equal(t, "100", records[1][3])
}

func TestReshape_UnsupportedBank(t *testing.T) {
	_, err := statement.Reshape(statement.Bank("Capitec"), []byte("Date\n"), testBankAccount)
	require.Error(t, err)
	var fe *statement.FormatError
	assert.False(t, errors.As(err, &fe), "unsupported bank is a caller bug, not a file format problem")
}

// Windows-1252 content (the 0xE9 here is é) must be transcoded rather
// than rejected.
func TestReadRecords_Windows1252Fallback(t *testing.T) {
	raw := []byte("Date,Amount,Description\n2024-02-05,100,Caf\xe9 lunch\n")

	records, err := statement.ReadRecords(raw)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Café lunch", records[1][2])
}

func TestFileNameMarkers(t *testing.T) {
	assert.True(t, statement.IsModified("statement_modified.csv"))
	assert.False(t, statement.IsModified("statement.csv"))
	assert.True(t, statement.IsCleaned("statement_cleaned.csv"))
	assert.False(t, statement.IsCleaned("statement_modified.csv"))
}

func TestSupported(t *testing.T) {
	assert.True(t, statement.Supported(statement.BankFNB))
	assert.True(t, statement.Supported(statement.BankZero))
	assert.False(t, statement.Supported(statement.Bank("Capitec")))
}

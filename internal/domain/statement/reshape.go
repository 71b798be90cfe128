package statement

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

// Bank identifies a supported statement export format.
type Bank string

const (
	BankFNB  Bank = "First National Bank"
	BankZero Bank = "Bank Zero"
)

// Supported reports whether the bank's export format has a reshaper.
func Supported(b Bank) bool {
	return b == BankFNB || b == BankZero
}

// File name markers for already-transformed artifacts.
const (
	ModifiedSuffix = "_modified.csv"
	CleanedSuffix  = "_cleaned.csv"
)

// IsModified reports whether the file name carries the reshaped marker.
func IsModified(fileName string) bool { return strings.HasSuffix(fileName, ModifiedSuffix) }

// IsCleaned reports whether the file name carries the sanitized marker.
func IsCleaned(fileName string) bool { return strings.HasSuffix(fileName, CleanedSuffix) }

// OutputHeader is the canonical 6-column ledger import header every
// reshaper produces.
var OutputHeader = []string{"Date", "Description", "Reference Number", "Deposit", "Withdrawal", "Bank Account"}

// ErrNoHeaderRow is returned when an FNB export has no recognizable
// header row.
var ErrNoHeaderRow = &FormatError{Msg: "could not find a valid header row in the CSV file"}

// bankZeroHeader is the fixed Bank Zero export header; the first nine
// columns must match exactly.
var bankZeroHeader = []string{
	"Date", "Day", "Time", "Type", "Description 1",
	"Description 2", "Fee", "Amount", "Balance", "Has Attachments",
}

const (
	outDateFormat       = "2006-01-02"
	bankZeroSlashFormat = "2006/01/02"
)

// Reshape rewrites a raw bank export into the canonical import format and
// returns the new file's bytes. The bank account name fills the last
// output column of every row.
func Reshape(bank Bank, raw []byte, bankAccount string) ([]byte, error) {
	records, err := ReadRecords(raw)
	if err != nil {
		return nil, err
	}

	var out [][]string
	switch bank {
	case BankFNB:
		out, err = ReshapeFNB(records, bankAccount)
	case BankZero:
		out, err = ReshapeBankZero(records, bankAccount)
	default:
		return nil, fmt.Errorf("unsupported bank %q", bank)
	}
	if err != nil {
		return nil, err
	}
	return writeCSV(out)
}

// ReshapeFNB rewrites a First National Bank export. The header row is
// located by scanning for a row containing Date, Amount and Description
// (column positions vary between FNB export flavours); every subsequent
// row is converted. Amounts split into Deposit/Withdrawal by sign, dates
// must be YYYY-MM-DD.
func ReshapeFNB(records [][]string, bankAccount string) ([][]string, error) {
	headerIdx := -1
	var dateCol, amountCol, descCol, refCol int
	for i, rec := range records {
		d, a, ds := indexOf(rec, "Date"), indexOf(rec, "Amount"), indexOf(rec, "Description")
		if d >= 0 && a >= 0 && ds >= 0 {
			headerIdx = i
			dateCol, amountCol, descCol = d, a, ds
			refCol = indexOf(rec, "Reference Number")
			if refCol < 0 {
				refCol = indexOf(rec, "Reference")
			}
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrNoHeaderRow
	}

	out := [][]string{OutputHeader}
	for i, rec := range records[headerIdx+1:] {
		rowNum := headerIdx + i + 2 // 1-based row number in the file

		if len(rec) <= amountCol || len(rec) <= dateCol || len(rec) <= descCol {
			return nil, formatErrorf("row %d: unexpected number of columns (%d)", rowNum, len(rec))
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(rec[amountCol]))
		if err != nil {
			return nil, formatErrorf("row %d: invalid Amount value %q", rowNum, rec[amountCol])
		}

		date, err := time.Parse(outDateFormat, strings.TrimSpace(rec[dateCol]))
		if err != nil {
			return nil, formatErrorf("row %d: invalid date value %q", rowNum, rec[dateCol])
		}

		deposit, withdrawal := splitAmount(amount)
		reference := ""
		if refCol >= 0 && refCol < len(rec) {
			reference = rec[refCol]
		}
		out = append(out, []string{
			date.Format(outDateFormat),
			rec[descCol],
			reference,
			deposit,
			withdrawal,
			bankAccount,
		})
	}
	return out, nil
}

// ReshapeBankZero rewrites a Bank Zero export. The header sits in the
// first row and its first nine columns must match the fixed layout.
// Amounts may contain embedded spaces; dates accept YYYY-MM-DD or
// YYYY/MM/DD, tried in that order.
func ReshapeBankZero(records [][]string, bankAccount string) ([][]string, error) {
	if len(records) == 0 || !headerMatches(records[0], bankZeroHeader[:9]) {
		return nil, formatErrorf("unexpected headers in .csv file, expected: %s in first row",
			strings.Join(bankZeroHeader[:9], ", "))
	}

	out := [][]string{OutputHeader}
	for i, rec := range records[1:] {
		rowNum := i + 1

		if len(rec) < 9 {
			return nil, formatErrorf("row %d: unexpected number of columns (%d)", rowNum, len(rec))
		}

		amount, err := decimal.NewFromString(strings.ReplaceAll(rec[7], " ", ""))
		if err != nil {
			return nil, formatErrorf("row %d: invalid Amount value %q", rowNum, rec[7])
		}

		date, err := time.Parse(outDateFormat, strings.TrimSpace(rec[0]))
		if err != nil {
			date, err = time.Parse(bankZeroSlashFormat, strings.TrimSpace(rec[0]))
		}
		if err != nil {
			return nil, formatErrorf("row %d: invalid date value %q", rowNum, rec[0])
		}

		deposit, withdrawal := splitAmount(amount)
		out = append(out, []string{
			date.Format(outDateFormat),
			rec[4],
			rec[5],
			deposit,
			withdrawal,
			bankAccount,
		})
	}
	return out, nil
}

// splitAmount maps a signed amount onto the Deposit/Withdrawal pair:
// positive to Deposit, negative (sign flipped) to Withdrawal, zero to
// "0"/"0".
func splitAmount(amount decimal.Decimal) (deposit, withdrawal string) {
	switch {
	case amount.IsPositive():
		return amount.String(), "0"
	case amount.IsNegative():
		return "0", amount.Neg().String()
	default:
		return "0", "0"
	}
}

// ReadRecords decodes raw statement bytes into CSV records. FNB
// frequently exports Windows-1252; content that is not valid UTF-8 is
// transcoded before parsing. Rows are ragged in real exports, so no field
// count is enforced.
func ReadRecords(raw []byte) ([][]string, error) {
	if !utf8.Valid(raw) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err == nil {
			raw = decoded
		}
	}
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, formatErrorf("reading bank CSV: %v", err)
	}
	return records, nil
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("writing reshaped CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func headerMatches(row, expected []string) bool {
	if len(row) < len(expected) {
		return false
	}
	for i, want := range expected {
		if strings.TrimSpace(row[i]) != want {
			return false
		}
	}
	return true
}

func indexOf(row []string, name string) int {
	for i, col := range row {
		if strings.TrimSpace(col) == name {
			return i
		}
	}
	return -1
}

package entity

import "time"

// AccountClassification carries the classification labels applied to
// journal-entry vouchers whose tax-exclusive leg debits or credits the
// given account. Any GL account can carry these labels, not only tax
// accounts.
type AccountClassification struct {
	Account              string
	DebitClassification  string
	CreditClassification string
}

// VATReturnSettings is the per-company configuration driving
// classification: the taxes-and-charges template mapped to each statutory
// classification (empty = not configured), the GL accounts treated as tax
// accounts, and the per-account journal-leg classification labels.
// Read-only input to classification, edited independently by admins.
type VATReturnSettings struct {
	CompanyID string

	// Sales Invoice template names, one per output classification.
	StandardRateNonCapital string
	StandardRateCapital    string
	ZeroRateNonExported    string
	ZeroRateExported       string
	Exempt                 string

	// Purchase Invoice template names, one per input classification.
	InputCapitalLocal  string
	InputCapitalImport string
	InputGoodsLocal    string
	InputGoodsImport   string

	TaxAccounts            []string
	AccountClassifications []AccountClassification

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTaxAccount reports whether account is configured as a tax account.
func (s *VATReturnSettings) IsTaxAccount(account string) bool {
	for _, a := range s.TaxAccounts {
		if a == account {
			return true
		}
	}
	return false
}

// ClassificationFor returns the journal-leg classification labels for the
// given account, if configured.
func (s *VATReturnSettings) ClassificationFor(account string) (AccountClassification, bool) {
	for _, a := range s.AccountClassifications {
		if a.Account == account {
			return a, true
		}
	}
	return AccountClassification{}, false
}

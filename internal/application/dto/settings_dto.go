package dto

import "time"

// AccountClassificationDTO one account's journal-leg classification labels.
type AccountClassificationDTO struct {
	Account              string `json:"account" validate:"required"`
	DebitClassification  string `json:"debit_classification"`
	CreditClassification string `json:"credit_classification"`
}

// UpsertSettingsRequest input to create or replace a company's VAT return
// settings. Template fields map taxes-and-charges templates to the nine
// statutory classifications; empty means not configured.
type UpsertSettingsRequest struct {
	StandardRateNonCapital string `json:"standard_rate_non_capital"`
	StandardRateCapital    string `json:"standard_rate_capital"`
	ZeroRateNonExported    string `json:"zero_rate_non_exported"`
	ZeroRateExported       string `json:"zero_rate_exported"`
	Exempt                 string `json:"exempt"`

	InputCapitalLocal  string `json:"input_capital_local"`
	InputCapitalImport string `json:"input_capital_import"`
	InputGoodsLocal    string `json:"input_goods_local"`
	InputGoodsImport   string `json:"input_goods_import"`

	TaxAccounts            []string                   `json:"tax_accounts"`
	AccountClassifications []AccountClassificationDTO `json:"account_classifications"`
}

// SettingsResponse a company's VAT return settings.
type SettingsResponse struct {
	CompanyID string `json:"company_id"`

	StandardRateNonCapital string `json:"standard_rate_non_capital"`
	StandardRateCapital    string `json:"standard_rate_capital"`
	ZeroRateNonExported    string `json:"zero_rate_non_exported"`
	ZeroRateExported       string `json:"zero_rate_exported"`
	Exempt                 string `json:"exempt"`

	InputCapitalLocal  string `json:"input_capital_local"`
	InputCapitalImport string `json:"input_capital_import"`
	InputGoodsLocal    string `json:"input_goods_local"`
	InputGoodsImport   string `json:"input_goods_import"`

	TaxAccounts            []string                   `json:"tax_accounts"`
	AccountClassifications []AccountClassificationDTO `json:"account_classifications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

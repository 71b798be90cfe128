package vat

import (
	"github.com/shopspring/decimal"

	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
)

// TaxRate is the standard South African VAT rate percentage used for
// inclusive/exclusive conversions.
var TaxRate = decimal.NewFromInt(15)

var hundred = decimal.NewFromInt(100)

// Recalculate recomputes every calculated VAT201 field of the return from
// its classified lines and manual-entry fields. It runs on every save so
// the summary always reflects the children.
func Recalculate(r *entity.VATReturn) {
	// Output side.
	r.StandardRateMainExcl = sumIncl(r.Lines, OutputStandardRate)    // field 1
	r.StandardRateMainIncl = sumTax(r.Lines, OutputStandardRate)     // field 4
	r.StandardRateCapitalExcl = sumIncl(r.Lines, OutputStandardRateCapital) // field 1a
	r.StandardRateCapitalIncl = sumTax(r.Lines, OutputStandardRateCapital)  // field 4a
	r.ZeroRateMainExcl = sumIncl(r.Lines, OutputZeroRated)           // field 2
	r.ZeroRateExportedExcl = sumIncl(r.Lines, OutputZeroRatedExported) // field 2a
	r.ExemptExcl = sumIncl(r.Lines, OutputExempt)                    // field 3

	// Field 6: accommodation exceeding 28 days, adjusted by the statutory
	// percentage.
	r.AccExceed28DaysTotal = r.AccExceed28Days.Mul(r.AccExceed28DaysPercent).Div(hundred)
	// Field 8.
	r.AccTotalExcl = r.AccExceed28DaysTotal.Add(r.AccNotExceed28Days)
	// Field 9.
	r.AccTotalIncl = r.AccTotalExcl.Mul(TaxRate).Div(hundred)
	// Field 11: exclusive amount converted to its tax portion.
	r.AdjChangeInUseIncl = r.AdjChangeInUseExcl.Mul(TaxRate).Div(hundred.Add(TaxRate))

	// Field 13.
	r.TotalOutputTax = r.StandardRateMainIncl.
		Add(r.StandardRateCapitalIncl).
		Add(r.AccTotalIncl).
		Add(r.AdjChangeInUseIncl).
		Add(r.AdjOtherIncl)

	// Input side.
	r.CapitalGoodsSupplied = sumTax(r.Lines, InputCapitalLocal)  // field 14
	r.CapitalGoodsImported = sumTax(r.Lines, InputCapitalImported) // field 14a
	r.OtherGoodsSupplied = sumTax(r.Lines, InputOtherLocal)      // field 15
	r.OtherGoodsImported = sumTax(r.Lines, InputOtherImported)   // field 15a

	// Field 19.
	r.TotalInputTax = r.CapitalGoodsSupplied.
		Add(r.CapitalGoodsImported).
		Add(r.OtherGoodsSupplied).
		Add(r.OtherGoodsImported).
		Add(r.ChangeInUse).
		Add(r.BadDebts).
		Add(r.Other)

	r.TotalVATPayableRefundable = r.TotalOutputTax.Sub(r.TotalInputTax)
}

// UnclassifiedCount counts non-cancelled lines without a classification.
// Submission is blocked while this is non-zero.
func UnclassifiedCount(lines []entity.VATReturnLine) int {
	n := 0
	for _, l := range lines {
		if l.Classification == "" && !l.IsCancelled {
			n++
		}
	}
	return n
}

func sumIncl(lines []entity.VATReturnLine, c Classification) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Classification == string(c) && l.InclTaxAmount.Valid {
			total = total.Add(l.InclTaxAmount.Decimal)
		}
	}
	return total
}

func sumTax(lines []entity.VATReturnLine, c Classification) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Classification == string(c) && l.TaxAmount.Valid {
			total = total.Add(l.TaxAmount.Decimal)
		}
	}
	return total
}

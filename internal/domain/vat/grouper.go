package vat

import "github.com/csf-za/tax-compliance-api/internal/domain/entity"

// VoucherGroup pairs a voucher number with its summary row (the first GL
// row seen for that voucher) and every row sharing the voucher number, in
// input order. For journal vouchers the rows are the journal-entry account
// legs.
type VoucherGroup struct {
	VoucherNo string
	Voucher   entity.GLRow
	Legs      []entity.GLRow
}

// GroupByVoucher folds a flat ordered list of GL rows into voucher groups.
// Groups are returned in order of first appearance; downstream ordering of
// classified results relies on this.
func GroupByVoucher(rows []entity.GLRow) []VoucherGroup {
	index := make(map[string]int, len(rows))
	var groups []VoucherGroup
	for _, row := range rows {
		i, ok := index[row.VoucherNo]
		if !ok {
			i = len(groups)
			index[row.VoucherNo] = i
			groups = append(groups, VoucherGroup{VoucherNo: row.VoucherNo, Voucher: row})
		}
		groups[i].Legs = append(groups[i].Legs, row)
	}
	return groups
}

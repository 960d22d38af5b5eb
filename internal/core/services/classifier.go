package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jpkgen/jpk_wb_app/internal/core/domain"
)

// SplitOpeningBalance partitions normalized position rows into the opening
// balance and the transaction list. A row with an amount is a transaction.
// A row with no amount but a date and a closing balance is an opening
// balance candidate; the earliest-dated candidate wins and its closing
// balance becomes the statement's opening balance. Rows matching neither
// shape are discarded. Transaction order is preserved.
func SplitOpeningBalance(positions []domain.PositionRecord) (*decimal.Decimal, []domain.PositionRecord) {
	var candidates []domain.PositionRecord
	transactions := make([]domain.PositionRecord, 0, len(positions))

	for _, p := range positions {
		switch {
		case p.Kwota != nil:
			transactions = append(transactions, p)
		case p.Data != nil && p.SaldoKoncowe != nil:
			candidates = append(candidates, p)
		}
	}

	var opening *decimal.Decimal
	if len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Data.Before(*candidates[j].Data)
		})
		v := *candidates[0].SaldoKoncowe
		opening = &v
	}
	return opening, transactions
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PositionRecord is one statement row: a real transaction or, before
// classification, the synthetic opening-balance pseudo-row (nil Kwota).
// Every persisted PositionRecord has a non-nil Kwota.
type PositionRecord struct {
	PositionID            int64            `json:"positionID"`
	HeaderID              int64            `json:"headerID"` // Attached after the header is persisted
	NrRachunku            string           `json:"nrRachunku"`
	Data                  *time.Time       `json:"data"`
	Kontrahent            string           `json:"kontrahent"`
	NrRachunkuKontrahenta string           `json:"nrRachunkuKontrahenta"`
	Tytul                 string           `json:"tytul"`
	Kwota                 *decimal.Decimal `json:"kwota"`        // Signed amount; nil only on the pseudo-balance row
	SaldoKoncowe          *decimal.Decimal `json:"saldoKoncowe"` // Running balance after the transaction
}

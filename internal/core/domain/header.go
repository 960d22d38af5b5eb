package domain

import "time"

// HeaderRecord is the single descriptive record for one bank statement:
// the reporting subject, its address, the account and the reporting period.
// Column names follow the JPK_WB input convention.
type HeaderRecord struct {
	HeaderID      int64      `json:"headerID"` // Store-generated identity, zero until persisted
	NIP           string     `json:"nip"`
	REGON         string     `json:"regon"`
	NazwaFirmy    string     `json:"nazwaFirmy"`
	KodKraju      string     `json:"kodKraju"` // Defaults to "PL"
	Wojewodztwo   string     `json:"wojewodztwo"`
	Powiat        string     `json:"powiat"`
	Gmina         string     `json:"gmina"`
	Ulica         string     `json:"ulica"`
	NrDomu        string     `json:"nrDomu"`
	NrLokalu      string     `json:"nrLokalu"`
	Miejscowosc   string     `json:"miejscowosc"`
	KodPocztowy   string     `json:"kodPocztowy"`
	Poczta        string     `json:"poczta"`
	NumerRachunku string     `json:"numerRachunku"` // Whitespace-stripped account number
	DataOd        *time.Time `json:"dataOd"`
	DataDo        *time.Time `json:"dataDo"`
	KodWaluty     string     `json:"kodWaluty"` // Defaults to "PLN"
	KodUrzedu     string     `json:"kodUrzedu"`
}

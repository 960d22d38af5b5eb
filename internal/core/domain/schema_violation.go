package domain

// SchemaViolation is one structural or type violation found while checking
// a generated document against the schema set. Line and Position are zero
// when the validator does not expose a location.
type SchemaViolation struct {
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Position int    `json:"position"`
	Message  string `json:"message"`
}

package domain

import "time"

// ValidationError is one finding produced by the external validation engine
// for a persisted statement. Read-only from this application's perspective.
type ValidationError struct {
	ErrorID        int64     `json:"errorID"`
	HeaderID       *int64    `json:"headerID"`
	TableName      string    `json:"tableName"` // "Headers" or "Positions"
	RecordID       *int64    `json:"recordID"`
	ColumnName     *string   `json:"columnName"`
	ErrorCode      string    `json:"errorCode"`
	ErrorMessage   string    `json:"errorMessage"`
	ErrorTimestamp time.Time `json:"errorTimestamp"`
}

package dto

import (
	"time"

	"github.com/jpkgen/jpk_wb_app/internal/core/domain"
)

// IngestStatementResult is the service-level outcome of one import run.
// ErrorCount is -1 when the pipeline failed before validation could run.
type IngestStatementResult struct {
	HeaderID   int64 `json:"headerID"`
	ErrorCount int   `json:"errorCount"`
}

// IngestStatementResponse is the API shape returned after an upload.
type IngestStatementResponse struct {
	HeaderID   int64  `json:"headerID"`
	ErrorCount int    `json:"errorCount"`
	Message    string `json:"message"`
}

// ExportedDocument is a ready-to-download generated document.
type ExportedDocument struct {
	FileName  string
	MediaType string
	Content   []byte
}

// ValidationErrorResponse is the API shape of one validation finding.
type ValidationErrorResponse struct {
	ErrorID        int64     `json:"errorID"`
	HeaderID       *int64    `json:"headerID"`
	TableName      string    `json:"tableName"`
	RecordID       *int64    `json:"recordID"`
	ColumnName     *string   `json:"columnName"`
	ErrorCode      string    `json:"errorCode"`
	ErrorMessage   string    `json:"errorMessage"`
	ErrorTimestamp time.Time `json:"errorTimestamp"`
}

// ToValidationErrorResponse converts a domain finding to its API shape.
func ToValidationErrorResponse(v domain.ValidationError) ValidationErrorResponse {
	return ValidationErrorResponse{
		ErrorID:        v.ErrorID,
		HeaderID:       v.HeaderID,
		TableName:      v.TableName,
		RecordID:       v.RecordID,
		ColumnName:     v.ColumnName,
		ErrorCode:      v.ErrorCode,
		ErrorMessage:   v.ErrorMessage,
		ErrorTimestamp: v.ErrorTimestamp,
	}
}

// ToValidationErrorResponses converts a slice of findings, never nil.
func ToValidationErrorResponses(errs []domain.ValidationError) []ValidationErrorResponse {
	responses := make([]ValidationErrorResponse, 0, len(errs))
	for _, v := range errs {
		responses = append(responses, ToValidationErrorResponse(v))
	}
	return responses
}

// SchemaViolationResponse is the API shape of one schema violation.
type SchemaViolationResponse struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ToSchemaViolationResponses converts verifier findings, never nil.
func ToSchemaViolationResponses(violations []domain.SchemaViolation) []SchemaViolationResponse {
	responses := make([]SchemaViolationResponse, 0, len(violations))
	for _, v := range violations {
		responses = append(responses, SchemaViolationResponse{Severity: v.Severity, Message: v.Message})
	}
	return responses
}

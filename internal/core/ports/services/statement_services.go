package services

import (
	"context"

	"github.com/jpkgen/jpk_wb_app/internal/core/domain"
	"github.com/jpkgen/jpk_wb_app/internal/dto"
)

// IngestionSvcFacade runs the statement import pipeline over uploaded
// source files and exposes the resulting validation findings.
type IngestionSvcFacade interface {
	// IngestStatement decodes, normalizes, classifies, persists and
	// validates one statement. The source files are removed afterwards
	// whatever the outcome. On failure the result carries no header
	// identity and an error count of -1.
	IngestStatement(ctx context.Context, headerPath string, positionPaths []string) (*dto.IngestStatementResult, error)
	ListValidationErrors(ctx context.Context, headerID int64) ([]domain.ValidationError, error)
}

// ExportSvcFacade produces the schema-verified document for a persisted
// statement.
type ExportSvcFacade interface {
	ExportStatement(ctx context.Context, headerID int64) (*dto.ExportedDocument, error)
}

// ValidationEngine runs the database-side business validation of a
// persisted statement and reports how many findings it recorded.
type ValidationEngine interface {
	ValidateStatement(ctx context.Context, headerID int64) (int, error)
}

// GenerationEngine builds the raw document payload for a statement.
// Engine-side failures may surface inside the payload rather than as an
// error; callers inspect the payload for the engine's error fragment.
type GenerationEngine interface {
	GenerateDocument(ctx context.Context, headerID int64) (string, error)
}

// SchemaVerifier checks a well-formed document against the fixed schema
// set and reports every violation found. An error means the verifier
// itself failed, not the document.
type SchemaVerifier interface {
	Verify(payload []byte) ([]domain.SchemaViolation, error)
}

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	IngestionSvc IngestionSvcFacade
	ExportSvc    ExportSvcFacade
}

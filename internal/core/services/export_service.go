package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/jpkgen/jpk_wb_app/internal/core/domain"
	portssvc "github.com/jpkgen/jpk_wb_app/internal/core/ports/services"
	"github.com/jpkgen/jpk_wb_app/internal/dto"
	"github.com/jpkgen/jpk_wb_app/internal/middleware"
)

var (
	// ErrValidationNotClean means the statement still has validation
	// findings and must not be exported.
	ErrValidationNotClean = errors.New("statement has outstanding validation errors")
	// ErrGenerationFailed means the generation engine produced no usable
	// payload.
	ErrGenerationFailed = errors.New("document generation failed")
	// ErrMalformedDocument means the generated payload is not well-formed XML.
	ErrMalformedDocument = errors.New("generated document is not well-formed")
)

// SchemaValidationError carries every schema violation found in a generated
// document.
type SchemaValidationError struct {
	Violations []domain.SchemaViolation
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("generated document has %d schema violations", len(e.Violations))
}

type exportService struct {
	validator  portssvc.ValidationEngine
	generator  portssvc.GenerationEngine
	verifier   portssvc.SchemaVerifier
	filePrefix string
	now        func() time.Time
}

// NewExportService builds the export pipeline service. filePrefix is the
// leading segment of generated file names.
func NewExportService(validator portssvc.ValidationEngine, generator portssvc.GenerationEngine, verifier portssvc.SchemaVerifier, filePrefix string) portssvc.ExportSvcFacade {
	return &exportService{
		validator:  validator,
		generator:  generator,
		verifier:   verifier,
		filePrefix: filePrefix,
		now:        time.Now,
	}
}

// ExportStatement revalidates the statement, generates the document, checks
// it against the schema set and returns it re-serialized in canonical form.
// Exporting the same statement twice yields byte-identical content apart
// from the timestamped file name.
func (s *exportService) ExportStatement(ctx context.Context, headerID int64) (*dto.ExportedDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	errorCount, err := s.validator.ValidateStatement(ctx, headerID)
	if err != nil {
		return nil, fmt.Errorf("revalidating statement %d: %w", headerID, err)
	}
	if errorCount != 0 {
		return nil, fmt.Errorf("%w: %d findings", ErrValidationNotClean, errorCount)
	}

	payload, err := s.generator.GenerateDocument(ctx, headerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	trimmed := strings.TrimSpace(payload)
	// The engine reports its own failures as an <Error> fragment instead of
	// a document.
	if trimmed == "" || strings.HasPrefix(strings.ToLower(trimmed), "<error") {
		return nil, fmt.Errorf("%w: engine returned an error payload", ErrGenerationFailed)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(trimmed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}

	violations, err := s.verifier.Verify([]byte(trimmed))
	if err != nil {
		return nil, fmt.Errorf("verifying statement %d: %w", headerID, err)
	}
	if len(violations) > 0 {
		logger.Warn("generated document failed schema verification",
			slog.Int64("header_id", headerID),
			slog.Int("violations", len(violations)),
		)
		return nil, &SchemaValidationError{Violations: violations}
	}

	canonical := etree.NewDocument()
	canonical.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	canonical.SetRoot(root.Copy())
	canonical.Indent(2)
	content, err := canonical.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing statement %d: %w", headerID, err)
	}

	fileName := fmt.Sprintf("%s_%d_%s.xml", s.filePrefix, headerID, s.now().Format("20060102150405"))
	logger.Info("statement exported", slog.Int64("header_id", headerID), slog.String("file", fileName))
	return &dto.ExportedDocument{
		FileName:  fileName,
		MediaType: "application/xml",
		Content:   content,
	}, nil
}

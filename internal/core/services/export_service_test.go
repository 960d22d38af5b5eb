package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jpkgen/jpk_wb_app/internal/core/domain"
)

const generatedXML = `<?xml version="1.0"?><JPK><Naglowek><KodFormularza>JPK_WB</KodFormularza></Naglowek></JPK>`

type ExportServiceTestSuite struct {
	suite.Suite
	validator *MockValidationEngine
	generator *MockGenerationEngine
	verifier  *MockSchemaVerifier
	service   *exportService
	ctx       context.Context
}

func (s *ExportServiceTestSuite) SetupTest() {
	s.validator = new(MockValidationEngine)
	s.generator = new(MockGenerationEngine)
	s.verifier = new(MockSchemaVerifier)
	s.service = NewExportService(s.validator, s.generator, s.verifier, "jpk_wb").(*exportService)
	s.service.now = func() time.Time {
		return time.Date(2024, 2, 1, 13, 45, 30, 0, time.UTC)
	}
	s.ctx = context.Background()
}

func (s *ExportServiceTestSuite) TestExportStatementSuccess() {
	s.validator.On("ValidateStatement", s.ctx, int64(5)).Return(0, nil)
	s.generator.On("GenerateDocument", s.ctx, int64(5)).Return(generatedXML, nil)
	s.verifier.On("Verify", mock.Anything).Return(nil, nil)

	doc, err := s.service.ExportStatement(s.ctx, 5)

	s.Require().NoError(err)
	s.Equal("jpk_wb_5_20240201134530.xml", doc.FileName)
	s.Equal("application/xml", doc.MediaType)

	content := string(doc.Content)
	s.True(strings.HasPrefix(content, `<?xml version="1.0" encoding="UTF-8"?>`),
		"canonical output starts with a UTF-8 declaration")
	s.Contains(content, "<KodFormularza>JPK_WB</KodFormularza>")
	s.Contains(content, "\n  <Naglowek>", "canonical output uses two-space indentation")
}

func (s *ExportServiceTestSuite) TestExportStatementIsRepeatable() {
	s.validator.On("ValidateStatement", s.ctx, int64(5)).Return(0, nil)
	s.generator.On("GenerateDocument", s.ctx, int64(5)).Return(generatedXML, nil)
	s.verifier.On("Verify", mock.Anything).Return(nil, nil)

	first, err := s.service.ExportStatement(s.ctx, 5)
	s.Require().NoError(err)
	second, err := s.service.ExportStatement(s.ctx, 5)
	s.Require().NoError(err)

	s.Equal(first.Content, second.Content)
}

func (s *ExportServiceTestSuite) TestExportStatementValidationNotClean() {
	s.validator.On("ValidateStatement", s.ctx, int64(5)).Return(3, nil)

	_, err := s.service.ExportStatement(s.ctx, 5)

	s.Require().Error(err)
	s.ErrorIs(err, ErrValidationNotClean)
	s.generator.AssertNotCalled(s.T(), "GenerateDocument", mock.Anything, mock.Anything)
}

func (s *ExportServiceTestSuite) TestExportStatementEngineErrorPayload() {
	s.validator.On("ValidateStatement", s.ctx, int64(5)).Return(0, nil)
	s.generator.On("GenerateDocument", s.ctx, int64(5)).Return("  <ERROR>brak naglowka</ERROR>", nil)

	_, err := s.service.ExportStatement(s.ctx, 5)

	s.Require().Error(err)
	s.ErrorIs(err, ErrGenerationFailed)
	s.verifier.AssertNotCalled(s.T(), "Verify", mock.Anything)
}

func (s *ExportServiceTestSuite) TestExportStatementEmptyPayload() {
	s.validator.On("ValidateStatement", s.ctx, int64(5)).Return(0, nil)
	s.generator.On("GenerateDocument", s.ctx, int64(5)).Return("   ", nil)

	_, err := s.service.ExportStatement(s.ctx, 5)

	s.Require().Error(err)
	s.ErrorIs(err, ErrGenerationFailed)
}

func (s *ExportServiceTestSuite) TestExportStatementMalformedPayload() {
	s.validator.On("ValidateStatement", s.ctx, int64(5)).Return(0, nil)
	s.generator.On("GenerateDocument", s.ctx, int64(5)).Return("tekst bez elementu glownego", nil)

	_, err := s.service.ExportStatement(s.ctx, 5)

	s.Require().Error(err)
	s.ErrorIs(err, ErrMalformedDocument)
}

func (s *ExportServiceTestSuite) TestExportStatementSchemaViolations() {
	violations := []domain.SchemaViolation{
		{Severity: "error", Message: "Element 'Naglowek': Missing child element(s)"},
		{Severity: "error", Message: "Element 'KodWaluty': This element is not expected"},
	}
	s.validator.On("ValidateStatement", s.ctx, int64(5)).Return(0, nil)
	s.generator.On("GenerateDocument", s.ctx, int64(5)).Return(generatedXML, nil)
	s.verifier.On("Verify", mock.Anything).Return(violations, nil)

	_, err := s.service.ExportStatement(s.ctx, 5)

	s.Require().Error(err)
	var schemaErr *SchemaValidationError
	s.Require().ErrorAs(err, &schemaErr)
	s.Len(schemaErr.Violations, 2)
}

func (s *ExportServiceTestSuite) TestExportStatementVerifierFailure() {
	s.validator.On("ValidateStatement", s.ctx, int64(5)).Return(0, nil)
	s.generator.On("GenerateDocument", s.ctx, int64(5)).Return(generatedXML, nil)
	s.verifier.On("Verify", mock.Anything).Return(nil, errors.New("schema set not loaded"))

	_, err := s.service.ExportStatement(s.ctx, 5)

	s.Require().Error(err)
	var schemaErr *SchemaValidationError
	s.False(errors.As(err, &schemaErr), "verifier failure is not a document verdict")
}

func (s *ExportServiceTestSuite) TestExportStatementRevalidationFailure() {
	s.validator.On("ValidateStatement", s.ctx, int64(5)).Return(-1, errors.New("engine unavailable"))

	_, err := s.service.ExportStatement(s.ctx, 5)

	s.Require().Error(err)
	s.generator.AssertNotCalled(s.T(), "GenerateDocument", mock.Anything, mock.Anything)
}

func TestExportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}

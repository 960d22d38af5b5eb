package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/jpkgen/jpk_wb_app/internal/core/domain"
)

type MockStatementRepository struct {
	mock.Mock
}

func (m *MockStatementRepository) SaveHeader(ctx context.Context, header domain.HeaderRecord, openingBalance *decimal.Decimal) (int64, error) {
	args := m.Called(ctx, header, openingBalance)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatementRepository) SavePositions(ctx context.Context, positions []domain.PositionRecord) error {
	args := m.Called(ctx, positions)
	return args.Error(0)
}

func (m *MockStatementRepository) FindHeaderByID(ctx context.Context, headerID int64) (*domain.HeaderRecord, error) {
	args := m.Called(ctx, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HeaderRecord), args.Error(1)
}

func (m *MockStatementRepository) ListValidationErrors(ctx context.Context, headerID int64) ([]domain.ValidationError, error) {
	args := m.Called(ctx, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationError), args.Error(1)
}

type MockValidationEngine struct {
	mock.Mock
}

func (m *MockValidationEngine) ValidateStatement(ctx context.Context, headerID int64) (int, error) {
	args := m.Called(ctx, headerID)
	return args.Int(0), args.Error(1)
}

type MockGenerationEngine struct {
	mock.Mock
}

func (m *MockGenerationEngine) GenerateDocument(ctx context.Context, headerID int64) (string, error) {
	args := m.Called(ctx, headerID)
	return args.String(0), args.Error(1)
}

type MockSchemaVerifier struct {
	mock.Mock
}

func (m *MockSchemaVerifier) Verify(payload []byte) ([]domain.SchemaViolation, error) {
	args := m.Called(payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SchemaViolation), args.Error(1)
}

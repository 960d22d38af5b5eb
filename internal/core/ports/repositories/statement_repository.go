package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jpkgen/jpk_wb_app/internal/core/domain"
)

// StatementRepositoryFacade persists statement headers and positions and
// reads back validation findings.
type StatementRepositoryFacade interface {
	// SaveHeader inserts the header with its opening balance and returns the
	// generated header identity.
	SaveHeader(ctx context.Context, header domain.HeaderRecord, openingBalance *decimal.Decimal) (int64, error)
	// SavePositions bulk-inserts transaction rows. Each record must already
	// carry its header identity.
	SavePositions(ctx context.Context, positions []domain.PositionRecord) error
	// FindHeaderByID returns apperrors.ErrNotFound when no such header exists.
	FindHeaderByID(ctx context.Context, headerID int64) (*domain.HeaderRecord, error)
	// ListValidationErrors returns the engine findings for one header,
	// oldest first.
	ListValidationErrors(ctx context.Context, headerID int64) ([]domain.ValidationError, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jpkgen/jpk_wb_app/internal/core/domain"
	portsrepo "github.com/jpkgen/jpk_wb_app/internal/core/ports/repositories"
	portssvc "github.com/jpkgen/jpk_wb_app/internal/core/ports/services"
	"github.com/jpkgen/jpk_wb_app/internal/dto"
	"github.com/jpkgen/jpk_wb_app/internal/middleware"
	"github.com/jpkgen/jpk_wb_app/internal/normalize"
	"github.com/jpkgen/jpk_wb_app/internal/tabular"
)

var (
	// ErrHeaderIngestion means the header file could not be decoded or
	// normalized; nothing was persisted.
	ErrHeaderIngestion = errors.New("header file ingestion failed")
	// ErrNoTransactions means the position files yielded no usable
	// transaction rows; nothing was persisted.
	ErrNoTransactions = errors.New("no transactions found in position files")
)

type ingestionService struct {
	repo      portsrepo.StatementRepositoryFacade
	validator portssvc.ValidationEngine
}

// NewIngestionService builds the import pipeline service.
func NewIngestionService(repo portsrepo.StatementRepositoryFacade, validator portssvc.ValidationEngine) portssvc.IngestionSvcFacade {
	return &ingestionService{repo: repo, validator: validator}
}

// IngestStatement runs the import pipeline: decode and normalize the header
// file, decode every position file, classify the rows, persist header and
// transactions, then run the validation engine. The first failing step stops
// the run. Source files are removed on the way out regardless of outcome.
func (s *ingestionService) IngestStatement(ctx context.Context, headerPath string, positionPaths []string) (*dto.IngestStatementResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	defer s.removeSources(logger, headerPath, positionPaths)

	headerTable, err := tabular.Decode(headerPath)
	if err != nil {
		return failedIngest(), fmt.Errorf("%w: %v", ErrHeaderIngestion, err)
	}
	header, err := normalize.HeaderFromTable(headerTable)
	if err != nil {
		return failedIngest(), fmt.Errorf("%w: %v", ErrHeaderIngestion, err)
	}

	var positions []domain.PositionRecord
	for _, path := range positionPaths {
		table, err := tabular.Decode(path)
		if err != nil {
			logger.Warn("skipping position file", slog.String("path", path), slog.Any("error", err))
			continue
		}
		records, rowErrs, err := normalize.PositionsFromTable(table)
		if err != nil {
			logger.Warn("skipping position file", slog.String("path", path), slog.Any("error", err))
			continue
		}
		for _, rowErr := range rowErrs {
			logger.Warn("skipping position row", slog.String("path", path), slog.Int("row", rowErr.Row), slog.Any("error", rowErr.Err))
		}
		positions = append(positions, records...)
	}

	openingBalance, transactions := SplitOpeningBalance(positions)
	if len(transactions) == 0 {
		return failedIngest(), ErrNoTransactions
	}
	if openingBalance == nil {
		logger.Warn("no opening balance row found")
	}

	headerID, err := s.repo.SaveHeader(ctx, *header, openingBalance)
	if err != nil {
		return failedIngest(), fmt.Errorf("saving statement header: %w", err)
	}

	for i := range transactions {
		transactions[i].HeaderID = headerID
	}
	if err := s.repo.SavePositions(ctx, transactions); err != nil {
		return failedIngest(), fmt.Errorf("saving statement positions: %w", err)
	}

	errorCount, err := s.validator.ValidateStatement(ctx, headerID)
	if err != nil {
		return failedIngest(), fmt.Errorf("validating statement %d: %w", headerID, err)
	}

	logger.Info("statement ingested",
		slog.Int64("header_id", headerID),
		slog.Int("transactions", len(transactions)),
		slog.Int("validation_errors", errorCount),
	)
	return &dto.IngestStatementResult{HeaderID: headerID, ErrorCount: errorCount}, nil
}

func (s *ingestionService) ListValidationErrors(ctx context.Context, headerID int64) ([]domain.ValidationError, error) {
	if _, err := s.repo.FindHeaderByID(ctx, headerID); err != nil {
		return nil, err
	}
	return s.repo.ListValidationErrors(ctx, headerID)
}

func failedIngest() *dto.IngestStatementResult {
	return &dto.IngestStatementResult{HeaderID: 0, ErrorCount: -1}
}

// removeSources deletes the uploaded source files, best effort.
func (s *ingestionService) removeSources(logger *slog.Logger, headerPath string, positionPaths []string) {
	for _, path := range append([]string{headerPath}, positionPaths...) {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("could not remove uploaded file", slog.String("path", path), slog.Any("error", err))
		}
	}
}

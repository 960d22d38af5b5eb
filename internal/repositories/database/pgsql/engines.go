package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	portssvc "github.com/jpkgen/jpk_wb_app/internal/core/ports/services"
)

// PgxValidationEngine runs the database-side validation routine for a
// persisted statement.
type PgxValidationEngine struct {
	BaseRepository
}

// NewValidationEngine creates the PostgreSQL-backed validation engine.
func NewValidationEngine(pool *pgxpool.Pool) portssvc.ValidationEngine {
	return &PgxValidationEngine{BaseRepository: BaseRepository{Pool: pool}}
}

// ValidateStatement clears and recomputes the findings for one header and
// returns how many the routine recorded.
func (e *PgxValidationEngine) ValidateStatement(ctx context.Context, headerID int64) (int, error) {
	var count int
	err := e.Pool.QueryRow(ctx, `SELECT validate_statement_import($1)`, headerID).Scan(&count)
	if err != nil {
		return -1, fmt.Errorf("running validation routine for header %d: %w", headerID, err)
	}
	return count, nil
}

// PgxGenerationEngine builds the document payload inside the database.
type PgxGenerationEngine struct {
	BaseRepository
}

// NewGenerationEngine creates the PostgreSQL-backed generation engine.
func NewGenerationEngine(pool *pgxpool.Pool) portssvc.GenerationEngine {
	return &PgxGenerationEngine{BaseRepository: BaseRepository{Pool: pool}}
}

// GenerateDocument returns the raw payload for one header. The routine
// reports its own failures inside the payload, so a NULL result maps to an
// empty string rather than an error.
func (e *PgxGenerationEngine) GenerateDocument(ctx context.Context, headerID int64) (string, error) {
	var payload *string
	err := e.Pool.QueryRow(ctx, `SELECT generate_jpk_wb_xml($1)`, headerID).Scan(&payload)
	if err != nil {
		return "", fmt.Errorf("running generation routine for header %d: %w", headerID, err)
	}
	if payload == nil {
		return "", nil
	}
	return *payload, nil
}

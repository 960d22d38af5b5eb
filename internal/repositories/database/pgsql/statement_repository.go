package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jpkgen/jpk_wb_app/internal/apperrors"
	"github.com/jpkgen/jpk_wb_app/internal/core/domain"
	portsrepo "github.com/jpkgen/jpk_wb_app/internal/core/ports/repositories"
)

// PgxStatementRepository persists statement headers, positions and reads
// validation findings from PostgreSQL.
type PgxStatementRepository struct {
	BaseRepository
}

// NewStatementRepository creates the PostgreSQL statement repository.
func NewStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepositoryFacade {
	return &PgxStatementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func (r *PgxStatementRepository) SaveHeader(ctx context.Context, header domain.HeaderRecord, openingBalance *decimal.Decimal) (int64, error) {
	query := `
		INSERT INTO headers (
			nip, regon, nazwa_firmy, kod_kraju, wojewodztwo, powiat, gmina,
			ulica, nr_domu, nr_lokalu, miejscowosc, kod_pocztowy, poczta,
			numer_rachunku, data_od, data_do, kod_waluty, kod_urzedu,
			saldo_poczatkowe
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19
		) RETURNING header_id`

	var headerID int64
	err := r.Pool.QueryRow(ctx, query,
		header.NIP, header.REGON, header.NazwaFirmy, header.KodKraju,
		header.Wojewodztwo, header.Powiat, header.Gmina, header.Ulica,
		header.NrDomu, header.NrLokalu, header.Miejscowosc, header.KodPocztowy,
		header.Poczta, header.NumerRachunku, header.DataOd, header.DataDo,
		header.KodWaluty, header.KodUrzedu, openingBalance,
	).Scan(&headerID)
	if err != nil {
		return 0, fmt.Errorf("inserting header: %w", err)
	}
	return headerID, nil
}

func (r *PgxStatementRepository) SavePositions(ctx context.Context, positions []domain.PositionRecord) error {
	if len(positions) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, []interface{}{
			p.NrRachunku, p.Data, p.Kontrahent, p.NrRachunkuKontrahenta,
			p.Tytul, p.Kwota, p.SaldoKoncowe, p.HeaderID,
		})
	}

	copied, err := r.Pool.CopyFrom(ctx,
		pgx.Identifier{"positions"},
		[]string{"nr_rachunku", "data", "kontrahent", "nr_rachunku_kontrahenta", "tytul", "kwota", "saldo_koncowe", "header_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("bulk-inserting positions: %w", err)
	}
	if copied != int64(len(positions)) {
		return fmt.Errorf("bulk insert wrote %d of %d positions", copied, len(positions))
	}
	return nil
}

func (r *PgxStatementRepository) FindHeaderByID(ctx context.Context, headerID int64) (*domain.HeaderRecord, error) {
	query := `
		SELECT header_id, nip, regon, nazwa_firmy, kod_kraju, wojewodztwo,
		       powiat, gmina, ulica, nr_domu, nr_lokalu, miejscowosc,
		       kod_pocztowy, poczta, numer_rachunku, data_od, data_do,
		       kod_waluty, kod_urzedu
		FROM headers
		WHERE header_id = $1`

	var h domain.HeaderRecord
	err := r.Pool.QueryRow(ctx, query, headerID).Scan(
		&h.HeaderID, &h.NIP, &h.REGON, &h.NazwaFirmy, &h.KodKraju,
		&h.Wojewodztwo, &h.Powiat, &h.Gmina, &h.Ulica, &h.NrDomu,
		&h.NrLokalu, &h.Miejscowosc, &h.KodPocztowy, &h.Poczta,
		&h.NumerRachunku, &h.DataOd, &h.DataDo, &h.KodWaluty, &h.KodUrzedu,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("finding header %d: %w", headerID, err)
	}
	return &h, nil
}

func (r *PgxStatementRepository) ListValidationErrors(ctx context.Context, headerID int64) ([]domain.ValidationError, error) {
	query := `
		SELECT error_id, header_id, table_name, record_id, column_name,
		       error_code, error_message, error_timestamp
		FROM validation_errors
		WHERE header_id = $1
		ORDER BY error_id`

	rows, err := r.Pool.Query(ctx, query, headerID)
	if err != nil {
		return nil, fmt.Errorf("listing validation errors for header %d: %w", headerID, err)
	}
	defer rows.Close()

	findings := make([]domain.ValidationError, 0)
	for rows.Next() {
		var v domain.ValidationError
		if err := rows.Scan(
			&v.ErrorID, &v.HeaderID, &v.TableName, &v.RecordID,
			&v.ColumnName, &v.ErrorCode, &v.ErrorMessage, &v.ErrorTimestamp,
		); err != nil {
			return nil, fmt.Errorf("scanning validation error: %w", err)
		}
		findings = append(findings, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading validation errors: %w", err)
	}
	return findings, nil
}

// Package pgsql contains the PostgreSQL implementations of the repository
// and engine ports, built on pgx connection pools.
package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository holds the shared connection pool for the concrete
// repositories and engines.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

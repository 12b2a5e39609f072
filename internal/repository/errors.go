package repository

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"projectboard/pkg/metrics"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrForeignKey is returned when a task references a missing project.
	ErrForeignKey = errors.New("foreign key violation")
)

const fkViolationCode = "23503"

// translateError maps driver errors onto the store's error taxonomy.
// Anything unrecognized passes through and surfaces as an internal error.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == fkViolationCode {
		return ErrForeignKey
	}
	return err
}

func observe(operation, table string, start time.Time) {
	metrics.RecordDBQueryDuration(operation, table, time.Since(start))
}

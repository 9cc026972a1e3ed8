package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/oumacavin/smartlearn-backend/internal/pkg/storeerr"
)

// MapError translates a gorm/driver failure into the adapter's StoreError.
// Nothing else crosses the relational adapter boundary.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *storeerr.StoreError
	if errors.As(err, &se) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storeerr.New(storeerr.KindNotFound, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return storeerr.New(storeerr.KindUnavailable, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return storeerr.New(storeerr.KindConflict, op, err) // unique_violation
		case "23503", "23502", "23514":
			return storeerr.New(storeerr.KindConstraint, op, err) // fk/not-null/check
		case "42601", "42703", "42P01":
			return storeerr.New(storeerr.KindSyntax, op, err) // syntax/undefined column/table
		case "40001", "40P01", "55P03":
			return storeerr.New(storeerr.KindUnavailable, op, err) // serialization/deadlock/lock
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "already exists"):
		return storeerr.New(storeerr.KindConflict, op, err)
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "deadlock"):
		return storeerr.New(storeerr.KindUnavailable, op, err)
	default:
		return storeerr.New(storeerr.KindInternal, op, err)
	}
}

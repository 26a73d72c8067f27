package palletrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

const pgForeignKeyViolation = "23503"

// Persistence errors raised by the repositories themselves.
var (
	// ErrAggregateIsAlreadyStored is returned when Add is called for an entity that has an identity.
	ErrAggregateIsAlreadyStored = errs.NewStateIsInvalidError("entity is already stored")
	// ErrAggregateIsNotStored is returned when Update is called for an entity without identity.
	ErrAggregateIsNotStored = errs.NewStateIsInvalidError("entity is not stored yet")
	// ErrBoxIsNotStored is returned when a pallet references a box that was never stored.
	ErrBoxIsNotStored = errs.NewStateIsInvalidError("box must be stored before its pallet membership")
	// ErrPalletIsNotStored is returned when a box references a pallet that was never stored.
	ErrPalletIsNotStored = errs.NewStateIsInvalidError("pallet must be stored before its boxes")
)

// translateError wraps a driver error with the operation name. Foreign key
// violations from either supported driver become state errors; everything else keeps
// its original chain.
func translateError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%s: %w", op, errs.NewStateIsInvalidErrorWithCause("foreign key violation", err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}

	return false
}

// notFound maps gorm.ErrRecordNotFound to the domain not-found error.
func notFound(op, paramName string, id kernel.ID, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(paramName, id.String(), err)
	}
	return translateError(op, err)
}

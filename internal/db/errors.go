package db

import (
	"errors"
	"fmt"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"gitlab.com/ranfdev/updoot/internal/models"
)

const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

const (
	constraintUpdootPost = "updoots_post_id_fkey"
	constraintUpdootUser = "updoots_user_id_fkey"
	constraintPostUser   = "posts_creator_id_fkey"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err)
}

// classify turns driver errors into the error kinds callers can act on.
// Errors already carrying a kind pass through untouched.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isKnown(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%w: %s: %s", models.ErrConflict, op, pgErr.Message)
		case pgForeignKeyViolation:
			switch pgErr.ConstraintName {
			case constraintUpdootPost:
				return models.NotFound("post")
			case constraintUpdootUser, constraintPostUser:
				return models.NotFound("user")
			}
			return fmt.Errorf("%w: %s", models.ErrNotFound, pgErr.Message)
		}
	}
	return &models.StorageError{Op: op, Err: err}
}
func isKnown(err error) bool {
	var storageErr *models.StorageError
	return errors.Is(err, models.ErrValidation) ||
		errors.Is(err, models.ErrNotFound) ||
		errors.Is(err, models.ErrConflict) ||
		errors.Is(err, models.ErrPermDenied) ||
		errors.As(err, &storageErr)
}

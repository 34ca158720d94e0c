package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/devtrail/bootcamp-api/pkg/apperr"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// mapError translates pgx errors into the apperr taxonomy. Unique and
// foreign key violations become Conflict with a message naming the
// duplicated field or the dependent records; missing rows become
// NotFound.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.New(apperr.NotFound, "%s not found", entity)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		switch pgErr.ConstraintName {
		case "users_email_key":
			return apperr.New(apperr.Conflict, "email already registered")
		case "bootcamps_name_key":
			return apperr.New(apperr.Conflict, "a bootcamp with that name already exists")
		case "reviews_bootcamp_id_user_id_key":
			return apperr.New(apperr.Conflict, "you have already reviewed this bootcamp")
		default:
			return apperr.Wrap(apperr.Conflict, err, "duplicate value")
		}
	case foreignKeyViolation:
		switch pgErr.ConstraintName {
		case "bootcamps_user_id_fkey":
			return apperr.New(apperr.Conflict, "user still owns a bootcamp")
		case "courses_user_id_fkey":
			return apperr.New(apperr.Conflict, "user still owns courses")
		case "reviews_user_id_fkey":
			return apperr.New(apperr.Conflict, "user still has reviews")
		case "courses_bootcamp_id_fkey":
			return apperr.New(apperr.Conflict, "bootcamp still has courses")
		default:
			return apperr.Wrap(apperr.Conflict, err, "%s is referenced by existing records", entity)
		}
	}
	return err
}

// notFound builds the NotFound error for a fetch by id.
func notFound(entity, id string) error {
	return apperr.New(apperr.NotFound, "%s not found with id: %s", entity, id)
}

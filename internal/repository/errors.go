package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate signals a uniqueness-constraint violation on insert. Services
// rely on it to detect lost races: a duplicate attendance record means the
// subject already marked, a duplicate active code means the draw collided.
var ErrDuplicate = errors.New("duplicate row")

const uniqueViolationCode = "23505"

// mapInsertError converts Postgres unique violations into ErrDuplicate.
func mapInsertError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicate
	}
	return err
}

package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate record")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// PostgreSQL SQLSTATE
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// wrapErr 保留原始錯誤，並依錯誤種類附上可用 errors.Is 判斷的 sentinel
func wrapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return fmt.Errorf("%s: %w: %w", op, ErrDuplicate, err)
	case errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation:
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidReference, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

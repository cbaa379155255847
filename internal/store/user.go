package store

import (
	"context"
	"strings"

	"blog/internal/database"
	"blog/internal/model"

	"github.com/jackc/pgx/v5"
)

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password_hash
		 FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapErr("GetUserByID", err)
	}
	return u, nil
}

// GetUserByEmail 以小寫 email 查詢，找不到回傳 ErrNotFound
func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password_hash
		 FROM users WHERE email = $1`,
		strings.ToLower(email),
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapErr("GetUserByEmail", err)
	}
	return u, nil
}

// CreateUser email 重複時回傳 ErrDuplicate
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	u.Email = strings.ToLower(u.Email)
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		u.Name,
		u.Email,
		u.PasswordHash,
	)
	if err := row.Scan(&u.ID); err != nil {
		return nil, wrapErr("CreateUser", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
	); err != nil {
		return nil, err
	}
	return u, nil
}

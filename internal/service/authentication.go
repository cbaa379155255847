// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"

	"blog/internal/model"
)

// ErrInvalidPassword 密碼與使用者紀錄不符
var ErrInvalidPassword = errors.New("invalid password")

// AuthenticateUser 以使用者紀錄中的哈希驗證明文密碼
func AuthenticateUser(ctx context.Context, user model.User, password string) error {
	if user.PasswordHash == "" || !VerifyPassword(user.PasswordHash, password) {
		return ErrInvalidPassword
	}
	return nil
}

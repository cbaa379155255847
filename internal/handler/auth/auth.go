// File: internal/handler/auth/auth.go
package auth

import (
	"blog/internal/service"
	"blog/internal/store"
)

// 顯示在表單上的訊息
const (
	msgUserExists    = "User already exist. Try Log in"
	msgWrongPassword = "Incorrect Password. Try again"
	msgUnknownUser   = "User does not exist. Try to Register"

	msgPasswordTooLong = "Password must be at most 72 bytes."
)

// 測試時可覆寫
var (
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	createUser       = store.CreateUser
	getUserByEmail   = store.GetUserByEmail
)

// File: internal/service/password.go
package service

import (
	"golang.org/x/crypto/bcrypt"
)

// 測試時可覆寫
var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// MaxPasswordBytes bcrypt 可接受的最大密碼長度 (位元組)
const MaxPasswordBytes = 72

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串 (salt 內嵌於結果中)
func HashPassword(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil，失敗則回傳錯誤
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}

// VerifyPassword 只回答是否相符；格式錯誤的哈希一律視為不相符
func VerifyPassword(hash, password string) bool {
	return ComparePassword(hash, password) == nil
}

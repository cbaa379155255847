// File: internal/dto/login_request.go
package dto

type LoginRequest struct {
	Email    string `form:"email" validate:"required,email,max=100"`
	Password string `form:"password" validate:"required"`
}

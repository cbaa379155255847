// File: internal/dto/register_request.go
package dto

type RegisterRequest struct {
	Email    string `form:"email" validate:"required,email,max=100"`
	Password string `form:"password" validate:"required"`
	Name     string `form:"name" validate:"required,max=50"`
}

// File: internal/dto/comment_request.go
package dto

type CommentRequest struct {
	Text string `form:"comment_text" validate:"required"`
}

// File: internal/dto/post_request.go
package dto

// PostRequest 新增與編輯文章共用的表單
type PostRequest struct {
	Title    string `form:"title" validate:"required,max=250"`
	Subtitle string `form:"subtitle" validate:"required,max=250"`
	ImgURL   string `form:"img_url" validate:"required,url,max=250"`
	Body     string `form:"body" validate:"required"`
}

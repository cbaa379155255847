// File: internal/model/post.go
package model

// DateLayout 文章日期的顯示格式 (例如 "March 05, 2025")
const DateLayout = "January 02, 2006"

type Post struct {
	ID       int    `db:"id" json:"id"`
	AuthorID int    `db:"author_id" json:"author_id"`
	Title    string `db:"title" json:"title"`
	Subtitle string `db:"subtitle" json:"subtitle"`
	Date     string `db:"date" json:"date"`
	Body     string `db:"body" json:"body"`
	ImgURL   string `db:"img_url" json:"img_url"`

	// 透過 author_id JOIN 取得，寫入時忽略
	Author *User `db:"-" json:"author,omitempty"`
	// 由 ListCommentsByPost 填入
	Comments []Comment `db:"-" json:"comments,omitempty"`
}

// File: internal/handler/posts/posts.go
package posts

import (
	"time"

	"blog/internal/model"
	"blog/internal/store"
)

const msgDuplicateTitle = "A post with this title already exists."

// 測試時可覆寫
var (
	listPosts          = store.ListPosts
	listPostsByAuthor  = store.ListPostsByAuthor
	getPostByID        = store.GetPostByID
	createPost         = store.CreatePost
	updatePost         = store.UpdatePost
	deletePost         = store.DeletePost
	listCommentsByPost = store.ListCommentsByPost
	createComment      = store.CreateComment
	timeNow            = time.Now
)

// postForm 把文章內容轉成表單預設值
func postForm(p *model.Post) map[string]string {
	return map[string]string{
		"title":    p.Title,
		"subtitle": p.Subtitle,
		"img_url":  p.ImgURL,
		"body":     p.Body,
	}
}

// File: internal/handler/posts/read.go
package posts

import (
	"errors"
	"net/http"

	"blog/internal/database"
	"blog/internal/handler"
	"blog/internal/model"
	"blog/internal/session"
	"blog/internal/store"

	"github.com/labstack/echo/v4"
)

// ListPostsHandler 首頁：列出全部文章
func ListPostsHandler(db database.DB, sm *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		posts, err := listPosts(c.Request().Context(), db)
		if err != nil {
			return err
		}
		page := handler.NewPage(c, sm, "")
		page.Posts = posts
		return c.Render(http.StatusOK, "index.html", page)
	}
}

// ShowPostHandler 顯示文章與留言
func ShowPostHandler(db database.DB, sm *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		post, err := loadPost(c, db)
		if err != nil {
			return err
		}
		more, err := listPostsByAuthor(c.Request().Context(), db, post.AuthorID)
		if err != nil {
			return err
		}
		page := handler.NewPage(c, sm, post.Title)
		page.Post = post
		for _, p := range more {
			if p.ID != post.ID {
				page.AuthorPosts = append(page.AuthorPosts, p)
			}
		}
		return c.Render(http.StatusOK, "post.html", page)
	}
}

// loadPost 依 :post_id 載入文章與留言，不存在回傳 404
func loadPost(c echo.Context, db database.DB) (*model.Post, error) {
	id, err := handler.PostID(c)
	if err != nil {
		return nil, err
	}
	ctx := c.Request().Context()
	post, err := getPostByID(ctx, db, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if err != nil {
		return nil, err
	}
	comments, err := listCommentsByPost(ctx, db, id)
	if err != nil {
		return nil, err
	}
	post.Comments = comments
	return post, nil
}

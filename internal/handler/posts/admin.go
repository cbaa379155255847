// File: internal/handler/posts/admin.go
package posts

import (
	"errors"
	"fmt"
	"net/http"

	"blog/internal/database"
	"blog/internal/dto"
	"blog/internal/handler"
	"blog/internal/metrics"
	"blog/internal/middleware"
	"blog/internal/model"
	"blog/internal/render"
	"blog/internal/session"
	"blog/internal/store"

	"github.com/labstack/echo/v4"
)

// 以下 handler 都必須掛在 RequireAdmin 之後

func ShowCreatePostHandler(sm *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "make-post.html", handler.NewPage(c, sm, "New Post"))
	}
}

// CreatePostHandler 作者為目前使用者，日期為今天
func CreatePostHandler(db database.DB, sm *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := handler.NewPage(c, sm, "New Post")
		req, ok, err := bindPost(c, &page)
		if !ok {
			return err
		}

		_, err = createPost(c.Request().Context(), db, &model.Post{
			AuthorID: middleware.CurrentUser(c).ID,
			Title:    req.Title,
			Subtitle: req.Subtitle,
			Date:     timeNow().Format(model.DateLayout),
			Body:     req.Body,
			ImgURL:   req.ImgURL,
		})
		if errors.Is(err, store.ErrDuplicate) {
			page.Errors = []string{msgDuplicateTitle}
			return c.Render(http.StatusOK, "make-post.html", page)
		}
		if err != nil {
			return err
		}
		metrics.PostMutations.WithLabelValues(metrics.ActionCreate).Inc()
		return c.Redirect(http.StatusFound, "/")
	}
}

func ShowEditPostHandler(db database.DB, sm *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		post, err := findPost(c, db)
		if err != nil {
			return err
		}
		page := handler.NewPage(c, sm, "Edit Post")
		page.Post = post
		page.IsEdit = true
		page.Form = postForm(post)
		return c.Render(http.StatusOK, "make-post.html", page)
	}
}

// EditPostHandler 覆寫標題、副標、圖片與內容，作者改為目前使用者
func EditPostHandler(db database.DB, sm *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		post, err := findPost(c, db)
		if err != nil {
			return err
		}
		page := handler.NewPage(c, sm, "Edit Post")
		page.Post = post
		page.IsEdit = true
		req, ok, err := bindPost(c, &page)
		if !ok {
			return err
		}

		post.Title = req.Title
		post.Subtitle = req.Subtitle
		post.ImgURL = req.ImgURL
		post.Body = req.Body
		post.AuthorID = middleware.CurrentUser(c).ID

		err = updatePost(c.Request().Context(), db, post)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		case errors.Is(err, store.ErrDuplicate):
			page.Errors = []string{msgDuplicateTitle}
			return c.Render(http.StatusOK, "make-post.html", page)
		case err != nil:
			return err
		}
		metrics.PostMutations.WithLabelValues(metrics.ActionUpdate).Inc()
		return c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
	}
}

// DeletePostHandler 留言隨文章一併刪除
func DeletePostHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.PostID(c)
		if err != nil {
			return err
		}
		err = deletePost(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		if err != nil {
			return err
		}
		metrics.PostMutations.WithLabelValues(metrics.ActionDelete).Inc()
		return c.Redirect(http.StatusFound, "/")
	}
}

// findPost 只載入文章本身
func findPost(c echo.Context, db database.DB) (*model.Post, error) {
	id, err := handler.PostID(c)
	if err != nil {
		return nil, err
	}
	post, err := getPostByID(c.Request().Context(), db, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return post, err
}

// bindPost 讀取並驗證表單；失敗時已重新顯示表單 (ok 為 false)
func bindPost(c echo.Context, page *render.Page) (dto.PostRequest, bool, error) {
	var req dto.PostRequest
	err := c.Bind(&req)
	page.Form = postForm(&model.Post{Title: req.Title, Subtitle: req.Subtitle, ImgURL: req.ImgURL, Body: req.Body})
	if err == nil {
		err = c.Validate(&req)
	}
	if err != nil {
		page.Errors = dto.ValidationMessages(err)
		return req, false, c.Render(http.StatusBadRequest, "make-post.html", *page)
	}
	return req, true, nil
}

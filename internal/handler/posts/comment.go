// File: internal/handler/posts/comment.go
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
	"blog/internal/session"
	"blog/internal/store"

	"github.com/labstack/echo/v4"
)

// AddCommentHandler 需搭配 RequireLogin；留言作者為目前使用者
func AddCommentHandler(db database.DB, sm *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		post, err := loadPost(c, db)
		if err != nil {
			return err
		}

		var req dto.CommentRequest
		bindErr := c.Bind(&req)
		if bindErr == nil {
			bindErr = c.Validate(&req)
		}
		if bindErr != nil {
			page := handler.NewPage(c, sm, post.Title)
			page.Post = post
			page.Errors = dto.ValidationMessages(bindErr)
			return c.Render(http.StatusBadRequest, "post.html", page)
		}

		_, err = createComment(c.Request().Context(), db, &model.Comment{
			Text:     req.Text,
			AuthorID: middleware.CurrentUser(c).ID,
			PostID:   post.ID,
		})
		if errors.Is(err, store.ErrInvalidReference) {
			// 文章在讀取後被刪除
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		if err != nil {
			return err
		}
		metrics.Comments.Inc()
		return c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
	}
}

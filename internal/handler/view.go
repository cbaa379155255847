// File: internal/handler/view.go
package handler

import (
	"net/http"
	"strconv"

	"blog/internal/middleware"
	"blog/internal/render"
	"blog/internal/service"
	"blog/internal/session"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// NewPage 組出共用的頁面資料：目前使用者、CSRF token，並取出待顯示的訊息
func NewPage(c echo.Context, sm *session.Manager, title string) render.Page {
	u := middleware.CurrentUser(c)
	page := render.Page{
		Title:   title,
		User:    u,
		IsAdmin: service.IsAdmin(u),
		Form:    map[string]string{},
	}
	if tok, ok := c.Get(echomw.DefaultCSRFConfig.ContextKey).(string); ok {
		page.CSRF = tok
	}
	msgs, err := sm.Flashes(c)
	if err != nil {
		log.Warn().Err(err).Msg("read flashes")
	}
	page.Flashes = msgs
	return page
}

// PostID 解析路徑上的 :post_id，非正整數一律視為 404
func PostID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return id, nil
}

// File: internal/render/error_handler.go
package render

import (
	"errors"
	"fmt"
	"net/http"

	"blog/internal/middleware"
	"blog/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ErrorHandler 以 error.html 顯示錯誤頁，5xx 另外寫入 log
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("uri", c.Request().RequestURI).
			Msg("request failed")
		// 內部錯誤不外流
		msg = http.StatusText(code)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	u := middleware.CurrentUser(c)
	page := Page{
		Title:   http.StatusText(code),
		User:    u,
		IsAdmin: service.IsAdmin(u),
		Status:  code,
		Message: msg,
	}
	if rerr := c.Render(code, "error.html", page); rerr != nil {
		_ = c.String(code, fmt.Sprintf("%d %s", code, msg))
	}
}

// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"blog/internal/database"
	"blog/internal/dto"
	"blog/internal/handler"
	"blog/internal/metrics"
	"blog/internal/render"
	"blog/internal/session"
	"blog/internal/store"

	"github.com/labstack/echo/v4"
)

func ShowLoginHandler(sm *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "login.html", handler.NewPage(c, sm, "Login"))
	}
}

// LoginHandler 驗證 email/密碼後綁定 session；失敗時重新顯示登入頁，身分不變
func LoginHandler(db database.DB, sm *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		page := handler.NewPage(c, sm, "Login")

		if err := c.Bind(&req); err != nil {
			page.Errors = dto.ValidationMessages(err)
			return c.Render(http.StatusBadRequest, "login.html", page)
		}
		page.Form["email"] = req.Email
		if err := c.Validate(&req); err != nil {
			page.Errors = dto.ValidationMessages(err)
			return c.Render(http.StatusBadRequest, "login.html", page)
		}

		user, err := getUserByEmail(c.Request().Context(), db, req.Email)
		if errors.Is(err, store.ErrNotFound) {
			return loginFailed(c, page, msgUnknownUser)
		}
		if err != nil {
			return err
		}

		if err := authenticateUser(c.Request().Context(), *user, req.Password); err != nil {
			return loginFailed(c, page, msgWrongPassword)
		}

		if err := sm.Login(c, user.ID); err != nil {
			return err
		}
		metrics.Logins.WithLabelValues(metrics.ResultSuccess).Inc()
		return c.Redirect(http.StatusFound, "/")
	}
}

func loginFailed(c echo.Context, page render.Page, msg string) error {
	metrics.Logins.WithLabelValues(metrics.ResultFailure).Inc()
	page.Flashes = append(page.Flashes, msg)
	return c.Render(http.StatusOK, "login.html", page)
}

// LogoutHandler 未登入時直接回首頁
func LogoutHandler(sm *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := sm.Logout(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusFound, "/")
	}
}

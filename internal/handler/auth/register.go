// File: internal/handler/auth/register.go
package auth

import (
	"errors"
	"net/http"

	"blog/internal/database"
	"blog/internal/dto"
	"blog/internal/handler"
	"blog/internal/metrics"
	"blog/internal/model"
	"blog/internal/render"
	"blog/internal/service"
	"blog/internal/session"
	"blog/internal/store"

	"github.com/labstack/echo/v4"
)

func ShowRegisterHandler(sm *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "register.html", handler.NewPage(c, sm, "Register"))
	}
}

// RegisterHandler 建立帳號後直接登入並回到首頁；email 已存在時不建立任何資料
func RegisterHandler(db database.DB, sm *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
		page := handler.NewPage(c, sm, "Register")

		if err := c.Bind(&req); err != nil {
			page.Errors = dto.ValidationMessages(err)
			return c.Render(http.StatusBadRequest, "register.html", page)
		}
		page.Form["email"] = req.Email
		page.Form["name"] = req.Name
		if err := c.Validate(&req); err != nil {
			metrics.Registrations.WithLabelValues(metrics.ResultFailure).Inc()
			page.Errors = dto.ValidationMessages(err)
			return c.Render(http.StatusBadRequest, "register.html", page)
		}
		// bcrypt 以位元組計算長度
		if len(req.Password) > service.MaxPasswordBytes {
			metrics.Registrations.WithLabelValues(metrics.ResultFailure).Inc()
			page.Errors = []string{msgPasswordTooLong}
			return c.Render(http.StatusBadRequest, "register.html", page)
		}

		ctx := c.Request().Context()
		_, err := getUserByEmail(ctx, db, req.Email)
		switch {
		case err == nil:
			return rejectDuplicate(c, page)
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return err
		}
		user, err := createUser(ctx, db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
		})
		if errors.Is(err, store.ErrDuplicate) {
			// 兩個請求同時註冊同一 email
			return rejectDuplicate(c, page)
		}
		if err != nil {
			return err
		}

		if err := sm.Login(c, user.ID); err != nil {
			return err
		}
		metrics.Registrations.WithLabelValues(metrics.ResultSuccess).Inc()
		return c.Redirect(http.StatusFound, "/")
	}
}

func rejectDuplicate(c echo.Context, page render.Page) error {
	metrics.Registrations.WithLabelValues(metrics.ResultDuplicate).Inc()
	page.Flashes = append(page.Flashes, msgUserExists)
	return c.Render(http.StatusOK, "register.html", page)
}

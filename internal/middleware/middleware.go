package middleware

import (
	"errors"
	"net/http"

	"blog/internal/database"
	"blog/internal/model"
	"blog/internal/service"
	"blog/internal/session"
	"blog/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const ContextUserKey = "user"

// LoginRequiredMessage 未登入留言時的提示
const LoginRequiredMessage = "You need to login or register to comment."

// 測試時可覆寫
var getUserByID = store.GetUserByID

// CurrentUser 取得 LoadUser 放進 context 的使用者，未登入為 nil
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(ContextUserKey).(*model.User)
	return u
}

// LoadUser 每個請求都會執行：依 session 綁定的 id 載入使用者。
// 使用者已不存在時視為未登入；session 儲存失敗時以匿名身分繼續。
func LoadUser(db database.DB, sm *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := sm.Load(c)
			if err != nil {
				log.Warn().Err(err).Msg("session unavailable")
				return next(c)
			}
			if s.UserID == 0 {
				return next(c)
			}
			u, err := getUserByID(c.Request().Context(), db, s.UserID)
			switch {
			case errors.Is(err, store.ErrNotFound):
			case err != nil:
				return err
			default:
				c.Set(ContextUserKey, u)
			}
			return next(c)
		}
	}
}

// RequireLogin 未登入時留下提示並導向 /login
func RequireLogin(sm *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				if err := sm.AddFlash(c, LoginRequiredMessage); err != nil {
					log.Warn().Err(err).Msg("add flash")
				}
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}

// RequireAdmin 非管理員 (含未登入) 一律 403，handler 不會被執行
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !service.IsAdmin(CurrentUser(c)) {
			return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
		}
		return next(c)
	}
}

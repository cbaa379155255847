// File: internal/router/router.go
package router

import (
	"net/http"
	"time"

	"blog/internal/cache"
	"blog/internal/database"
	"blog/internal/handler"
	"blog/internal/handler/auth"
	"blog/internal/handler/pages"
	"blog/internal/handler/posts"
	"blog/internal/middleware"
	"blog/internal/session"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// 登入、註冊每個 IP 每 6 秒補一次額度，最多累積 10 次
const (
	authRate  = rate.Limit(1.0 / 6)
	authBurst = 10
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, sm *session.Manager) {
	// 維運用，不經過 session
	e.GET("/healthz", handler.PingHandler(db, cch))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	csrf := echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   sm.Secure(),
		CookieSameSite: http.SameSiteLaxMode,
	})
	limit := echomw.RateLimiter(echomw.NewRateLimiterMemoryStoreWithConfig(
		echomw.RateLimiterMemoryStoreConfig{Rate: authRate, Burst: authBurst, ExpiresIn: 3 * time.Minute},
	))
	site := func(extra ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
		return append([]echo.MiddlewareFunc{csrf, middleware.LoadUser(db, sm)}, extra...)
	}

	// 公開頁面
	e.GET("/", posts.ListPostsHandler(db, sm), site()...)
	e.GET("/about", pages.AboutHandler(sm), site()...)
	e.GET("/contact", pages.ContactHandler(sm), site()...)
	e.GET("/post/:post_id", posts.ShowPostHandler(db, sm), site()...)

	// 帳號
	e.GET("/register", auth.ShowRegisterHandler(sm), site()...)
	e.POST("/register", auth.RegisterHandler(db, sm), site(limit)...)
	e.GET("/login", auth.ShowLoginHandler(sm), site()...)
	e.POST("/login", auth.LoginHandler(db, sm), site(limit)...)
	e.GET("/logout", auth.LogoutHandler(sm), site()...)

	// 留言需登入
	e.POST("/post/:post_id", posts.AddCommentHandler(db, sm), site(middleware.RequireLogin(sm))...)

	// 管理員專屬
	e.GET("/new-post", posts.ShowCreatePostHandler(sm), site(middleware.RequireAdmin)...)
	e.POST("/new-post", posts.CreatePostHandler(db, sm), site(middleware.RequireAdmin)...)
	e.GET("/edit-post/:post_id", posts.ShowEditPostHandler(db, sm), site(middleware.RequireAdmin)...)
	e.POST("/edit-post/:post_id", posts.EditPostHandler(db, sm), site(middleware.RequireAdmin)...)
	e.GET("/delete/:post_id", posts.DeletePostHandler(db), site(middleware.RequireAdmin)...)
}

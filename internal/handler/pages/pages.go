// File: internal/handler/pages/pages.go
package pages

import (
	"net/http"

	"blog/internal/handler"
	"blog/internal/session"

	"github.com/labstack/echo/v4"
)

func AboutHandler(sm *session.Manager) echo.HandlerFunc {
	return static(sm, "about.html", "About")
}

func ContactHandler(sm *session.Manager) echo.HandlerFunc {
	return static(sm, "contact.html", "Contact")
}

func static(sm *session.Manager, tmpl, title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, tmpl, handler.NewPage(c, sm, title))
	}
}

// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"blog/internal/cache"
	"blog/internal/database"
	"blog/internal/dto"

	"github.com/labstack/echo/v4"
)

// PingResponse 健康檢查回應
type PingResponse struct {
	Message string `json:"message"`
}

// PingHandler 檢查資料庫與 Redis 是否可用
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "database unhealthy"})
		}
		if err := cch.Set(ctx, "healthz", "1", 10*time.Second).Err(); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}

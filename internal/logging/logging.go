// File: internal/logging/logging.go
package logging

import (
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// New 建立 JSON 格式 logger，無法辨識的等級一律使用 info
func New(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// RequestLogger 每個請求輸出一筆 log，5xx 以 error 等級記錄
func RequestLogger(l zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := l.Info()
			if v.Status >= 500 {
				ev = l.Error()
			}
			if v.Error != nil {
				ev = ev.Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

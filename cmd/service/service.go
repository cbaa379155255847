package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"blog/internal/cache"
	"blog/internal/config"
	"blog/internal/database"
	"blog/internal/logging"
	"blog/internal/render"
	"blog/internal/router"
	"blog/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// CustomValidator wraps go-playground/validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	newRenderer     = render.New
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	logOutput       io.Writer = os.Stdout
	exitFunc        = os.Exit
	cliArgs         = os.Args[1:]
)

// cmdMigrateDown 退回全部 migration 後結束，不啟動伺服器
const cmdMigrateDown = "migrate-down"

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, logOutput)
	log.Logger = logger

	if len(cliArgs) > 0 {
		if cliArgs[0] != cmdMigrateDown {
			return fmt.Errorf("未知指令: %s", cliArgs[0])
		}
		if err := rollbackAllFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("Migration 退回失敗: %w", err)
		}
		logger.Info().Msg("migrations rolled back")
		return nil
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	renderer, err := newRenderer()
	if err != nil {
		return fmt.Errorf("載入樣板失敗: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Renderer = renderer
	e.HTTPErrorHandler = render.ErrorHandler
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())

	sm := session.NewManager(rdb, cfg.SecretKey, cfg.SessionTTL, cfg.CookieSecure)
	router.Setup(e, db, rdb, sm)

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	return startServer(e, ":"+cfg.Port)
}

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("service stopped")
		exitFunc(1)
	}
}

// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 服務啟動所需的全部設定
type Config struct {
	DatabaseURL   string
	SecretKey     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Port          string
	LogLevel      string
	SessionTTL    time.Duration
	CookieSecure  bool
}

// 測試時可覆寫
var loadDotEnv = func() error { return godotenv.Load() }

// Load 先讀 .env (不存在則略過)，再由環境變數覆蓋預設值
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("讀取 .env 失敗: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("COOKIE_SECURE", false)

	cfg := &Config{
		DatabaseURL:   v.GetString("DATABASE_URL"),
		SecretKey:     v.GetString("SECRET_KEY"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		Port:          v.GetString("PORT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		CookieSecure:  v.GetBool("COOKIE_SECURE"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("環境變數 SECRET_KEY 未設定")
	}

	redisDB, err := parseRedisDB(v.GetString("REDIS_DB"))
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = redisDB

	ttl, err := time.ParseDuration(v.GetString("SESSION_TTL"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("無效的 SESSION_TTL: %q", v.GetString("SESSION_TTL"))
	}
	cfg.SessionTTL = ttl

	return cfg, nil
}

func parseRedisDB(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("無效的 REDIS_DB: %q", s)
	}
	return n, nil
}

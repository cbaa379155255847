// File: internal/session/session.go
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blog/internal/cache"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	CookieName = "blog_session"
	keyPrefix  = "session:"
	contextKey = "session"
)

// 測試時可覆寫
var (
	newID   = uuid.NewString
	timeNow = time.Now
)

// Data 存放在 Redis 的 session 內容；UserID 為 0 代表未登入
type Data struct {
	UserID  int      `json:"user_id,omitempty"`
	Flashes []string `json:"flashes,omitempty"`
}

// Session 單一瀏覽器的 session；stored 為 false 時 Redis 尚無對應資料
type Session struct {
	ID string
	Data
	stored bool
}

// Manager 以 Redis 保存 session，cookie 只帶經過簽章的 session id
type Manager struct {
	cache  cache.Cache
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewManager(c cache.Cache, secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{cache: c, secret: []byte(secret), ttl: ttl, secure: secure}
}

// Secure cookie 是否只走 HTTPS
func (m *Manager) Secure() bool { return m.secure }

// Load 取得目前請求的 session，同一請求內只解析一次。
// cookie 無效或 Redis 資料已過期時回傳全新的匿名 session。
func (m *Manager) Load(c echo.Context) (*Session, error) {
	if s, ok := c.Get(contextKey).(*Session); ok {
		return s, nil
	}

	s := &Session{ID: newID()}
	if sid, ok := m.readCookie(c); ok {
		raw, err := m.cache.Get(c.Request().Context(), keyPrefix+sid).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return nil, fmt.Errorf("Load: %w", err)
		default:
			var d Data
			if err := json.Unmarshal(raw, &d); err == nil {
				s = &Session{ID: sid, Data: d, stored: true}
				// 滑動過期
				if err := m.save(c, s); err != nil {
					return nil, err
				}
			}
		}
	}

	c.Set(contextKey, s)
	return s, nil
}

// UserID 回傳已綁定的使用者 id，未登入為 0
func (m *Manager) UserID(c echo.Context) int {
	s, err := m.Load(c)
	if err != nil {
		return 0
	}
	return s.UserID
}

// Login 綁定使用者。已綁定同一使用者時不做事；
// 否則換發新的 session id 並刪除舊資料，避免 session fixation。
func (m *Manager) Login(c echo.Context, userID int) error {
	s, err := m.Load(c)
	if err != nil {
		return err
	}
	if userID != 0 && s.UserID == userID {
		return nil
	}
	if s.stored {
		if err := m.cache.Del(c.Request().Context(), keyPrefix+s.ID).Err(); err != nil {
			return fmt.Errorf("Login: %w", err)
		}
	}
	s.ID = newID()
	s.stored = false
	s.UserID = userID
	return m.save(c, s)
}

// Logout 清除綁定並讓 cookie 失效；未登入時不做事
func (m *Manager) Logout(c echo.Context) error {
	s, err := m.Load(c)
	if err != nil {
		return err
	}
	if s.UserID == 0 {
		return nil
	}
	if err := m.cache.Del(c.Request().Context(), keyPrefix+s.ID).Err(); err != nil {
		return fmt.Errorf("Logout: %w", err)
	}
	c.SetCookie(m.cookie("", -1))
	c.Set(contextKey, &Session{ID: newID()})
	return nil
}

// AddFlash 加入一則一次性訊息
func (m *Manager) AddFlash(c echo.Context, msg string) error {
	s, err := m.Load(c)
	if err != nil {
		return err
	}
	s.Flashes = append(s.Flashes, msg)
	return m.save(c, s)
}

// Flashes 取出並清空所有訊息
func (m *Manager) Flashes(c echo.Context) ([]string, error) {
	s, err := m.Load(c)
	if err != nil {
		return nil, err
	}
	if len(s.Flashes) == 0 {
		return nil, nil
	}
	msgs := s.Flashes
	s.Flashes = nil
	if err := m.save(c, s); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (m *Manager) save(c echo.Context, s *Session) error {
	raw, err := json.Marshal(s.Data)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := m.cache.Set(c.Request().Context(), keyPrefix+s.ID, raw, m.ttl).Err(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	s.stored = true

	token, err := m.sign(s.ID)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	c.SetCookie(m.cookie(token, int(m.ttl.Seconds())))
	return nil
}

func (m *Manager) sign(sid string) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:       sid,
		IssuedAt: jwt.NewNumericDate(timeNow()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) readCookie(c echo.Context) (string, bool) {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return "", false
	}
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(ck.Value, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid || claims.ID == "" {
		return "", false
	}
	return claims.ID, true
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

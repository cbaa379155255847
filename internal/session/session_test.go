package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog/internal/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewManager(rdb, "secret", time.Hour, false), mr
}

func newCtx(cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		if ck != nil {
			req.AddCookie(ck)
		}
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// lastCookie 同名 cookie 以最後一個 Set-Cookie 為準
func lastCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	var out *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			out = ck
		}
	}
	return out
}

func TestLoadAnonymous(t *testing.T) {
	m, mr := newTestManager(t)
	c, rec := newCtx()

	s, err := m.Load(c)
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)
	require.Zero(t, s.UserID)
	require.Nil(t, lastCookie(rec))
	require.Empty(t, mr.Keys())

	// 同一請求只解析一次
	again, err := m.Load(c)
	require.NoError(t, err)
	require.Same(t, s, again)
	require.Zero(t, m.UserID(c))
}

func TestLoginAndReload(t *testing.T) {
	m, mr := newTestManager(t)
	c, rec := newCtx()
	require.NoError(t, m.Login(c, 5))

	ck := lastCookie(rec)
	require.NotNil(t, ck)
	require.True(t, ck.HttpOnly)
	require.Equal(t, "/", ck.Path)
	require.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	require.Equal(t, 3600, ck.MaxAge)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	require.Equal(t, time.Hour, mr.TTL(keys[0]))
	raw, err := mr.Get(keys[0])
	require.NoError(t, err)
	require.JSONEq(t, `{"user_id":5}`, raw)

	c2, _ := newCtx(ck)
	require.Equal(t, 5, m.UserID(c2))
}

func TestSlidingExpiry(t *testing.T) {
	m, mr := newTestManager(t)
	c, rec := newCtx()
	require.NoError(t, m.Login(c, 2))
	ck := lastCookie(rec)
	key := mr.Keys()[0]

	mr.FastForward(40 * time.Minute)
	c2, _ := newCtx(ck)
	require.Equal(t, 2, m.UserID(c2))
	require.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(2 * time.Hour)
	c3, _ := newCtx(ck)
	require.Zero(t, m.UserID(c3))
}

func TestLoginRotatesID(t *testing.T) {
	m, mr := newTestManager(t)

	// 匿名 session 先存一則訊息
	c, rec := newCtx()
	require.NoError(t, m.AddFlash(c, "hello"))
	anon := mr.Keys()[0]

	c2, rec2 := newCtx(lastCookie(rec))
	require.NoError(t, m.Login(c2, 3))
	require.False(t, mr.Exists(anon))
	keys := mr.Keys()
	require.Len(t, keys, 1)
	require.NotEqual(t, anon, keys[0])

	// 訊息隨 session 保留
	c3, _ := newCtx(lastCookie(rec2))
	msgs, err := m.Flashes(c3)
	require.NoError(t, err)
	require.Equal(t, []string{"hello"}, msgs)
	require.Equal(t, 3, m.UserID(c3))
}

func TestLoginIdempotent(t *testing.T) {
	m, mr := newTestManager(t)
	c, rec := newCtx()
	require.NoError(t, m.Login(c, 4))
	first := mr.Keys()[0]

	c2, _ := newCtx(lastCookie(rec))
	require.NoError(t, m.Login(c2, 4))
	require.Equal(t, []string{first}, mr.Keys())

	// 換成另一位使用者會取代原本的綁定
	c3, _ := newCtx(lastCookie(rec))
	require.NoError(t, m.Login(c3, 9))
	require.Equal(t, 9, m.UserID(c3))
	require.False(t, mr.Exists(first))
}

func TestLogout(t *testing.T) {
	m, mr := newTestManager(t)
	c, rec := newCtx()
	require.NoError(t, m.Login(c, 1))
	ck := lastCookie(rec)

	c2, rec2 := newCtx(ck)
	require.NoError(t, m.Logout(c2))
	require.Empty(t, mr.Keys())
	require.Zero(t, m.UserID(c2))
	expired := lastCookie(rec2)
	require.NotNil(t, expired)
	require.Negative(t, expired.MaxAge)

	// 舊 cookie 不再有效
	c3, _ := newCtx(ck)
	require.Zero(t, m.UserID(c3))

	// 未登入時登出不做事
	c4, rec4 := newCtx()
	require.NoError(t, m.Logout(c4))
	require.Nil(t, lastCookie(rec4))
}

func TestSessionsAreIndependent(t *testing.T) {
	m, _ := newTestManager(t)

	ca, recA := newCtx()
	require.NoError(t, m.Login(ca, 1))
	cookieA := lastCookie(recA)

	cb, recB := newCtx()
	require.NoError(t, m.Login(cb, 2))
	cookieB := lastCookie(recB)

	c, _ := newCtx(cookieA)
	require.Equal(t, 1, m.UserID(c))
	c, _ = newCtx(cookieB)
	require.Equal(t, 2, m.UserID(c))

	// A 登出不影響 B
	c, _ = newCtx(cookieA)
	require.NoError(t, m.Logout(c))

	c, _ = newCtx(cookieA)
	require.Zero(t, m.UserID(c))
	c, _ = newCtx(cookieB)
	require.Equal(t, 2, m.UserID(c))
}

func TestInvalidCookies(t *testing.T) {
	m, _ := newTestManager(t)
	c, rec := newCtx()
	require.NoError(t, m.Login(c, 1))
	good := lastCookie(rec)
	sid := ""
	{
		c2, _ := newCtx(good)
		s, err := m.Load(c2)
		require.NoError(t, err)
		sid = s.ID
	}

	cases := map[string]string{}

	other := NewManager(nil, "other-secret", time.Hour, false)
	tok, err := other.sign(sid)
	require.NoError(t, err)
	cases["wrong secret"] = tok

	tok, err = jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.RegisteredClaims{ID: sid}).SignedString([]byte("secret"))
	require.NoError(t, err)
	cases["wrong alg"] = tok

	tok, err = jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{ID: sid}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	cases["none alg"] = tok

	cases["garbage"] = "not-a-token"

	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newCtx(&http.Cookie{Name: CookieName, Value: value})
			s, err := m.Load(c)
			require.NoError(t, err)
			require.NotEqual(t, sid, s.ID)
			require.Zero(t, s.UserID)
		})
	}
}

func TestFlashes(t *testing.T) {
	m, _ := newTestManager(t)
	c, rec := newCtx()
	require.NoError(t, m.AddFlash(c, "one"))
	require.NoError(t, m.AddFlash(c, "two"))

	c2, _ := newCtx(lastCookie(rec))
	msgs, err := m.Flashes(c2)
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, msgs)

	c3, _ := newCtx(lastCookie(rec))
	msgs, err = m.Flashes(c3)
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestCacheErrors(t *testing.T) {
	fc := &cache.FakeCache{
		GetFn: func(_ context.Context, _ string) *redis.StringCmd {
			return redis.NewStringResult("", errors.New("down"))
		},
	}
	m := NewManager(fc, "secret", time.Hour, false)
	tok, err := m.sign("abc")
	require.NoError(t, err)

	c, _ := newCtx(&http.Cookie{Name: CookieName, Value: tok})
	_, err = m.Load(c)
	require.ErrorContains(t, err, "down")

	c2, _ := newCtx(&http.Cookie{Name: CookieName, Value: tok})
	require.Zero(t, m.UserID(c2))

	fc.SetFn = func(context.Context, string, any, time.Duration) *redis.StatusCmd {
		return redis.NewStatusResult("", errors.New("readonly"))
	}
	c3, _ := newCtx()
	require.Error(t, m.Login(c3, 1))
	require.Error(t, m.AddFlash(c3, "x"))
}

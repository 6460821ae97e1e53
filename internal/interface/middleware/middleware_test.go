package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type oneSession struct{ sess *entity.Session }

func (o oneSession) Save(context.Context, entity.Session, time.Duration) error { return nil }
func (o oneSession) Revoke(context.Context, string) error                      { return nil }
func (o oneSession) Get(_ context.Context, uid string) (*entity.Session, error) {
	if o.sess == nil || o.sess.UserID != uid {
		return nil, repository.ErrSessionNotFound
	}
	return o.sess, nil
}

func authEngine(sessions repository.SessionStore, jwt *helpers.JWTManager) *gin.Engine {
	r := gin.New()
	r.GET("/me", Auth(sessions, jwt), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c)+"|"+UserEmail(c))
	})
	return r
}

func TestAuthAcceptsBearerAndCookie(t *testing.T) {
	jwt := helpers.NewJWTManager("a", "r", time.Minute, time.Hour)
	tok, _, err := jwt.GenerateAccessToken("u1", "a@x.com", "s1")
	require.NoError(t, err)
	r := authEngine(oneSession{sess: &entity.Session{UserID: "u1", SessionID: "s1"}}, jwt)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1|a@x.com", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: tok})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejectsStaleSession(t *testing.T) {
	jwt := helpers.NewJWTManager("a", "r", time.Minute, time.Hour)
	tok, _, err := jwt.GenerateAccessToken("u1", "a@x.com", "old")
	require.NoError(t, err)

	cases := map[string]repository.SessionStore{
		"rotated": oneSession{sess: &entity.Session{UserID: "u1", SessionID: "new"}},
		"revoked": oneSession{},
	}
	for name, sessions := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+tok)
			w := httptest.NewRecorder()
			authEngine(sessions, jwt).ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "session not found")
		})
	}
}

func TestAuthWithoutSessionStoreTrustsToken(t *testing.T) {
	jwt := helpers.NewJWTManager("a", "r", time.Minute, time.Hour)
	tok, _, err := jwt.GenerateAccessToken("u1", "a@x.com", "s1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer "+tok)
	w := httptest.NewRecorder()
	authEngine(nil, jwt).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "1.2.3.4", "X-Forwarded-For": "5.6.7.8"}, "1.2.3.4"},
		{"left-most forwarded", map[string]string{"X-Forwarded-For": "5.6.7.8, 10.0.0.1"}, "5.6.7.8"},
		{"garbage falls back", map[string]string{"X-Forwarded-For": "nope"}, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RealIP())
			r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestRequestIDKeepsCallerValue(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
}

func TestRateLimitKeys(t *testing.T) {
	r := gin.New()
	r.GET("/match/:id", func(c *gin.Context) {
		c.Set(CtxUserIDKey, "u1")
		c.String(http.StatusOK, KeyByUserID()(c)+" "+KeyByUserIDAndPath()(c))
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/match/7", nil))
	assert.Equal(t, "rl:user:u1 rl:path:/match/:id:user:u1", w.Body.String())
}

func TestRateLimitWithoutRedisIsNoop(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

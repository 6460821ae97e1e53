package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/date-app-backend/internal/interface/http"
	"github.com/oksasatya/date-app-backend/internal/interface/middleware"
)

// AccountModule wires sign-in and account deletion.
// Public: POST /api/login, POST /api/register, POST /api/refresh
// Protected: POST /api/logout, DELETE /api/account, POST /api/delete-account
type AccountModule struct {
	Handler *handlers.AccountHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewAccountModule(h *handlers.AccountHandler, auth gin.HandlerFunc, rdb *redis.Client) *AccountModule {
	return &AccountModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(m.Auth)
	{
		auth.POST("/logout", m.Handler.Logout)

		// deletion is heavy; keep it well below the general per-user limit
		deleteLimiter := middleware.RateLimit(m.Redis, 3, time.Minute, middleware.KeyByUserIDAndPath(), nil)
		auth.DELETE("/account", deleteLimiter, m.Handler.DeleteAccount)
		auth.POST("/delete-account", deleteLimiter, m.Handler.DeleteAccount)
	}
}

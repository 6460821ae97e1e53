package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/date-app-backend/internal/interface/http"
	"github.com/oksasatya/date-app-backend/internal/interface/middleware"
)

type MatchModule struct {
	Handler *handlers.MatchHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewMatchModule(h *handlers.MatchHandler, auth gin.HandlerFunc, rdb *redis.Client) *MatchModule {
	return &MatchModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *MatchModule) Register(rg *gin.RouterGroup) {
	// every call scans all profiles
	limiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByUserIDAndPath(), nil)
	rg.GET("/match/recommendations", m.Auth, limiter, m.Handler.Recommendations)
}

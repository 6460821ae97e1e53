package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/date-app-backend/internal/interface/middleware"
)

// DebugModule exposes Prometheus metrics and expvar. Private-network
// scrapers bypass the per-IP limit.
type DebugModule struct {
	Redis *redis.Client
}

func NewDebugModule(rdb *redis.Client) *DebugModule { return &DebugModule{Redis: rdb} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/metrics", rl, gin.WrapH(promhttp.Handler()))
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}

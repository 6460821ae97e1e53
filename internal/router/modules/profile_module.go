package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/date-app-backend/internal/interface/http"
	"github.com/oksasatya/date-app-backend/internal/interface/middleware"
)

// ProfileModule wires the caller's profile and profile search. All routes
// require authentication.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewProfileModule(h *handlers.ProfileHandler, auth gin.HandlerFunc, rdb *redis.Client) *ProfileModule {
	return &ProfileModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(m.Auth)
	auth.Use(
		middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/profile/update", m.Handler.UpdateProfile)
		auth.POST("/profile/upload-image",
			middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByUserIDAndPath(), nil),
			m.Handler.UploadImage)
		auth.GET("/users/search", m.Handler.Search)
	}
}

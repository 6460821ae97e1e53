package router

import (
	"github.com/oksasatya/date-app-backend/internal/container"
	handlers "github.com/oksasatya/date-app-backend/internal/interface/http"
	"github.com/oksasatya/date-app-backend/internal/interface/middleware"
	"github.com/oksasatya/date-app-backend/internal/router/modules"
)

// InitModules builds the handlers from the container singletons and adds
// every module to the registry. Call once at startup, after
// container.Bootstrap.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	rdb := container.GetRedis()
	auth := middleware.Auth(container.Sessions(), container.GetJWT())

	account := handlers.NewAccountHandler(
		container.AccountService(),
		container.Orchestrator(),
		logger,
		cfg.CookieDomain,
		cfg.CookieSecure,
	)
	profile := handlers.NewProfileHandler(container.ProfileService(), logger)
	match := handlers.NewMatchHandler(container.MatchService(), logger)

	r.Add(modules.NewAccountModule(account, auth, rdb))
	r.Add(modules.NewProfileModule(profile, auth, rdb))
	r.Add(modules.NewMatchModule(match, auth, rdb))
	if cfg.MetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}
}

package router

import (
	userapp "github.com/aryasetia/playgate/internal/application"
	"github.com/aryasetia/playgate/internal/container"
	handlers "github.com/aryasetia/playgate/internal/interface/http"
	"github.com/aryasetia/playgate/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	service := userapp.NewService(
		container.GetStore(),
		container.GetHasher(),
		container.GetTokens(),
		container.GetLogger(),
	)

	handler := handlers.NewUserHandler(
		service,
		container.GetLogger(),
		container.GetConfig().CookieDomain,
		container.GetConfig().CookieSecure,
	)

	r.Add(modules.NewUserModule(handler, container.GetTokens()))

	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/aryasetia/playgate/internal/interface/http"
	"github.com/aryasetia/playgate/internal/interface/middleware"
	"github.com/aryasetia/playgate/pkg/helpers"
)

// UserModule wires the auth handlers and session middleware into routes.
// Public: GET /, POST /register, POST /login, GET /logout
// Protected: GET /game, GET /profile, POST /profile/edit

type UserModule struct {
	Handler *handlers.UserHandler
	Tokens  *helpers.TokenManager
}

func NewUserModule(h *handlers.UserHandler, tokens *helpers.TokenManager) *UserModule {
	return &UserModule{Handler: h, Tokens: tokens}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "welcome to playgate")
	})
	rg.POST("/register", m.Handler.Register)
	rg.POST("/login", m.Handler.Login)
	rg.GET("/logout", m.Handler.Logout)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.GET("/game", m.Handler.Game)
		auth.GET("/profile", m.Handler.GetProfile)
		auth.POST("/profile/edit", m.Handler.UpdateProfile)
	}
}

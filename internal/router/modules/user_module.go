package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adisetya/recipe-api/internal/container"
	handlers "github.com/adisetya/recipe-api/internal/interface/http"
	"github.com/adisetya/recipe-api/internal/interface/middleware"
)

// UserModule wires the account endpoints.
// Public: POST /api/user/create, POST /api/user/token
// Protected: GET/PATCH/PUT /api/user/me

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting
	createLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil) // 10 req/min per IP
	tokenLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/user/create", createLimiter, m.Handler.Create)
	rg.POST("/user/token", tokenLimiter, m.Handler.CreateToken)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetTokenStore()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/user/me", m.Handler.Me)
		auth.PATCH("/user/me", m.Handler.UpdateMe)
		auth.PUT("/user/me", m.Handler.UpdateMe)
	}
}

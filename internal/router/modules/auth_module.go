package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/event-portal/internal/interface/http"
	"github.com/oksasatya/event-portal/internal/interface/middleware"
	"github.com/oksasatya/event-portal/pkg/helpers"
)

// AuthModule wires session and account routes.
// Public: POST /auth/login, POST /auth/logout
// Authenticated: GET /auth/check, PUT /auth/profile
// Privileged: /auth/accounts CRUD
type AuthModule struct {
	Auth     *handlers.AuthHandler
	Accounts *handlers.AccountHandler
	Gate     middleware.Gatekeeper
	Cookies  *helpers.CookieManager
	Logger   *logrus.Logger
}

func NewAuthModule(auth *handlers.AuthHandler, accounts *handlers.AccountHandler, gate middleware.Gatekeeper, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthModule {
	return &AuthModule{Auth: auth, Accounts: accounts, Gate: gate, Cookies: cookies, Logger: logger}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/login", m.Auth.Login)
	g.POST("/logout", m.Auth.Logout)

	authed := g.Group("")
	authed.Use(middleware.Authenticated(m.Gate, m.Cookies, m.Logger))
	{
		authed.GET("/check", m.Auth.Check)
		authed.PUT("/profile", m.Accounts.UpdateSelf)
	}

	admin := g.Group("/accounts")
	admin.Use(middleware.Privileged(m.Gate, m.Cookies, m.Logger))
	{
		admin.POST("", m.Accounts.Create)
		admin.GET("", m.Accounts.List)
		admin.GET("/:id", m.Accounts.Get)
		admin.PUT("/:id", m.Accounts.UpdateByAdmin)
		admin.DELETE("/:id", m.Accounts.Delete)
	}
}

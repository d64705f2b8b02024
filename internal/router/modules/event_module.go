package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/event-portal/internal/interface/http"
	"github.com/oksasatya/event-portal/internal/interface/middleware"
	"github.com/oksasatya/event-portal/pkg/helpers"
)

type EventModule struct {
	Handler *handlers.EventHandler
	Gate    middleware.Gatekeeper
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewEventModule(h *handlers.EventHandler, gate middleware.Gatekeeper, cookies *helpers.CookieManager, logger *logrus.Logger) *EventModule {
	return &EventModule{Handler: h, Gate: gate, Cookies: cookies, Logger: logger}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/events")
	g.GET("/current", m.Handler.Current)

	admin := g.Group("")
	admin.Use(middleware.Privileged(m.Gate, m.Cookies, m.Logger))
	{
		admin.POST("", m.Handler.Create)
		admin.GET("", m.Handler.List)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}

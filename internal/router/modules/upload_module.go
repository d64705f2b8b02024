package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/event-portal/internal/interface/http"
	"github.com/oksasatya/event-portal/internal/interface/middleware"
	"github.com/oksasatya/event-portal/pkg/helpers"
)

type UploadModule struct {
	Handler *handlers.UploadHandler
	Gate    middleware.Gatekeeper
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewUploadModule(h *handlers.UploadHandler, gate middleware.Gatekeeper, cookies *helpers.CookieManager, logger *logrus.Logger) *UploadModule {
	return &UploadModule{Handler: h, Gate: gate, Cookies: cookies, Logger: logger}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	rg.GET("/uploads/signature", middleware.Authenticated(m.Gate, m.Cookies, m.Logger), m.Handler.Signature)
}

package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-portal/internal/domain/entity"
	handlers "github.com/oksasatya/event-portal/internal/interface/http"
	"github.com/oksasatya/event-portal/pkg/helpers"
)

// Gatekeeper is satisfied by *application.AuthService.
type Gatekeeper interface {
	Authenticate(ctx context.Context, token string) (*entity.Account, error)
	Authorize(ctx context.Context, token string) (*entity.Account, error)
}

// Authenticated admits any request carrying a valid session for an existing account.
func Authenticated(gate Gatekeeper, cookies *helpers.CookieManager, logger *logrus.Logger) gin.HandlerFunc {
	return guard(gate.Authenticate, cookies, logger)
}

// Privileged additionally requires the account to be an administrator.
func Privileged(gate Gatekeeper, cookies *helpers.CookieManager, logger *logrus.Logger) gin.HandlerFunc {
	return guard(gate.Authorize, cookies, logger)
}

func guard(check func(context.Context, string) (*entity.Account, error), cookies *helpers.CookieManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := check(c.Request.Context(), cookies.Read(c))
		if err != nil {
			handlers.Abort(c, logger, err)
			return
		}
		c.Set(handlers.CtxUserID, a.ID)
		c.Set(handlers.CtxAccount, a)
		c.Next()
	}
}

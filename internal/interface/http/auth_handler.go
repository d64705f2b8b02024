package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-portal/internal/application"
	"github.com/oksasatya/event-portal/pkg/helpers"
	"github.com/oksasatya/event-portal/pkg/response"
	"github.com/oksasatya/event-portal/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	user, tok, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	h.Cookies.Set(c, tok)
	response.Success(c, http.StatusOK, gin.H{"user": user}, "login successful", gin.H{"expires_at": tok.ExpiresAt})
}

// Logout POST /api/auth/logout. The token stays valid until it expires; only the carrier is dropped.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out successfully", nil)
}

// Check GET /api/auth/check
func (h *AuthHandler) Check(c *gin.Context) {
	a := Caller(c)
	if a == nil {
		Fail(c, h.Logger, application.Authentication(application.MsgNoToken))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": a.View()}, "authenticated", nil)
}

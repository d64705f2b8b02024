package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-portal/internal/application"
	"github.com/oksasatya/event-portal/pkg/response"
)

type UploadHandler struct {
	Svc    *application.UploadService
	Logger *logrus.Logger
}

func NewUploadHandler(svc *application.UploadService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Svc: svc, Logger: logger}
}

// Signature GET /api/uploads/signature?content_type=image/png
func (h *UploadHandler) Signature(c *gin.Context) {
	ticket, err := h.Svc.SignAvatarUpload(c.Request.Context(), c.GetString(CtxUserID), c.Query("content_type"))
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ticket, "upload url issued", nil)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-portal/internal/application"
	"github.com/oksasatya/event-portal/pkg/helpers"
	"github.com/oksasatya/event-portal/pkg/response"
)

// StatusOf maps an application error kind to its HTTP status.
// Forbidden deliberately shares 404 with not found.
func StatusOf(err error) int {
	switch application.KindOf(err) {
	case application.KindValidation:
		return http.StatusBadRequest
	case application.KindAuthentication:
		return http.StatusUnauthorized
	case application.KindForbidden, application.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// messageOf returns the caller-safe message carried by err.
func messageOf(err error) string {
	var e *application.Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "internal server error"
}

// Fail writes err as an error envelope. Causes of dependency failures stay in the log.
func Fail(c *gin.Context, logger *logrus.Logger, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		helpers.LogError(logger, "request failed", err, logrus.Fields{"request_id": c.GetString("request_id"), "path": c.FullPath()})
	}
	response.Error[any](c, status, messageOf(err), nil)
}

// Abort is Fail for middleware: it also stops the handler chain.
func Abort(c *gin.Context, logger *logrus.Logger, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		helpers.LogError(logger, "request aborted", err, logrus.Fields{"request_id": c.GetString("request_id")})
	}
	response.Abort(c, status, messageOf(err), nil)
}

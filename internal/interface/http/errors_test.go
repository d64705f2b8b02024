package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/event-portal/internal/application"
)

func init() { gin.SetMode(gin.TestMode) }

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(application.Validation("x")))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(application.ErrInvalidCredentials))
	assert.Equal(t, http.StatusNotFound, StatusOf(application.Forbidden("x")))
	assert.Equal(t, http.StatusNotFound, StatusOf(application.ErrUserNotFound))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestFail_HidesDependencyCause(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Fail(c, nil, application.Dependency("internal server error", errors.New("password_hash column missing")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password_hash")

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["message"])
	assert.Equal(t, false, body["success"])
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2025-06-01T10:00:00Z", "2025-06-01T10:00", "2025-06-01"} {
		_, ok := parseDate(s)
		assert.True(t, ok, s)
	}
	_, ok := parseDate("June 1st")
	assert.False(t, ok)
}

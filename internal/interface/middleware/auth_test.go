package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/event-portal/internal/application"
	"github.com/oksasatya/event-portal/internal/domain/entity"
	handlers "github.com/oksasatya/event-portal/internal/interface/http"
	"github.com/oksasatya/event-portal/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

// tokenGate maps raw tokens to outcomes.
type tokenGate map[string]*entity.Account

func (g tokenGate) Authenticate(_ context.Context, token string) (*entity.Account, error) {
	if token == "" {
		return nil, application.Authentication(application.MsgNoToken)
	}
	a, ok := g[token]
	if !ok {
		return nil, application.Authentication(application.MsgInvalidToken)
	}
	if a == nil {
		return nil, application.ErrUserNotFound
	}
	return a, nil
}

func (g tokenGate) Authorize(ctx context.Context, token string) (*entity.Account, error) {
	a, err := g.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !a.IsAdmin {
		return nil, application.Forbidden(application.MsgNotPrivilege)
	}
	return a, nil
}

func newEngine(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/x", mw, func(c *gin.Context) {
		a := handlers.Caller(c)
		c.String(http.StatusOK, c.GetString(handlers.CtxUserID)+":"+a.Username)
	})
	return r
}

func call(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGate(t *testing.T) {
	gate := tokenGate{
		"admin": {ID: "1", Username: "root", IsAdmin: true},
		"user":  {ID: "2", Username: "bob"},
		"gone":  nil,
	}
	cookies := helpers.NewCookie("jwt", "", false)

	cases := []struct {
		name       string
		mw         gin.HandlerFunc
		token      string
		wantStatus int
		wantBody   string
	}{
		{"authn no token", Authenticated(gate, cookies, nil), "", http.StatusUnauthorized, application.MsgNoToken},
		{"authn bad token", Authenticated(gate, cookies, nil), "nope", http.StatusUnauthorized, application.MsgInvalidToken},
		{"authn vanished", Authenticated(gate, cookies, nil), "gone", http.StatusNotFound, "user not found"},
		{"authn user", Authenticated(gate, cookies, nil), "user", http.StatusOK, "2:bob"},
		{"authz user", Privileged(gate, cookies, nil), "user", http.StatusNotFound, application.MsgNotPrivilege},
		{"authz admin", Privileged(gate, cookies, nil), "admin", http.StatusOK, "1:root"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := call(newEngine(tc.mw), tc.token)
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantBody)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "3f1c1a52-0000-4000-8000-000000000000")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "3f1c1a52-0000-4000-8000-000000000000", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Body.String())
}

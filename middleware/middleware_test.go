package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"businessconnect/models"
	"businessconnect/services/policy"
	"businessconnect/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*policy.Actor, error) {
	args := m.Called(ctx, token)
	actor, _ := args.Get(0).(*policy.Actor)
	return actor, args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func whoAmI(c *gin.Context) {
	actor, ok := ActorFrom(c)
	if !ok {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, actor.ID)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	auth := &mockAuthenticator{}
	auth.On("Authenticate", mock.Anything, "good").Return(&policy.Actor{ID: "u1", Role: models.RoleUser}, nil)
	auth.On("Authenticate", mock.Anything, "bad").Return(nil, utils.Unauthorized("Not authorized, token failed"))

	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(auth), whoAmI)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: "good"})
	req.Header.Set("Authorization", "Bearer bad")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code, "cookie takes precedence over the header")

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w = serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	auth := &mockAuthenticator{}
	auth.On("Authenticate", mock.Anything, "bad").Return(nil, utils.Unauthorized("Not authorized, token failed"))

	r := gin.New()
	r.GET("/me", OptionalAuthMiddleware(auth), whoAmI)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, "anonymous", w.Body.String())
	auth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	withActor := func(role models.Role) gin.HandlerFunc {
		return func(c *gin.Context) {
			if role != "" {
				SetActor(c, &policy.Actor{ID: "u1", Role: role})
			}
			c.Next()
		}
	}

	for role, want := range map[models.Role]int{
		models.RoleBusinessOwner: http.StatusOK,
		models.RoleUser:          http.StatusForbidden,
		"":                       http.StatusUnauthorized,
	} {
		r := gin.New()
		r.GET("/owners", withActor(role), RequireRole(models.RoleBusinessOwner), whoAmI)
		w := serve(r, httptest.NewRequest(http.MethodGet, "/owners", nil))
		assert.Equal(t, want, w.Code, role)
	}
}

func TestGetClientIP(t *testing.T) {
	r := gin.New()
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, GetClientIP(c)) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "203.0.113.7", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", serve(r, req).Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Real-IP", "192.0.2.10")
		codes = append(codes, serve(r, req).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Real-IP", "192.0.2.11")
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) {
		_, ok := c.Get("logger")
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	assert.Equal(t, "req-42", serve(r, req).Header().Get(RequestIDHeader))
}

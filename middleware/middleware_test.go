package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homeserve/models"
	"homeserve/services/actor"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	newReq := func(ip string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip)
		return req
	}

	assert.Equal(t, http.StatusNoContent, serve(r, newReq("10.0.0.1")).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, newReq("10.0.0.1")).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, newReq("10.0.0.1")).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, newReq("10.0.0.2")).Code)
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "1.1.1.1, 2.2.2.2"}, "9.9.9.9:1", "1.1.1.1"},
		{"real ip", map[string]string{"X-Real-IP": " 3.3.3.3 "}, "9.9.9.9:1", "3.3.3.3"},
		{"remote addr", nil, "9.9.9.9:1234", "9.9.9.9"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}

func TestRequestContext_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestContext())
	r.GET("/", func(c *gin.Context) {
		id, _ := c.Get(utils.CtxRequestID)
		assert.NotEmpty(t, id)
		assert.NotNil(t, RequestLogger(c))
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequireIdentity_AttachesCaller(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret")
	token, err := issuer.GenerateToken("aaaaa-aa", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequireIdentity(issuer))
	r.GET("/", func(c *gin.Context) {
		caller, ok := actor.CallerFrom(c.Request.Context())
		require.True(t, ok)
		assert.Equal(t, models.Principal("aaaaa-aa"), caller.Principal)
		assert.Equal(t, token, caller.Token)
		assert.Equal(t, models.Principal("aaaaa-aa"), Principal(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, serve(r, req).Code)

	assert.Equal(t, http.StatusUnauthorized, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestRequireAppRole(t *testing.T) {
	withProfile := func(role models.AppRole) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(utils.CtxProfile, &models.UserProfile{AppRole: role})
		}
	}
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	r := gin.New()
	r.GET("/admin", withProfile(models.AppRoleAdmin), RequireAppRole(models.AppRoleAdmin), ok)
	r.GET("/staff", withProfile(models.AppRoleStaff), RequireAppRole(models.AppRoleAdmin), ok)
	r.GET("/none", RequireAppRole(models.AppRoleAdmin), ok)

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/admin", nil)).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, httptest.NewRequest(http.MethodGet, "/staff", nil)).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, httptest.NewRequest(http.MethodGet, "/none", nil)).Code)
}

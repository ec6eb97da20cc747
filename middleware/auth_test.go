package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pawroute/config"
	"pawroute/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	admin := r.Group("/api/admin")
	admin.Use(middleware.JWTAuthAdminMiddleware())
	admin.GET("/users", func(c *gin.Context) {
		id, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": id.Role})
	})
	return r
}

func adminGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminMiddlewareAcceptsConfiguredKey(t *testing.T) {
	config.AppConfig.AdminAPIKey = "ops-key-123"
	t.Cleanup(func() { config.AppConfig.AdminAPIKey = "" })

	w := adminGet(adminRouter(), "Bearer ops-key-123")

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"role":"admin"}`, w.Body.String())
}

func TestAdminMiddlewareRejectsWrongKey(t *testing.T) {
	config.AppConfig.AdminAPIKey = "ops-key-123"
	t.Cleanup(func() { config.AppConfig.AdminAPIKey = "" })

	r := adminRouter()
	require.Equal(t, http.StatusUnauthorized, adminGet(r, "Bearer wrong").Code)
	require.Equal(t, http.StatusUnauthorized, adminGet(r, "").Code)
	require.Equal(t, http.StatusUnauthorized, adminGet(r, "ops-key-123").Code)
}

func TestAdminMiddlewareRejectsWhenKeyUnset(t *testing.T) {
	config.AppConfig.AdminAPIKey = ""

	w := adminGet(adminRouter(), "Bearer ")

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

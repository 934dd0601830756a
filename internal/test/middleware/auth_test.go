package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"giftcard-backend/internal/config"
	"giftcard-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func adminRouter(token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{AdminToken: token}

	router := gin.New()
	router.Use(middleware.AdminAuth(cfg))
	router.GET("/admin", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestAdminAuth_MissingKey(t *testing.T) {
	router := adminRouter("secret-token")

	req, _ := http.NewRequest("GET", "/admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", w.Body.String())
}

func TestAdminAuth_WrongKey(t *testing.T) {
	router := adminRouter("secret-token")

	req, _ := http.NewRequest("GET", "/admin?key=wrong", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_NoTrimming(t *testing.T) {
	router := adminRouter("secret-token")

	// The comparison is exact; padded tokens do not match.
	req, _ := http.NewRequest("GET", "/admin?key=%20secret-token", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_UnconfiguredTokenRejectsAll(t *testing.T) {
	router := adminRouter("")

	req, _ := http.NewRequest("GET", "/admin?key=", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_CorrectKey(t *testing.T) {
	router := adminRouter("secret-token")

	req, _ := http.NewRequest("GET", "/admin?key=secret-token", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"giftcard-backend/internal/handlers"
	"giftcard-backend/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler_AllUp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewHealthHandler(&captureOrders{}, storage.NewMemoryStore())

	router := gin.New()
	router.GET("/api/health", handler.Check)

	req, _ := http.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"db":true,"storage":true}`, w.Body.String())
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewHealthHandler(
		&captureOrders{pingErr: errors.New("connection refused")},
		storage.NewMemoryStore(),
	)

	router := gin.New()
	router.GET("/api/health", handler.Check)

	req, _ := http.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":false,"db":false,"storage":true}`, w.Body.String())
}

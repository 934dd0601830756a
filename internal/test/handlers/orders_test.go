package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"giftcard-backend/internal/config"
	"giftcard-backend/internal/handlers"
	"giftcard-backend/internal/middleware"
	"giftcard-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordersListRouter(t *testing.T, orders *captureOrders) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{AdminToken: testAdminToken}
	router := gin.New()
	router.Use(middleware.RequestID())
	admin := router.Group("/api/admin")
	admin.Use(middleware.AdminAuth(cfg))
	admin.GET("/orders", handlers.NewOrdersHandler(orders).List)
	return router
}

func TestList_RendersOrders(t *testing.T) {
	orders := &captureOrders{}
	manifest, err := models.EncodeManifest([]models.PhotoEntry{
		{Key: "uploads/2026-08-31/abc-cake.jpg", Filename: "cake.jpg", Size: 9, Type: "image/jpeg", Caption: "the cake"},
	})
	require.NoError(t, err)
	require.NoError(t, orders.InsertOrder(context.Background(), &models.Order{
		ID:           "order-1",
		Name:         "王大明",
		Email:        "a@b.com",
		Occasion:     "生日",
		Style:        "浪漫",
		Recipient:    "媽媽",
		MainText:     "生日快樂",
		PhotoCount:   1,
		PhotoEntries: manifest,
		CreatedAt:    "2026-08-31T10:00:00Z",
	}))
	router := ordersListRouter(t, orders)

	req, _ := http.NewRequest("GET", "/api/admin/orders?key="+testAdminToken, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, "王大明")
	assert.Contains(t, body, "a@b.com")
	assert.Contains(t, body, "the cake")
	assert.Contains(t, body, "/api/admin/zip?key="+testAdminToken+"&amp;id=order-1")
	assert.Contains(t, body, "/api/admin/file?k=")
}

func TestList_EmptyState(t *testing.T) {
	router := ordersListRouter(t, &captureOrders{})

	req, _ := http.NewRequest("GET", "/api/admin/orders?key="+testAdminToken, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No orders yet")
}

func TestList_RequiresToken(t *testing.T) {
	router := ordersListRouter(t, &captureOrders{})

	req, _ := http.NewRequest("GET", "/api/admin/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

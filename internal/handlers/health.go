package handlers

import (
	"context"
	"net/http"

	"giftcard-backend/internal/models"
	"giftcard-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether the metadata store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	objects storage.ObjectStore
}

func NewHealthHandler(db Pinger, objects storage.ObjectStore) *HealthHandler {
	return &HealthHandler{db: db, objects: objects}
}

// Check reports whether both backing stores are wired and the database is
// reachable.
func (h *HealthHandler) Check(c *gin.Context) {
	dbOK := h.db != nil && h.db.Ping(c.Request.Context()) == nil
	storageOK := h.objects != nil

	c.JSON(http.StatusOK, models.HealthResponse{
		OK:      dbOK && storageOK,
		DB:      dbOK,
		Storage: storageOK,
	})
}

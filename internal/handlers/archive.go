package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"giftcard-backend/internal/database"
	"giftcard-backend/internal/middleware"
	"giftcard-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type ArchiveHandler struct {
	service *services.ArchiveService
}

func NewArchiveHandler(service *services.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{service: service}
}

// Download streams one order's photos as a ZIP attachment. The optional
// "n" query parameter is a display ordinal supplied by the listing page;
// it only affects the suggested filename.
func (h *ArchiveHandler) Download(c *gin.Context) {
	orderID := c.Query("id")
	if orderID == "" {
		c.String(http.StatusBadRequest, "Missing order ID")
		return
	}

	archive, err := h.service.Build(c.Request.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrOrderNotFound):
			c.String(http.StatusNotFound, "Order Not Found")
		case errors.Is(err, services.ErrNoPhotos):
			c.String(http.StatusBadRequest, "No photos in this order")
		default:
			reqID := middleware.GetRequestID(c)
			log.Printf("[%s] archive build failed for order %s: %v", reqID, orderID, err)
			c.String(http.StatusInternalServerError, "Server error (ref: %s)", reqID)
		}
		return
	}

	ordinal := c.Query("n")
	if ordinal == "" {
		ordinal = "_"
	}
	filename := fmt.Sprintf("%s-%s.zip", archive.OrderName, ordinal)

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))
	c.Data(http.StatusOK, "application/zip", archive.Data)
}

package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path"

	"giftcard-backend/internal/middleware"
	"giftcard-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	objects storage.ObjectStore
}

func NewFileHandler(objects storage.ObjectStore) *FileHandler {
	return &FileHandler{objects: objects}
}

// Serve proxies one stored photo by its object key ("k"). With download=1
// the response carries an attachment disposition using the caller-supplied
// original filename, falling back to the key's last path segment.
func (h *FileHandler) Serve(c *gin.Context) {
	objectKey := c.Query("k")
	if objectKey == "" {
		c.String(http.StatusBadRequest, "Missing object key")
		return
	}

	data, contentType, err := h.objects.Get(c.Request.Context(), objectKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.String(http.StatusNotFound, "Object Not Found")
			return
		}
		reqID := middleware.GetRequestID(c)
		log.Printf("[%s] object fetch failed for %s: %v", reqID, objectKey, err)
		c.String(http.StatusInternalServerError, "Server error (ref: %s)", reqID)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if c.Query("download") == "1" {
		filename := c.Query("filename")
		if filename == "" {
			filename = path.Base(objectKey)
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))
	}

	c.Data(http.StatusOK, contentType, data)
}

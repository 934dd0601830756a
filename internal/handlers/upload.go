package handlers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"giftcard-backend/internal/middleware"
	"giftcard-backend/internal/models"
	"giftcard-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// multipartMemoryLimit caps the in-memory portion of form parsing; larger
// parts spill to disk.
const multipartMemoryLimit = 32 << 20

type UploadHandler struct {
	service *services.UploadService
}

func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Submit accepts the customer order form: required text fields, optional
// contact fields, a consent flag, and photos[] with positionally aligned
// captions[].
func (h *UploadHandler) Submit(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(multipartMemoryLimit); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to parse multipart form"})
		return
	}
	form := c.Request.MultipartForm
	if form == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to parse multipart form"})
		return
	}

	sub := &models.OrderSubmission{
		Name:      c.PostForm("name"),
		Email:     c.PostForm("email"),
		Style:     c.PostForm("style"),
		Recipient: c.PostForm("recipient"),
		MainText:  c.PostForm("main_text"),
		Occasion:  c.PostForm("occasion"),
		Phone:     c.PostForm("phone"),
		DueDate:   c.PostForm("due_date"),
		Notes:     c.PostForm("notes"),

		// Presence of any non-empty value means consent.
		ConsentPortfolio: c.PostForm("consent_portfolio") != "",
	}

	if hint := strings.TrimSpace(c.PostForm("photo_count")); hint != "" {
		if count, err := strconv.Atoi(hint); err == nil {
			sub.PhotoCountHint = count
		}
	}

	files := formFiles(form, "photos[]", "photos")
	captions := formValues(form, "captions[]", "captions")

	for i, fh := range files {
		if fh == nil {
			continue
		}

		data, err := readFilePart(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "failed to read uploaded file: " + fh.Filename,
			})
			return
		}

		caption := ""
		if i < len(captions) {
			caption = captions[i]
		}

		sub.Photos = append(sub.Photos, models.PhotoUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        data,
			Caption:     caption,
		})
	}

	result, err := h.service.Submit(c.Request.Context(), sub)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: vErr.Msg})
			return
		}
		reqID := middleware.GetRequestID(c)
		log.Printf("[%s] order submission failed: %v", reqID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal server error",
			Message: "ref: " + reqID,
		})
		return
	}

	c.JSON(http.StatusOK, models.SubmitResponse{
		OK:     true,
		ID:     result.OrderID,
		Stored: result.Stored,
	})
}

func formFiles(form *multipart.Form, names ...string) []*multipart.FileHeader {
	for _, name := range names {
		if files := form.File[name]; len(files) > 0 {
			return files
		}
	}
	return nil
}

func formValues(form *multipart.Form, names ...string) []string {
	for _, name := range names {
		if values := form.Value[name]; len(values) > 0 {
			return values
		}
	}
	return nil
}

func readFilePart(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

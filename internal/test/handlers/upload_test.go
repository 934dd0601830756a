package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"giftcard-backend/internal/handlers"
	"giftcard-backend/internal/middleware"
	"giftcard-backend/internal/services"
	"giftcard-backend/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type filePart struct {
	filename    string
	contentType string
	data        []byte
	caption     string
}

func orderForm(t *testing.T, fields map[string]string, photos []filePart) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	for _, p := range photos {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="photos[]"; filename="%s"`, p.filename))
		header.Set("Content-Type", p.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(p.data)
		require.NoError(t, err)

		require.NoError(t, mw.WriteField("captions[]", p.caption))
	}
	require.NoError(t, mw.Close())

	return &body, mw.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"name":      "王大明",
		"email":     "a@b.com",
		"style":     "浪漫",
		"recipient": "媽媽",
		"main_text": "生日快樂",
		"occasion":  "生日",
	}
}

func uploadRouter(t *testing.T) (*gin.Engine, *storage.MemoryStore, *captureOrders) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	objects := storage.NewMemoryStore()
	orders := &captureOrders{}
	handler := handlers.NewUploadHandler(services.NewUploadService(objects, orders, nil))

	router := gin.New()
	router.Use(middleware.RequestID())
	router.POST("/api/upload", handler.Submit)
	return router, objects, orders
}

func TestSubmit_Success(t *testing.T) {
	router, objects, orders := uploadRouter(t)

	body, contentType := orderForm(t, validFields(), []filePart{
		{"cake.jpg", "image/jpeg", []byte("cake-bytes"), "the cake"},
		{"card.png", "image/png", []byte("card-bytes"), ""},
	})

	req, _ := http.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		OK     bool   `json:"ok"`
		ID     string `json:"id"`
		Stored int    `json:"stored"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 2, resp.Stored)

	assert.Equal(t, 2, objects.Len())
	require.Len(t, orders.orders, 1)
	assert.Equal(t, resp.ID, orders.orders[0].ID)
	assert.Equal(t, 2, orders.orders[0].PhotoCount)
}

func TestSubmit_MissingRequiredField(t *testing.T) {
	router, objects, orders := uploadRouter(t)

	fields := validFields()
	delete(fields, "email")
	body, contentType := orderForm(t, fields, nil)

	req, _ := http.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email")
	assert.Equal(t, 0, objects.Len())
	assert.Empty(t, orders.orders)
}

func TestSubmit_DisallowedFileType(t *testing.T) {
	router, _, orders := uploadRouter(t)

	body, contentType := orderForm(t, validFields(), []filePart{
		{"notes.txt", "text/plain", []byte("hello"), ""},
	})

	req, _ := http.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "text/plain")
	assert.Empty(t, orders.orders)
}

func TestSubmit_ConsentFlagPresence(t *testing.T) {
	router, _, orders := uploadRouter(t)

	fields := validFields()
	fields["consent_portfolio"] = "on"
	body, contentType := orderForm(t, fields, nil)

	req, _ := http.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, orders.orders, 1)
	assert.True(t, orders.orders[0].ConsentPortfolio)
}

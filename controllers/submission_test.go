package controllers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmms/storage"
)

func sellRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploads, err := storage.New(t.TempDir())
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/sell-requests", NewSellController(uploads).Create)
	r.POST("/api/service-bookings", NewServiceController().Create)
	r.POST("/api/contacts", NewContactController().Create)
	return r
}

func sellForm(t *testing.T, fields map[string]string, photoCount int) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for i := 0; i < photoCount; i++ {
		part, err := w.CreateFormFile("photos", fmt.Sprintf("machine-%d.jpg", i))
		require.NoError(t, err)
		_, err = part.Write([]byte("jpegdata"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func validSellFields() map[string]string {
	return map[string]string{
		"name":          "Ravi",
		"email":         "ravi@example.com",
		"phone":         "9876543210",
		"machineType":   "Industrial Overlock",
		"brand":         "Juki",
		"model":         "MO-6714S",
		"age":           "3 years",
		"condition":     "Good",
		"expectedPrice": "15000",
	}
}

func TestSellRequestMissingFieldsListed(t *testing.T) {
	r := sellRouter(t)

	fields := validSellFields()
	delete(fields, "brand")
	delete(fields, "condition")

	body, contentType := sellForm(t, fields, 0)
	req := httptest.NewRequest(http.MethodPost, "/api/sell-requests", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "brand")
	assert.Contains(t, w.Body.String(), "condition")
}

func TestSellRequestRejectsSixPhotos(t *testing.T) {
	r := sellRouter(t)

	body, contentType := sellForm(t, validSellFields(), 6)
	req := httptest.NewRequest(http.MethodPost, "/api/sell-requests", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "5 photos")
}

func TestSellRequestRejectsNonNumericPrice(t *testing.T) {
	r := sellRouter(t)

	fields := validSellFields()
	fields["expectedPrice"] = "fifteen thousand"

	body, contentType := sellForm(t, fields, 0)
	req := httptest.NewRequest(http.MethodPost, "/api/sell-requests", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSellRequestRejectsBadPhotoType(t *testing.T) {
	r := sellRouter(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range validSellFields() {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("photos", "manual.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/sell-requests", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServiceBookingMissingFields(t *testing.T) {
	r := sellRouter(t)

	w := postJSON(t, r, "/api/service-bookings", gin.H{
		"name":  "Ravi",
		"email": "ravi@example.com",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactMissingMessage(t *testing.T) {
	r := sellRouter(t)

	w := postJSON(t, r, "/api/contacts", gin.H{
		"name":  "Ravi",
		"email": "ravi@example.com",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

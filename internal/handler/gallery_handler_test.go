package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/celebra-app/celebra-backend/internal/models"
	"github.com/celebra-app/celebra-backend/internal/repository"
	"github.com/celebra-app/celebra-backend/internal/service"
	"github.com/celebra-app/celebra-backend/pkg/document"
)

type recordingBlobStorage struct {
	mu      sync.Mutex
	uploads []string
	deletes []string
}

func (f *recordingBlobStorage) Upload(ctx context.Context, localPath, key, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, key)
	return "https://cdn.test/" + key, nil
}

func (f *recordingBlobStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, key)
	return nil
}

func newGalleryApp(t *testing.T) (*fiber.App, *recordingBlobStorage) {
	t.Helper()

	store := document.NewMemoryStore()
	blobs := &recordingBlobStorage{}
	photos := repository.New[models.GalleryPhoto](store, "gallery")
	svc := service.NewGalleryService(photos, blobs, zap.NewNop().Sugar())
	h := NewGalleryHandler(svc)

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	gallery := app.Group("/api/gallery")
	gallery.Post("/upload", h.UploadPhoto)
	gallery.Get("/event/:eventId", h.GetEventPhotos)
	gallery.Delete("/photos/:photoId", h.DeletePhoto)
	gallery.Post("/photos/:photoId/like", h.LikePhoto)
	return app, blobs
}

func uploadRequest(t *testing.T, filename, contentType string, size int, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/gallery/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestUploadPhotoEndpoint(t *testing.T) {
	app, blobs := newGalleryApp(t)

	req := uploadRequest(t, "party.jpg", "image/jpeg", 2048, map[string]string{
		"eventId": "event-1",
		"userId":  "user-1",
	})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.NotEmpty(t, body["photoId"])
	imageURL, _ := body["imageUrl"].(string)
	assert.Contains(t, imageURL, "https://cdn.test/gallery/event-1/user-1/")

	require.Len(t, blobs.uploads, 1)

	// The uploaded photo shows up in the event listing.
	listReq := httptest.NewRequest(http.MethodGet, "/api/gallery/event/event-1", nil)
	listResp, err := app.Test(listReq, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, listResp.StatusCode)

	listing := decodeJSON(t, listResp)
	assert.Equal(t, float64(1), listing["count"])
}

func TestUploadPhotoEndpointMissingFile(t *testing.T) {
	app, blobs := newGalleryApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("eventId", "event-1"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/gallery/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "file is required", decodeJSON(t, resp)["error"])
	assert.Empty(t, blobs.uploads)
}

func TestUploadPhotoEndpointMissingIdentifiers(t *testing.T) {
	app, blobs := newGalleryApp(t)

	req := uploadRequest(t, "party.jpg", "image/jpeg", 128, map[string]string{
		"userId": "user-1",
	})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeJSON(t, resp)["error"], "missing required fields: eventId")
	assert.Empty(t, blobs.uploads)
}

func TestUploadPhotoEndpointOversize(t *testing.T) {
	app, blobs := newGalleryApp(t)

	req := uploadRequest(t, "huge.jpg", "image/jpeg", 6*1024*1024, map[string]string{
		"eventId": "event-1",
		"userId":  "user-1",
	})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeJSON(t, resp)["error"], "byte limit")
	assert.Empty(t, blobs.uploads)

	// Nothing was persisted either.
	listReq := httptest.NewRequest(http.MethodGet, "/api/gallery/event/event-1", nil)
	listResp, err := app.Test(listReq, -1)
	require.NoError(t, err)
	assert.Equal(t, float64(0), decodeJSON(t, listResp)["count"])
}

func TestUploadPhotoEndpointBadType(t *testing.T) {
	app, _ := newGalleryApp(t)

	req := uploadRequest(t, "clip.gif", "image/gif", 128, map[string]string{
		"eventId": "event-1",
		"userId":  "user-1",
	})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeJSON(t, resp)["error"], "unsupported file type")
}

func TestDeleteAndLikePhotoEndpoints(t *testing.T) {
	app, blobs := newGalleryApp(t)

	req := uploadRequest(t, "party.jpg", "image/jpeg", 128, map[string]string{
		"eventId": "event-1",
		"userId":  "user-1",
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	photoID, _ := decodeJSON(t, resp)["photoId"].(string)
	require.NotEmpty(t, photoID)

	likeResp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/gallery/photos/"+photoID+"/like", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, likeResp.StatusCode)

	deleteResp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/gallery/photos/"+photoID, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, deleteResp.StatusCode)
	require.Len(t, blobs.deletes, 1)
	assert.Equal(t, blobs.uploads[0], blobs.deletes[0])

	// Deleting again fails, the photo is gone.
	deleteResp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/gallery/photos/"+photoID, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, deleteResp.StatusCode)
}

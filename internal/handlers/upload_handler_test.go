package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarhub/scholarhub-backend/internal/upload"
)

type stubUploader struct {
	lastFolder   string
	lastFilename string
}

func (s *stubUploader) UploadBytes(ctx context.Context, folder, filename string, b []byte) (*upload.Result, error) {
	s.lastFolder = folder
	s.lastFilename = filename
	return &upload.Result{URL: "https://cdn.example.com/" + filename, PublicID: "img_1"}, nil
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads/image", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func uploadTestApp(uploader upload.Uploader) *fiber.App {
	h := NewUploadHandler(uploader, "scholarhub")
	app := fiber.New()
	app.Post("/uploads/image", h.Image)
	return app
}

func TestUploadImage(t *testing.T) {
	stub := &stubUploader{}
	app := uploadTestApp(stub)

	resp, err := app.Test(uploadRequest(t, "photo.jpg", []byte("jpegdata")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "https://cdn.example.com/photo.jpg", body["url"])
	assert.Equal(t, "img_1", body["publicId"])
	assert.Equal(t, "scholarhub", stub.lastFolder)
}

func TestUploadImageRejectsUnsupportedType(t *testing.T) {
	app := uploadTestApp(&stubUploader{})

	for _, name := range []string{"notes.pdf", "script.exe", "archive.tar.gz", "noextension"} {
		resp, err := app.Test(uploadRequest(t, name, []byte("data")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, name)
	}
}

func TestUploadImageRequiresFile(t *testing.T) {
	app := uploadTestApp(&stubUploader{})

	req := httptest.NewRequest(http.MethodPost, "/uploads/image", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadImageWhenDisabled(t *testing.T) {
	app := uploadTestApp(nil)

	resp, err := app.Test(uploadRequest(t, "photo.png", []byte("data")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

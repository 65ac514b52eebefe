package post

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"Feedline/internal/api/middleware"
	"Feedline/internal/core/apperr"
	"Feedline/internal/core/attachments"
	"Feedline/internal/core/identity"
	"Feedline/internal/core/posts"
)

// stubService records the Create call and answers like the real service:
// an empty attachment key is a validation failure.
type stubService struct {
	posts.Service

	createCalled bool
	createdKey   string
}

func (s *stubService) Create(ctx context.Context, viewer identity.Identity, fields posts.Fields, attachmentKey string) (*posts.PostView, error) {
	s.createCalled = true
	s.createdKey = attachmentKey
	if attachmentKey == "" {
		return nil, apperr.Validation(apperr.Violation{Field: "image", Message: "no image provided"})
	}
	return &posts.PostView{Post: posts.Post{ID: "p1", AttachmentKey: attachmentKey}}, nil
}

type stubStore struct {
	putKey string
}

func (s *stubStore) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	return s.putKey, nil
}

func (s *stubStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, attachments.ErrNotFound
}

func (s *stubStore) Delete(ctx context.Context, key string) error { return nil }

type nopJanitor struct{}

func (nopJanitor) Cleanup(ctx context.Context, key string) {}

// pngHeader is enough of a PNG for http.DetectContentType.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func multipartBody(t *testing.T, image []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("failed to write field %s: %v", name, err)
		}
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", "upload.png")
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("failed to write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func createRequest(t *testing.T, image []byte) *http.Request {
	t.Helper()
	body, contentType := multipartBody(t, image, map[string]string{
		"title":   "valid title",
		"content": "valid content",
	})
	req := httptest.NewRequest(http.MethodPost, "/feed/posts", body)
	req.Header.Set("Content-Type", contentType)
	return req.WithContext(middleware.WithIdentity(req.Context(), identity.Authenticated("user-1")))
}

func TestHandleCreate_MissingImageIsValidationFailure(t *testing.T) {
	service := &stubService{}
	handler := NewHandler(service, &stubStore{}, nopJanitor{}, 512*1024)

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, createRequest(t, nil))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !service.createCalled {
		t.Fatal("the service decides on a missing image, not the handler")
	}
	if service.createdKey != "" {
		t.Errorf("expected empty attachment key, got %q", service.createdKey)
	}
}

func TestHandleCreate_OversizeUploadIsValidationFailure(t *testing.T) {
	service := &stubService{}
	handler := NewHandler(service, &stubStore{}, nopJanitor{}, int64(len(pngHeader)))

	image := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 32)...)
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, createRequest(t, image))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if service.createCalled {
		t.Error("an oversize upload must not reach the service")
	}

	var resp struct {
		Violations []apperr.Violation `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Violations) != 1 || resp.Violations[0].Field != "image" {
		t.Errorf("unexpected violations: %+v", resp.Violations)
	}
}

func TestHandleCreate_StoresUploadBeforeTheService(t *testing.T) {
	service := &stubService{}
	handler := NewHandler(service, &stubStore{putKey: "stored-key.png"}, nopJanitor{}, 512*1024)

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, createRequest(t, pngHeader))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if service.createdKey != "stored-key.png" {
		t.Errorf("service got key %q", service.createdKey)
	}
}

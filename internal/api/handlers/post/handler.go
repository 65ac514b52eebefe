package post

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"Feedline/internal/api/handlers/common"
	"Feedline/internal/api/middleware"
	"Feedline/internal/core/apperr"
	"Feedline/internal/core/attachments"
	"Feedline/internal/core/posts"
)

// errTooLarge rejects uploads over the configured cap as a validation
// failure, same as any other bad input.
var errTooLarge = apperr.Validation(apperr.Violation{
	Field:   "image",
	Message: "Image should be 512KB or less",
})

// Handler serves the feed endpoints. Uploads go to the object store first;
// the lifecycle service owns cleanup of keys whose mutation is rejected.
type Handler struct {
	service        posts.Service
	store          attachments.ObjectStore
	janitor        posts.Janitor
	maxUploadBytes int64
}

// NewHandler creates a new post handler
func NewHandler(service posts.Service, store attachments.ObjectStore, janitor posts.Janitor, maxUploadBytes int64) *Handler {
	return &Handler{
		service:        service,
		store:          store,
		janitor:        janitor,
		maxUploadBytes: maxUploadBytes,
	}
}

// HandleList handles GET /feed/posts?page=N
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	feed, err := h.service.List(r.Context(), page)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Posts fetched successfully",
		"posts":      feed.Posts,
		"totalItems": feed.TotalCount,
	})
}

// HandleGet handles GET /feed/posts/{postID}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post fetched successfully",
		"post":    view,
	})
}

// HandleCreate handles POST /feed/posts
// Multipart form: image file plus title and content fields. The image is
// stored before the lifecycle call; a rejected create cleans it up inside
// the service. A missing file part reaches the service as an empty key so
// both surfaces report it as the same validation failure.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var key string
	if hasUpload(r) {
		stored, ok := h.storeUpload(w, r)
		if !ok {
			return
		}
		key = stored
	}

	fields := posts.Fields{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	view, err := h.service.Create(r.Context(), middleware.IdentityFrom(r.Context()), fields, key)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Post created successfully",
		"post":    view,
	})
}

// HandleUpdate handles PUT /feed/posts/{postID}
// A file part means "replace the attachment"; no file part means the
// attachment is unchanged.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var newKey *string
	if hasUpload(r) {
		key, ok := h.storeUpload(w, r)
		if !ok {
			return
		}
		newKey = &key
	}

	fields := posts.Fields{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	view, err := h.service.Update(r.Context(), middleware.IdentityFrom(r.Context()),
		chi.URLParam(r, "postID"), fields, newKey)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post updated",
		"post":    view,
	})
}

// HandleDelete handles DELETE /feed/posts/{postID}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "postID"))
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}

// HandleUploadImage handles PUT /post-image
// Stores an image and returns its key for a later create/update mutation
// on the GraphQL surface. When the client supplies the key it is
// replacing, the old object is cleaned up best-effort.
func (h *Handler) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	if !middleware.IdentityFrom(r.Context()).IsAuthenticated {
		common.WriteJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "NotAuthenticated",
			"message": "not authenticated",
		})
		return
	}

	if !hasUpload(r) {
		common.WriteJSON(w, http.StatusOK, map[string]string{"message": "No file uploaded"})
		return
	}

	key, ok := h.storeUpload(w, r)
	if !ok {
		return
	}

	if oldKey := r.FormValue("oldPath"); oldKey != "" {
		h.janitor.Cleanup(r.Context(), oldKey)
	}

	common.WriteJSON(w, http.StatusCreated, map[string]string{
		"message":  "File stored",
		"filePath": key,
	})
}

// HandleMedia handles GET /media/{key}, streaming a stored attachment.
// Requires authentication.
func (h *Handler) HandleMedia(w http.ResponseWriter, r *http.Request) {
	if !middleware.IdentityFrom(r.Context()).IsAuthenticated {
		common.WriteJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "NotAuthenticated",
			"message": "not authorized to access image",
		})
		return
	}

	reader, err := h.store.Open(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		if errors.Is(err, attachments.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		common.WriteError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Cache-Control", "max-age=100000")
	if _, err := io.Copy(w, reader); err != nil {
		// Headers already sent; nothing left to report to the client.
		return
	}
}

// hasUpload reports whether the request carries an image file part.
func hasUpload(r *http.Request) bool {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return false
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// storeUpload reads the image file part and stores it, enforcing the size
// cap and an image-only content type. Writes the error response itself and
// returns ok=false on failure.
func (h *Handler) storeUpload(w http.ResponseWriter, r *http.Request) (string, bool) {
	file, header, err := r.FormFile("image")
	if err != nil {
		common.WriteBadRequest(w, "Image file is required")
		return "", false
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		common.WriteError(w, errTooLarge)
		return "", false
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		common.WriteBadRequest(w, "Failed to read uploaded file")
		return "", false
	}
	if int64(len(data)) > h.maxUploadBytes {
		common.WriteError(w, errTooLarge)
		return "", false
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		common.WriteBadRequest(w, "Only image uploads are accepted")
		return "", false
	}

	key, err := h.store.Put(r.Context(), data, contentType)
	if err != nil {
		common.WriteError(w, err)
		return "", false
	}

	return key, true
}

package routes

import (
	"github.com/go-chi/chi/v5"

	"Feedline/internal/api/handlers/post"
	"Feedline/internal/core/attachments"
	"Feedline/internal/core/posts"
)

// RegisterFeedRoutes registers the feed and media endpoints on the router.
// Reads are public; mutations re-check the identity in the service layer,
// so no route-level auth gate is needed.
func RegisterFeedRoutes(r chi.Router, service posts.Service, store attachments.ObjectStore, janitor posts.Janitor, maxUploadBytes int64) {
	handler := post.NewHandler(service, store, janitor, maxUploadBytes)

	r.Get("/feed/posts", handler.HandleList)
	r.Get("/feed/posts/{postID}", handler.HandleGet)
	r.Post("/feed/posts", handler.HandleCreate)
	r.Put("/feed/posts/{postID}", handler.HandleUpdate)
	r.Delete("/feed/posts/{postID}", handler.HandleDelete)

	r.Put("/post-image", handler.HandleUploadImage)
	r.Get("/media/{key}", handler.HandleMedia)
}

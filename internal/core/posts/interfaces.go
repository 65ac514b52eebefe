package posts

import (
	"context"

	"Feedline/internal/core/events"
	"Feedline/internal/core/identity"
)

// Repository defines the data access interface for posts.
type Repository interface {
	Create(ctx context.Context, post *Post) error

	// GetByID returns ErrPostNotFound when no post has the given ID.
	GetByID(ctx context.Context, id string) (*Post, error)

	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)

	// ListPage returns one feed page ordered by created_at descending with
	// ID as tiebreak, resolving each post's author in the same query.
	// Posts whose owner record is missing come back with a zero Author ID.
	ListPage(ctx context.Context, limit, offset int) ([]*PostView, error)
}

// Janitor cleans up orphaned attachments. Implemented by
// attachments.Janitor; cleanup failures never reach this package's callers.
type Janitor interface {
	Cleanup(ctx context.Context, key string)
}

// Publisher fans mutation events out to live subscribers. Implemented by
// events.Broadcaster.
type Publisher interface {
	Publish(event events.Event)
}

// Service defines the business logic interface for the post lifecycle and
// the feed.
//
// Every mutation takes the caller's Identity explicitly; there is no
// implicit per-request auth state. An attachment uploaded for a mutation
// that is ultimately rejected is always handed to the janitor.
type Service interface {
	// Create persists a new post owned by the viewer. attachmentKey must
	// reference an already-uploaded object.
	Create(ctx context.Context, viewer identity.Identity, fields Fields, attachmentKey string) (*PostView, error)

	// Get returns a single post with its resolved author. Public.
	Get(ctx context.Context, postID string) (*PostView, error)

	// Update overwrites title and content. newAttachmentKey nil means the
	// attachment is unchanged; non-nil adopts the new key and deletes the
	// old object best-effort.
	Update(ctx context.Context, viewer identity.Identity, postID string, fields Fields, newAttachmentKey *string) (*PostView, error)

	// Delete removes the post, its attachment and its entry in the owner's
	// post set.
	Delete(ctx context.Context, viewer identity.Identity, postID string) error

	// List returns one page of the feed. Pages are numbered from 1; a
	// non-positive page means the first.
	List(ctx context.Context, page int) (*FeedPage, error)
}

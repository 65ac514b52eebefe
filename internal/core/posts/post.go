package posts

import "time"

// Post represents a feed post. AttachmentKey is the storage key of the
// attached image and is non-empty for every live post; exactly one live
// post references a given key, and the key is deleted from storage once
// the post stops referencing it.
type Post struct {
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
	ID            string    `json:"_id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Content       string    `json:"content" db:"content"`
	AttachmentKey string    `json:"imageUrl" db:"attachment_key"`
	OwnerID       string    `json:"-" db:"owner_id"`
}

// Author is the owner of a post as resolved for a feed view. When the
// owner record has been removed the post is still served, with
// DeletedAuthorName in place of the real name.
type Author struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// DeletedAuthorName is the placeholder shown when a post's owner record no
// longer exists.
const DeletedAuthorName = "DELETED USER"

// PostView is a post with its resolved author.
type PostView struct {
	Post
	Author Author `json:"creator"`
}

// FeedPage is one page of the chronological feed. TotalCount is the full
// live-post count regardless of page.
type FeedPage struct {
	Posts      []*PostView `json:"posts"`
	TotalCount int         `json:"totalItems"`
}

// Fields are the user-editable fields of a post. Title and content are
// always overwritten together on update.
type Fields struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

package posts

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"Feedline/internal/core/apperr"
	"Feedline/internal/core/events"
	"Feedline/internal/core/identity"
	"Feedline/internal/core/users"
	"Feedline/internal/core/validation"
)

type postService struct {
	repo        Repository
	userRepo    users.Repository
	janitor     Janitor
	broadcaster Publisher
	pageSize    int
	logger      *slog.Logger
	now         func() time.Time
}

// NewPostService creates a new post service. pageSize is the fixed feed
// page size.
func NewPostService(
	repo Repository,
	userRepo users.Repository,
	janitor Janitor,
	broadcaster Publisher,
	pageSize int,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:        repo,
		userRepo:    userRepo,
		janitor:     janitor,
		broadcaster: broadcaster,
		pageSize:    pageSize,
		logger:      logger,
		now:         time.Now,
	}
}

// Create persists a new post owned by the viewer.
// Any rejection after the attachment was uploaded orphans it, so every
// early return hands the key to the janitor.
func (s *postService) Create(ctx context.Context, viewer identity.Identity, fields Fields, attachmentKey string) (*PostView, error) {
	if !viewer.IsAuthenticated {
		s.cleanup(ctx, attachmentKey)
		return nil, apperr.New(apperr.KindNotAuthenticated, "not authenticated")
	}
	if attachmentKey == "" {
		return nil, apperr.Validation(apperr.Violation{Field: "image", Message: "an image is required"})
	}
	if violations := validation.ValidatePostFields(fields.Title, fields.Content); len(violations) > 0 {
		s.cleanup(ctx, attachmentKey)
		return nil, apperr.Validation(violations...)
	}

	owner, err := s.userRepo.GetByID(ctx, viewer.SubjectID)
	if err != nil {
		s.cleanup(ctx, attachmentKey)
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, apperr.New(apperr.KindNotAuthorized, "not authorized")
		}
		return nil, apperr.Unavailable(err)
	}

	now := s.now().UTC()
	post := &Post{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(fields.Title),
		Content:       strings.TrimSpace(fields.Content),
		AttachmentKey: attachmentKey,
		OwnerID:       owner.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.cleanup(ctx, attachmentKey)
		return nil, apperr.Unavailable(err)
	}

	// The post record and the owner's post set are two separate writes with
	// no cross-document transaction; read paths tolerate the dangling
	// reference a crash between them would leave.
	if err := s.userRepo.AddPost(ctx, owner.ID, post.ID); err != nil {
		s.logger.Warn("failed to record post in owner's post set", "postId", post.ID, "userId", owner.ID, "error", err)
	}

	view := &PostView{Post: *post, Author: Author{ID: owner.ID, Name: owner.Name}}
	s.broadcaster.Publish(events.Event{Action: events.ActionCreate, Post: view})

	return view, nil
}

// Get returns a single post with its resolved author. No authorization
// check: reads are public.
func (s *postService) Get(ctx context.Context, postID string) (*PostView, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "post not found")
		}
		return nil, apperr.Unavailable(err)
	}

	return &PostView{Post: *post, Author: s.resolveAuthor(ctx, post.OwnerID)}, nil
}

// Update overwrites title and content and optionally swaps the attachment.
// newAttachmentKey nil means "attachment unchanged"; this is an explicit
// unset marker, distinct from a missing attachment, which is a validation
// error.
func (s *postService) Update(ctx context.Context, viewer identity.Identity, postID string, fields Fields, newAttachmentKey *string) (*PostView, error) {
	// A new attachment that never becomes the live reference is orphaned,
	// whatever the reason for the rejection.
	reject := func(err error) (*PostView, error) {
		if newAttachmentKey != nil {
			s.cleanup(ctx, *newAttachmentKey)
		}
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return reject(apperr.New(apperr.KindNotFound, "post not found"))
		}
		return reject(apperr.Unavailable(err))
	}

	owner, err := s.userRepo.GetByID(ctx, post.OwnerID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			// Owner record gone: nobody can prove ownership anymore.
			return reject(apperr.New(apperr.KindNotAuthorized, "not authorized"))
		}
		return reject(apperr.Unavailable(err))
	}

	if err := identity.Authorize(viewer, post.OwnerID); err != nil {
		return reject(err)
	}

	if violations := validation.ValidatePostFields(fields.Title, fields.Content); len(violations) > 0 {
		return reject(apperr.Validation(violations...))
	}
	if newAttachmentKey != nil && *newAttachmentKey == "" {
		return reject(apperr.Validation(apperr.Violation{Field: "image", Message: "an image is required"}))
	}

	oldKey := post.AttachmentKey
	post.Title = strings.TrimSpace(fields.Title)
	post.Content = strings.TrimSpace(fields.Content)
	if newAttachmentKey != nil && *newAttachmentKey != oldKey {
		post.AttachmentKey = *newAttachmentKey
	}
	post.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, post); err != nil {
		return reject(apperr.Unavailable(err))
	}

	// The old object is deleted only after the new reference is committed.
	// Failure does not abort the update; the janitor logs and swallows it.
	if post.AttachmentKey != oldKey {
		s.cleanup(ctx, oldKey)
	}

	view := &PostView{Post: *post, Author: Author{ID: owner.ID, Name: owner.Name}}
	s.broadcaster.Publish(events.Event{Action: events.ActionUpdate, Post: view})

	return view, nil
}

// Delete removes the post, its attachment and its entry in the owner's
// post set.
func (s *postService) Delete(ctx context.Context, viewer identity.Identity, postID string) error {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return apperr.New(apperr.KindNotFound, "post not found")
		}
		return apperr.Unavailable(err)
	}

	if err := identity.Authorize(viewer, post.OwnerID); err != nil {
		return err
	}

	s.cleanup(ctx, post.AttachmentKey)

	if err := s.repo.Delete(ctx, postID); err != nil {
		return apperr.Unavailable(err)
	}

	if err := s.userRepo.RemovePost(ctx, post.OwnerID, postID); err != nil {
		s.logger.Warn("failed to remove post from owner's post set", "postId", postID, "userId", post.OwnerID, "error", err)
	}

	s.broadcaster.Publish(events.Event{Action: events.ActionDelete, Post: postID})

	return nil
}

// List returns one page of the feed, newest first.
func (s *postService) List(ctx context.Context, page int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}

	views, err := s.repo.ListPage(ctx, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}

	for _, v := range views {
		if v.Author.ID == "" {
			v.Author.Name = DeletedAuthorName
		}
	}

	return &FeedPage{Posts: views, TotalCount: total}, nil
}

func (s *postService) resolveAuthor(ctx context.Context, ownerID string) Author {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, users.ErrUserNotFound) {
			s.logger.Warn("failed to resolve post author", "userId", ownerID, "error", err)
		}
		return Author{Name: DeletedAuthorName}
	}
	return Author{ID: owner.ID, Name: owner.Name}
}

// cleanup is an after-effect: once the primary mutation has committed (or
// been rejected) it runs even if the calling request was already aborted.
func (s *postService) cleanup(ctx context.Context, key string) {
	s.janitor.Cleanup(context.WithoutCancel(ctx), key)
}

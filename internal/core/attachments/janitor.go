package attachments

import (
	"context"
	"errors"
	"log/slog"
)

// Janitor deletes orphaned attachments. Cleanup is best-effort: a single
// attempt, never retried, and failures never reach the caller of the
// primary operation that triggered it.
type Janitor struct {
	store  ObjectStore
	logger *slog.Logger
}

// NewJanitor creates a janitor backed by the given store.
func NewJanitor(store ObjectStore, logger *slog.Logger) *Janitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Janitor{store: store, logger: logger}
}

// Cleanup deletes the attachment with the given key. An empty key and an
// already-absent object are both no-ops. Any other failure is logged and
// swallowed.
func (j *Janitor) Cleanup(ctx context.Context, key string) {
	if key == "" {
		return
	}

	err := j.store.Delete(ctx, key)
	if err == nil || errors.Is(err, ErrNotFound) {
		return
	}

	j.logger.Warn("failed to clean up attachment", "key", key, "error", err)
}

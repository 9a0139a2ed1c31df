package reviews

import (
	"context"
	"time"
)

// Repo defines persistence operations for reviews.
type Repo interface {
	Create(ctx context.Context, review Review) error
	GetByID(ctx context.Context, reviewID string) (Review, error)
	Complete(ctx context.Context, reviewID, status string, issues []Issue, errorMessage *string, completedAt time.Time) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Review, error)
}

// RewriteRepo defines persistence operations for rewrite records.
type RewriteRepo interface {
	CreateRewrite(ctx context.Context, rewrite Rewrite) error
	ListRewritesByUser(ctx context.Context, userID string, limit, offset int) ([]Rewrite, error)
}

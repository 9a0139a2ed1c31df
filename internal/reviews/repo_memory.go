package reviews

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores reviews in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu             sync.RWMutex
	byID           map[string]Review
	byUser         map[string][]string
	rewritesByUser map[string][]Rewrite
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:           make(map[string]Review),
		byUser:         make(map[string][]string),
		rewritesByUser: make(map[string][]Rewrite),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, review Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[review.ID] = review
	r.byUser[review.UserID] = append(r.byUser[review.UserID], review.ID)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, reviewID string) (Review, error) {
	if err := ctx.Err(); err != nil {
		return Review{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	review, ok := r.byID[reviewID]
	if !ok {
		return Review{}, ErrNotFound
	}
	return review, nil
}

func (r *MemoryRepo) Complete(ctx context.Context, reviewID, status string, issues []Issue, errorMessage *string, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.byID[reviewID]
	if !ok {
		return ErrNotFound
	}
	review.Status = status
	if issues != nil {
		review.Issues = issues
	}
	if errorMessage != nil {
		review.ErrorMessage = errorMessage
	}
	if status == StatusCompleted || status == StatusFailed {
		at := completedAt
		if at.IsZero() {
			at = time.Now().UTC()
		}
		review.CompletedAt = &at
	}
	r.byID[reviewID] = review
	return nil
}

// ListByUser returns reviews for a user, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	ids := r.byUser[userID]
	out := make([]Review, 0, len(ids))
	for _, id := range ids {
		if review, ok := r.byID[id]; ok {
			out = append(out, review)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Review{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

func (r *MemoryRepo) CreateRewrite(ctx context.Context, rewrite Rewrite) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rewritesByUser[rewrite.UserID] = append(r.rewritesByUser[rewrite.UserID], rewrite)
	return nil
}

func (r *MemoryRepo) ListRewritesByUser(ctx context.Context, userID string, limit, offset int) ([]Rewrite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	stored := r.rewritesByUser[userID]
	out := make([]Rewrite, len(stored))
	copy(out, stored)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Rewrite{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
var _ RewriteRepo = (*MemoryRepo)(nil)

package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"review-backend/internal/gists"
	"review-backend/internal/llm"
	"review-backend/internal/shared/metrics"
	"review-backend/internal/shared/storage/object"
	"review-backend/internal/shared/telemetry"
)

// Code submissions above this size are rejected before reaching the LLM.
const maxCodeBytes = 100 * 1024

var (
	ErrCodeRequired = errors.New("code is required")
	ErrCodeTooLarge = errors.New("code exceeds the size limit")
)

// Service contains business logic for reviews and rewrites.
type Service struct {
	Repo     Repo
	Rewrites RewriteRepo
	Store    object.ObjectStore
	LLM      llm.Client
	Gists    *gists.Client
}

// Create enqueues a new review and kicks off asynchronous completion.
func (s *Service) Create(ctx context.Context, userID, language, code string) (Review, error) {
	if userID == "" {
		return Review{}, errors.New("userID is required")
	}
	if strings.TrimSpace(code) == "" {
		return Review{}, ErrCodeRequired
	}
	if len(code) > maxCodeBytes {
		return Review{}, ErrCodeTooLarge
	}
	language = normalizeLanguage(language)

	review := Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		Language:  language,
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}

	if s.Store != nil {
		key, _, err := s.Store.Save(ctx, userID, "submission."+extensionFor(language), strings.NewReader(code))
		if err != nil {
			return Review{}, fmt.Errorf("save submission: %w", err)
		}
		review.StorageKey = key
	}

	if err := s.Repo.Create(ctx, review); err != nil {
		return Review{}, err
	}

	go s.completeAsync(backgroundWithRequestID(ctx), review.ID, code)

	return review, nil
}

// Get returns a review by ID.
func (s *Service) Get(ctx context.Context, reviewID string) (Review, error) {
	if reviewID == "" {
		return Review{}, errors.New("reviewID is required")
	}
	return s.Repo.GetByID(ctx, reviewID)
}

// List returns reviews for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Review, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// ListRewrites returns rewrite records for a user ordered newest-first.
func (s *Service) ListRewrites(ctx context.Context, userID string, limit, offset int) ([]Rewrite, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	if s.Rewrites == nil {
		return []Rewrite{}, nil
	}
	return s.Rewrites.ListRewritesByUser(ctx, userID, limit, offset)
}

func (s *Service) completeAsync(ctx context.Context, reviewID, code string) {
	defer func() {
		if r := recover(); r != nil {
			s.failReview(ctx, reviewID, "", fmt.Errorf("panic: %v", r), nil)
		}
	}()
	startedAt := time.Now().UTC()
	if err := s.Repo.Complete(ctx, reviewID, StatusProcessing, nil, nil, time.Time{}); err != nil {
		s.failReview(ctx, reviewID, "", fmt.Errorf("set processing failed: %w", err), &startedAt)
		return
	}

	review, err := s.Repo.GetByID(ctx, reviewID)
	if err != nil {
		s.failReview(ctx, reviewID, "", fmt.Errorf("review lookup: %w", err), &startedAt)
		return
	}
	metrics.IncReviewStarted()
	telemetry.Info("review.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           review.UserID,
		"review_id":         review.ID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})
	if s.LLM == nil {
		s.failReview(ctx, reviewID, review.UserID, errors.New("missing llm client"), &startedAt)
		return
	}

	if code == "" && review.StorageKey != "" && s.Store != nil {
		code, err = loadText(ctx, s.Store, review.StorageKey)
		if err != nil {
			s.failReview(ctx, reviewID, review.UserID, fmt.Errorf("load submission %s: %w", review.StorageKey, err), &startedAt)
			return
		}
	}

	raw, err := s.LLM.ReviewCode(ctx, llm.Input{Language: review.Language, Code: code})
	if err != nil {
		s.failReview(ctx, reviewID, review.UserID, fmt.Errorf("llm review: %w", err), &startedAt)
		return
	}

	var feedback RawFeedback
	if err := json.Unmarshal(raw, &feedback); err != nil {
		s.failReview(ctx, reviewID, review.UserID, fmt.Errorf("llm output invalid: %w", err), &startedAt)
		return
	}

	issues := AssembleIssues(feedback)

	completedAt := time.Now().UTC()
	if err := s.Repo.Complete(ctx, reviewID, StatusCompleted, issues, nil, completedAt); err != nil {
		s.failReview(ctx, reviewID, review.UserID, fmt.Errorf("set result failed: %w", err), &startedAt)
		return
	}
	metrics.IncReviewCompleted()
	metrics.AddIssuesEmitted(len(issues))
	metrics.ObserveReviewDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("review.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           review.UserID,
		"review_id":         review.ID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"issues":            len(issues),
		"duration_ms":       durationMs(&startedAt, &completedAt),
	})
}

func (s *Service) failReview(ctx context.Context, reviewID, userID string, err error, startedAt *time.Time) {
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.Complete(context.Background(), reviewID, StatusFailed, nil, &msg, completedAt); updateErr != nil {
		telemetry.Error("review.fail_update", map[string]any{
			"review_id": reviewID,
			"error":     updateErr.Error(),
			"original":  msg,
		})
	}
	metrics.IncReviewFailed()
	if startedAt != nil {
		metrics.ObserveReviewDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("review.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           userID,
		"review_id":         reviewID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error":             msg,
	})
}

// RewriteInput carries one rewrite request.
type RewriteInput struct {
	UserID   string
	Language string
	Code     string
	Share    bool
}

// RewriteCode produces a cleaned rewrite of the submitted code, storing
// snapshots of both sides and optionally sharing the result as a gist.
func (s *Service) RewriteCode(ctx context.Context, in RewriteInput) (Rewrite, string, error) {
	if in.UserID == "" {
		return Rewrite{}, "", errors.New("userID is required")
	}
	if strings.TrimSpace(in.Code) == "" {
		return Rewrite{}, "", ErrCodeRequired
	}
	if len(in.Code) > maxCodeBytes {
		return Rewrite{}, "", ErrCodeTooLarge
	}
	if s.LLM == nil {
		return Rewrite{}, "", errors.New("missing llm client")
	}
	language := normalizeLanguage(in.Language)

	result, err := s.LLM.RewriteCode(ctx, llm.Input{Language: language, Code: in.Code})
	if err != nil {
		return Rewrite{}, "", fmt.Errorf("llm rewrite: %w", err)
	}
	cleaned := StripFences(result)
	if cleaned == "" {
		return Rewrite{}, "", errors.New("llm returned an empty rewrite")
	}

	rewrite := Rewrite{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Language:  language,
		CreatedAt: time.Now().UTC(),
	}

	if s.Store != nil {
		ext := extensionFor(language)
		originalKey, _, err := s.Store.Save(ctx, in.UserID, "original."+ext, strings.NewReader(in.Code))
		if err != nil {
			return Rewrite{}, "", fmt.Errorf("save original: %w", err)
		}
		resultKey, _, err := s.Store.Save(ctx, in.UserID, "rewrite."+ext, strings.NewReader(cleaned))
		if err != nil {
			return Rewrite{}, "", fmt.Errorf("save rewrite: %w", err)
		}
		rewrite.OriginalKey = originalKey
		rewrite.ResultKey = resultKey
	}

	if in.Share && s.Gists != nil {
		url, err := s.Gists.Create(ctx, "Rewritten "+language+" snippet", "rewrite."+extensionFor(language), cleaned, false)
		if err != nil {
			// Sharing is best-effort; the rewrite itself succeeded.
			telemetry.Error("rewrite.gist_failed", map[string]any{
				"user_id": in.UserID,
				"error":   err.Error(),
			})
		} else {
			rewrite.GistURL = url
		}
	}

	if s.Rewrites != nil {
		if err := s.Rewrites.CreateRewrite(ctx, rewrite); err != nil {
			return Rewrite{}, "", fmt.Errorf("save rewrite record: %w", err)
		}
	}

	metrics.IncRewrite()
	telemetry.Info("rewrite.completed", map[string]any{
		"request_id": requestIDFromContext(ctx),
		"user_id":    in.UserID,
		"rewrite_id": rewrite.ID,
		"language":   language,
		"shared":     rewrite.GistURL != "",
	})
	return rewrite, cleaned, nil
}

func normalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return "plaintext"
	}
	return language
}

func extensionFor(language string) string {
	switch language {
	case "python":
		return "py"
	case "javascript":
		return "js"
	case "typescript":
		return "ts"
	case "go", "golang":
		return "go"
	case "java":
		return "java"
	case "ruby":
		return "rb"
	case "rust":
		return "rs"
	case "c":
		return "c"
	case "cpp", "c++":
		return "cpp"
	case "csharp", "c#":
		return "cs"
	default:
		return "txt"
	}
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

func loadText(ctx context.Context, store object.ObjectStore, key string) (string, error) {
	body, err := store.Open(ctx, key)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

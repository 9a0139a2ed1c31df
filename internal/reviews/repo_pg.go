package reviews

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, review Review) error {
	const query = `
INSERT INTO reviews (id, user_id, language, status, storage_key, issues, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	issues, err := marshalIssues(review.Issues)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		review.ID,
		review.UserID,
		review.Language,
		review.Status,
		nullableString(review.StorageKey),
		issues,
		review.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, reviewID string) (Review, error) {
	const query = `
SELECT id, user_id, language, status, storage_key, issues, error_message, created_at, completed_at
FROM reviews
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, reviewID)
	review, err := scanReview(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	return review, nil
}

// Complete writes the terminal state for a review. A nil issues slice
// leaves the stored issues untouched.
func (r *PGRepo) Complete(ctx context.Context, reviewID, status string, issues []Issue, errorMessage *string, completedAt time.Time) error {
	const query = `
UPDATE reviews
SET status = $1,
    issues = COALESCE($2::jsonb, issues),
    error_message = COALESCE($3::text, error_message),
    completed_at = CASE
        WHEN $4::timestamptz IS NOT NULL THEN $4::timestamptz
        WHEN ($1 = 'completed' OR $1 = 'failed') AND completed_at IS NULL THEN now()
        ELSE completed_at
    END
WHERE id = $5`

	var payload any
	if issues != nil {
		data, err := marshalIssues(issues)
		if err != nil {
			return err
		}
		payload = data
	}
	var at any
	if !completedAt.IsZero() {
		at = completedAt
	}

	res, err := r.DB.ExecContext(ctx, query, status, payload, errorMessage, at, reviewID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser lists reviews for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Review, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT id, user_id, language, status, storage_key, issues, error_message, created_at, completed_at
FROM reviews
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, review)
	}
	return out, rows.Err()
}

func (r *PGRepo) CreateRewrite(ctx context.Context, rewrite Rewrite) error {
	const query = `
INSERT INTO rewrites (id, user_id, language, original_key, result_key, gist_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		rewrite.ID,
		rewrite.UserID,
		rewrite.Language,
		nullableString(rewrite.OriginalKey),
		nullableString(rewrite.ResultKey),
		nullableString(rewrite.GistURL),
		rewrite.CreatedAt,
	)
	return err
}

// ListRewritesByUser lists rewrites for a user ordered newest-first.
func (r *PGRepo) ListRewritesByUser(ctx context.Context, userID string, limit, offset int) ([]Rewrite, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT id, user_id, language, original_key, result_key, gist_url, created_at
FROM rewrites
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rewrite
	for rows.Next() {
		var rw Rewrite
		var originalKey sql.NullString
		var resultKey sql.NullString
		var gistURL sql.NullString
		if err := rows.Scan(
			&rw.ID,
			&rw.UserID,
			&rw.Language,
			&originalKey,
			&resultKey,
			&gistURL,
			&rw.CreatedAt,
		); err != nil {
			return nil, err
		}
		if originalKey.Valid {
			rw.OriginalKey = originalKey.String
		}
		if resultKey.Valid {
			rw.ResultKey = resultKey.String
		}
		if gistURL.Valid {
			rw.GistURL = gistURL.String
		}
		out = append(out, rw)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
var _ RewriteRepo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (Review, error) {
	var review Review
	var storageKey sql.NullString
	var issues sql.NullString
	var errorMessage sql.NullString
	var completedAt sql.NullTime
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.Language,
		&review.Status,
		&storageKey,
		&issues,
		&errorMessage,
		&review.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return Review{}, err
	}
	if storageKey.Valid {
		review.StorageKey = storageKey.String
	}
	if issues.Valid {
		if err := json.Unmarshal([]byte(issues.String), &review.Issues); err != nil {
			review.Issues = nil
		}
	}
	if errorMessage.Valid {
		review.ErrorMessage = &errorMessage.String
	}
	if completedAt.Valid {
		review.CompletedAt = &completedAt.Time
	}
	return review, nil
}

func marshalIssues(issues []Issue) ([]byte, error) {
	if issues == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(issues)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

package reviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	review := Review{
		ID:         "review-1",
		UserID:     "user-1",
		Language:   "python",
		Status:     StatusQueued,
		StorageKey: "abc/def_submission.py",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(
			review.ID,
			review.UserID,
			review.Language,
			review.Status,
			review.StorageKey,
			[]byte("[]"),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), review); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDParsesIssues(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()
	completed := created.Add(time.Second)
	issuesJSON := `[{"id":"1","severity":"critical","title":"SQL injection in login","description":"","suggestion":"Use parameterized queries."}]`

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "language", "status", "storage_key", "issues", "error_message", "created_at", "completed_at",
	}).AddRow("review-1", "user-1", "python", StatusCompleted, "key", issuesJSON, nil, created, completed)

	mock.ExpectQuery("SELECT id, user_id, language, status").
		WithArgs("review-1").
		WillReturnRows(rows)

	review, err := repo.GetByID(context.Background(), "review-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(review.Issues) != 1 || review.Issues[0].Severity != SeverityCritical {
		t.Fatalf("unexpected issues: %+v", review.Issues)
	}
	if review.CompletedAt == nil {
		t.Fatal("expected completedAt")
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, user_id, language, status").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "language", "status", "storage_key", "issues", "error_message", "created_at", "completed_at",
		}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoCompleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE reviews").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Complete(context.Background(), "missing", StatusCompleted, []Issue{}, nil, time.Now().UTC())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoCreateRewrite(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rewrite := Rewrite{
		ID:          "rw-1",
		UserID:      "user-1",
		Language:    "go",
		OriginalKey: "k1",
		ResultKey:   "k2",
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO rewrites").
		WithArgs(
			rewrite.ID,
			rewrite.UserID,
			rewrite.Language,
			rewrite.OriginalKey,
			rewrite.ResultKey,
			nil,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.CreateRewrite(context.Background(), rewrite); err != nil {
		t.Fatalf("CreateRewrite: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/vouchd/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestRepo_Create(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO pending_approvals \(token,id,subject_id,reason\)`).
		WithArgs("msg-100", id, domain.MemberID(2), "admin-heavy counter").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := New(mock)
	err := repo.Create(context.Background(), domain.PendingApproval{
		Token:     "msg-100",
		ID:        id,
		SubjectID: 2,
		Reason:    "admin-heavy counter",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_Take_FirstWins(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	now := time.Now()
	mock := newMock(t)
	mock.ExpectQuery(`DELETE FROM pending_approvals WHERE token = \$1 RETURNING`).
		WithArgs("msg-100").
		WillReturnRows(pgxmock.NewRows([]string{"token", "id", "subject_id", "reason", "created_at"}).
			AddRow("msg-100", id, int64(2), "admin-heavy counter", now))

	repo := New(mock)
	ap, err := repo.Take(context.Background(), "msg-100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.SubjectID != 2 || ap.Token != "msg-100" {
		t.Fatalf("unexpected approval: %+v", ap)
	}
}

func TestRepo_Take_AlreadyTaken(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(`DELETE FROM pending_approvals WHERE token = \$1 RETURNING`).
		WithArgs("msg-100").
		WillReturnError(pgx.ErrNoRows)

	repo := New(mock)
	_, err := repo.Take(context.Background(), "msg-100")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_PurgeExpired(t *testing.T) {
	t.Parallel()

	cutoff := time.Now().Add(-24 * time.Hour)
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM pending_approvals WHERE created_at < \$1`).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	repo := New(mock)
	n, err := repo.PurgeExpired(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("purged: got %d, want 2", n)
	}
}

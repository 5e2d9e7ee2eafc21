package cooldown

import (
	"context"
	"errors"
	"testing"
	"time"

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

func TestRepo_Get(t *testing.T) {
	t.Parallel()

	stamp := time.Now().Add(-30 * time.Minute)

	mock := newMock(t)
	mock.ExpectQuery(`SELECT actor_id, last_action_at FROM cooldowns WHERE actor_id = \$1`).
		WithArgs(domain.MemberID(42)).
		WillReturnRows(pgxmock.NewRows([]string{"actor_id", "last_action_at"}).
			AddRow(int64(42), stamp))

	repo := New(mock)
	cd, err := repo.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cd.ActorID != 42 || !cd.LastActionAt.Equal(stamp) {
		t.Fatalf("unexpected cooldown: %+v", cd)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_Get_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(`SELECT actor_id, last_action_at FROM cooldowns`).
		WithArgs(domain.MemberID(42)).
		WillReturnRows(pgxmock.NewRows([]string{"actor_id", "last_action_at"}))

	repo := New(mock)
	if _, err := repo.Get(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_Touch(t *testing.T) {
	t.Parallel()

	at := time.Now()

	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO cooldowns \(actor_id,last_action_at\) VALUES \(\$1,\$2\) ON CONFLICT \(actor_id\) DO UPDATE`).
		WithArgs(domain.MemberID(42), at).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := New(mock)
	if err := repo.Touch(context.Background(), 42, at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM cooldowns WHERE actor_id = \$1`).
		WithArgs(domain.MemberID(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := New(mock)
	if err := repo.Delete(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// Package approval implements the pending-approval repository using
// PostgreSQL. Resolution deletes the row and returns it in the same
// statement, so the first resolver wins and everyone else sees nothing —
// the removal-before-action guarantee lives here, not in the service.
package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/vouchd/internal/adapter/postgres"
	"github.com/heartmarshall/vouchd/internal/domain"
)

const table = "pending_approvals"

var columns = []string{"token", "id", "subject_id", "reason", "created_at"}

// Repo provides pending-approval persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new pending-approval repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// Create records one outstanding decision keyed by the transport token.
func (r *Repo) Create(ctx context.Context, ap domain.PendingApproval) error {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("token", "id", "subject_id", "reason").
		Values(ap.Token, ap.ID, ap.SubjectID, ap.Reason).
		ToSql()
	if err != nil {
		return fmt.Errorf("build approval insert: %w", err)
	}

	if _, err := r.q(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "pending approval", ap.Token)
	}
	return nil
}

// Take atomically removes and returns the approval for the token.
// domain.ErrNotFound when the token is unknown or someone already took it —
// concurrent deliveries of the same decision race on this single statement.
func (r *Repo) Take(ctx context.Context, token string) (*domain.PendingApproval, error) {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"token": token}).
		Suffix("RETURNING token, id, subject_id, reason, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build approval take: %w", err)
	}

	var ap domain.PendingApproval
	if err := pgxscan.Get(ctx, r.q(ctx), &ap, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("pending approval %s: %w", token, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "pending approval", token)
	}
	return &ap, nil
}

// PurgeExpired removes every approval created before the cutoff and
// reports how many were swept. Expiry has no ledger effect.
func (r *Repo) PurgeExpired(ctx context.Context, cutoff time.Time) (int, error) {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build approval purge: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "pending approvals", cutoff)
	}
	return int(tag.RowsAffected()), nil
}

// ListPending returns every outstanding approval, oldest first.
func (r *Repo) ListPending(ctx context.Context) ([]domain.PendingApproval, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at", "token").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build approval list: %w", err)
	}

	var aps []domain.PendingApproval
	if err := pgxscan.Select(ctx, r.q(ctx), &aps, sql, args...); err != nil {
		return nil, postgres.MapError(err, "pending approvals", "list")
	}
	return aps, nil
}

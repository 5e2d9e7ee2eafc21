// Package account implements the accounts repository using PostgreSQL.
package account

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/vouchd/internal/adapter/postgres"
	"github.com/heartmarshall/vouchd/internal/domain"
)

const table = "accounts"

var columns = []string{"id", "vouch_count", "tracking_enabled", "unvouchable", "created_at", "updated_at"}

// Repo provides account persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new account repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// Get returns the account for the given member. domain.ErrNotFound when the
// member has never been attested or tracked.
func (r *Repo) Get(ctx context.Context, id domain.MemberID) (*domain.Account, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build account select: %w", err)
	}

	var acc domain.Account
	if err := pgxscan.Get(ctx, r.q(ctx), &acc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("account %d: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "account", id)
	}
	return &acc, nil
}

// IncrementCount adds exactly one vouch to the member's counter and returns
// the new value. The increment happens inside a single upsert so two
// concurrent attestations can never lose an update. A previously unknown
// member is created with the counter at 1 and tracking enabled.
func (r *Repo) IncrementCount(ctx context.Context, id domain.MemberID) (int, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "vouch_count", "tracking_enabled").
		Values(id, 1, true).
		Suffix("ON CONFLICT (id) DO UPDATE SET vouch_count = accounts.vouch_count + 1, updated_at = now()").
		Suffix("RETURNING vouch_count").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build account increment: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.q(ctx), &count, sql, args...); err != nil {
		return 0, postgres.MapError(err, "account", id)
	}
	return count, nil
}

// SetCount writes the counter directly, creating the account if needed.
func (r *Repo) SetCount(ctx context.Context, id domain.MemberID, count int) error {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "vouch_count", "tracking_enabled").
		Values(id, count, true).
		Suffix("ON CONFLICT (id) DO UPDATE SET vouch_count = EXCLUDED.vouch_count, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build account set count: %w", err)
	}

	if _, err := r.q(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "account", id)
	}
	return nil
}

// SetTracking flips the tracking flag, creating the account if needed.
func (r *Repo) SetTracking(ctx context.Context, id domain.MemberID, on bool) error {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "tracking_enabled").
		Values(id, on).
		Suffix("ON CONFLICT (id) DO UPDATE SET tracking_enabled = EXCLUDED.tracking_enabled, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build account set tracking: %w", err)
	}

	if _, err := r.q(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "account", id)
	}
	return nil
}

// SetTrackingAll flips the tracking flag on every known account that does
// not already have the requested value and returns the affected ids.
func (r *Repo) SetTrackingAll(ctx context.Context, on bool) ([]domain.MemberID, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("tracking_enabled", on).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.NotEq{"tracking_enabled": on}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build account set tracking all: %w", err)
	}

	var ids []domain.MemberID
	if err := pgxscan.Select(ctx, r.q(ctx), &ids, sql, args...); err != nil {
		return nil, postgres.MapError(err, "accounts", on)
	}
	return ids, nil
}

// SetUnvouchable flips the unvouchable flag, creating the account if needed.
func (r *Repo) SetUnvouchable(ctx context.Context, id domain.MemberID, on bool) error {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "unvouchable").
		Values(id, on).
		Suffix("ON CONFLICT (id) DO UPDATE SET unvouchable = EXCLUDED.unvouchable, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build account set unvouchable: %w", err)
	}

	if _, err := r.q(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "account", id)
	}
	return nil
}

// ResetAllCounts zeroes every non-zero counter and reports how many
// accounts were touched.
func (r *Repo) ResetAllCounts(ctx context.Context) (int, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("vouch_count", 0).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Gt{"vouch_count": 0}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build account reset all: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "accounts", "reset")
	}
	return int(tag.RowsAffected()), nil
}

// ListWithVouches returns every account with a positive counter, ordered
// by id. Bulk reconciliation walks this set.
func (r *Repo) ListWithVouches(ctx context.Context) ([]domain.Account, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Gt{"vouch_count": 0}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build account list: %w", err)
	}

	var accounts []domain.Account
	if err := pgxscan.Select(ctx, r.q(ctx), &accounts, sql, args...); err != nil {
		return nil, postgres.MapError(err, "accounts", "with vouches")
	}
	return accounts, nil
}

// ListTracked returns the ids of every account with tracking enabled.
func (r *Repo) ListTracked(ctx context.Context) ([]domain.MemberID, error) {
	return r.listIDs(ctx, squirrel.Eq{"tracking_enabled": true}, "tracked")
}

// ListUnvouchable returns the ids of every account flagged unvouchable.
func (r *Repo) ListUnvouchable(ctx context.Context) ([]domain.MemberID, error) {
	return r.listIDs(ctx, squirrel.Eq{"unvouchable": true}, "unvouchable")
}

// CountTracked returns how many accounts have tracking enabled.
func (r *Repo) CountTracked(ctx context.Context) (int, error) {
	sql, args, err := postgres.Builder().
		Select("count(*)").
		From(table).
		Where(squirrel.Eq{"tracking_enabled": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build account count tracked: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.q(ctx), &count, sql, args...); err != nil {
		return 0, postgres.MapError(err, "accounts", "tracked")
	}
	return count, nil
}

func (r *Repo) listIDs(ctx context.Context, where squirrel.Eq, what string) ([]domain.MemberID, error) {
	sql, args, err := postgres.Builder().
		Select("id").
		From(table).
		Where(where).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build account list %s: %w", what, err)
	}

	var ids []domain.MemberID
	if err := pgxscan.Select(ctx, r.q(ctx), &ids, sql, args...); err != nil {
		return nil, postgres.MapError(err, "accounts", what)
	}
	return ids, nil
}

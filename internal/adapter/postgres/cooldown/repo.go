// Package cooldown implements the per-actor cooldown repository using
// PostgreSQL. One row per actor, overwritten on each successful
// non-privileged attestation.
package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/vouchd/internal/adapter/postgres"
	"github.com/heartmarshall/vouchd/internal/domain"
)

const table = "cooldowns"

// Repo provides cooldown persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new cooldown repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// Get returns the actor's cooldown row. domain.ErrNotFound when the actor
// has never attested.
func (r *Repo) Get(ctx context.Context, actor domain.MemberID) (*domain.Cooldown, error) {
	sql, args, err := postgres.Builder().
		Select("actor_id", "last_action_at").
		From(table).
		Where(squirrel.Eq{"actor_id": actor}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cooldown select: %w", err)
	}

	var cd domain.Cooldown
	if err := pgxscan.Get(ctx, r.q(ctx), &cd, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("cooldown %d: %w", actor, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "cooldown", actor)
	}
	return &cd, nil
}

// Touch stamps the actor's cooldown row with the given time, creating the
// row on first use.
func (r *Repo) Touch(ctx context.Context, actor domain.MemberID, at time.Time) error {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("actor_id", "last_action_at").
		Values(actor, at).
		Suffix("ON CONFLICT (actor_id) DO UPDATE SET last_action_at = EXCLUDED.last_action_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build cooldown upsert: %w", err)
	}

	if _, err := r.q(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "cooldown", actor)
	}
	return nil
}

// Delete removes the actor's cooldown row. Deleting an absent row is not
// an error.
func (r *Repo) Delete(ctx context.Context, actor domain.MemberID) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"actor_id": actor}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build cooldown delete: %w", err)
	}

	if _, err := r.q(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "cooldown", actor)
	}
	return nil
}

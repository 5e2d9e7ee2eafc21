// Package attestation implements the attestation-log repository using
// PostgreSQL. The log is append-only in normal operation; rows disappear
// only through the set-count shrink path, account clearing, or nothing at
// all — reconciliation only ever adds.
package attestation

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/vouchd/internal/adapter/postgres"
	"github.com/heartmarshall/vouchd/internal/domain"
)

const table = "attestations"

var columns = []string{"id", "actor_id", "subject_id", "reason", "created_at", "updated_at"}

// Repo provides attestation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new attestation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// Insert appends one attestation record. The (actor, subject) pair is
// unique; a duplicate maps to domain.ErrAlreadyExists.
func (r *Repo) Insert(ctx context.Context, actor, subject domain.MemberID, reason *string) (*domain.Attestation, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("actor_id", "subject_id", "reason").
		Values(actor, subject, reason).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build attestation insert: %w", err)
	}

	var rec domain.Attestation
	if err := pgxscan.Get(ctx, r.q(ctx), &rec, sql, args...); err != nil {
		return nil, postgres.MapError(err, "attestation", pairKey(actor, subject))
	}
	return &rec, nil
}

// InsertSynthetic appends an admin-attributed record, silently skipping the
// insert when the (actor, subject) pair already exists. Reports whether a
// row was actually written. Both the set-count grow path and reconciliation
// run through this.
func (r *Repo) InsertSynthetic(ctx context.Context, actor, subject domain.MemberID) (bool, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("actor_id", "subject_id").
		Values(actor, subject).
		Suffix("ON CONFLICT (actor_id, subject_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build attestation insert synthetic: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "attestation", pairKey(actor, subject))
	}
	return tag.RowsAffected() > 0, nil
}

// Exists reports whether the actor has already attested for the subject.
func (r *Repo) Exists(ctx context.Context, actor, subject domain.MemberID) (bool, error) {
	sql, args, err := postgres.Builder().
		Select("1").
		From(table).
		Where(squirrel.Eq{"actor_id": actor, "subject_id": subject}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build attestation exists: %w", err)
	}

	var one int
	if err := pgxscan.Get(ctx, r.q(ctx), &one, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, postgres.MapError(err, "attestation", pairKey(actor, subject))
	}
	return true, nil
}

// CountBySubject returns the number of records backing the subject.
func (r *Repo) CountBySubject(ctx context.Context, subject domain.MemberID) (int, error) {
	sql, args, err := postgres.Builder().
		Select("count(*)").
		From(table).
		Where(squirrel.Eq{"subject_id": subject}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build attestation count: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.q(ctx), &count, sql, args...); err != nil {
		return 0, postgres.MapError(err, "attestations", subject)
	}
	return count, nil
}

// ActorsBySubject returns the actor of every record for the subject,
// oldest first. The verification heuristic classifies these by privilege.
func (r *Repo) ActorsBySubject(ctx context.Context, subject domain.MemberID) ([]domain.MemberID, error) {
	sql, args, err := postgres.Builder().
		Select("actor_id").
		From(table).
		Where(squirrel.Eq{"subject_id": subject}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build attestation actors: %w", err)
	}

	var actors []domain.MemberID
	if err := pgxscan.Select(ctx, r.q(ctx), &actors, sql, args...); err != nil {
		return nil, postgres.MapError(err, "attestations", subject)
	}
	return actors, nil
}

// ListBySubject returns the subject's full records, oldest first.
func (r *Repo) ListBySubject(ctx context.Context, subject domain.MemberID) ([]domain.Attestation, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"subject_id": subject}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build attestation list: %w", err)
	}

	var recs []domain.Attestation
	if err := pgxscan.Select(ctx, r.q(ctx), &recs, sql, args...); err != nil {
		return nil, postgres.MapError(err, "attestations", subject)
	}
	return recs, nil
}

// DeleteOldest removes the subject's n oldest records (created_at ascending,
// insertion order breaking ties) and reports how many went away. The
// set-count shrink path deliberately eats genuine community records when
// synthetic supply is short.
func (r *Repo) DeleteOldest(ctx context.Context, subject domain.MemberID, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}

	sub, subArgs, err := postgres.Builder().
		Select("id").
		From(table).
		Where(squirrel.Eq{"subject_id": subject}).
		OrderBy("created_at", "id").
		Limit(uint64(n)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build attestation delete oldest: %w", err)
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE id IN (%s)", table, sub)
	tag, err := r.q(ctx).Exec(ctx, sql, subArgs...)
	if err != nil {
		return 0, postgres.MapError(err, "attestations", subject)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteBySubject removes every record referencing the subject.
func (r *Repo) DeleteBySubject(ctx context.Context, subject domain.MemberID) (int, error) {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"subject_id": subject}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build attestation delete: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "attestations", subject)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteAll truncates the attestation log. Only the clear-everything admin
// path uses this.
func (r *Repo) DeleteAll(ctx context.Context) error {
	if _, err := r.q(ctx).Exec(ctx, "DELETE FROM "+table); err != nil {
		return postgres.MapError(err, "attestations", "all")
	}
	return nil
}

// UpsertReason rewrites the free-text reason on an existing record. Unlike
// the record itself the reason is mutable; updated_at tracks the rewrite.
func (r *Repo) UpsertReason(ctx context.Context, actor, subject domain.MemberID, reason string) error {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("reason", reason).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"actor_id": actor, "subject_id": subject}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build attestation reason update: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "attestation", pairKey(actor, subject))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("attestation %s: %w", pairKey(actor, subject), domain.ErrNotFound)
	}
	return nil
}

func columnList() string {
	return strings.Join(columns, ", ")
}

func pairKey(actor, subject domain.MemberID) string {
	return fmt.Sprintf("%d->%d", actor, subject)
}

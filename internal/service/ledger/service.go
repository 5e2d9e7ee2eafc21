// Package ledger implements the counter and record mutation operations and
// their invariants. The counter is the authoritative value shown to users;
// the attestation log records who attested. Privileged attestations move
// the counter without leaving a record, so the two legitimately drift —
// the reconcile and verify services deal with that.
package ledger

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/vouchd/internal/domain"
	"github.com/heartmarshall/vouchd/internal/label"
)

type accountRepo interface {
	Get(ctx context.Context, id domain.MemberID) (*domain.Account, error)
	IncrementCount(ctx context.Context, id domain.MemberID) (int, error)
	SetCount(ctx context.Context, id domain.MemberID, count int) error
	SetTracking(ctx context.Context, id domain.MemberID, on bool) error
	SetTrackingAll(ctx context.Context, on bool) ([]domain.MemberID, error)
	SetUnvouchable(ctx context.Context, id domain.MemberID, on bool) error
	ResetAllCounts(ctx context.Context) (int, error)
	ListTracked(ctx context.Context) ([]domain.MemberID, error)
	ListUnvouchable(ctx context.Context) ([]domain.MemberID, error)
	CountTracked(ctx context.Context) (int, error)
}

type attestationRepo interface {
	Insert(ctx context.Context, actor, subject domain.MemberID, reason *string) (*domain.Attestation, error)
	InsertSynthetic(ctx context.Context, actor, subject domain.MemberID) (bool, error)
	Exists(ctx context.Context, actor, subject domain.MemberID) (bool, error)
	ListBySubject(ctx context.Context, subject domain.MemberID) ([]domain.Attestation, error)
	DeleteOldest(ctx context.Context, subject domain.MemberID, n int) (int, error)
	DeleteBySubject(ctx context.Context, subject domain.MemberID) (int, error)
	DeleteAll(ctx context.Context) error
	UpsertReason(ctx context.Context, actor, subject domain.MemberID, reason string) error
}

type cooldownRepo interface {
	Delete(ctx context.Context, actor domain.MemberID) error
}

type rateLimiter interface {
	Acquire(ctx context.Context, actor domain.MemberID) error
	Touch(ctx context.Context, actor domain.MemberID) error
}

type renamer interface {
	DisplayName(ctx context.Context, id domain.MemberID) (string, error)
	Rename(ctx context.Context, id domain.MemberID, label string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides the ledger mutation operations.
type Service struct {
	accounts  accountRepo
	records   attestationRepo
	cooldowns cooldownRepo
	limiter   rateLimiter
	renamer   renamer
	tx        txManager
	labels    *label.Renderer
	log       *slog.Logger
}

// NewService creates a new ledger service.
func NewService(
	log *slog.Logger,
	accounts accountRepo,
	records attestationRepo,
	cooldowns cooldownRepo,
	limiter rateLimiter,
	renamer renamer,
	tx txManager,
	labels *label.Renderer,
) *Service {
	return &Service{
		accounts:  accounts,
		records:   records,
		cooldowns: cooldowns,
		limiter:   limiter,
		renamer:   renamer,
		tx:        tx,
		labels:    labels,
		log:       log.With("service", "ledger"),
	}
}

// refreshLabel re-renders the subject's visible label from current ledger
// state. Every failure here is swallowed after a warn log: the ledger
// mutation that triggered the refresh already succeeded and stays
// authoritative, and the label self-heals on the next successful render.
// Accounts with tracking disabled keep whatever label they have.
func (s *Service) refreshLabel(ctx context.Context, subject domain.MemberID) {
	acc, err := s.accounts.Get(ctx, subject)
	if err != nil {
		s.log.WarnContext(ctx, "label refresh: load account",
			slog.Int64("subject", int64(subject)), slog.Any("error", err))
		return
	}
	if !acc.TrackingEnabled {
		return
	}

	current, err := s.renamer.DisplayName(ctx, subject)
	if err != nil {
		s.log.WarnContext(ctx, "label refresh: read display name",
			slog.Int64("subject", int64(subject)), slog.Any("error", err))
		return
	}

	next := s.labels.Render(current, acc.VouchCount, acc.Unvouchable)
	if next == current {
		return
	}

	if err := s.renamer.Rename(ctx, subject, next); err != nil {
		s.log.WarnContext(ctx, "label refresh: rename rejected",
			slog.Int64("subject", int64(subject)), slog.Any("error", err))
	}
}

// refreshLabels re-renders a batch of subjects, best effort.
func (s *Service) refreshLabels(ctx context.Context, subjects []domain.MemberID) {
	for _, id := range subjects {
		s.refreshLabel(ctx, id)
	}
}

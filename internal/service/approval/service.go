// Package approval resolves the pending human decisions created when the
// verification heuristic flags an account. Each decision is keyed by an
// opaque delivery token and is processed at most once.
package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/vouchd/internal/config"
	"github.com/heartmarshall/vouchd/internal/domain"
)

type approvalRepo interface {
	Take(ctx context.Context, token string) (*domain.PendingApproval, error)
	PurgeExpired(ctx context.Context, cutoff time.Time) (int, error)
	ListPending(ctx context.Context) ([]domain.PendingApproval, error)
}

type accountClearer interface {
	ClearAccount(ctx context.Context, subject domain.MemberID) error
}

// Service applies verdicts to pending approvals and expires stale ones.
type Service struct {
	approvals  approvalRepo
	ledger     accountClearer
	ttl        time.Duration
	sweepEvery time.Duration
	now        func() time.Time
	log        *slog.Logger
}

// NewService creates an approval service.
func NewService(log *slog.Logger, approvals approvalRepo, ledger accountClearer, cfg config.VerifyConfig) *Service {
	return &Service{
		approvals:  approvals,
		ledger:     ledger,
		ttl:        cfg.ApprovalTTL,
		sweepEvery: cfg.SweepInterval,
		now:        time.Now,
		log:        log.With("service", "approval"),
	}
}

// Resolve applies the responder's verdict to the approval behind token.
//
// The pending row is removed before any ledger action, so when the same
// token is delivered twice only the first delivery acts; the second finds
// nothing and returns (nil, nil). An approve verdict resets the subject's
// ledger; a reject touches nothing.
func (s *Service) Resolve(ctx context.Context, token string, verdict domain.Verdict, responder domain.MemberID) (*domain.PendingApproval, error) {
	if !verdict.Valid() {
		return nil, domain.NewValidationError("verdict", "must be approve or reject")
	}

	ap, err := s.approvals.Take(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		// Already resolved, expired, or never ours.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("take approval: %w", err)
	}

	if verdict == domain.VerdictApprove {
		if err := s.ledger.ClearAccount(ctx, ap.SubjectID); err != nil {
			return nil, fmt.Errorf("apply approval for %d: %w", ap.SubjectID, err)
		}
	}

	s.log.InfoContext(ctx, "approval resolved",
		slog.String("token", token),
		slog.String("verdict", string(verdict)),
		slog.Int64("subject", int64(ap.SubjectID)),
		slog.Int64("responder", int64(responder)),
	)
	return ap, nil
}

// Pending lists the decisions still waiting for a human, oldest first.
func (s *Service) Pending(ctx context.Context) ([]domain.PendingApproval, error) {
	aps, err := s.approvals.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending approvals: %w", err)
	}
	return aps, nil
}

// Sweep purges approvals older than the TTL. Expiry has no ledger effect.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	purged, err := s.approvals.PurgeExpired(ctx, s.now().Add(-s.ttl))
	if err != nil {
		return 0, fmt.Errorf("purge expired approvals: %w", err)
	}
	if purged > 0 {
		s.log.InfoContext(ctx, "expired approvals purged", slog.Int("count", purged))
	}
	return purged, nil
}

// RunSweeper sweeps on a fixed interval until ctx is cancelled. Failed
// sweeps are logged and retried on the next tick.
func (s *Service) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.log.ErrorContext(ctx, "sweep failed", slog.Any("error", err))
			}
		}
	}
}

package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vouchd/internal/domain"
)

// RecordAttestation processes one attestation by actor for subject and
// returns the subject's new count.
//
// Rejections, in check order: self-attestation (always), duplicate pair and
// unvouchable subject (non-privileged only), tracking disabled (always),
// rate limit (non-privileged only). A privileged attestation moves the
// counter without writing a record — that asymmetry is deliberate and is
// the root source of counter/log drift.
func (s *Service) RecordAttestation(ctx context.Context, actor, subject domain.MemberID, privileged bool, reason *string) (int, error) {
	if actor == subject {
		return 0, domain.NewValidationError("subject", "cannot attest for yourself")
	}

	acc, err := s.accounts.Get(ctx, subject)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("load subject account: %w", err)
	}

	if !privileged {
		attested, err := s.records.Exists(ctx, actor, subject)
		if err != nil {
			return 0, fmt.Errorf("check existing attestation: %w", err)
		}
		if attested {
			return 0, fmt.Errorf("attestation by %d for %d: %w", actor, subject, domain.ErrAlreadyExists)
		}
		if acc != nil && acc.Unvouchable {
			return 0, domain.NewValidationError("subject", "subject is unvouchable")
		}
	}

	if acc == nil || !acc.TrackingEnabled {
		return 0, domain.NewValidationError("subject", "subject has not enabled tracking")
	}

	if !privileged {
		if err := s.limiter.Acquire(ctx, actor); err != nil {
			return 0, err
		}
	}

	var newCount int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var incErr error
		newCount, incErr = s.accounts.IncrementCount(txCtx, subject)
		if incErr != nil {
			return fmt.Errorf("increment count: %w", incErr)
		}

		if !privileged {
			// A concurrent duplicate slips past the Exists check above;
			// the unique (actor, subject) constraint catches it here and
			// rolls the increment back with it.
			if _, insErr := s.records.Insert(txCtx, actor, subject, reason); insErr != nil {
				return fmt.Errorf("insert attestation: %w", insErr)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if !privileged {
		if err := s.limiter.Touch(ctx, actor); err != nil {
			// The attestation is already durable; a stale cooldown stamp
			// only lets the actor retry sooner.
			s.log.WarnContext(ctx, "cooldown touch failed",
				slog.Int64("actor", int64(actor)), slog.Any("error", err))
		}
	}

	s.refreshLabel(ctx, subject)

	s.log.InfoContext(ctx, "attestation recorded",
		slog.Int64("actor", int64(actor)),
		slog.Int64("subject", int64(subject)),
		slog.Bool("privileged", privileged),
		slog.Int("count", newCount),
	)

	return newCount, nil
}

// SetReason rewrites the free-text reason on the actor's existing
// attestation for subject. The record itself stays untouched.
func (s *Service) SetReason(ctx context.Context, actor, subject domain.MemberID, reason string) error {
	if err := s.records.UpsertReason(ctx, actor, subject, reason); err != nil {
		return fmt.Errorf("set reason: %w", err)
	}
	return nil
}

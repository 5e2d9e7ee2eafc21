package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vouchd/internal/domain"
)

// SetCount moves the subject's counter directly to target and keeps the
// attestation log roughly in step.
//
// Growing inserts synthetic records attributed to the acting admin; the
// unique (actor, subject) pair means at most one such record can land, so
// a large jump leaves the log short — visible later as ADMIN_HEAVY.
// Shrinking deletes the subject's oldest records, which deliberately eats
// genuine community attestations when synthetic supply is insufficient.
func (s *Service) SetCount(ctx context.Context, subject domain.MemberID, target int, actingAdmin domain.MemberID) (int, error) {
	if target < 0 {
		return 0, domain.NewValidationError("count", "cannot be negative")
	}

	current := 0
	if acc, err := s.accounts.Get(ctx, subject); err == nil {
		current = acc.VouchCount
	} else if !errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("load subject account: %w", err)
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.accounts.SetCount(txCtx, subject, target); err != nil {
			return fmt.Errorf("set count: %w", err)
		}

		switch delta := target - current; {
		case delta > 0:
			if _, err := s.records.InsertSynthetic(txCtx, actingAdmin, subject); err != nil {
				return fmt.Errorf("insert synthetic record: %w", err)
			}
		case delta < 0:
			if _, err := s.records.DeleteOldest(txCtx, subject, -delta); err != nil {
				return fmt.Errorf("delete oldest records: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.refreshLabel(ctx, subject)

	s.log.InfoContext(ctx, "count set",
		slog.Int64("subject", int64(subject)),
		slog.Int64("admin", int64(actingAdmin)),
		slog.Int("from", current),
		slog.Int("to", target),
	)

	return target, nil
}

package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vouchd/internal/domain"
)

// ClearAccount zeroes the subject's counter, drops every record naming it
// as subject, and releases the subject's own cooldown.
func (s *Service) ClearAccount(ctx context.Context, subject domain.MemberID) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.accounts.SetCount(txCtx, subject, 0); err != nil {
			return fmt.Errorf("zero count: %w", err)
		}
		if _, err := s.records.DeleteBySubject(txCtx, subject); err != nil {
			return fmt.Errorf("delete records: %w", err)
		}
		if err := s.cooldowns.Delete(txCtx, subject); err != nil {
			return fmt.Errorf("release cooldown: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.refreshLabel(ctx, subject)

	s.log.InfoContext(ctx, "account cleared", slog.Int64("subject", int64(subject)))
	return nil
}

// ClearAll resets every counter to zero and wipes the attestation log.
// Tracking and unvouchable flags survive.
func (s *Service) ClearAll(ctx context.Context) (int, error) {
	var affected int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.accounts.ResetAllCounts(txCtx)
		if err != nil {
			return fmt.Errorf("reset counts: %w", err)
		}
		affected = n
		if err := s.records.DeleteAll(txCtx); err != nil {
			return fmt.Errorf("delete records: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	tracked, err := s.accounts.ListTracked(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "clear all: list tracked for label refresh", slog.Any("error", err))
	} else {
		s.refreshLabels(ctx, tracked)
	}

	s.log.InfoContext(ctx, "ledger cleared", slog.Int("accounts", affected))
	return affected, nil
}

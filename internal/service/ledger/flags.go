package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vouchd/internal/domain"
)

// SetUnvouchable marks or unmarks the subject as closed to new community
// attestations. The stored counter is untouched either way.
func (s *Service) SetUnvouchable(ctx context.Context, subject domain.MemberID, on bool) error {
	if err := s.accounts.SetUnvouchable(ctx, subject, on); err != nil {
		return fmt.Errorf("set unvouchable: %w", err)
	}

	s.refreshLabel(ctx, subject)

	s.log.InfoContext(ctx, "unvouchable flag set",
		slog.Int64("subject", int64(subject)), slog.Bool("on", on))
	return nil
}

// SetTracking turns label maintenance for the subject on or off. Disabling
// freezes the current label in place; re-enabling re-renders it from the
// stored state on the next refresh.
func (s *Service) SetTracking(ctx context.Context, subject domain.MemberID, on bool) error {
	if err := s.accounts.SetTracking(ctx, subject, on); err != nil {
		return fmt.Errorf("set tracking: %w", err)
	}

	if on {
		s.refreshLabel(ctx, subject)
	}

	s.log.InfoContext(ctx, "tracking flag set",
		slog.Int64("subject", int64(subject)), slog.Bool("on", on))
	return nil
}

// SetTrackingAll flips tracking for every known account and returns the ids
// whose flag actually changed. Newly enabled accounts get a label refresh.
func (s *Service) SetTrackingAll(ctx context.Context, on bool) ([]domain.MemberID, error) {
	changed, err := s.accounts.SetTrackingAll(ctx, on)
	if err != nil {
		return nil, fmt.Errorf("set tracking all: %w", err)
	}

	if on {
		s.refreshLabels(ctx, changed)
	}

	s.log.InfoContext(ctx, "tracking flag set for all",
		slog.Bool("on", on), slog.Int("changed", len(changed)))
	return changed, nil
}

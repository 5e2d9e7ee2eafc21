package ledger

import (
	"context"
	"fmt"

	"github.com/heartmarshall/vouchd/internal/domain"
)

// TrackingStats is a summary of label maintenance coverage.
type TrackingStats struct {
	TrackedCount int
	Tracked      []domain.MemberID
}

// Stats reports how many accounts have tracking enabled and which ones.
func (s *Service) Stats(ctx context.Context) (*TrackingStats, error) {
	n, err := s.accounts.CountTracked(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tracked: %w", err)
	}
	ids, err := s.accounts.ListTracked(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tracked: %w", err)
	}
	return &TrackingStats{TrackedCount: n, Tracked: ids}, nil
}

// UnvouchableList returns the ids currently flagged unvouchable.
func (s *Service) UnvouchableList(ctx context.Context) ([]domain.MemberID, error) {
	ids, err := s.accounts.ListUnvouchable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unvouchable: %w", err)
	}
	return ids, nil
}

// Attestations returns the subject's record log, oldest first, with
// whatever reasons the actors left.
func (s *Service) Attestations(ctx context.Context, subject domain.MemberID) ([]domain.Attestation, error) {
	recs, err := s.records.ListBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("list attestations: %w", err)
	}
	return recs, nil
}

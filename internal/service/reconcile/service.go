// Package reconcile repairs the drift between an account's counter and its
// attestation log. Privileged attestations move the counter without leaving
// a record, so the log routinely runs short; reconciliation tops it up with
// synthetic records attributed to the acting admin.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/vouchd/internal/domain"
)

type accountRepo interface {
	Get(ctx context.Context, id domain.MemberID) (*domain.Account, error)
	ListWithVouches(ctx context.Context) ([]domain.Account, error)
}

type attestationRepo interface {
	CountBySubject(ctx context.Context, subject domain.MemberID) (int, error)
	InsertSynthetic(ctx context.Context, actor, subject domain.MemberID) (bool, error)
}

// Service runs counter/log reconciliation.
type Service struct {
	accounts    accountRepo
	records     attestationRepo
	concurrency int
	log         *slog.Logger
}

// NewService creates a reconcile service. concurrency bounds the number of
// accounts repaired in parallel during a bulk run; non-positive means 1.
func NewService(log *slog.Logger, accounts accountRepo, records attestationRepo, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		accounts:    accounts,
		records:     records,
		concurrency: concurrency,
		log:         log.With("service", "reconcile"),
	}
}

// Reconcile tops up the subject's attestation log to match its counter.
// Synthetic records carry the acting admin as actor; since an actor can
// hold at most one record per subject, a large shortfall stays partially
// unrepaired, which the verification report surfaces as unaccounted.
// A log already at or above the counter is left alone.
func (s *Service) Reconcile(ctx context.Context, subject, actingAdmin domain.MemberID) (*domain.ReconcileReport, error) {
	count := 0
	if acc, err := s.accounts.Get(ctx, subject); err == nil {
		count = acc.VouchCount
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load account: %w", err)
	}

	recorded, err := s.records.CountBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	report := &domain.ReconcileReport{
		SubjectID: subject,
		Count:     count,
		Records:   recorded,
	}

	for i := 0; i < count-recorded; i++ {
		inserted, err := s.records.InsertSynthetic(ctx, actingAdmin, subject)
		if err != nil {
			return nil, fmt.Errorf("insert synthetic record: %w", err)
		}
		if !inserted {
			break
		}
		report.Inserted++
	}

	if report.Inserted > 0 {
		s.log.InfoContext(ctx, "log reconciled",
			slog.Int64("subject", int64(subject)),
			slog.Int("count", count),
			slog.Int("records", recorded),
			slog.Int("inserted", report.Inserted),
		)
	}

	return report, nil
}

// ReconcileAll repairs every account with a positive counter, a bounded
// number at a time. The first failing account aborts the run; reports for
// accounts finished before the failure are returned alongside the error.
func (s *Service) ReconcileAll(ctx context.Context, actingAdmin domain.MemberID) ([]domain.ReconcileReport, error) {
	accounts, err := s.accounts.ListWithVouches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	reports := make([]domain.ReconcileReport, len(accounts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, acc := range accounts {
		g.Go(func() error {
			report, err := s.Reconcile(gctx, acc.ID, actingAdmin)
			if err != nil {
				return fmt.Errorf("subject %d: %w", acc.ID, err)
			}
			reports[i] = *report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "bulk reconcile finished", slog.Int("accounts", len(accounts)))
	return reports, nil
}

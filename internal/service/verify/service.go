// Package verify classifies accounts by how well their counter, attestation
// log and rendered label agree, and escalates suspicious accounts to a
// human decision.
package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/vouchd/internal/config"
	"github.com/heartmarshall/vouchd/internal/domain"
	"github.com/heartmarshall/vouchd/internal/label"
	"github.com/heartmarshall/vouchd/internal/platform"
)

type accountRepo interface {
	Get(ctx context.Context, id domain.MemberID) (*domain.Account, error)
}

type attestationRepo interface {
	ActorsBySubject(ctx context.Context, subject domain.MemberID) ([]domain.MemberID, error)
}

type approvalRepo interface {
	Create(ctx context.Context, ap domain.PendingApproval) error
}

// Service implements the verification heuristic.
type Service struct {
	accounts  accountRepo
	records   attestationRepo
	approvals approvalRepo
	names     platform.Renamer
	roles     platform.RoleResolver
	notifier  platform.Notifier
	cfg       config.VerifyConfig
	now       func() time.Time
	log       *slog.Logger
}

// NewService creates a verify service.
func NewService(
	log *slog.Logger,
	accounts accountRepo,
	records attestationRepo,
	approvals approvalRepo,
	names platform.Renamer,
	roles platform.RoleResolver,
	notifier platform.Notifier,
	cfg config.VerifyConfig,
) *Service {
	return &Service{
		accounts:  accounts,
		records:   records,
		approvals: approvals,
		names:     names,
		roles:     roles,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
		log:       log.With("service", "verify"),
	}
}

// Classify builds the verification report for one subject.
//
// The status rules are checked in severity order and the first match wins:
// unvouchable, tracking off, label ahead of the ledger (fake tags), label
// behind the ledger, fully community-backed, admin-heavy. Fake tags and
// tag discrepancies always warrant a decision request; an admin-heavy
// account only when its non-community share exceeds the configured
// threshold.
func (s *Service) Classify(ctx context.Context, subject domain.MemberID) (*domain.VerificationReport, error) {
	report := &domain.VerificationReport{SubjectID: subject}

	acc, err := s.accounts.Get(ctx, subject)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if acc != nil {
		report.StoredCount = acc.VouchCount
	}

	display, err := s.names.DisplayName(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("read display name: %w", err)
	}
	report.DisplayedCount = label.DisplayedCount(display)

	actors, err := s.records.ActorsBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("list record actors: %w", err)
	}
	for _, actor := range actors {
		privileged, err := s.roles.IsPrivileged(ctx, actor)
		if err != nil {
			return nil, fmt.Errorf("resolve role of %d: %w", actor, err)
		}
		if privileged {
			report.AdminCount++
		} else {
			report.CommunityCount++
		}
	}
	if u := report.StoredCount - report.CommunityCount - report.AdminCount; u > 0 {
		report.Unaccounted = u
	}

	switch {
	case acc != nil && acc.Unvouchable:
		report.Status = domain.StatusUnvouchable
	case acc == nil || !acc.TrackingEnabled:
		report.Status = domain.StatusTrackingOff
	case report.DisplayedCount > report.StoredCount:
		report.Status = domain.StatusFakeTags
		report.Flagged = true
	case report.DisplayedCount < report.StoredCount:
		report.Status = domain.StatusTagDiscrepancy
		report.Flagged = true
	case report.CommunityCount == report.StoredCount:
		report.Status = domain.StatusVerified
	default:
		report.Status = domain.StatusAdminHeavy
		report.Flagged = report.AdminShare() > s.cfg.AdminShareThreshold
	}

	return report, nil
}

// CheckAndFlag classifies the subject and, when the report warrants it,
// fans a decision request out to every privileged recipient, recording one
// pending approval per delivered token. When no recipient is reachable the
// request goes to the configured broadcast channel instead; if that also
// fails the condition is logged and the report is returned unflagged so
// the account stays open for manual follow-up.
func (s *Service) CheckAndFlag(ctx context.Context, subject domain.MemberID) (*domain.VerificationReport, error) {
	report, err := s.Classify(ctx, subject)
	if err != nil {
		return nil, err
	}
	if !report.Flagged {
		return report, nil
	}

	reason := describeFlag(report)
	delivered := 0

	recipients, err := s.roles.ListPrivileged(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "list privileged recipients",
			slog.Int64("subject", int64(subject)), slog.Any("error", err))
	}
	for _, recipient := range recipients {
		token, err := s.notifier.SendDecisionRequest(ctx, recipient, subject, reason)
		if err != nil {
			s.log.WarnContext(ctx, "decision request undelivered",
				slog.Int64("recipient", int64(recipient)), slog.Any("error", err))
			continue
		}
		if err := s.registerApproval(ctx, token, subject, reason); err != nil {
			return nil, err
		}
		delivered++
	}

	if delivered == 0 {
		token, err := s.notifier.BroadcastDecisionRequest(ctx, s.cfg.BroadcastChannel, subject, reason)
		if err != nil {
			s.log.ErrorContext(ctx, "flag undeliverable, leaving account unflagged",
				slog.Int64("subject", int64(subject)),
				slog.String("status", string(report.Status)),
				slog.Any("error", err))
			report.Flagged = false
			return report, nil
		}
		if err := s.registerApproval(ctx, token, subject, reason); err != nil {
			return nil, err
		}
		delivered++
	}

	s.log.InfoContext(ctx, "account flagged",
		slog.Int64("subject", int64(subject)),
		slog.String("status", string(report.Status)),
		slog.Int("requests", delivered),
	)
	return report, nil
}

func (s *Service) registerApproval(ctx context.Context, token string, subject domain.MemberID, reason string) error {
	ap := domain.PendingApproval{
		Token:     token,
		ID:        uuid.New(),
		SubjectID: subject,
		Reason:    reason,
		CreatedAt: s.now(),
	}
	if err := s.approvals.Create(ctx, ap); err != nil {
		return fmt.Errorf("register approval %q: %w", token, err)
	}
	return nil
}

func describeFlag(r *domain.VerificationReport) string {
	switch r.Status {
	case domain.StatusFakeTags:
		return fmt.Sprintf("member %d displays %d vouches but the ledger backs only %d",
			r.SubjectID, r.DisplayedCount, r.StoredCount)
	case domain.StatusTagDiscrepancy:
		return fmt.Sprintf("member %d displays %d vouches while the ledger holds %d",
			r.SubjectID, r.DisplayedCount, r.StoredCount)
	default:
		return fmt.Sprintf("member %d has %d of %d vouches not backed by community records",
			r.SubjectID, r.AdminCount+r.Unaccounted, r.StoredCount)
	}
}
